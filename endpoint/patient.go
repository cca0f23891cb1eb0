package endpoint

import (
	"strings"

	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/service"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
)

// ListPatients godoc
// @Summary      List patients
// @Description  Paginated list of the clinic's active patients, ordered by name
// @Tags         Patient
// @Produce      json
// @Security     SessionToken
// @Param        page query int false "Page number, starting at 1"
// @Param        page_size query int false "Rows per page (max 100)"
// @Param        keyword query string false "Search keyword for name, phone, email or id number"
// @Param        gender query string false "male|female|other"
// @Success      200 {object} util.APIResponse{data=gateway.Page[model.Patient]} "Patients retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [get]
func ListPatients(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	page, err := svc.Patients.List(c.Request.Context(), scope, pageRequest(c), service.PatientFilter{
		Keyword: strings.TrimSpace(c.Query("keyword")),
		Gender:  c.Query("gender"),
	})
	if err != nil {
		respondError(c, err, "Patient")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patients retrieved", Data: page})
}

// GetPatientInfo godoc
// @Summary      Get patient
// @Tags         Patient
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient ID"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient retrieved"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patients/{id} [get]
func GetPatientInfo(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	patient, err := svc.Patients.Get(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Patient")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient retrieved", Data: patient})
}

// CreatePatient godoc
// @Summary      Register a patient
// @Description  Age is derived from birth_date
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.CreatePatientRequest true "Patient details"
// @Success      201 {object} util.APIResponse{data=model.Patient} "Patient created"
// @Failure      400 {object} util.APIResponse "Invalid form"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [post]
func CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	patient, err := svc.Patients.Create(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, err, "Patient")
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Patient created", Data: patient})
}

// UpdatePatient godoc
// @Summary      Update a patient
// @Description  Partial update; only the fields present are written
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient ID"
// @Param        request body model.UpdatePatientRequest true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient updated"
// @Failure      400 {object} util.APIResponse "Invalid form"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patients/{id} [patch]
func UpdatePatient(c *gin.Context) {
	var req model.UpdatePatientRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	patient, err := svc.Patients.Update(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Patient")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient updated", Data: patient})
}

// DeletePatient godoc
// @Summary      Delete a patient
// @Description  Marks the patient inactive and returns the remaining active total
// @Tags         Patient
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient ID"
// @Success      200 {object} util.APIResponse "Patient deleted"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patients/{id} [delete]
func DeletePatient(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	total, err := svc.Patients.Delete(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Patient")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient deleted", Data: gin.H{"total": total}})
}
