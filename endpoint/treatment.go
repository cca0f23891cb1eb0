package endpoint

import (
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/service"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
)

func listTreatments(c *gin.Context, f service.TreatmentFilter) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	page, err := svc.Treatments.List(c.Request.Context(), scope, pageRequest(c), f)
	if err != nil {
		respondError(c, err, "Treatment")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Treatments retrieved", Data: page})
}

// ListTreatments godoc
// @Summary      List treatments
// @Description  Newest first
// @Tags         Treatment
// @Produce      json
// @Security     SessionToken
// @Param        page query int false "Page number"
// @Param        page_size query int false "Rows per page (max 100)"
// @Param        patient_id query string false "Patient ID"
// @Param        dentist_id query string false "Dentist ID"
// @Param        status query string false "planned|in_progress|completed|cancelled"
// @Param        from query string false "First day, YYYY-MM-DD"
// @Param        to query string false "Last day, YYYY-MM-DD"
// @Success      200 {object} util.APIResponse "Treatments retrieved"
// @Router       /treatments [get]
func ListTreatments(c *gin.Context) {
	listTreatments(c, service.TreatmentFilter{
		PatientID: c.Query("patient_id"),
		DentistID: c.Query("dentist_id"),
		Status:    c.Query("status"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	})
}

// ListPatientTreatments godoc
// @Summary      Treatment history of a patient
// @Tags         Treatment
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient ID"
// @Success      200 {object} util.APIResponse "Treatments retrieved"
// @Router       /patients/{id}/treatments [get]
func ListPatientTreatments(c *gin.Context) {
	listTreatments(c, service.TreatmentFilter{PatientID: c.Param("id"), Status: c.Query("status")})
}

// CreateTreatment godoc
// @Summary      Record a treatment
// @Description  With catalog_id and no cost, the cost is taken from the catalog price valid on the treatment date
// @Tags         Treatment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.TreatmentRequest true "Treatment details"
// @Success      201 {object} util.APIResponse{data=model.Treatment} "Treatment created"
// @Failure      400 {object} util.APIResponse "Invalid form"
// @Router       /treatments [post]
func CreateTreatment(c *gin.Context) {
	var req model.TreatmentRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	treatment, err := svc.Treatments.Create(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, err, "Treatment")
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Treatment created", Data: treatment})
}

// UpdateTreatment godoc
// @Summary      Update a treatment
// @Tags         Treatment
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Treatment ID"
// @Param        request body model.UpdateTreatmentRequest true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.Treatment} "Treatment updated"
// @Failure      404 {object} util.APIResponse "Treatment not found"
// @Router       /treatments/{id} [patch]
func UpdateTreatment(c *gin.Context) {
	var req model.UpdateTreatmentRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	treatment, err := svc.Treatments.Update(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Treatment")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Treatment updated", Data: treatment})
}

// DuplicateTreatment godoc
// @Summary      Duplicate a treatment
// @Description  Copies the treatment as a new planned treatment dated today
// @Tags         Treatment
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Treatment ID"
// @Success      201 {object} util.APIResponse{data=model.Treatment} "Treatment duplicated"
// @Failure      404 {object} util.APIResponse "Treatment not found"
// @Router       /treatments/{id}/duplicate [post]
func DuplicateTreatment(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	treatment, err := svc.Treatments.Duplicate(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Treatment")
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Treatment duplicated", Data: treatment})
}

// DeleteTreatment godoc
// @Summary      Delete a treatment
// @Tags         Treatment
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Treatment ID"
// @Success      200 {object} util.APIResponse "Treatment deleted"
// @Failure      404 {object} util.APIResponse "Treatment not found"
// @Router       /treatments/{id} [delete]
func DeleteTreatment(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	total, err := svc.Treatments.Delete(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Treatment")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Treatment deleted", Data: gin.H{"total": total}})
}
