package endpoint

import (
	"net/http"

	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/odontogram"
	"github.com/ariebrainware/basis-data-dental/service"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
)

// ListOdontograms godoc
// @Summary      Odontogram versions of a patient
// @Description  Newest first; current_id is the only editable version
// @Tags         Odontogram
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient ID"
// @Success      200 {object} util.APIResponse "Versions retrieved"
// @Router       /patients/{id}/odontograms [get]
func ListOdontograms(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	versions, err := svc.Odontograms.ListVersions(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Patient")
		return
	}
	data := gin.H{"versions": versions, "current_id": nil}
	if len(versions) > 0 {
		current, err := svc.Odontograms.CurrentVersion(c.Request.Context(), scope, c.Param("id"), "")
		if err != nil {
			respondError(c, err, "Odontogram")
			return
		}
		data["current_id"] = current.ID
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Odontograms retrieved", Data: data})
}

// CurrentOdontogram godoc
// @Summary      Odontogram version shown for a patient
// @Description  The version named by id, otherwise the patient's latest version
// @Tags         Odontogram
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient ID"
// @Param        id query string false "Odontogram ID to open instead of the latest"
// @Success      200 {object} util.APIResponse{data=service.OdontogramDetail} "Odontogram retrieved"
// @Failure      404 {object} util.APIResponse "No odontogram for this patient"
// @Router       /patients/{id}/odontograms/current [get]
func CurrentOdontogram(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	version, err := svc.Odontograms.CurrentVersion(ctx, scope, c.Param("id"), c.Query("id"))
	if err != nil {
		respondError(c, err, "Odontogram")
		return
	}
	detail, err := svc.Odontograms.Detail(ctx, scope, version.ID)
	if err != nil {
		respondError(c, err, "Odontogram")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Odontogram retrieved", Data: detail})
}

// CreateOdontogram godoc
// @Summary      Open a new odontogram version
// @Description  Conditions of the previous version are carried over as existing
// @Tags         Odontogram
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient ID"
// @Param        request body model.CreateOdontogramRequest true "Version details"
// @Success      201 {object} util.APIResponse "Version created"
// @Failure      400 {object} util.APIResponse "Invalid form"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patients/{id}/odontograms [post]
func CreateOdontogram(c *gin.Context) {
	var req model.CreateOdontogramRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	version, copied, err := svc.Odontograms.CreateVersion(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Patient")
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Odontogram created", Data: gin.H{"version": version, "copied": copied}})
}

// GetOdontogram godoc
// @Summary      Odontogram version detail
// @Tags         Odontogram
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Odontogram ID"
// @Success      200 {object} util.APIResponse{data=service.OdontogramDetail} "Odontogram retrieved"
// @Failure      404 {object} util.APIResponse "Odontogram not found"
// @Router       /odontograms/{id} [get]
func GetOdontogram(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	detail, err := svc.Odontograms.Detail(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Odontogram")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Odontogram retrieved", Data: detail})
}

// OdontogramSVG godoc
// @Summary      Odontogram chart as SVG
// @Tags         Odontogram
// @Produce      image/svg+xml
// @Security     SessionToken
// @Param        id path string true "Odontogram ID"
// @Success      200 {string} string "SVG document"
// @Failure      404 {object} util.APIResponse "Odontogram not found"
// @Router       /odontograms/{id}/svg [get]
func OdontogramSVG(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	detail, err := svc.Odontograms.Detail(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Odontogram")
		return
	}
	svg := odontogram.RenderSVG(detail.Chart, odontogram.RenderOptions{Title: detail.Version.Name})
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", []byte(svg))
}

// SaveToothCondition godoc
// @Summary      Write one tooth cell
// @Description  Inserts, updates or, for healthy, deletes the (tooth, surface) condition of the current version
// @Tags         Odontogram
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Odontogram ID"
// @Param        request body model.SaveConditionRequest true "Condition"
// @Success      200 {object} util.APIResponse "Condition saved"
// @Failure      400 {object} util.APIResponse "Invalid form"
// @Failure      404 {object} util.APIResponse "Odontogram not found"
// @Failure      409 {object} util.APIResponse "Version is read-only"
// @Router       /odontograms/{id}/conditions [put]
func SaveToothCondition(c *gin.Context) {
	var req model.SaveConditionRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	outcome, condition, err := svc.Odontograms.SaveCondition(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Odontogram")
		return
	}
	msg := "Condition saved"
	switch outcome {
	case service.OutcomeDeleted:
		msg = "Condition removed"
	case service.OutcomeNoop:
		msg = "Nothing to change"
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: msg, Data: gin.H{"outcome": outcome, "condition": condition}})
}
