package endpoint

import (
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
)

// GetClinicSettings godoc
// @Summary      Clinic settings
// @Tags         Clinic
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=model.Clinic} "Clinic retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /settings/clinic [get]
func GetClinicSettings(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	clinic, err := svc.Clinics.Get(c.Request.Context(), scope)
	if err != nil {
		respondError(c, err, "Clinic")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Clinic retrieved", Data: clinic})
}

// UpdateClinicSettings godoc
// @Summary      Update clinic settings (admin only)
// @Tags         Clinic
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.UpdateClinicRequest true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.Clinic} "Clinic updated"
// @Failure      400 {object} util.APIResponse "Invalid form"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Router       /settings/clinic [patch]
func UpdateClinicSettings(c *gin.Context) {
	var req model.UpdateClinicRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	clinic, err := svc.Clinics.Update(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, err, "Clinic")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Clinic updated", Data: clinic})
}
