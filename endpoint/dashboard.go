package endpoint

import (
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
)

// GetDashboard godoc
// @Summary      Clinic dashboard
// @Description  Served from the background snapshot when one exists; refresh=true recomputes it
// @Tags         Dashboard
// @Produce      json
// @Security     SessionToken
// @Param        refresh query bool false "Recompute now"
// @Success      200 {object} util.APIResponse{data=service.Summary} "Dashboard retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /dashboard [get]
func GetDashboard(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	if c.Query("refresh") != "true" {
		if snap, ok := svc.Dashboard.Snapshot(scope.ClinicID()); ok {
			util.CallSuccessOK(c, util.APISuccessParams{Msg: "Dashboard retrieved", Data: snap})
			return
		}
	}
	summary, err := svc.Dashboard.Summary(c.Request.Context(), scope)
	if err != nil {
		respondError(c, err, "Clinic")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Dashboard retrieved", Data: summary})
}
