package endpoint

import (
	"strings"

	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
)

// ListDentists godoc
// @Summary      List dentists
// @Description  Pass all=true for the unpaginated list used by selectors
// @Tags         Dentist
// @Produce      json
// @Security     SessionToken
// @Param        page query int false "Page number"
// @Param        page_size query int false "Rows per page (max 100)"
// @Param        keyword query string false "Search keyword"
// @Param        all query bool false "Return every active dentist"
// @Success      200 {object} util.APIResponse "Dentists retrieved"
// @Router       /dentists [get]
func ListDentists(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	if c.Query("all") == "true" {
		all, err := svc.Dentists.All(c.Request.Context(), scope)
		if err != nil {
			respondError(c, err, "Dentist")
			return
		}
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Dentists retrieved", Data: all})
		return
	}
	page, err := svc.Dentists.List(c.Request.Context(), scope, pageRequest(c), strings.TrimSpace(c.Query("keyword")))
	if err != nil {
		respondError(c, err, "Dentist")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Dentists retrieved", Data: page})
}

// CreateDentist godoc
// @Summary      Add a dentist
// @Tags         Dentist
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.CreateDentistRequest true "Dentist details"
// @Success      201 {object} util.APIResponse{data=model.Dentist} "Dentist created"
// @Failure      400 {object} util.APIResponse "Invalid form"
// @Router       /dentists [post]
func CreateDentist(c *gin.Context) {
	var req model.CreateDentistRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	dentist, err := svc.Dentists.Create(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, err, "Dentist")
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Dentist created", Data: dentist})
}

// UpdateDentist godoc
// @Summary      Update a dentist
// @Tags         Dentist
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Dentist ID"
// @Param        request body model.UpdateDentistRequest true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.Dentist} "Dentist updated"
// @Failure      404 {object} util.APIResponse "Dentist not found"
// @Router       /dentists/{id} [patch]
func UpdateDentist(c *gin.Context) {
	var req model.UpdateDentistRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	dentist, err := svc.Dentists.Update(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Dentist")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Dentist updated", Data: dentist})
}

// DeleteDentist godoc
// @Summary      Delete a dentist
// @Tags         Dentist
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Dentist ID"
// @Success      200 {object} util.APIResponse "Dentist deleted"
// @Failure      404 {object} util.APIResponse "Dentist not found"
// @Router       /dentists/{id} [delete]
func DeleteDentist(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	total, err := svc.Dentists.Delete(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Dentist")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Dentist deleted", Data: gin.H{"total": total}})
}
