package endpoint

import (
	"strings"

	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
)

// ListCatalog godoc
// @Summary      List the treatment catalog
// @Tags         Catalog
// @Produce      json
// @Security     SessionToken
// @Param        page query int false "Page number"
// @Param        page_size query int false "Rows per page (max 100)"
// @Param        keyword query string false "Search keyword"
// @Success      200 {object} util.APIResponse "Catalog retrieved"
// @Router       /catalog [get]
func ListCatalog(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	page, err := svc.Catalog.List(c.Request.Context(), scope, pageRequest(c), strings.TrimSpace(c.Query("keyword")))
	if err != nil {
		respondError(c, err, "Catalog item")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Catalog retrieved", Data: page})
}

// GetCatalogItem godoc
// @Summary      Catalog item with its price history
// @Tags         Catalog
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Catalog item ID"
// @Success      200 {object} util.APIResponse "Catalog item retrieved"
// @Failure      404 {object} util.APIResponse "Catalog item not found"
// @Router       /catalog/{id} [get]
func GetCatalogItem(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	item, err := svc.Catalog.Get(ctx, scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Catalog item")
		return
	}
	costs, err := svc.Catalog.Costs(ctx, scope, item.ID)
	if err != nil {
		respondError(c, err, "Catalog item")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Catalog item retrieved", Data: gin.H{"item": item, "costs": costs}})
}

// CreateCatalogItem godoc
// @Summary      Add a catalog item
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.CatalogRequest true "Catalog item"
// @Success      201 {object} util.APIResponse{data=model.TreatmentCatalog} "Catalog item created"
// @Failure      400 {object} util.APIResponse "Invalid form"
// @Router       /catalog [post]
func CreateCatalogItem(c *gin.Context) {
	var req model.CatalogRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	item, err := svc.Catalog.Create(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, err, "Catalog item")
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Catalog item created", Data: item})
}

// UpdateCatalogItem godoc
// @Summary      Update a catalog item
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Catalog item ID"
// @Param        request body model.UpdateCatalogRequest true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.TreatmentCatalog} "Catalog item updated"
// @Failure      404 {object} util.APIResponse "Catalog item not found"
// @Router       /catalog/{id} [patch]
func UpdateCatalogItem(c *gin.Context) {
	var req model.UpdateCatalogRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	item, err := svc.Catalog.Update(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Catalog item")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Catalog item updated", Data: item})
}

// DeleteCatalogItem godoc
// @Summary      Delete a catalog item
// @Tags         Catalog
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Catalog item ID"
// @Success      200 {object} util.APIResponse "Catalog item deleted"
// @Failure      404 {object} util.APIResponse "Catalog item not found"
// @Router       /catalog/{id} [delete]
func DeleteCatalogItem(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	total, err := svc.Catalog.Delete(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Catalog item")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Catalog item deleted", Data: gin.H{"total": total}})
}
