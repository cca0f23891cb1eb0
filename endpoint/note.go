package endpoint

import (
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
)

// ListPatientNotes godoc
// @Summary      Notes of a patient
// @Description  Newest first
// @Tags         Note
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Rows per page (max 100)"
// @Success      200 {object} util.APIResponse "Notes retrieved"
// @Router       /patients/{id}/notes [get]
func ListPatientNotes(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	page, err := svc.Notes.List(c.Request.Context(), scope, c.Param("id"), pageRequest(c))
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Notes retrieved", Data: page})
}

// CreatePatientNote godoc
// @Summary      Add a note to a patient
// @Tags         Note
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Patient ID"
// @Param        request body model.NoteRequest true "Note"
// @Success      201 {object} util.APIResponse{data=model.PatientNote} "Note created"
// @Failure      400 {object} util.APIResponse "Invalid form"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patients/{id}/notes [post]
func CreatePatientNote(c *gin.Context) {
	var req model.NoteRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	note, err := svc.Notes.Create(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Patient")
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Note created", Data: note})
}

// UpdateNote godoc
// @Summary      Update a note
// @Tags         Note
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Note ID"
// @Param        request body model.UpdateNoteRequest true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.PatientNote} "Note updated"
// @Failure      404 {object} util.APIResponse "Note not found"
// @Router       /notes/{id} [patch]
func UpdateNote(c *gin.Context) {
	var req model.UpdateNoteRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	note, err := svc.Notes.Update(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Note updated", Data: note})
}

// DeleteNote godoc
// @Summary      Delete a note
// @Tags         Note
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Note ID"
// @Success      200 {object} util.APIResponse "Note deleted"
// @Failure      404 {object} util.APIResponse "Note not found"
// @Router       /notes/{id} [delete]
func DeleteNote(c *gin.Context) {
	svc, scope, ok := tenantOrRespond(c)
	if !ok {
		return
	}
	total, err := svc.Notes.Delete(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, err, "Note")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Note deleted", Data: gin.H{"total": total}})
}
