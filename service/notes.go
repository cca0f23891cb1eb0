package service

import (
	"context"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
)

const entityNotes = "notes"

type Notes struct {
	d Deps
}

// List returns a patient's notes, pinned ones first.
func (s *Notes) List(ctx context.Context, scope gateway.Scope, patientID string, pr gateway.PageRequest) (gateway.Page[model.PatientNote], error) {
	pr = s.d.page(pr)
	page, err := cachedPage(s.d.Lists, scope, entityNotes, []interface{}{patientID, pr}, func() (gateway.Page[model.PatientNote], error) {
		return gateway.Query[model.PatientNote](ctx, s.d.DB, scope, gateway.Filter{
			Equals: map[string]interface{}{"patient_id": patientID},
			Order:  "pinned DESC, created_date DESC",
		}, pr)
	})
	return page, s.d.report("list notes", scope, err)
}

func (s *Notes) Create(ctx context.Context, scope gateway.Scope, patientID string, req model.NoteRequest) (model.PatientNote, error) {
	if err := validate(&req); err != nil {
		return model.PatientNote{}, err
	}
	if _, err := gateway.Get[model.Patient](ctx, s.d.DB, scope, patientID); err != nil {
		return model.PatientNote{}, s.d.report("create note", scope, err)
	}
	n := model.PatientNote{PatientID: patientID, Title: req.Title, Body: req.Body, Pinned: req.Pinned}
	if err := gateway.Insert(ctx, s.d.DB, scope, &n); err != nil {
		return model.PatientNote{}, s.d.report("create note", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityNotes)
	return n, nil
}

func (s *Notes) Update(ctx context.Context, scope gateway.Scope, id string, req model.UpdateNoteRequest) (model.PatientNote, error) {
	if err := validate(&req); err != nil {
		return model.PatientNote{}, err
	}
	patch := patchFrom(&req)
	if len(patch) == 0 {
		n, err := gateway.Get[model.PatientNote](ctx, s.d.DB, scope, id)
		return n, s.d.report("get note", scope, err)
	}
	n, err := gateway.Update[model.PatientNote](ctx, s.d.DB, scope, id, patch)
	if err != nil {
		return model.PatientNote{}, s.d.report("update note", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityNotes)
	return n, nil
}

// Delete deactivates the note and returns how many active notes the patient
// has left.
func (s *Notes) Delete(ctx context.Context, scope gateway.Scope, id string) (int64, error) {
	n, err := gateway.Get[model.PatientNote](ctx, s.d.DB, scope, id)
	if err != nil {
		return 0, s.d.report("delete note", scope, err)
	}
	if err := gateway.SoftDelete[model.PatientNote](ctx, s.d.DB, scope, id); err != nil {
		return 0, s.d.report("delete note", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityNotes)
	total, err := gateway.Count[model.PatientNote](ctx, s.d.DB, scope, gateway.Filter{
		Equals: map[string]interface{}{"patient_id": n.PatientID},
	})
	return total, s.d.report("count notes", scope, err)
}
