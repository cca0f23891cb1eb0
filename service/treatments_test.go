package service

import (
	"context"
	"testing"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCostOn(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	scope := scopeFor(t, "c")

	item, err := svc.Catalog.Create(ctx, scope, model.CatalogRequest{Name: "Root canal", DefaultCost: 250})
	require.NoError(t, err)
	assert.Equal(t, 30, item.DefaultDuration)

	_, err = svc.Catalog.Update(ctx, scope, item.ID, model.UpdateCatalogRequest{Cost: floatPtr(280)})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "effective_from")

	_, err = svc.Catalog.Update(ctx, scope, item.ID, model.UpdateCatalogRequest{
		Cost: floatPtr(280), EffectiveFrom: strPtr("2026-06-01"),
	})
	require.NoError(t, err)
	_, err = svc.Catalog.Update(ctx, scope, item.ID, model.UpdateCatalogRequest{
		Cost: floatPtr(300), EffectiveFrom: strPtr("2027-01-01"),
	})
	require.NoError(t, err)

	cost, err := svc.Catalog.CostOn(ctx, scope, item, "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 250.0, cost)

	cost, err = svc.Catalog.CostOn(ctx, scope, item, "2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, 280.0, cost)

	cost, err = svc.Catalog.CostOn(ctx, scope, item, "2027-03-01")
	require.NoError(t, err)
	assert.Equal(t, 300.0, cost)

	costs, err := svc.Catalog.Costs(ctx, scope, item.ID)
	require.NoError(t, err)
	assert.Len(t, costs, 2)
}

func TestTreatmentsCreateFromCatalog(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	scope := scopeFor(t, "c")
	p := seedPatient(t, svc, scope, "Ana Ruiz")
	d := seedDentist(t, svc, scope, "Dr. Luis Gómez")

	item, err := svc.Catalog.Create(ctx, scope, model.CatalogRequest{Name: "Root canal", DefaultCost: 250, DefaultDuration: 90})
	require.NoError(t, err)

	tr, err := svc.Treatments.Create(ctx, scope, model.TreatmentRequest{
		PatientID:     p.ID,
		DentistID:     d.ID,
		CatalogID:     &item.ID,
		ToothNumber:   "36",
		TreatmentDate: "2026-10-16",
		Materials:     []string{"gutta-percha"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Root canal", tr.Procedure)
	assert.Equal(t, 250.0, tr.Cost)
	require.NotNil(t, tr.DurationMinutes)
	assert.Equal(t, 90, *tr.DurationMinutes)
	assert.Equal(t, model.TreatmentPlanned, tr.ClinicalStatus)
	assert.JSONEq(t, `["gutta-percha"]`, string(tr.Materials))
}

func TestTreatmentsCreateRequiresKnownPatient(t *testing.T) {
	svc, _ := setupServices(t)
	scope := scopeFor(t, "c")
	d := seedDentist(t, svc, scope, "Dr. Luis Gómez")

	_, err := svc.Treatments.Create(context.Background(), scope, model.TreatmentRequest{
		PatientID:     "0b7e7d4e-8a39-4d53-9b39-2f1f0c1f1a11",
		DentistID:     d.ID,
		Procedure:     "Cleaning",
		TreatmentDate: "2026-10-16",
	})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "patient_id")
}

func TestTreatmentsRejectOtherClinicsDentist(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	scope := scopeFor(t, "c")
	other := scopeFor(t, "other")
	p := seedPatient(t, svc, scope, "Ana Ruiz")
	mine := seedDentist(t, svc, scope, "Dr. Luis Gómez")
	foreign := seedDentist(t, svc, other, "Dr. Eva Mora")

	_, err := svc.Treatments.Create(ctx, scope, model.TreatmentRequest{
		PatientID:     p.ID,
		DentistID:     foreign.ID,
		Procedure:     "Cleaning",
		TreatmentDate: "2026-10-16",
	})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "does not exist", verrs["dentist_id"])

	tr, err := svc.Treatments.Create(ctx, scope, model.TreatmentRequest{
		PatientID:     p.ID,
		DentistID:     mine.ID,
		Procedure:     "Cleaning",
		TreatmentDate: "2026-10-16",
	})
	require.NoError(t, err)

	_, err = svc.Treatments.Update(ctx, scope, tr.ID, model.UpdateTreatmentRequest{DentistID: &foreign.ID})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "dentist_id")

	again, err := svc.Treatments.Get(ctx, scope, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, again.DentistID)
}

func TestTreatmentsDuplicate(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	scope := scopeFor(t, "c")
	p := seedPatient(t, svc, scope, "Ana Ruiz")
	d := seedDentist(t, svc, scope, "Dr. Luis Gómez")

	src, err := svc.Treatments.Create(ctx, scope, model.TreatmentRequest{
		PatientID:      p.ID,
		DentistID:      d.ID,
		Procedure:      "Composite filling",
		Cost:           80,
		TreatmentDate:  "2026-09-01",
		ClinicalStatus: "completed",
		FollowUpDate:   strPtr("2026-09-15"),
		Complications:  "sensitivity",
	})
	require.NoError(t, err)

	dup, err := svc.Treatments.Duplicate(ctx, scope, src.ID)
	require.NoError(t, err)
	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, model.TreatmentPlanned, dup.ClinicalStatus)
	assert.Equal(t, "2026-10-16", dup.TreatmentDate)
	assert.Nil(t, dup.FollowUpDate)
	assert.Empty(t, dup.Complications)
	assert.Equal(t, src.Procedure, dup.Procedure)
	assert.Equal(t, src.Cost, dup.Cost)

	n, err := svc.Treatments.Delete(ctx, scope, src.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestNotesOrderAndDeleteCount(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	scope := scopeFor(t, "c")
	p := seedPatient(t, svc, scope, "Ana Ruiz")

	first, err := svc.Notes.Create(ctx, scope, p.ID, model.NoteRequest{Body: "first visit"})
	require.NoError(t, err)
	pinned, err := svc.Notes.Create(ctx, scope, p.ID, model.NoteRequest{Body: "allergic to latex", Pinned: true})
	require.NoError(t, err)

	page, err := svc.Notes.List(ctx, scope, p.ID, gateway.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Rows, 2)
	assert.Equal(t, pinned.ID, page.Rows[0].ID)

	n, err := svc.Notes.Delete(ctx, scope, first.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
