package service

import (
	"context"
	"testing"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/odontogram"
	"github.com/ariebrainware/basis-data-dental/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func condition(tooth int, surface, cond string) model.SaveConditionRequest {
	return model.SaveConditionRequest{ToothNumber: tooth, Surface: surface, ConditionType: cond}
}

func TestOdontogramSaveConditionOutcomes(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	scope := scopeFor(t, "c")
	p := seedPatient(t, svc, scope, "Ana Ruiz")

	v, copied, err := svc.Odontograms.CreateVersion(ctx, scope, p.ID, model.CreateOdontogramRequest{Name: "Initial", Type: "initial"})
	require.NoError(t, err)
	assert.Zero(t, copied)
	assert.True(t, v.Complete)
	assert.Equal(t, "2026-10-16", v.Date)

	outcome, row, err := svc.Odontograms.SaveCondition(ctx, scope, v.ID, condition(36, "occlusal", "caries"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome)
	require.NotNil(t, row)
	assert.Equal(t, odontogram.StatusPlanned, row.ConditionStatus)

	outcome, row, err = svc.Odontograms.SaveCondition(ctx, scope, v.ID, condition(36, "occlusal", "restoration"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, odontogram.ConditionRestoration, row.ConditionType)

	conditions, err := svc.Odontograms.ListConditions(ctx, scope, v.ID)
	require.NoError(t, err)
	assert.Len(t, conditions, 1)

	outcome, _, err = svc.Odontograms.SaveCondition(ctx, scope, v.ID, condition(36, "occlusal", "healthy"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)

	outcome, _, err = svc.Odontograms.SaveCondition(ctx, scope, v.ID, condition(36, "occlusal", "healthy"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoop, outcome)

	conditions, err = svc.Odontograms.ListConditions(ctx, scope, v.ID)
	require.NoError(t, err)
	assert.Empty(t, conditions)
}

func TestOdontogramNewVersionCopiesConditions(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	scope := scopeFor(t, "c")
	p := seedPatient(t, svc, scope, "Ana Ruiz")

	first, _, err := svc.Odontograms.CreateVersion(ctx, scope, p.ID, model.CreateOdontogramRequest{Name: "Initial", Date: "2026-01-10", Type: "initial"})
	require.NoError(t, err)
	for _, req := range []model.SaveConditionRequest{
		condition(11, "whole", "crown"),
		condition(36, "occlusal", "caries"),
		condition(46, "mesial", "restoration"),
	} {
		_, _, err := svc.Odontograms.SaveCondition(ctx, scope, first.ID, req)
		require.NoError(t, err)
	}

	second, copied, err := svc.Odontograms.CreateVersion(ctx, scope, p.ID, model.CreateOdontogramRequest{Name: "Control", Date: "2026-10-16"})
	require.NoError(t, err)
	assert.Equal(t, 3, copied)
	assert.Equal(t, model.OdontogramEvolution, second.Type)

	carried, err := svc.Odontograms.ListConditions(ctx, scope, second.ID)
	require.NoError(t, err)
	require.Len(t, carried, 3)
	for _, c := range carried {
		assert.Equal(t, odontogram.StatusExisting, c.ConditionStatus)
		assert.Equal(t, second.ID, c.OdontogramID)
	}

	// the previous version keeps its own rows
	original, err := svc.Odontograms.ListConditions(ctx, scope, first.ID)
	require.NoError(t, err)
	require.Len(t, original, 3)
	assert.Equal(t, odontogram.StatusPlanned, original[0].ConditionStatus)

	versions, err := svc.Odontograms.ListVersions(ctx, scope, p.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, second.ID, versions[0].ID)

	current, err := svc.Odontograms.CurrentVersion(ctx, scope, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	explicit, err := svc.Odontograms.CurrentVersion(ctx, scope, p.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, explicit.ID)
}

func TestOdontogramHistoryIsReadOnly(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	scope := scopeFor(t, "c")
	p := seedPatient(t, svc, scope, "Ana Ruiz")

	first, _, err := svc.Odontograms.CreateVersion(ctx, scope, p.ID, model.CreateOdontogramRequest{Name: "Initial", Date: "2026-01-10", Type: "initial"})
	require.NoError(t, err)
	_, _, err = svc.Odontograms.CreateVersion(ctx, scope, p.ID, model.CreateOdontogramRequest{Name: "Control", Date: "2026-10-16"})
	require.NoError(t, err)

	_, _, err = svc.Odontograms.SaveCondition(ctx, scope, first.ID, condition(21, "whole", "missing"))
	assert.ErrorIs(t, err, ErrReadOnlyVersion)

	detail, err := svc.Odontograms.Detail(ctx, scope, first.ID)
	require.NoError(t, err)
	assert.True(t, detail.ReadOnly)
}

func TestOdontogramSpanningCondition(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	scope := scopeFor(t, "c")
	p := seedPatient(t, svc, scope, "Ana Ruiz")

	v, _, err := svc.Odontograms.CreateVersion(ctx, scope, p.ID, model.CreateOdontogramRequest{Name: "Plan", Type: "treatment_plan"})
	require.NoError(t, err)

	bridge := condition(14, "whole", "bridge")
	bridge.RangeEndTooth = intPtr(16)
	_, _, err = svc.Odontograms.SaveCondition(ctx, scope, v.ID, bridge)
	require.NoError(t, err)

	crossing := condition(14, "whole", "bridge")
	crossing.RangeEndTooth = intPtr(44)
	_, _, err = svc.Odontograms.SaveCondition(ctx, scope, v.ID, crossing)
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "range_end_tooth")

	detail, err := svc.Odontograms.Detail(ctx, scope, v.ID)
	require.NoError(t, err)
	assert.False(t, detail.ReadOnly)
	for _, tooth := range []int{14, 15, 16} {
		require.Contains(t, detail.Chart, tooth)
		require.NotNil(t, detail.Chart[tooth].Whole)
		assert.Equal(t, odontogram.ConditionBridge, detail.Chart[tooth].Whole.Condition)
	}
}

func TestOdontogramUnknownPatient(t *testing.T) {
	svc, _ := setupServices(t)
	_, _, err := svc.Odontograms.CreateVersion(context.Background(), scopeFor(t, "c"), "missing", model.CreateOdontogramRequest{Name: "Initial"})
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	_, err = svc.Odontograms.CurrentVersion(context.Background(), scopeFor(t, "c"), "missing", "")
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestOdontogramBackDatedVersionIsCurrent(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	scope := scopeFor(t, "c")
	p := seedPatient(t, svc, scope, "Ana Ruiz")

	first, _, err := svc.Odontograms.CreateVersion(ctx, scope, p.ID, model.CreateOdontogramRequest{Name: "Initial", Date: "2026-10-16", Type: "initial"})
	require.NoError(t, err)
	_, _, err = svc.Odontograms.SaveCondition(ctx, scope, first.ID, condition(11, "whole", "crown"))
	require.NoError(t, err)

	// recorded today for an exam that took place last month
	second, copied, err := svc.Odontograms.CreateVersion(ctx, scope, p.ID, model.CreateOdontogramRequest{Name: "September exam", Date: "2026-09-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, copied)
	assert.Equal(t, 1, first.Sequence)
	assert.Equal(t, 2, second.Sequence)

	outcome, _, err := svc.Odontograms.SaveCondition(ctx, scope, second.ID, condition(36, "occlusal", "caries"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome)

	_, _, err = svc.Odontograms.SaveCondition(ctx, scope, first.ID, condition(36, "occlusal", "caries"))
	assert.ErrorIs(t, err, ErrReadOnlyVersion)

	current, err := svc.Odontograms.CurrentVersion(ctx, scope, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	versions, err := svc.Odontograms.ListVersions(ctx, scope, p.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, second.ID, versions[0].ID)
	assert.Equal(t, first.ID, versions[1].ID)
}

func TestOdontogramVersionsOnTheSameDate(t *testing.T) {
	svc, _ := setupServices(t)
	ctx := context.Background()
	scope := scopeFor(t, "c")
	p := seedPatient(t, svc, scope, "Ana Ruiz")

	var ids []string
	for _, name := range []string{"Morning", "Noon", "Evening"} {
		v, _, err := svc.Odontograms.CreateVersion(ctx, scope, p.ID, model.CreateOdontogramRequest{Name: name, Date: "2026-10-16"})
		require.NoError(t, err)
		ids = append(ids, v.ID)
	}

	versions, err := svc.Odontograms.ListVersions(ctx, scope, p.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{versions[0].ID, versions[1].ID, versions[2].ID})
	assert.Equal(t, []int{3, 2, 1}, []int{versions[0].Sequence, versions[1].Sequence, versions[2].Sequence})

	detail, err := svc.Odontograms.Detail(ctx, scope, ids[2])
	require.NoError(t, err)
	assert.False(t, detail.ReadOnly)
	detail, err = svc.Odontograms.Detail(ctx, scope, ids[1])
	require.NoError(t, err)
	assert.True(t, detail.ReadOnly)
}
