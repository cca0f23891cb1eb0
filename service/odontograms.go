package service

import (
	"context"
	"errors"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/odontogram"
	"gorm.io/gorm"
)

const entityOdontograms = "odontograms"

// ErrReadOnlyVersion is returned when writing to a version that is not the
// patient's current one.
var ErrReadOnlyVersion = errors.New("odontogram version is read-only")

// SaveOutcome tells what SaveCondition did to the stored row.
type SaveOutcome string

const (
	OutcomeInserted SaveOutcome = "inserted"
	OutcomeUpdated  SaveOutcome = "updated"
	OutcomeDeleted  SaveOutcome = "deleted"
	OutcomeNoop     SaveOutcome = "noop"
)

// versionOrder is creation order. The clinician's date is not used since it
// may be back-dated.
const versionOrder = "sequence DESC, created_date DESC"

type Odontograms struct {
	d Deps
}

// ListVersions returns a patient's versions, newest first.
func (s *Odontograms) ListVersions(ctx context.Context, scope gateway.Scope, patientID string) ([]model.Odontogram, error) {
	rows, err := gateway.All[model.Odontogram](ctx, s.d.DB, scope, gateway.Filter{
		Equals: map[string]interface{}{"patient_id": patientID},
		Order:  versionOrder,
	})
	return rows, s.d.report("list odontograms", scope, err)
}

func latestVersion(ctx context.Context, db *gorm.DB, scope gateway.Scope, patientID string) (model.Odontogram, error) {
	page, err := gateway.Query[model.Odontogram](ctx, db, scope, gateway.Filter{
		Equals: map[string]interface{}{"patient_id": patientID},
		Order:  versionOrder,
	}, gateway.PageRequest{Page: 1, PageSize: 1})
	if err != nil {
		return model.Odontogram{}, err
	}
	if len(page.Rows) == 0 {
		return model.Odontogram{}, gateway.ErrNotFound
	}
	return page.Rows[0], nil
}

// CurrentVersion returns the version with explicitID when given, otherwise
// the patient's most recent one.
func (s *Odontograms) CurrentVersion(ctx context.Context, scope gateway.Scope, patientID, explicitID string) (model.Odontogram, error) {
	if explicitID != "" {
		o, err := gateway.Get[model.Odontogram](ctx, s.d.DB, scope, explicitID)
		if err != nil {
			return o, s.d.report("get odontogram", scope, err)
		}
		if o.PatientID != patientID {
			return model.Odontogram{}, gateway.ErrNotFound
		}
		return o, nil
	}
	o, err := latestVersion(ctx, s.d.DB, scope, patientID)
	return o, s.d.report("current odontogram", scope, err)
}

// ListConditions returns the conditions of a version in chart order.
func (s *Odontograms) ListConditions(ctx context.Context, scope gateway.Scope, odontogramID string) ([]model.ToothCondition, error) {
	rows, err := gateway.All[model.ToothCondition](ctx, s.d.DB, scope, gateway.Filter{
		Equals: map[string]interface{}{"odontogram_id": odontogramID},
		Order:  "tooth_number ASC, surface ASC",
	})
	return rows, s.d.report("list tooth conditions", scope, err)
}

// CreateVersion opens a new version for a patient. Every condition of the
// previous version is carried over with status existing. The copy runs in one
// transaction, so a failure leaves no partial version behind.
func (s *Odontograms) CreateVersion(ctx context.Context, scope gateway.Scope, patientID string, req model.CreateOdontogramRequest) (model.Odontogram, int, error) {
	if err := validate(&req); err != nil {
		return model.Odontogram{}, 0, err
	}
	if req.Date == "" {
		req.Date = s.d.now().Format(dateLayout)
	}
	if _, err := gateway.Get[model.Patient](ctx, s.d.DB, scope, patientID); err != nil {
		return model.Odontogram{}, 0, s.d.report("create odontogram", scope, err)
	}

	version := model.Odontogram{
		Sequence:  1,
		PatientID: patientID,
		Name:      req.Name,
		Date:      req.Date,
		Type:      model.OdontogramType(req.Type),
		Notes:     req.Notes,
	}
	copied := 0
	err := s.d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prev, err := latestVersion(ctx, tx, scope, patientID)
		hasPrev := err == nil
		if err != nil && !gateway.IsNotFound(err) {
			return err
		}
		if hasPrev {
			version.Sequence = prev.Sequence + 1
		}

		if err := gateway.Insert(ctx, tx, scope, &version); err != nil {
			return err
		}

		if hasPrev {
			conditions, err := gateway.All[model.ToothCondition](ctx, tx, scope, gateway.Filter{
				Equals: map[string]interface{}{"odontogram_id": prev.ID},
			})
			if err != nil {
				return err
			}
			for _, c := range conditions {
				carried := model.ToothCondition{
					OdontogramID:    version.ID,
					ToothNumber:     c.ToothNumber,
					Surface:         c.Surface,
					RangeEndTooth:   c.RangeEndTooth,
					ConditionType:   c.ConditionType,
					ConditionStatus: odontogram.StatusExisting,
					Notes:           c.Notes,
					Cost:            c.Cost,
				}
				if err := gateway.Insert(ctx, tx, scope, &carried); err != nil {
					return err
				}
				copied++
			}
		}

		updated, err := gateway.Update[model.Odontogram](ctx, tx, scope, version.ID, map[string]interface{}{"complete": true})
		if err != nil {
			return err
		}
		version = updated
		return nil
	})
	if err != nil {
		return model.Odontogram{}, 0, s.d.report("create odontogram", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityOdontograms)
	return version, copied, nil
}

// IsCurrent reports whether the version accepts edits.
func (s *Odontograms) IsCurrent(ctx context.Context, scope gateway.Scope, version model.Odontogram) (bool, error) {
	latest, err := latestVersion(ctx, s.d.DB, scope, version.PatientID)
	if err != nil {
		return false, s.d.report("current odontogram", scope, err)
	}
	return latest.ID == version.ID, nil
}

// SaveCondition writes one (tooth, surface) cell of a version. Saving healthy
// removes the cell. Only the patient's current version accepts writes.
func (s *Odontograms) SaveCondition(ctx context.Context, scope gateway.Scope, odontogramID string, req model.SaveConditionRequest) (SaveOutcome, *model.ToothCondition, error) {
	if err := validate(&req); err != nil {
		return OutcomeNoop, nil, err
	}
	mark := odontogram.Mark{
		Tooth:     req.ToothNumber,
		Surface:   odontogram.Surface(req.Surface),
		Condition: odontogram.ConditionType(req.ConditionType),
		Status:    odontogram.ConditionStatus(req.ConditionStatus),
		Notes:     req.Notes,
	}
	if req.RangeEndTooth != nil {
		mark.RangeEnd = *req.RangeEndTooth
	}
	if err := mark.Validate(); err != nil {
		return OutcomeNoop, nil, fieldError("range_end_tooth", err.Error())
	}

	version, err := gateway.Get[model.Odontogram](ctx, s.d.DB, scope, odontogramID)
	if err != nil {
		return OutcomeNoop, nil, s.d.report("save condition", scope, err)
	}
	current, err := s.IsCurrent(ctx, scope, version)
	if err != nil {
		return OutcomeNoop, nil, err
	}
	if !current {
		return OutcomeNoop, nil, ErrReadOnlyVersion
	}

	existing, err := gateway.All[model.ToothCondition](ctx, s.d.DB, scope, gateway.Filter{
		Equals: map[string]interface{}{
			"odontogram_id": odontogramID,
			"tooth_number":  mark.Tooth,
			"surface":       string(mark.Surface),
		},
	})
	if err != nil {
		return OutcomeNoop, nil, s.d.report("save condition", scope, err)
	}

	if mark.Condition == odontogram.ConditionHealthy {
		if len(existing) == 0 {
			return OutcomeNoop, nil, nil
		}
		if err := gateway.HardDelete[model.ToothCondition](ctx, s.d.DB, scope, existing[0].ID); err != nil {
			return OutcomeNoop, nil, s.d.report("save condition", scope, err)
		}
		return OutcomeDeleted, nil, nil
	}

	var rangeEnd *int
	if mark.RangeEnd != 0 {
		rangeEnd = &mark.RangeEnd
	}

	if len(existing) > 0 {
		updated, err := gateway.Update[model.ToothCondition](ctx, s.d.DB, scope, existing[0].ID, map[string]interface{}{
			"condition_type":   mark.Condition,
			"condition_status": mark.Status,
			"notes":            mark.Notes,
			"cost":             req.Cost,
			"range_end_tooth":  rangeEnd,
		})
		if err != nil {
			return OutcomeNoop, nil, s.d.report("save condition", scope, err)
		}
		return OutcomeUpdated, &updated, nil
	}

	row := model.ToothCondition{
		OdontogramID:    odontogramID,
		ToothNumber:     mark.Tooth,
		Surface:         mark.Surface,
		RangeEndTooth:   rangeEnd,
		ConditionType:   mark.Condition,
		ConditionStatus: mark.Status,
		Notes:           mark.Notes,
		Cost:            req.Cost,
	}
	if err := gateway.Insert(ctx, s.d.DB, scope, &row); err != nil {
		return OutcomeNoop, nil, s.d.report("save condition", scope, err)
	}
	return OutcomeInserted, &row, nil
}

// Chart folds the conditions of a version into per-tooth state.
func (s *Odontograms) Chart(ctx context.Context, scope gateway.Scope, odontogramID string) (odontogram.Chart, error) {
	conditions, err := s.ListConditions(ctx, scope, odontogramID)
	if err != nil {
		return nil, err
	}
	return chartOf(conditions), nil
}

func chartOf(conditions []model.ToothCondition) odontogram.Chart {
	marks := make([]odontogram.Mark, 0, len(conditions))
	for _, c := range conditions {
		marks = append(marks, c.Mark())
	}
	return odontogram.BuildChart(marks)
}

// OdontogramDetail is a version with everything needed to display it.
type OdontogramDetail struct {
	Version    model.Odontogram       `json:"version"`
	Conditions []model.ToothCondition `json:"conditions"`
	Chart      odontogram.Chart       `json:"chart"`
	ReadOnly   bool                   `json:"read_only"`
}

// Detail loads a version, its conditions, its chart and whether it is
// read-only history.
func (s *Odontograms) Detail(ctx context.Context, scope gateway.Scope, odontogramID string) (OdontogramDetail, error) {
	version, err := gateway.Get[model.Odontogram](ctx, s.d.DB, scope, odontogramID)
	if err != nil {
		return OdontogramDetail{}, s.d.report("get odontogram", scope, err)
	}
	conditions, err := s.ListConditions(ctx, scope, odontogramID)
	if err != nil {
		return OdontogramDetail{}, err
	}
	current, err := s.IsCurrent(ctx, scope, version)
	if err != nil {
		return OdontogramDetail{}, err
	}
	return OdontogramDetail{
		Version:    version,
		Conditions: conditions,
		Chart:      chartOf(conditions),
		ReadOnly:   !current,
	}, nil
}
