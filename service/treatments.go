package service

import (
	"context"
	"encoding/json"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"gorm.io/datatypes"
)

const entityTreatments = "treatments"

// TreatmentFilter narrows the treatment list.
type TreatmentFilter struct {
	PatientID string
	DentistID string
	Status    string
	From      string
	To        string
}

func (f TreatmentFilter) gateway() gateway.Filter {
	out := gateway.Filter{Equals: map[string]interface{}{}, Order: "treatment_date DESC, created_date DESC"}
	if f.PatientID != "" {
		out.Equals["patient_id"] = f.PatientID
	}
	if f.DentistID != "" {
		out.Equals["dentist_id"] = f.DentistID
	}
	if f.Status != "" {
		out.Equals["treatment_status"] = f.Status
	}
	if f.From != "" || f.To != "" {
		out.Ranges = []gateway.Range{{Column: "treatment_date", From: f.From, To: f.To}}
	}
	return out
}

type Treatments struct {
	d       Deps
	catalog *Catalog
}

func (s *Treatments) List(ctx context.Context, scope gateway.Scope, pr gateway.PageRequest, f TreatmentFilter) (gateway.Page[model.Treatment], error) {
	pr = s.d.page(pr)
	page, err := cachedPage(s.d.Lists, scope, entityTreatments, []interface{}{f, pr}, func() (gateway.Page[model.Treatment], error) {
		return gateway.Query[model.Treatment](ctx, s.d.DB, scope, f.gateway(), pr)
	})
	return page, s.d.report("list treatments", scope, err)
}

func (s *Treatments) Get(ctx context.Context, scope gateway.Scope, id string) (model.Treatment, error) {
	t, err := gateway.Get[model.Treatment](ctx, s.d.DB, scope, id)
	return t, s.d.report("get treatment", scope, err)
}

func materialsJSON(m []string) datatypes.JSON {
	if m == nil {
		return nil
	}
	b, _ := json.Marshal(m)
	return datatypes.JSON(b)
}

func (s *Treatments) Create(ctx context.Context, scope gateway.Scope, req model.TreatmentRequest) (model.Treatment, error) {
	if err := validate(&req); err != nil {
		return model.Treatment{}, err
	}
	if err := mustExist[model.Patient](ctx, s.d.DB, scope, req.PatientID, "patient_id"); err != nil {
		return model.Treatment{}, s.d.report("create treatment", scope, err)
	}
	if err := mustExist[model.Dentist](ctx, s.d.DB, scope, req.DentistID, "dentist_id"); err != nil {
		return model.Treatment{}, s.d.report("create treatment", scope, err)
	}

	t := model.Treatment{
		PatientID:       req.PatientID,
		DentistID:       req.DentistID,
		CatalogID:       req.CatalogID,
		ToothNumber:     req.ToothNumber,
		Surface:         req.Surface,
		Procedure:       req.Procedure,
		Cost:            req.Cost,
		TreatmentDate:   req.TreatmentDate,
		ClinicalStatus:  model.TreatmentStatus(req.ClinicalStatus),
		DurationMinutes: req.DurationMinutes,
		Materials:       materialsJSON(req.Materials),
		Complications:   req.Complications,
		FollowUpDate:    req.FollowUpDate,
		Notes:           req.Notes,
	}

	if req.CatalogID != nil && *req.CatalogID != "" {
		item, err := gateway.Get[model.TreatmentCatalog](ctx, s.d.DB, scope, *req.CatalogID)
		if err != nil {
			if gateway.IsNotFound(err) {
				return model.Treatment{}, fieldError("catalog_id", "does not exist")
			}
			return model.Treatment{}, s.d.report("create treatment", scope, err)
		}
		if t.Procedure == "" {
			t.Procedure = item.Name
		}
		if t.Cost == 0 {
			if t.Cost, err = s.catalog.CostOn(ctx, scope, item, t.TreatmentDate); err != nil {
				return model.Treatment{}, err
			}
		}
		if t.DurationMinutes == nil && item.DefaultDuration > 0 {
			d := item.DefaultDuration
			t.DurationMinutes = &d
		}
	} else {
		t.CatalogID = nil
	}

	if err := gateway.Insert(ctx, s.d.DB, scope, &t); err != nil {
		return model.Treatment{}, s.d.report("create treatment", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityTreatments)
	return t, nil
}

func (s *Treatments) Update(ctx context.Context, scope gateway.Scope, id string, req model.UpdateTreatmentRequest) (model.Treatment, error) {
	if err := validate(&req); err != nil {
		return model.Treatment{}, err
	}
	patch := patchFrom(&req)
	if req.Materials != nil {
		patch["materials"] = materialsJSON(req.Materials)
	}
	if len(patch) == 0 {
		return s.Get(ctx, scope, id)
	}
	if req.DentistID != nil {
		if err := mustExist[model.Dentist](ctx, s.d.DB, scope, *req.DentistID, "dentist_id"); err != nil {
			return model.Treatment{}, s.d.report("update treatment", scope, err)
		}
	}
	t, err := gateway.Update[model.Treatment](ctx, s.d.DB, scope, id, patch)
	if err != nil {
		return model.Treatment{}, s.d.report("update treatment", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityTreatments)
	return t, nil
}

// Duplicate copies a treatment into a new planned one dated today, e.g. to
// repeat a session.
func (s *Treatments) Duplicate(ctx context.Context, scope gateway.Scope, id string) (model.Treatment, error) {
	src, err := gateway.Get[model.Treatment](ctx, s.d.DB, scope, id)
	if err != nil {
		return model.Treatment{}, s.d.report("duplicate treatment", scope, err)
	}
	dup := src
	dup.Base = model.Base{}
	dup.Tenant = model.Tenant{}
	dup.ClinicalStatus = model.TreatmentPlanned
	dup.TreatmentDate = s.d.now().Format(dateLayout)
	dup.FollowUpDate = nil
	dup.Complications = ""
	if err := gateway.Insert(ctx, s.d.DB, scope, &dup); err != nil {
		return model.Treatment{}, s.d.report("duplicate treatment", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityTreatments)
	return dup, nil
}

// Delete deactivates the treatment and returns the remaining active total.
func (s *Treatments) Delete(ctx context.Context, scope gateway.Scope, id string) (int64, error) {
	if err := gateway.SoftDelete[model.Treatment](ctx, s.d.DB, scope, id); err != nil {
		return 0, s.d.report("delete treatment", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityTreatments)
	total, err := gateway.Count[model.Treatment](ctx, s.d.DB, scope, gateway.Filter{})
	return total, s.d.report("count treatments", scope, err)
}
