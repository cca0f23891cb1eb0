package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/util"
)

const entityPatients = "patients"

// AgeOn returns the age in whole years on the given day of someone born on
// birth (YYYY-MM-DD). The birthday counts once its month and day are reached.
func AgeOn(birth string, on time.Time) (int, error) {
	b, err := time.Parse("2006-01-02", birth)
	if err != nil {
		return 0, fmt.Errorf("birth date %q: %w", birth, err)
	}
	age := on.Year() - b.Year()
	if on.Month() < b.Month() || (on.Month() == b.Month() && on.Day() < b.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age, nil
}

// PatientFilter narrows the patient list.
type PatientFilter struct {
	Keyword string
	Gender  string
}

type Patients struct {
	d Deps
}

func (s *Patients) List(ctx context.Context, scope gateway.Scope, pr gateway.PageRequest, f PatientFilter) (gateway.Page[model.Patient], error) {
	pr = s.d.page(pr)
	page, err := cachedPage(s.d.Lists, scope, entityPatients, []interface{}{f, pr}, func() (gateway.Page[model.Patient], error) {
		filter := gateway.Filter{
			Keyword:        f.Keyword,
			KeywordColumns: []string{"full_name", "phone_number", "email", "id_number"},
			Order:          "created_date DESC, id DESC",
		}
		if f.Gender != "" {
			filter.Equals = map[string]interface{}{"gender": f.Gender}
		}
		return gateway.Query[model.Patient](ctx, s.d.DB, scope, filter, pr)
	})
	return page, s.d.report("list patients", scope, err)
}

func (s *Patients) Get(ctx context.Context, scope gateway.Scope, id string) (model.Patient, error) {
	p, err := gateway.Get[model.Patient](ctx, s.d.DB, scope, id)
	return p, s.d.report("get patient", scope, err)
}

func (s *Patients) Create(ctx context.Context, scope gateway.Scope, req model.CreatePatientRequest) (model.Patient, error) {
	req.FullName = util.NormalizeName(req.FullName)
	if err := validate(&req); err != nil {
		return model.Patient{}, err
	}
	p := model.Patient{
		FullName:              req.FullName,
		IDNumber:              req.IDNumber,
		Gender:                req.Gender,
		Email:                 req.Email,
		PhoneNumber:           req.PhoneNumber,
		BirthDate:             req.BirthDate,
		Address:               req.Address,
		MedicalHistory:        req.MedicalHistory,
		Allergies:             req.Allergies,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}
	if p.BirthDate != "" {
		p.Age, _ = AgeOn(p.BirthDate, s.d.now())
	}
	if err := gateway.Insert(ctx, s.d.DB, scope, &p); err != nil {
		return model.Patient{}, s.d.report("create patient", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityPatients)
	return p, nil
}

// Update writes only the fields present in req. Changing the birth date
// recomputes the stored age.
func (s *Patients) Update(ctx context.Context, scope gateway.Scope, id string, req model.UpdatePatientRequest) (model.Patient, error) {
	if req.FullName != nil {
		name := util.NormalizeName(*req.FullName)
		if name == "" {
			return model.Patient{}, fieldError("full_name", "is required")
		}
		req.FullName = &name
	}
	if err := validate(&req); err != nil {
		return model.Patient{}, err
	}
	patch := patchFrom(&req)
	if req.BirthDate != nil {
		age := 0
		if *req.BirthDate != "" {
			age, _ = AgeOn(*req.BirthDate, s.d.now())
		}
		patch["age"] = age
	}
	if len(patch) == 0 {
		return s.Get(ctx, scope, id)
	}
	p, err := gateway.Update[model.Patient](ctx, s.d.DB, scope, id, patch)
	if err != nil {
		return model.Patient{}, s.d.report("update patient", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityPatients)
	return p, nil
}

// Delete deactivates the patient and returns the remaining active total.
func (s *Patients) Delete(ctx context.Context, scope gateway.Scope, id string) (int64, error) {
	if err := gateway.SoftDelete[model.Patient](ctx, s.d.DB, scope, id); err != nil {
		return 0, s.d.report("delete patient", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityPatients)
	total, err := gateway.Count[model.Patient](ctx, s.d.DB, scope, gateway.Filter{})
	return total, s.d.report("count patients", scope, err)
}
