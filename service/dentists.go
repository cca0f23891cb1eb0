package service

import (
	"context"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/util"
)

const entityDentists = "dentists"

type Dentists struct {
	d Deps
}

func (s *Dentists) List(ctx context.Context, scope gateway.Scope, pr gateway.PageRequest, keyword string) (gateway.Page[model.Dentist], error) {
	pr = s.d.page(pr)
	page, err := cachedPage(s.d.Lists, scope, entityDentists, []interface{}{keyword, pr}, func() (gateway.Page[model.Dentist], error) {
		return gateway.Query[model.Dentist](ctx, s.d.DB, scope, gateway.Filter{
			Keyword:        keyword,
			KeywordColumns: []string{"full_name", "specialty", "email"},
			Order:          "full_name ASC, id ASC",
		}, pr)
	})
	return page, s.d.report("list dentists", scope, err)
}

// All returns every active dentist, for pickers and the calendar.
func (s *Dentists) All(ctx context.Context, scope gateway.Scope) ([]model.Dentist, error) {
	rows, err := gateway.All[model.Dentist](ctx, s.d.DB, scope, gateway.Filter{Order: "full_name ASC, id ASC"})
	return rows, s.d.report("list dentists", scope, err)
}

func (s *Dentists) Get(ctx context.Context, scope gateway.Scope, id string) (model.Dentist, error) {
	d, err := gateway.Get[model.Dentist](ctx, s.d.DB, scope, id)
	return d, s.d.report("get dentist", scope, err)
}

func (s *Dentists) Create(ctx context.Context, scope gateway.Scope, req model.CreateDentistRequest) (model.Dentist, error) {
	req.FullName = util.NormalizeName(req.FullName)
	if err := validate(&req); err != nil {
		return model.Dentist{}, err
	}
	d := model.Dentist{
		FullName:      req.FullName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Specialty:     req.Specialty,
		LicenseNumber: req.LicenseNumber,
		Color:         req.Color,
		WorkingDays:   req.WorkingDays,
	}
	if err := gateway.Insert(ctx, s.d.DB, scope, &d); err != nil {
		return model.Dentist{}, s.d.report("create dentist", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityDentists)
	return d, nil
}

func (s *Dentists) Update(ctx context.Context, scope gateway.Scope, id string, req model.UpdateDentistRequest) (model.Dentist, error) {
	if req.FullName != nil {
		name := util.NormalizeName(*req.FullName)
		if name == "" {
			return model.Dentist{}, fieldError("full_name", "is required")
		}
		req.FullName = &name
	}
	if err := validate(&req); err != nil {
		return model.Dentist{}, err
	}
	patch := patchFrom(&req)
	if len(patch) == 0 {
		return s.Get(ctx, scope, id)
	}
	d, err := gateway.Update[model.Dentist](ctx, s.d.DB, scope, id, patch)
	if err != nil {
		return model.Dentist{}, s.d.report("update dentist", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityDentists)
	return d, nil
}

// Delete deactivates the dentist and returns the remaining active total.
func (s *Dentists) Delete(ctx context.Context, scope gateway.Scope, id string) (int64, error) {
	if err := gateway.SoftDelete[model.Dentist](ctx, s.d.DB, scope, id); err != nil {
		return 0, s.d.report("delete dentist", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityDentists)
	total, err := gateway.Count[model.Dentist](ctx, s.d.DB, scope, gateway.Filter{})
	return total, s.d.report("count dentists", scope, err)
}
