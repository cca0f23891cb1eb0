package service

import (
	"context"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/util"
)

const entityCatalog = "catalog"

type Catalog struct {
	d Deps
}

func (s *Catalog) List(ctx context.Context, scope gateway.Scope, pr gateway.PageRequest, keyword string) (gateway.Page[model.TreatmentCatalog], error) {
	pr = s.d.page(pr)
	page, err := cachedPage(s.d.Lists, scope, entityCatalog, []interface{}{keyword, pr}, func() (gateway.Page[model.TreatmentCatalog], error) {
		return gateway.Query[model.TreatmentCatalog](ctx, s.d.DB, scope, gateway.Filter{
			Keyword:        keyword,
			KeywordColumns: []string{"name", "category"},
			Order:          "name ASC, id ASC",
		}, pr)
	})
	return page, s.d.report("list catalog", scope, err)
}

func (s *Catalog) Get(ctx context.Context, scope gateway.Scope, id string) (model.TreatmentCatalog, error) {
	item, err := gateway.Get[model.TreatmentCatalog](ctx, s.d.DB, scope, id)
	return item, s.d.report("get catalog item", scope, err)
}

func (s *Catalog) Create(ctx context.Context, scope gateway.Scope, req model.CatalogRequest) (model.TreatmentCatalog, error) {
	req.Name = util.NormalizeName(req.Name)
	if err := validate(&req); err != nil {
		return model.TreatmentCatalog{}, err
	}
	item := model.TreatmentCatalog{
		Name:            req.Name,
		Category:        req.Category,
		DefaultCost:     req.DefaultCost,
		DefaultDuration: req.DefaultDuration,
	}
	if err := gateway.Insert(ctx, s.d.DB, scope, &item); err != nil {
		return model.TreatmentCatalog{}, s.d.report("create catalog item", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityCatalog)
	return item, nil
}

// Update patches the item. A cost together with an effective date records a
// price override from that date instead of touching the default cost.
func (s *Catalog) Update(ctx context.Context, scope gateway.Scope, id string, req model.UpdateCatalogRequest) (model.TreatmentCatalog, error) {
	if err := validate(&req); err != nil {
		return model.TreatmentCatalog{}, err
	}
	if req.Cost != nil && (req.EffectiveFrom == nil || *req.EffectiveFrom == "") {
		return model.TreatmentCatalog{}, fieldError("effective_from", "is required with cost")
	}
	patch := patchFrom(&req)
	delete(patch, "cost")
	delete(patch, "effective_from")
	if name, ok := patch["name"].(string); ok {
		patch["name"] = util.NormalizeName(name)
	}

	var item model.TreatmentCatalog
	var err error
	if len(patch) > 0 {
		item, err = gateway.Update[model.TreatmentCatalog](ctx, s.d.DB, scope, id, patch)
	} else {
		item, err = gateway.Get[model.TreatmentCatalog](ctx, s.d.DB, scope, id)
	}
	if err != nil {
		return model.TreatmentCatalog{}, s.d.report("update catalog item", scope, err)
	}

	if req.Cost != nil {
		override := model.TreatmentCost{CatalogID: item.ID, Cost: *req.Cost, EffectiveFrom: *req.EffectiveFrom}
		if err := gateway.Insert(ctx, s.d.DB, scope, &override); err != nil {
			return model.TreatmentCatalog{}, s.d.report("record catalog cost", scope, err)
		}
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityCatalog)
	return item, nil
}

// Delete deactivates the item and returns the remaining active total.
func (s *Catalog) Delete(ctx context.Context, scope gateway.Scope, id string) (int64, error) {
	if err := gateway.SoftDelete[model.TreatmentCatalog](ctx, s.d.DB, scope, id); err != nil {
		return 0, s.d.report("delete catalog item", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityCatalog)
	total, err := gateway.Count[model.TreatmentCatalog](ctx, s.d.DB, scope, gateway.Filter{})
	return total, s.d.report("count catalog", scope, err)
}

// Costs lists the price overrides of an item, newest first.
func (s *Catalog) Costs(ctx context.Context, scope gateway.Scope, catalogID string) ([]model.TreatmentCost, error) {
	rows, err := gateway.All[model.TreatmentCost](ctx, s.d.DB, scope, gateway.Filter{
		Equals: map[string]interface{}{"catalog_id": catalogID},
		Order:  "effective_from DESC, created_date DESC",
	})
	return rows, s.d.report("list catalog costs", scope, err)
}

// CostOn returns the price of an item on date: the latest override in effect,
// otherwise the default cost.
func (s *Catalog) CostOn(ctx context.Context, scope gateway.Scope, item model.TreatmentCatalog, date string) (float64, error) {
	page, err := gateway.Query[model.TreatmentCost](ctx, s.d.DB, scope, gateway.Filter{
		Equals: map[string]interface{}{"catalog_id": item.ID},
		Ranges: []gateway.Range{{Column: "effective_from", To: date}},
		Order:  "effective_from DESC, created_date DESC",
	}, gateway.PageRequest{Page: 1, PageSize: 1})
	if err != nil {
		return 0, s.d.report("catalog cost", scope, err)
	}
	if len(page.Rows) == 0 {
		return item.DefaultCost, nil
	}
	return page.Rows[0].Cost, nil
}
