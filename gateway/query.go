package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/ariebrainware/basis-data-dental/model"
	"gorm.io/gorm"
)

// DefaultPageSize is used when the caller does not ask for one.
const DefaultPageSize = 20

// PageRequest selects one page of a list, 1-based.
type PageRequest struct {
	Page     int
	PageSize int
}

func (p PageRequest) normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Page is one page of rows plus the size of the whole filtered set.
type Page[T any] struct {
	Rows       []T   `json:"rows"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// TotalPages derives the page count for total rows.
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// Range restricts Column to [From, To]; either bound may be empty.
type Range struct {
	Column string
	From   string
	To     string
}

// Filter narrows a query. Column names come from code, never from requests.
type Filter struct {
	Equals          map[string]interface{}
	Keyword         string
	KeywordColumns  []string
	Ranges          []Range
	Order           string
	IncludeInactive bool
}

func tableOf[T any](db *gorm.DB) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil || stmt.Schema == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return stmt.Schema.Table
}

func scoped[T any](ctx context.Context, db *gorm.DB, scope Scope, f Filter) *gorm.DB {
	q := db.WithContext(ctx).Model(new(T)).Where("clinic_id = ?", scope.clinicID)
	if !f.IncludeInactive {
		q = q.Where("status = ?", model.StatusActive)
	}
	if len(f.Equals) > 0 {
		q = q.Where(f.Equals)
	}
	if f.Keyword != "" && len(f.KeywordColumns) > 0 {
		kw := "%" + f.Keyword + "%"
		or := db.Where(fmt.Sprintf("%s LIKE ?", f.KeywordColumns[0]), kw)
		for _, col := range f.KeywordColumns[1:] {
			or = or.Or(fmt.Sprintf("%s LIKE ?", col), kw)
		}
		q = q.Where(or)
	}
	for _, r := range f.Ranges {
		if r.From != "" {
			q = q.Where(fmt.Sprintf("%s >= ?", r.Column), r.From)
		}
		if r.To != "" {
			q = q.Where(fmt.Sprintf("%s <= ?", r.Column), r.To)
		}
	}
	return q
}

// Query returns one page of the clinic's rows matching f.
func Query[T any](ctx context.Context, db *gorm.DB, scope Scope, f Filter, pr PageRequest) (Page[T], error) {
	if err := scope.check(); err != nil {
		return Page[T]{}, err
	}
	pr = pr.normalize()
	table := tableOf[T](db)

	var total int64
	if err := scoped[T](ctx, db, scope, f).Count(&total).Error; err != nil {
		return Page[T]{}, wrap("count", table, err)
	}

	order := f.Order
	if order == "" {
		order = "created_date DESC"
	}
	rows := []T{}
	err := scoped[T](ctx, db, scope, f).
		Order(order).
		Limit(pr.PageSize).
		Offset((pr.Page - 1) * pr.PageSize).
		Find(&rows).Error
	if err != nil {
		return Page[T]{}, wrap("select", table, err)
	}

	return Page[T]{
		Rows:       rows,
		Total:      total,
		Page:       pr.Page,
		PageSize:   pr.PageSize,
		TotalPages: TotalPages(total, pr.PageSize),
	}, nil
}

// All returns every row matching f, unpaginated.
func All[T any](ctx context.Context, db *gorm.DB, scope Scope, f Filter) ([]T, error) {
	if err := scope.check(); err != nil {
		return nil, err
	}
	order := f.Order
	if order == "" {
		order = "created_date DESC"
	}
	rows := []T{}
	if err := scoped[T](ctx, db, scope, f).Order(order).Find(&rows).Error; err != nil {
		return nil, wrap("select", tableOf[T](db), err)
	}
	return rows, nil
}

// Count returns how many rows match f.
func Count[T any](ctx context.Context, db *gorm.DB, scope Scope, f Filter) (int64, error) {
	if err := scope.check(); err != nil {
		return 0, err
	}
	var n int64
	if err := scoped[T](ctx, db, scope, f).Count(&n).Error; err != nil {
		return 0, wrap("count", tableOf[T](db), err)
	}
	return n, nil
}

// Get loads one active row of the clinic by id.
func Get[T any](ctx context.Context, db *gorm.DB, scope Scope, id string) (T, error) {
	var row T
	if err := scope.check(); err != nil {
		return row, err
	}
	err := scoped[T](ctx, db, scope, Filter{}).Where("id = ?", id).First(&row).Error
	return row, wrap("select", tableOf[T](db), err)
}

// Row is satisfied by pointers to tenant models.
type Row[T any] interface {
	*T
	model.Audited
	model.Scoped
}

// Insert stamps the clinic, the active flag and the creator audit columns,
// then persists row.
func Insert[T any, PT Row[T]](ctx context.Context, db *gorm.DB, scope Scope, row PT) error {
	if err := scope.check(); err != nil {
		return err
	}
	tenant := row.TenantPart()
	tenant.ClinicID = scope.clinicID
	tenant.Status = model.StatusActive

	audit := row.AuditBase()
	audit.CreatedByUser = scope.userID
	audit.CreatedByIP = scope.ip
	audit.CreatedDate = time.Now()

	return wrap("insert", tableOf[T](db), db.WithContext(ctx).Create(row).Error)
}

// Update writes only the keys of patch, plus the updater audit columns, and
// returns the row as stored afterwards.
func Update[T any, PT Row[T]](ctx context.Context, db *gorm.DB, scope Scope, id string, patch map[string]interface{}) (T, error) {
	var out T
	if err := scope.check(); err != nil {
		return out, err
	}
	table := tableOf[T](db)

	values := make(map[string]interface{}, len(patch)+3)
	for k, v := range patch {
		values[k] = v
	}
	values["updated_by_user"] = scope.userID
	values["updated_by_ip"] = scope.ip
	values["updated_date"] = time.Now()

	res := scoped[T](ctx, db, scope, Filter{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return out, wrap("update", table, res.Error)
	}
	if res.RowsAffected == 0 {
		return out, ErrNotFound
	}

	// the status may just have been flipped, so reload without the active filter
	err := scoped[T](ctx, db, scope, Filter{IncludeInactive: true}).Where("id = ?", id).First(&out).Error
	return out, wrap("select", table, err)
}

// SoftDelete flips the logical status to inactive. The row stays in the table.
func SoftDelete[T any, PT Row[T]](ctx context.Context, db *gorm.DB, scope Scope, id string) error {
	_, err := Update[T, PT](ctx, db, scope, id, map[string]interface{}{"status": model.StatusInactive})
	return err
}

// HardDelete physically removes a row of the clinic.
func HardDelete[T any](ctx context.Context, db *gorm.DB, scope Scope, id string) error {
	if err := scope.check(); err != nil {
		return err
	}
	res := db.WithContext(ctx).Where("id = ? AND clinic_id = ?", id, scope.clinicID).Delete(new(T))
	if res.Error != nil {
		return wrap("delete", tableOf[T](db), res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Lookup finds one row outside any tenant scope, used while resolving the
// scope itself. A missing row is reported as found=false with a nil error.
func Lookup[T any](ctx context.Context, db *gorm.DB, query string, args ...interface{}) (T, bool, error) {
	var row T
	err := db.WithContext(ctx).Where(query, args...).First(&row).Error
	if err == nil {
		return row, true, nil
	}
	err = wrap("select", tableOf[T](db), err)
	if IsNotFound(err) {
		return row, false, nil
	}
	return row, false, err
}

// Sum adds up column over the rows matching f.
func Sum[T any](ctx context.Context, db *gorm.DB, scope Scope, f Filter, column string) (float64, error) {
	if err := scope.check(); err != nil {
		return 0, err
	}
	var total float64
	row := scoped[T](ctx, db, scope, f).Select(fmt.Sprintf("COALESCE(SUM(%s), 0)", column)).Row()
	if err := row.Scan(&total); err != nil {
		return 0, wrap("sum", tableOf[T](db), err)
	}
	return total, nil
}
