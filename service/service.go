// Package service holds the clinic's business rules on top of the gateway:
// patients, dentists, appointments, treatments, the treatment catalog, notes,
// odontograms and the dashboard.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/schedule"
	"github.com/ariebrainware/basis-data-dental/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Deps is what every service needs.
type Deps struct {
	DB       *gorm.DB
	Lists    *ListCache
	Grid     schedule.Grid
	PageSize int
	// Metrics receives the dashboard gauges; nil disables them.
	Metrics prometheus.Registerer
	Logger  *zerolog.Logger
	Now     func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) logger() *zerolog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return &log.Logger
}

func (d Deps) page(pr gateway.PageRequest) gateway.PageRequest {
	if pr.PageSize < 1 && d.PageSize > 0 {
		pr.PageSize = d.PageSize
	}
	return pr
}

// Services bundles every service sharing one Deps.
type Services struct {
	Patients     *Patients
	Dentists     *Dentists
	Appointments *Appointments
	Treatments   *Treatments
	Catalog      *Catalog
	Notes        *Notes
	Odontograms  *Odontograms
	Clinics      *Clinics
	Dashboard    *Dashboard
}

// New wires the services.
func New(d Deps) *Services {
	if d.Grid.SlotMinutes == 0 {
		d.Grid, _ = schedule.NewGrid("08:00", "20:00", schedule.DefaultSlotMinutes)
	}
	catalog := &Catalog{d: d}
	return &Services{
		Patients:     &Patients{d: d},
		Dentists:     &Dentists{d: d},
		Appointments: &Appointments{d: d},
		Treatments:   &Treatments{d: d, catalog: catalog},
		Catalog:      catalog,
		Notes:        &Notes{d: d},
		Odontograms:  &Odontograms{d: d},
		Clinics:      &Clinics{d: d},
		Dashboard:    NewDashboard(d),
	}
}

// report logs store failures; not-found and form errors are expected and
// stay quiet.
func (d Deps) report(op string, scope gateway.Scope, err error) error {
	if err == nil || gateway.IsNotFound(err) || errors.Is(err, gateway.ErrScopeUnresolved) {
		return err
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) || errors.Is(err, ErrReadOnlyVersion) {
		return err
	}
	d.logger().Error().Err(err).
		Str("op", op).
		Str("clinic_id", scope.ClinicID()).
		Str("user_id", scope.UserID()).
		Msg("store operation failed")
	return err
}

// fieldError builds a one-field validation failure.
// mustExist reports a form error on field when the clinic has no active T
// with that id.
func mustExist[T any](ctx context.Context, db *gorm.DB, scope gateway.Scope, id, field string) error {
	if _, err := gateway.Get[T](ctx, db, scope, id); err != nil {
		if gateway.IsNotFound(err) {
			return fieldError(field, "does not exist")
		}
		return err
	}
	return nil
}

func fieldError(field, msg string) validation.Errors {
	return validation.Errors{field: msg}
}

func validate(form interface{}) error {
	if errs := validation.Validate(form); errs != nil {
		return errs
	}
	return nil
}
