package service

import (
	"context"
	"sync"
	"time"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/prometheus/client_golang/prometheus"
)

// systemUser signs the scope used by the background refresh.
const systemUser = "system"

// Summary is the dashboard of one clinic.
type Summary struct {
	ClinicID           string           `json:"clinic_id"`
	ActivePatients     int64            `json:"active_patients"`
	ActiveDentists     int64            `json:"active_dentists"`
	TodayAppointments  int64            `json:"today_appointments"`
	AppointmentsByStat map[string]int64 `json:"appointments_by_status"`
	PendingTreatments  int64            `json:"pending_treatments"`
	MonthRevenue       float64          `json:"month_revenue"`
	GeneratedAt        time.Time        `json:"generated_at"`
}

// Dashboard computes clinic summaries and keeps the latest ones in memory and
// in Prometheus gauges.
type Dashboard struct {
	d Deps

	mu        sync.RWMutex
	snapshots map[string]Summary

	patients     *prometheus.GaugeVec
	dentists     *prometheus.GaugeVec
	appointments *prometheus.GaugeVec
	pending      *prometheus.GaugeVec
	revenue      *prometheus.GaugeVec
}

func NewDashboard(d Deps) *Dashboard {
	dash := &Dashboard{
		d:         d,
		snapshots: map[string]Summary{},
		patients: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dental", Name: "active_patients",
			Help: "Active patients per clinic.",
		}, []string{"clinic"}),
		dentists: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dental", Name: "active_dentists",
			Help: "Active dentists per clinic.",
		}, []string{"clinic"}),
		appointments: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dental", Name: "today_appointments",
			Help: "Appointments booked for today per clinic and status.",
		}, []string{"clinic", "status"}),
		pending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dental", Name: "pending_treatments",
			Help: "Planned or in-progress treatments per clinic.",
		}, []string{"clinic"}),
		revenue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dental", Name: "month_revenue",
			Help: "Revenue of completed treatments this month per clinic.",
		}, []string{"clinic"}),
	}
	if d.Metrics != nil {
		for _, c := range []prometheus.Collector{dash.patients, dash.dentists, dash.appointments, dash.pending, dash.revenue} {
			if err := d.Metrics.Register(c); err != nil {
				d.logger().Warn().Err(err).Msg("dashboard gauge not registered")
			}
		}
	}
	return dash
}

var appointmentStatuses = []model.AppointmentStatus{
	model.AppointmentScheduled,
	model.AppointmentConfirmed,
	model.AppointmentCompleted,
	model.AppointmentCancelled,
}

// Summary computes the dashboard of the scope's clinic.
func (s *Dashboard) Summary(ctx context.Context, scope gateway.Scope) (Summary, error) {
	now := s.d.now()
	today := now.Format(dateLayout)
	out := Summary{
		ClinicID:           scope.ClinicID(),
		AppointmentsByStat: map[string]int64{},
		GeneratedAt:        now,
	}

	var err error
	if out.ActivePatients, err = gateway.Count[model.Patient](ctx, s.d.DB, scope, gateway.Filter{}); err != nil {
		return out, s.d.report("dashboard patients", scope, err)
	}
	if out.ActiveDentists, err = gateway.Count[model.Dentist](ctx, s.d.DB, scope, gateway.Filter{}); err != nil {
		return out, s.d.report("dashboard dentists", scope, err)
	}
	for _, st := range appointmentStatuses {
		n, err := gateway.Count[model.Appointment](ctx, s.d.DB, scope, gateway.Filter{
			Equals: map[string]interface{}{"date": today, "status_appointments": string(st)},
		})
		if err != nil {
			return out, s.d.report("dashboard appointments", scope, err)
		}
		out.AppointmentsByStat[string(st)] = n
		out.TodayAppointments += n
	}

	out.PendingTreatments, err = gateway.Count[model.Treatment](ctx, s.d.DB, scope, gateway.Filter{
		Equals: map[string]interface{}{"treatment_status": []string{
			string(model.TreatmentPlanned), string(model.TreatmentInProgress),
		}},
	})
	if err != nil {
		return out, s.d.report("dashboard treatments", scope, err)
	}

	first, last := monthBounds(now)
	out.MonthRevenue, err = gateway.Sum[model.Treatment](ctx, s.d.DB, scope, gateway.Filter{
		Equals: map[string]interface{}{"treatment_status": string(model.TreatmentCompleted)},
		Ranges: []gateway.Range{{Column: "treatment_date", From: first, To: last}},
	}, "cost")
	if err != nil {
		return out, s.d.report("dashboard revenue", scope, err)
	}
	return out, nil
}

// Refresh recomputes the summary of every active clinic.
func (s *Dashboard) Refresh(ctx context.Context) error {
	var clinics []model.Clinic
	if err := s.d.DB.WithContext(ctx).Where("status = ?", model.StatusActive).Find(&clinics).Error; err != nil {
		s.d.logger().Error().Err(err).Msg("dashboard: listing clinics failed")
		return err
	}
	for _, c := range clinics {
		scope, err := gateway.NewScope(c.ID, systemUser, gateway.UnknownIP)
		if err != nil {
			continue
		}
		sum, err := s.Summary(ctx, scope)
		if err != nil {
			continue
		}
		s.store(sum)
	}
	return nil
}

func (s *Dashboard) store(sum Summary) {
	s.mu.Lock()
	s.snapshots[sum.ClinicID] = sum
	s.mu.Unlock()

	s.patients.WithLabelValues(sum.ClinicID).Set(float64(sum.ActivePatients))
	s.dentists.WithLabelValues(sum.ClinicID).Set(float64(sum.ActiveDentists))
	// every known status is written so a count that fell to zero is reported
	// as zero rather than keeping its last value
	s.appointments.DeletePartialMatch(prometheus.Labels{"clinic": sum.ClinicID})
	for _, st := range appointmentStatuses {
		s.appointments.WithLabelValues(sum.ClinicID, string(st)).Set(float64(sum.AppointmentsByStat[string(st)]))
	}
	s.pending.WithLabelValues(sum.ClinicID).Set(float64(sum.PendingTreatments))
	s.revenue.WithLabelValues(sum.ClinicID).Set(sum.MonthRevenue)
}

// Snapshot returns the last refreshed summary of a clinic.
func (s *Dashboard) Snapshot(clinicID string) (Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum, ok := s.snapshots[clinicID]
	return sum, ok
}

// Run refreshes the dashboards every interval until ctx is done.
func (s *Dashboard) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	_ = s.Refresh(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Refresh(ctx)
		}
	}
}
