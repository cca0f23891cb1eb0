package service

import (
	"context"

	"github.com/ariebrainware/basis-data-dental/gateway"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/schedule"
	"github.com/ariebrainware/basis-data-dental/util"
)

const entityAppointments = "appointments"

// AppointmentFilter narrows the appointment list. Date wins over From/To.
type AppointmentFilter struct {
	Date      string
	From      string
	To        string
	DentistID string
	PatientID string
	Status    string
}

func (f AppointmentFilter) gateway() gateway.Filter {
	out := gateway.Filter{Equals: map[string]interface{}{}, Order: "date ASC, time ASC, id ASC"}
	switch {
	case f.Date != "":
		out.Equals["date"] = f.Date
	case f.From != "" || f.To != "":
		out.Ranges = []gateway.Range{{Column: "date", From: f.From, To: f.To}}
	}
	if f.DentistID != "" {
		out.Equals["dentist_id"] = f.DentistID
	}
	if f.PatientID != "" {
		out.Equals["patient_id"] = f.PatientID
	}
	if f.Status != "" {
		out.Equals["status_appointments"] = f.Status
	}
	return out
}

type Appointments struct {
	d Deps
}

func (s *Appointments) List(ctx context.Context, scope gateway.Scope, pr gateway.PageRequest, f AppointmentFilter) (gateway.Page[model.Appointment], error) {
	pr = s.d.page(pr)
	page, err := cachedPage(s.d.Lists, scope, entityAppointments, []interface{}{f, pr}, func() (gateway.Page[model.Appointment], error) {
		return gateway.Query[model.Appointment](ctx, s.d.DB, scope, f.gateway(), pr)
	})
	return page, s.d.report("list appointments", scope, err)
}

func (s *Appointments) Get(ctx context.Context, scope gateway.Scope, id string) (model.Appointment, error) {
	a, err := gateway.Get[model.Appointment](ctx, s.d.DB, scope, id)
	return a, s.d.report("get appointment", scope, err)
}

// resolveParties checks the referenced dentist and patient belong to the
// clinic and fills the patient's name and phone when they were left empty.
func (s *Appointments) resolveParties(ctx context.Context, scope gateway.Scope, a *model.Appointment) error {
	if a.DentistID != "" {
		if _, err := gateway.Get[model.Dentist](ctx, s.d.DB, scope, a.DentistID); err != nil {
			if gateway.IsNotFound(err) {
				return fieldError("dentist_id", "does not exist")
			}
			return err
		}
	}
	if a.PatientID == nil || *a.PatientID == "" {
		a.PatientID = nil
		return nil
	}
	p, err := gateway.Get[model.Patient](ctx, s.d.DB, scope, *a.PatientID)
	if err != nil {
		if gateway.IsNotFound(err) {
			return fieldError("patient_id", "does not exist")
		}
		return err
	}
	if a.PatientName == "" {
		a.PatientName = p.FullName
	}
	if a.PatientPhone == "" {
		a.PatientPhone = p.PhoneNumber
	}
	return nil
}

// Create books an appointment. Overlapping bookings are accepted; the
// calendar reports them.
func (s *Appointments) Create(ctx context.Context, scope gateway.Scope, req model.CreateAppointmentRequest) (model.Appointment, error) {
	req.PatientName = util.NormalizeName(req.PatientName)
	if req.PatientID != nil && *req.PatientID == "" {
		req.PatientID = nil
	}
	if err := validate(&req); err != nil {
		return model.Appointment{}, err
	}
	end, err := schedule.EndOf(req.Time, req.Duration)
	if err != nil {
		return model.Appointment{}, fieldError("time", "must be a time formatted HH:MM")
	}
	a := model.Appointment{
		PatientID:         req.PatientID,
		PatientName:       req.PatientName,
		PatientPhone:      req.PatientPhone,
		DentistID:         req.DentistID,
		Date:              req.Date,
		Time:              req.Time,
		Duration:          req.Duration,
		EndTime:           end,
		Procedure:         req.Procedure,
		AppointmentStatus: model.AppointmentStatus(req.AppointmentStatus),
		Notes:             req.Notes,
	}
	if err := s.resolveParties(ctx, scope, &a); err != nil {
		return model.Appointment{}, s.d.report("create appointment", scope, err)
	}
	if err := gateway.Insert(ctx, s.d.DB, scope, &a); err != nil {
		return model.Appointment{}, s.d.report("create appointment", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityAppointments)
	return a, nil
}

// Update writes only the fields present in req. Functional status changes
// are unconstrained.
func (s *Appointments) Update(ctx context.Context, scope gateway.Scope, id string, req model.UpdateAppointmentRequest) (model.Appointment, error) {
	if err := validate(&req); err != nil {
		return model.Appointment{}, err
	}
	patch := patchFrom(&req)
	if len(patch) == 0 {
		return s.Get(ctx, scope, id)
	}
	if req.PatientID != nil && *req.PatientID == "" {
		// unlink the patient, the booking keeps its free-text name
		patch["patient_id"] = nil
	}
	if req.DentistID != nil || req.PatientID != nil {
		parties := model.Appointment{PatientName: "-", PatientPhone: "-"}
		if req.DentistID != nil {
			parties.DentistID = *req.DentistID
		}
		parties.PatientID = req.PatientID
		if err := s.resolveParties(ctx, scope, &parties); err != nil {
			return model.Appointment{}, s.d.report("update appointment", scope, err)
		}
	}
	if req.Time != nil || req.Duration != nil {
		current, err := gateway.Get[model.Appointment](ctx, s.d.DB, scope, id)
		if err != nil {
			return model.Appointment{}, s.d.report("update appointment", scope, err)
		}
		start, duration := current.Time, current.Duration
		if req.Time != nil {
			start = *req.Time
		}
		if req.Duration != nil {
			duration = *req.Duration
		}
		end, err := schedule.EndOf(start, duration)
		if err != nil {
			return model.Appointment{}, fieldError("time", "must be a time formatted HH:MM")
		}
		patch["end_time"] = end
	}
	a, err := gateway.Update[model.Appointment](ctx, s.d.DB, scope, id, patch)
	if err != nil {
		return model.Appointment{}, s.d.report("update appointment", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityAppointments)
	return a, nil
}

// Cancel sets the functional status to cancelled. The row stays active.
func (s *Appointments) Cancel(ctx context.Context, scope gateway.Scope, id string) (model.Appointment, error) {
	a, err := gateway.Update[model.Appointment](ctx, s.d.DB, scope, id, map[string]interface{}{
		"status_appointments": model.AppointmentCancelled,
	})
	if err != nil {
		return model.Appointment{}, s.d.report("cancel appointment", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityAppointments)
	return a, nil
}

// Delete deactivates the appointment and returns the remaining active total.
func (s *Appointments) Delete(ctx context.Context, scope gateway.Scope, id string) (int64, error) {
	if err := gateway.SoftDelete[model.Appointment](ctx, s.d.DB, scope, id); err != nil {
		return 0, s.d.report("delete appointment", scope, err)
	}
	s.d.Lists.Invalidate(scope.ClinicID(), entityAppointments)
	total, err := gateway.Count[model.Appointment](ctx, s.d.DB, scope, gateway.Filter{})
	return total, s.d.report("count appointments", scope, err)
}

// DentistDay is one dentist's column of the calendar.
type DentistDay struct {
	DentistID   string          `json:"dentist_id"`
	DentistName string          `json:"dentist_name"`
	Color       string          `json:"color"`
	Slots       []schedule.Slot `json:"slots"`
}

// Calendar is the slot grid of one day.
type Calendar struct {
	Date        string       `json:"date"`
	SlotMinutes int          `json:"slot_minutes"`
	Dentists    []DentistDay `json:"dentists"`
}

// Calendar lays the day's appointments out per dentist. Cancelled
// appointments free their slots.
func (s *Appointments) Calendar(ctx context.Context, scope gateway.Scope, date, dentistID string) (Calendar, error) {
	if date == "" {
		date = s.d.now().Format("2006-01-02")
	} else if !validDate(date) {
		return Calendar{}, fieldError("date", "must be a date formatted YYYY-MM-DD")
	}

	var dentists []model.Dentist
	if dentistID != "" {
		d, err := gateway.Get[model.Dentist](ctx, s.d.DB, scope, dentistID)
		if err != nil {
			return Calendar{}, s.d.report("calendar", scope, err)
		}
		dentists = []model.Dentist{d}
	} else {
		all, err := gateway.All[model.Dentist](ctx, s.d.DB, scope, gateway.Filter{Order: "full_name ASC, id ASC"})
		if err != nil {
			return Calendar{}, s.d.report("calendar", scope, err)
		}
		dentists = all
	}

	appts, err := gateway.All[model.Appointment](ctx, s.d.DB, scope, AppointmentFilter{Date: date, DentistID: dentistID}.gateway())
	if err != nil {
		return Calendar{}, s.d.report("calendar", scope, err)
	}
	byDentist := map[string][]schedule.Booking{}
	for _, a := range appts {
		byDentist[a.DentistID] = append(byDentist[a.DentistID], schedule.Booking{
			ID:       a.ID,
			Time:     a.Time,
			Duration: a.Duration,
			Label:    a.PatientName,
			Released: a.AppointmentStatus == model.AppointmentCancelled,
		})
	}

	cal := Calendar{Date: date, SlotMinutes: s.d.Grid.SlotMinutes, Dentists: make([]DentistDay, 0, len(dentists))}
	for _, d := range dentists {
		cal.Dentists = append(cal.Dentists, DentistDay{
			DentistID:   d.ID,
			DentistName: d.FullName,
			Color:       d.Color,
			Slots:       s.d.Grid.Day(byDentist[d.ID]),
		})
	}
	return cal, nil
}
