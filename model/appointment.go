package model

// AppointmentStatus is the functional workflow status of an appointment. It is
// independent from the logical Status flag and transitions are unconstrained.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment is a booking of a dentist for a contiguous span of time.
// @Description Appointment information
type Appointment struct {
	Base
	Tenant
	PatientID         *string           `json:"patient_id,omitempty" gorm:"column:patient_id;type:varchar(36);index"`
	PatientName       string            `json:"patient_name" gorm:"column:patient_name" example:"Walk-in"`
	PatientPhone      string            `json:"patient_phone" gorm:"column:patient_phone;type:varchar(20)"`
	DentistID         string            `json:"dentist_id" gorm:"column:dentist_id;type:varchar(36);not null;index"`
	Date              string            `json:"date" gorm:"column:date;type:varchar(10);not null;index" example:"2026-10-16"`
	Time              string            `json:"time" gorm:"column:time;type:varchar(5);not null" example:"09:00"`
	Duration          int               `json:"duration" gorm:"not null;default:30" example:"60"`
	EndTime           string            `json:"end_time" gorm:"column:end_time;type:varchar(5)" example:"10:00"`
	Procedure         string            `json:"procedure" example:"Cleaning"`
	AppointmentStatus AppointmentStatus `json:"status_appointments" gorm:"column:status_appointments;type:varchar(16);not null;default:'scheduled'"`
	Notes             string            `json:"notes" gorm:"type:text"`
}

// CreateAppointmentRequest is the scheduling form.
type CreateAppointmentRequest struct {
	PatientID         *string `json:"patient_id" validate:"omitempty,ref"`
	PatientName       string  `json:"patient_name" validate:"required_without=PatientID,max=191"`
	PatientPhone      string  `json:"patient_phone" validate:"phone"`
	DentistID         string  `json:"dentist_id" validate:"required,uuid"`
	Date              string  `json:"date" validate:"required,date"`
	Time              string  `json:"time" validate:"required,hhmm"`
	Duration          int     `json:"duration" default:"30" validate:"min=15,max=240"`
	Procedure         string  `json:"procedure" validate:"max=191"`
	AppointmentStatus string  `json:"status_appointments" default:"scheduled" validate:"oneof=scheduled confirmed completed cancelled"`
	Notes             string  `json:"notes"`
}

// UpdateAppointmentRequest carries a partial patch.
type UpdateAppointmentRequest struct {
	PatientID         *string `json:"patient_id,omitempty" validate:"omitempty,ref"`
	PatientName       *string `json:"patient_name,omitempty" validate:"omitempty,max=191"`
	PatientPhone      *string `json:"patient_phone,omitempty" validate:"omitempty,phone"`
	DentistID         *string `json:"dentist_id,omitempty" validate:"omitempty,uuid"`
	Date              *string `json:"date,omitempty" validate:"omitempty,date"`
	Time              *string `json:"time,omitempty" validate:"omitempty,hhmm"`
	Duration          *int    `json:"duration,omitempty" validate:"omitempty,min=15,max=240"`
	Procedure         *string `json:"procedure,omitempty" validate:"omitempty,max=191"`
	AppointmentStatus *string `json:"status_appointments,omitempty" validate:"omitempty,oneof=scheduled confirmed completed cancelled"`
	Notes             *string `json:"notes,omitempty"`
}
