package model

import (
	"gorm.io/datatypes"
)

// TreatmentStatus is the clinical status of a treatment.
type TreatmentStatus string

const (
	TreatmentPlanned    TreatmentStatus = "planned"
	TreatmentInProgress TreatmentStatus = "in_progress"
	TreatmentCompleted  TreatmentStatus = "completed"
)

// Treatment represents a procedure performed or planned for a patient
// @Description Treatment information
type Treatment struct {
	Base
	Tenant
	PatientID       string          `json:"patient_id" gorm:"column:patient_id;type:varchar(36);not null;index"`
	DentistID       string          `json:"dentist_id" gorm:"column:dentist_id;type:varchar(36);index"`
	CatalogID       *string         `json:"catalog_id,omitempty" gorm:"column:catalog_id;type:varchar(36)"`
	ToothNumber     string          `json:"tooth_number" gorm:"column:tooth_number;type:varchar(8)" example:"36"`
	Surface         string          `json:"surface" example:"occlusal"`
	Procedure       string          `json:"procedure" gorm:"not null" example:"Composite filling"`
	Cost            float64         `json:"cost" example:"80"`
	TreatmentDate   string          `json:"treatment_date" gorm:"column:treatment_date;type:varchar(10);index" example:"2026-10-16"`
	ClinicalStatus  TreatmentStatus `json:"treatment_status" gorm:"column:treatment_status;type:varchar(16);not null;default:'planned'"`
	DurationMinutes *int            `json:"duration_minutes,omitempty" gorm:"column:duration_minutes"`
	Materials       datatypes.JSON  `json:"materials,omitempty" gorm:"type:json"`
	Complications   string          `json:"complications" gorm:"type:text"`
	FollowUpDate    *string         `json:"follow_up_date,omitempty" gorm:"column:follow_up_date;type:varchar(10)"`
	Notes           string          `json:"notes" gorm:"type:text"`
}

// TreatmentRequest is the treatment form
// @Description Treatment request information
type TreatmentRequest struct {
	PatientID       string   `json:"patient_id" validate:"required,uuid"`
	DentistID       string   `json:"dentist_id" validate:"required,uuid"`
	CatalogID       *string  `json:"catalog_id" validate:"omitempty,uuid"`
	ToothNumber     string   `json:"tooth_number" default:"General" validate:"fdi"`
	Surface         string   `json:"surface" validate:"omitempty,surface"`
	Procedure       string   `json:"procedure" validate:"required_without=CatalogID,max=191"`
	Cost            float64  `json:"cost" validate:"min=0"`
	TreatmentDate   string   `json:"treatment_date" validate:"required,date"`
	ClinicalStatus  string   `json:"treatment_status" default:"planned" validate:"oneof=planned in_progress completed"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,min=1,max=600"`
	Materials       []string `json:"materials"`
	Complications   string   `json:"complications"`
	FollowUpDate    *string  `json:"follow_up_date" validate:"omitempty,date"`
	Notes           string   `json:"notes"`
}

// UpdateTreatmentRequest carries a partial patch.
type UpdateTreatmentRequest struct {
	DentistID       *string  `json:"dentist_id,omitempty" validate:"omitempty,uuid"`
	ToothNumber     *string  `json:"tooth_number,omitempty" validate:"omitempty,fdi"`
	Surface         *string  `json:"surface,omitempty" validate:"omitempty,surface"`
	Procedure       *string  `json:"procedure,omitempty" validate:"omitempty,max=191"`
	Cost            *float64 `json:"cost,omitempty" validate:"omitempty,min=0"`
	TreatmentDate   *string  `json:"treatment_date,omitempty" validate:"omitempty,date"`
	ClinicalStatus  *string  `json:"treatment_status,omitempty" validate:"omitempty,oneof=planned in_progress completed"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=600"`
	Materials       []string `json:"materials,omitempty"`
	Complications   *string  `json:"complications,omitempty"`
	FollowUpDate    *string  `json:"follow_up_date,omitempty" validate:"omitempty,date"`
	Notes           *string  `json:"notes,omitempty"`
}

// TreatmentCatalog lists the procedures a clinic offers.
type TreatmentCatalog struct {
	Base
	Tenant
	Name            string  `json:"name" gorm:"type:varchar(191);not null" example:"Root canal"`
	Category        string  `json:"category" example:"endodontics"`
	DefaultCost     float64 `json:"default_cost" gorm:"column:default_cost" example:"250"`
	DefaultDuration int     `json:"default_duration" gorm:"column:default_duration" example:"60"`
}

func (TreatmentCatalog) TableName() string { return "treatments_catalog" }

// TreatmentCost overrides the price of a catalog item from a given date.
type TreatmentCost struct {
	Base
	Tenant
	CatalogID     string  `json:"catalog_id" gorm:"column:catalog_id;type:varchar(36);not null;index"`
	Cost          float64 `json:"cost"`
	EffectiveFrom string  `json:"effective_from" gorm:"column:effective_from;type:varchar(10)" example:"2026-01-01"`
}

// CatalogRequest is the catalog item form.
type CatalogRequest struct {
	Name            string  `json:"name" validate:"required,max=191"`
	Category        string  `json:"category" validate:"max=64"`
	DefaultCost     float64 `json:"default_cost" validate:"min=0"`
	DefaultDuration int     `json:"default_duration" default:"30" validate:"min=0,max=600"`
}

// UpdateCatalogRequest carries a partial patch. Cost with EffectiveFrom
// records a price override instead of changing the default cost.
type UpdateCatalogRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,max=191"`
	Category        *string  `json:"category,omitempty" validate:"omitempty,max=64"`
	DefaultCost     *float64 `json:"default_cost,omitempty" validate:"omitempty,min=0"`
	DefaultDuration *int     `json:"default_duration,omitempty" validate:"omitempty,min=0,max=600"`
	Cost            *float64 `json:"cost,omitempty" validate:"omitempty,min=0"`
	EffectiveFrom   *string  `json:"effective_from,omitempty" validate:"omitempty,date"`
}
