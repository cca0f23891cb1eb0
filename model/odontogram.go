package model

import "github.com/ariebrainware/basis-data-dental/odontogram"

// OdontogramType tells what a chart snapshot was taken for.
type OdontogramType string

const (
	OdontogramInitial       OdontogramType = "initial"
	OdontogramEvolution     OdontogramType = "evolution"
	OdontogramTreatmentPlan OdontogramType = "treatment_plan"
)

// Odontogram is a named, dated snapshot of a patient's chart. Sequence counts
// the patient's versions in creation order; only the highest accepts edits.
// Date is what the clinician entered and may be back-dated.
type Odontogram struct {
	Base
	Tenant
	PatientID string         `json:"patient_id" gorm:"column:patient_id;type:varchar(36);not null;index"`
	Sequence  int            `json:"sequence" gorm:"column:sequence;not null;default:0;index"`
	Name      string         `json:"name" gorm:"type:varchar(191);not null" example:"Control 2026"`
	Date      string         `json:"date" gorm:"column:date;type:varchar(10);not null" example:"2026-10-16"`
	Type      OdontogramType `json:"type" gorm:"type:varchar(20);not null;default:'initial'"`
	Notes     string         `json:"notes" gorm:"type:text"`
	Complete  bool           `json:"complete" gorm:"not null;default:false"`
}

// ToothCondition is one condition on one surface of one tooth inside an
// odontogram. (odontogram_id, tooth_number, surface) is unique.
type ToothCondition struct {
	Base
	Tenant
	OdontogramID    string                     `json:"odontogram_id" gorm:"column:odontogram_id;type:varchar(36);not null;uniqueIndex:idx_tooth_condition_key"`
	ToothNumber     int                        `json:"tooth_number" gorm:"column:tooth_number;not null;uniqueIndex:idx_tooth_condition_key" example:"36"`
	Surface         odontogram.Surface         `json:"surface" gorm:"type:varchar(16);not null;uniqueIndex:idx_tooth_condition_key" example:"occlusal"`
	RangeEndTooth   *int                       `json:"range_end_tooth,omitempty" gorm:"column:range_end_tooth"`
	ConditionType   odontogram.ConditionType   `json:"condition_type" gorm:"column:condition_type;type:varchar(24);not null" example:"caries"`
	ConditionStatus odontogram.ConditionStatus `json:"condition_status" gorm:"column:condition_status;type:varchar(16);not null;default:'planned'"`
	Notes           string                     `json:"notes" gorm:"type:text"`
	Cost            *float64                   `json:"cost,omitempty"`
}

// Mark converts the row into the chart model.
func (c ToothCondition) Mark() odontogram.Mark {
	m := odontogram.Mark{
		Tooth:     c.ToothNumber,
		Surface:   c.Surface,
		Condition: c.ConditionType,
		Status:    c.ConditionStatus,
		Notes:     c.Notes,
	}
	if c.RangeEndTooth != nil {
		m.RangeEnd = *c.RangeEndTooth
	}
	return m
}

// CreateOdontogramRequest opens a new version for a patient.
type CreateOdontogramRequest struct {
	Name  string `json:"name" validate:"required,max=191"`
	Date  string `json:"date" validate:"omitempty,date"`
	Type  string `json:"type" default:"evolution" validate:"oneof=initial evolution treatment_plan"`
	Notes string `json:"notes"`
}

// SaveConditionRequest writes one (tooth, surface) cell of the current version.
type SaveConditionRequest struct {
	ToothNumber     int      `json:"tooth_number" validate:"required,tooth"`
	Surface         string   `json:"surface" validate:"required,surface"`
	ConditionType   string   `json:"condition_type" validate:"required,condition"`
	ConditionStatus string   `json:"condition_status" default:"planned" validate:"oneof=planned in_progress completed existing"`
	Notes           string   `json:"notes"`
	Cost            *float64 `json:"cost" validate:"omitempty,min=0"`
	RangeEndTooth   *int     `json:"range_end_tooth" validate:"omitempty,tooth"`
}
