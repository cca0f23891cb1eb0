package model

// PatientNote is a free-text clinical note attached to a patient.
type PatientNote struct {
	Base
	Tenant
	PatientID string `json:"patient_id" gorm:"column:patient_id;type:varchar(36);not null;index"`
	Title     string `json:"title" gorm:"type:varchar(191)"`
	Body      string `json:"body" gorm:"type:text"`
	Pinned    bool   `json:"pinned" gorm:"default:false"`
}

type NoteRequest struct {
	Title  string `json:"title" validate:"max=191"`
	Body   string `json:"body" validate:"required"`
	Pinned bool   `json:"pinned"`
}

type UpdateNoteRequest struct {
	Title  *string `json:"title,omitempty" validate:"omitempty,max=191"`
	Body   *string `json:"body,omitempty" validate:"omitempty,min=1"`
	Pinned *bool   `json:"pinned,omitempty"`
}
