package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the logical soft-delete flag carried by every tenant row.
type Status string

const (
	StatusActive   Status = "1"
	StatusInactive Status = "0"
)

// Valid reports whether s is one of the two logical states.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Base carries the UUID primary key and the audit columns shared by every table.
type Base struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)" example:"4b1f6f3e-6c9b-4f7e-9d8a-1a2b3c4d5e6f"`
	CreatedByUser string     `json:"created_by_user" gorm:"column:created_by_user;type:varchar(64)"`
	CreatedDate   time.Time  `json:"created_date" gorm:"column:created_date;index"`
	CreatedByIP   string     `json:"created_by_ip" gorm:"column:created_by_ip;type:varchar(45)"`
	UpdatedByUser string     `json:"updated_by_user,omitempty" gorm:"column:updated_by_user;type:varchar(64)"`
	UpdatedDate   *time.Time `json:"updated_date,omitempty" gorm:"column:updated_date"`
	UpdatedByIP   string     `json:"updated_by_ip,omitempty" gorm:"column:updated_by_ip;type:varchar(45)"`
}

// BeforeCreate assigns an id and creation date when the caller left them empty.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedDate.IsZero() {
		b.CreatedDate = time.Now()
	}
	return nil
}

// Tenant is embedded by rows owned by one clinic.
type Tenant struct {
	ClinicID string `json:"clinic_id" gorm:"column:clinic_id;type:varchar(36);not null;index"`
	Status   Status `json:"status" gorm:"column:status;type:char(1);not null;default:'1';index"`
}

// Audited is implemented by every model embedding Base.
type Audited interface {
	AuditBase() *Base
}

// Scoped is implemented by every model embedding Tenant.
type Scoped interface {
	TenantPart() *Tenant
}

func (b *Base) AuditBase() *Base     { return b }
func (t *Tenant) TenantPart() *Tenant { return t }
