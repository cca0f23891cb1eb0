package model

// Clinic is the tenant owning every patient, dentist, appointment and treatment.
type Clinic struct {
	Base
	Name        string `json:"name" gorm:"type:varchar(191);not null" example:"Sonrisa Dental"`
	Address     string `json:"address" example:"Av. Principal 123"`
	PhoneNumber string `json:"phone_number" gorm:"column:phone_number" example:"+34 600 000 000"`
	Email       string `json:"email" example:"info@sonrisa.test"`
	TaxID       string `json:"tax_id" gorm:"column:tax_id"`
	Currency    string `json:"currency" gorm:"type:varchar(3);default:'EUR'" example:"EUR"`
	Status      Status `json:"status" gorm:"type:char(1);not null;default:'1'"`
}

// UpdateClinicRequest is the settings form for a clinic.
type UpdateClinicRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=191"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	TaxID       *string `json:"tax_id,omitempty" validate:"omitempty,max=32"`
	Currency    *string `json:"currency,omitempty" validate:"omitempty,len=3"`
}
