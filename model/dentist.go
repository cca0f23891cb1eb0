package model

// Dentist represents a dentist on the clinic roster
// @Description Dentist information
type Dentist struct {
	Base
	Tenant
	FullName      string `json:"full_name" gorm:"column:full_name;type:varchar(191);not null;index" example:"Dr. Luis Gómez"`
	Email         string `json:"email" gorm:"type:varchar(191)" example:"luis@clinic.test"`
	PhoneNumber   string `json:"phone_number" gorm:"column:phone_number;type:varchar(20)"`
	Specialty     string `json:"specialty" example:"orthodontics"`
	LicenseNumber string `json:"license_number" gorm:"column:license_number;type:varchar(64)" example:"COL-28-1234"`
	Color         string `json:"color" gorm:"type:varchar(7)" example:"#3b82f6"`
	WorkingDays   string `json:"working_days" gorm:"column:working_days" example:"mon,tue,wed,thu,fri"`
}

// CreateDentistRequest is the dentist form.
type CreateDentistRequest struct {
	FullName      string `json:"full_name" validate:"required,min=2,max=191"`
	Email         string `json:"email" validate:"omitempty,email"`
	PhoneNumber   string `json:"phone_number" validate:"phone"`
	Specialty     string `json:"specialty" default:"general" validate:"oneof=general orthodontics endodontics periodontics prosthodontics oral_surgery pediatric implantology"`
	LicenseNumber string `json:"license_number" validate:"max=64"`
	Color         string `json:"color" default:"#3b82f6" validate:"omitempty,hexcolor"`
	WorkingDays   string `json:"working_days"`
}

// UpdateDentistRequest carries a partial patch.
type UpdateDentistRequest struct {
	FullName      *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=191"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber   *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
	Specialty     *string `json:"specialty,omitempty" validate:"omitempty,oneof=general orthodontics endodontics periodontics prosthodontics oral_surgery pediatric implantology"`
	LicenseNumber *string `json:"license_number,omitempty" validate:"omitempty,max=64"`
	Color         *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	WorkingDays   *string `json:"working_days,omitempty"`
}
