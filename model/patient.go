package model

// Patient represents a patient of the clinic
// @Description Patient information
type Patient struct {
	Base
	Tenant
	FullName              string `json:"full_name" gorm:"column:full_name;type:varchar(191);not null;index" example:"Ana Ruiz"`
	IDNumber              string `json:"id_number" gorm:"column:id_number;type:varchar(32)" example:"12345678Z"`
	Gender                string `json:"gender" example:"female"`
	Email                 string `json:"email" gorm:"type:varchar(191)" example:"ana@example.com"`
	PhoneNumber           string `json:"phone_number" gorm:"column:phone_number;type:varchar(20)" example:"+34 600 111 222"`
	BirthDate             string `json:"birth_date" gorm:"column:birth_date;type:varchar(10)" example:"2000-01-01"`
	Age                   int    `json:"age" example:"26"`
	Address               string `json:"address" example:"Calle Mayor 1"`
	MedicalHistory        string `json:"medical_history" gorm:"column:medical_history;type:text"`
	Allergies             string `json:"allergies" gorm:"type:text"`
	EmergencyContactName  string `json:"emergency_contact_name" gorm:"column:emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone" gorm:"column:emergency_contact_phone;type:varchar(20)"`
}

// CreatePatientRequest is the patient form.
type CreatePatientRequest struct {
	FullName              string `json:"full_name" validate:"required,min=2,max=191" example:"Ana Ruiz"`
	IDNumber              string `json:"id_number" validate:"max=32"`
	Gender                string `json:"gender" validate:"omitempty,oneof=female male other" example:"female"`
	Email                 string `json:"email" validate:"omitempty,email"`
	PhoneNumber           string `json:"phone_number" validate:"phone" example:"+34 600 111 222"`
	BirthDate             string `json:"birth_date" validate:"omitempty,date" example:"2000-01-01"`
	Address               string `json:"address" validate:"max=255"`
	MedicalHistory        string `json:"medical_history"`
	Allergies             string `json:"allergies"`
	EmergencyContactName  string `json:"emergency_contact_name" validate:"max=191"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"phone"`
}

// UpdatePatientRequest carries a partial patch; nil fields are left untouched.
type UpdatePatientRequest struct {
	FullName              *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=191"`
	IDNumber              *string `json:"id_number,omitempty" validate:"omitempty,max=32"`
	Gender                *string `json:"gender,omitempty" validate:"omitempty,oneof=female male other"`
	Email                 *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber           *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
	BirthDate             *string `json:"birth_date,omitempty" validate:"omitempty,date"`
	Address               *string `json:"address,omitempty" validate:"omitempty,max=255"`
	MedicalHistory        *string `json:"medical_history,omitempty"`
	Allergies             *string `json:"allergies,omitempty"`
	EmergencyContactName  *string `json:"emergency_contact_name,omitempty" validate:"omitempty,max=191"`
	EmergencyContactPhone *string `json:"emergency_contact_phone,omitempty" validate:"omitempty,phone"`
}
