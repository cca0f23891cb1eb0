package model

import "gorm.io/gorm"

// Tables lists every persisted model in dependency order.
func Tables() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&Clinic{},
		&UserProfile{},
		&Session{},
		&Patient{},
		&Dentist{},
		&Appointment{},
		&TreatmentCatalog{},
		&TreatmentCost{},
		&Treatment{},
		&Odontogram{},
		&ToothCondition{},
		&PatientNote{},
		&SecurityLog{},
	}
}

// Migrate creates or alters every table and seeds the built-in roles.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Tables()...); err != nil {
		return err
	}
	return SeedRoles(db)
}
