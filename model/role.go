package model

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	RoleAdmin        uint32 = 1
	RoleDentist      uint32 = 2
	RoleReceptionist uint32 = 3
)

type Role struct {
	gorm.Model
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
}

// SeedRoles creates the built-in roles when they are missing.
func SeedRoles(db *gorm.DB) error {
	roles := []Role{
		{Name: "Admin"},
		{Name: "Dentist"},
		{Name: "Receptionist"},
	}

	for _, role := range roles {
		var existingRole Role
		err := db.Where("name = ?", role.Name).First(&existingRole).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
		}
	}
	return nil
}
