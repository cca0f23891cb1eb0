package model

import (
	"time"

	"gorm.io/gorm"
)

// User holds the credentials of someone able to sign in.
type User struct {
	gorm.Model
	Name           string `json:"name" gorm:"type:varchar(191)"`
	Email          string `json:"email" gorm:"type:varchar(191);uniqueIndex"`
	Password       string `json:"-"`
	PasswordSalt   string `json:"-" gorm:"column:password_salt"`
	RoleID         uint32 `json:"role_id"`
	FailedAttempts int    `json:"-" gorm:"column:failed_attempts;default:0"`
	LockedUntil    *int64 `json:"-" gorm:"column:locked_until"`
}

// UserProfile binds a user to the clinic they work for. A missing profile is
// a normal state right after signup.
type UserProfile struct {
	Base
	UserID   uint   `json:"user_id" gorm:"column:user_id;uniqueIndex;not null"`
	ClinicID string `json:"clinic_id" gorm:"column:clinic_id;type:varchar(36);index"`
	FullName string `json:"full_name" gorm:"column:full_name"`
	Position string `json:"position" example:"Receptionist"`
	Status   Status `json:"status" gorm:"type:char(1);not null;default:'1'"`
}

// Session is a login session identified by its token.
type Session struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"index"`
	SessionToken string    `json:"session_token" gorm:"type:varchar(512);index"`
	ExpiresAt    time.Time `json:"expires_at"`
	ClientIP     string    `json:"client_ip"`
	Browser      string    `json:"browser"`
}
