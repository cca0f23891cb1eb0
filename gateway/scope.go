// Package gateway is the only path to the relational store. Every call is
// bound to a Scope so tenant rows can never be read or written without the
// clinic they belong to.
package gateway

import "strings"

// UnknownIP is recorded when the caller's address could not be determined.
const UnknownIP = "0.0.0.0"

// Scope identifies who is acting and for which clinic.
type Scope struct {
	clinicID string
	userID   string
	ip       string
}

// NewScope builds a scope, refusing to do so without a clinic and a user.
func NewScope(clinicID, userID, ip string) (Scope, error) {
	clinicID = strings.TrimSpace(clinicID)
	userID = strings.TrimSpace(userID)
	if clinicID == "" || userID == "" {
		return Scope{}, ErrScopeUnresolved
	}
	if strings.TrimSpace(ip) == "" {
		ip = UnknownIP
	}
	return Scope{clinicID: clinicID, userID: userID, ip: ip}, nil
}

func (s Scope) ClinicID() string { return s.clinicID }
func (s Scope) UserID() string   { return s.userID }
func (s Scope) IP() string       { return s.ip }

// Valid reports whether the scope came from NewScope.
func (s Scope) Valid() bool {
	return s.clinicID != "" && s.userID != ""
}

func (s Scope) check() error {
	if !s.Valid() {
		return ErrScopeUnresolved
	}
	return nil
}
