package gateway

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup legitimately matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrScopeUnresolved is returned when the caller's clinic or identity is
	// not known yet. No query is issued in that case.
	ErrScopeUnresolved = errors.New("clinic or identity not resolved")
)

// RemoteError is any store failure other than not-found.
type RemoteError struct {
	Op    string
	Table string
	Err   error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means "no such row".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRemote reports whether err is a store failure to surface to the user.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

func wrap(op, table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return &RemoteError{Op: op, Table: table, Err: err}
}
