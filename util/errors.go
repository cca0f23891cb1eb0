package util

import (
	"errors"
	"fmt"
)

var (
	errNoLookupURL   = errors.New("no ip lookup url configured")
	errBadLookupBody = errors.New("ip lookup returned no address")
)

type lookupStatusError struct {
	status int
}

func (e *lookupStatusError) Error() string {
	return fmt.Sprintf("ip lookup returned status %d", e.status)
}
