package gateway

import (
	"errors"
	"fmt"
)

// Error is a failure reported by the provider (or the transport in front of
// it). StatusCode is the HTTP status when one was received; Code and
// Description come from the provider's error body when it sent one.
type Error struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *Error) Error() string {
	if e.Description != "" {
		return e.Description
	}
	if e.Code != "" {
		return fmt.Sprintf("gateway error %s (http %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("gateway returned status %d", e.StatusCode)
}

// IsNotFound reports whether the error is a definitive "no such entity"
// answer from the provider, as opposed to the provider being unreachable.
func IsNotFound(err error) bool {
	var gerr *Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.StatusCode == 404 || gerr.Code == "NOT_FOUND_ERROR"
}
