package service

import (
	"errors"
	"fmt"
	"strings"

	"clinic-access-api/internal/models"
)

var (
	// ErrInvalidTopN is returned when a non-positive number of cities is requested.
	ErrInvalidTopN = errors.New("top must be positive")
	// ErrJoinMismatch is returned in strict mode when the state tables do not line up.
	ErrJoinMismatch = errors.New("state tables do not match")
)

// JoinMismatchError carries the join report of a strict state table build.
type JoinMismatchError struct {
	Report models.JoinReport
}

func (e *JoinMismatchError) Error() string {
	var parts []string
	if len(e.Report.MissingPolicy) > 0 {
		parts = append(parts, "no policy for "+strings.Join(e.Report.MissingPolicy, ", "))
	}
	if len(e.Report.MissingLocations) > 0 {
		parts = append(parts, "no locations for "+strings.Join(e.Report.MissingLocations, ", "))
	}
	if len(e.Report.MissingCode) > 0 {
		parts = append(parts, "no code for "+strings.Join(e.Report.MissingCode, ", "))
	}
	return fmt.Sprintf("%v: %s", ErrJoinMismatch, strings.Join(parts, "; "))
}

func (e *JoinMismatchError) Unwrap() error {
	return ErrJoinMismatch
}
