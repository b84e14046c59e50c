package diagnosing

import (
	"errors"
	"fmt"
)

var (
	ErrSeedAgents  = errors.New("error seeding sample agents")
	ErrSeedReports = errors.New("error seeding sample reports")
)

type DiagnosticsError struct {
	Err     error
	Code    string
	Details string
}

func (e *DiagnosticsError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *DiagnosticsError) Unwrap() error {
	return e.Err
}

func NewDiagnosticsError(err error, code string, details string) *DiagnosticsError {
	return &DiagnosticsError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
