package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/dimitrije/site-admin-api/internal/database"
)

var (
	ErrNotConfigured      = database.ErrNotConfigured
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("insufficient role")
	ErrValidation         = errors.New("validation failed")
	ErrProfileNotFound    = errors.New("admin profile not found")
	ErrUpstream           = errors.New("upstream request failed")
)

// PartialFailureError reports a multi-key mutation where some keys failed.
// Keys listed in Succeeded were written.
type PartialFailureError struct {
	Failed    map[string]error
	Succeeded []string
}

func (e *PartialFailureError) Error() string {
	keys := e.FailedKeys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Failed[k].Error())
	}
	return strings.Join(parts, "; ")
}

func (e *PartialFailureError) FailedKeys() []string {
	keys := make([]string, 0, len(e.Failed))
	for k := range e.Failed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *PartialFailureError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, k := range e.FailedKeys() {
		errs = append(errs, e.Failed[k])
	}
	return errs
}
