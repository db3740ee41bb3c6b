package service

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError aggregates every violated field rule so the caller can
// show them all at once instead of fixing one at a time.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// IsValidation reports whether err is an aggregated validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// violations collects rule failures and produces a single error.
type violations struct {
	list []string
}

func (v *violations) addf(format string, args ...any) {
	v.list = append(v.list, fmt.Sprintf(format, args...))
}

func (v *violations) err() error {
	if len(v.list) == 0 {
		return nil
	}
	return &ValidationError{Violations: v.list}
}

// DomainError is a business-rule failure on otherwise valid input, such as
// invoicing a project with no unbilled hours.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomain reports whether err is a business-rule failure.
func IsDomain(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

func domainErrorf(format string, args ...any) error {
	return &DomainError{Message: fmt.Sprintf(format, args...)}
}
