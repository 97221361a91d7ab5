package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrValidationFailed is matched by every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInFlight is returned by Begin while a submission is validating,
	// submitting, or has already succeeded.
	ErrInFlight = errors.New("submission already in flight")

	// ErrNotSubmitting is returned by Complete when Begin did not lock the form.
	ErrNotSubmitting = errors.New("form is not submitting")

	// ErrCanceled reports that the owning scope was torn down mid-submit.
	ErrCanceled = errors.New("submission canceled")
)

// Errors maps field names to human-readable messages.
type Errors map[string]string

func (e Errors) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// Names returns the failing field names in sorted order.
func (e Errors) Names() []string {
	names := make([]string, 0, len(e))
	for n := range e {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Ordered returns the messages in schema field order. Names not in the
// schema are appended alphabetically.
func (e Errors) Ordered(s Schema) []string {
	seen := make(map[string]bool, len(e))
	out := make([]string, 0, len(e))
	for _, f := range s.Fields {
		if msg, ok := e[f.Name]; ok {
			out = append(out, msg)
			seen[f.Name] = true
		}
	}
	for _, n := range e.Names() {
		if !seen[n] {
			out = append(out, e[n])
		}
	}
	return out
}

// Summary is the one-line description used in error notices.
func (e Errors) Summary() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		for _, msg := range e {
			return msg
		}
	}
	return fmt.Sprintf("%d fields need attention", len(e))
}

// ValidationError carries field errors out of Submit and out of actions
// that perform their own checks (for example "organisation not verified").
type ValidationError struct {
	Form   string
	Fields Errors
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: Errors{field: msg}}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, n := range e.Fields.Names() {
		msgs = append(msgs, e.Fields[n])
	}
	prefix := "validation failed"
	if e.Form != "" {
		prefix = e.Form + ": " + prefix
	}
	return prefix + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }
