package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrVariantNotFound reports a lookup for a form variant the document
	// does not define. This is a programming error on the caller's side.
	ErrVariantNotFound = errors.New("form variant not found")

	// ErrFragmentNotFound reports a group referencing an undefined fragment.
	ErrFragmentNotFound = errors.New("fragment not found")

	// ErrDuplicateField reports two fields sharing a name within one form
	// variant after fragment expansion. Submitted values would collide under
	// that name, so the document is rejected at load time.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrInvalidSchema reports any other structural defect in a document.
	ErrInvalidSchema = errors.New("invalid form schema")
)

// ValidationError reports one submitted value violating its field constraint.
// Recoverable: surfaced to the end user as a per-field message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

// ValidationErrors collects every failed field of a submission so the user
// sees all problems in one round trip.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
