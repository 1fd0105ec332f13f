// Package form owns the mutable draft state of the document forms:
// field updates, line-item operations, validation and submission.
//
// Field setters replace one field and preserve the rest by copying the
// draft value, so shells can diff drafts by value. Validation reports the
// first blocking error only, in declaration order. Submit routes every
// outcome into the form's result slot; the only error it returns is the
// re-entrancy guard.
package form

import (
	"errors"
	"strings"
	"time"
)

// ErrSubmissionInFlight is returned by Submit while a prior submission
// has not resolved yet.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// submitFallbackMessage covers transport failures without a usable message.
const submitFallbackMessage = "Submission failed. Please try again."

// ValidationError reports the first blocking field failure.
type ValidationError struct {
	// Field is the draft field that failed.
	Field string
	// Message is the user-facing explanation.
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// today returns the current date as an ISO-8601 date string.
func today() string {
	return time.Now().Format("2006-01-02")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return submitFallbackMessage
}
