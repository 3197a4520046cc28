package guideline

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog validation. Match them with errors.Is.
var (
	// ErrMalformedGuideline reports an entry with an empty ID or an empty
	// or invalid directive name.
	ErrMalformedGuideline = errors.New("malformed guideline")
	// ErrDuplicateGuideline reports two entries sharing an ID.
	ErrDuplicateGuideline = errors.New("duplicate guideline")
	// ErrConflictingDirective reports two active entries controlling the
	// same directive.
	ErrConflictingDirective = errors.New("conflicting directive")
)

// ValidationError describes the entry that failed validation.
type ValidationError struct {
	Kind      error  // one of the sentinel errors above
	Index     int    // position of the offending entry in the input
	ID        string // ID of the offending entry, may be empty
	Directive string // directive involved, if any
	Reason    string
}

func (e *ValidationError) Error() string {
	id := e.ID
	if id == "" {
		id = "<empty>"
	}
	if e.Directive != "" {
		return fmt.Sprintf("%v: entry %d (%s) directive %q: %s", e.Kind, e.Index, id, e.Directive, e.Reason)
	}
	return fmt.Sprintf("%v: entry %d (%s): %s", e.Kind, e.Index, id, e.Reason)
}

// Unwrap returns the sentinel kind so errors.Is matches it.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}
