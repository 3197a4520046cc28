// Package guideline holds the coding-standard catalog that drives the
// generated lint directives.
//
// # Catalog
//
// The catalog is an ordered list of Entry values authored as Go literals in
// catalog.go. Order is significant: adjacent entries are usually related and
// the rendered block keeps them together exactly as written.
//
//	reg := guideline.Default()
//	for _, e := range reg.Entries() {
//		fmt.Println(e.ID, e.Tier, e.Directives)
//	}
//
// # Construction
//
// New validates a list of entries and freezes it into a Registry. Validation
// is all-or-nothing; the first problem is returned as a *ValidationError
// wrapping one of ErrMalformedGuideline, ErrDuplicateGuideline or
// ErrConflictingDirective:
//
//	_, err := guideline.New(entries)
//	if errors.Is(err, guideline.ErrDuplicateGuideline) {
//		// two entries share an ID
//	}
//
// A Registry is never mutated after construction. Accessors return copies,
// so a Registry may be shared between goroutines without locking.
//
// # Adding a Guideline
//
// Append an Entry to defaultEntries in catalog.go next to the guidelines it
// relates to. Nothing in package emit needs to change.
package guideline
