package margin

import "fmt"

// ValidationError malformed or incomplete calculation input. It is the
// only error class the calculator produces: every failure is caught
// before arithmetic starts, so there is never a partial result to clean
// up and retrying can only replay the same failure.
type ValidationError struct {
	Field  string // offending field, e.g. "haircut_rate"
	Party  string // "party_a" / "party_b" when the field is party-scoped
	Value  string // offending value, formatted for the message
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Party != "" {
		return fmt.Sprintf("validation failed: %s (%s) = %s: %s", e.Field, e.Party, e.Value, e.Reason)
	}
	return fmt.Sprintf("validation failed: %s = %s: %s", e.Field, e.Value, e.Reason)
}

func newValidationError(field, party, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Party: party, Value: value, Reason: reason}
}
