package reporting

import "fmt"

// InputValidationError reports a missing or malformed query parameter at the
// reporting boundary. It is recoverable: the request is rejected and no
// state is mutated.
type InputValidationError struct {
	Field  string
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}
