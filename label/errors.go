package label

import "fmt"

// ValidationError reports input that cannot be turned into a label, such as
// an unknown symbology or data that violates the constraints of the chosen
// symbology (e.g. non-numeric EAN-13 data).
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
