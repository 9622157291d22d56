package scan

import "fmt"

// InvalidSpecError reports a malformed address or subnet spec. The CLI
// layer matches on it to show usage text instead of a bare error.
type InvalidSpecError struct {
	Spec   string
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid subnet spec '%s': %s", e.Spec, e.Reason)
}
