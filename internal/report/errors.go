package report

import "fmt"

// RenderError is returned when a document could not be produced. No partial
// artifact accompanies it.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
