package project

import "fmt"

type NotFoundError struct {
	Kind string
	ID   int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}

type InvalidValueError struct {
	Key    string
	Value  string
	Reason string
}

func (e InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Key, e.Value, e.Reason)
}

// ValidationError reports a malformed project document.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return "invalid project: " + e.Reason
}

func invalidf(format string, args ...any) error {
	return ValidationError{Reason: fmt.Sprintf(format, args...)}
}
