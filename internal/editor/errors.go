package editor

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// InvalidArgumentError reports an out-of-range or unknown input value.
type InvalidArgumentError struct {
	Op     string
	Value  any
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument %v: %s", e.Op, e.Value, e.Reason)
}

func errInvalidArgument(op string, value any, reason string) error {
	return &InvalidArgumentError{Op: op, Value: value, Reason: reason}
}

// InvariantError reports a request that contradicts current state, such as
// expanding an already expanded group. The editor stays usable.
type InvariantError struct {
	Op     string
	Value  any
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: inconsistent state for %v: %s", e.Op, e.Value, e.Reason)
}

func errInvariant(op string, value any, reason string) error {
	return &InvariantError{Op: op, Value: value, Reason: reason}
}

// CollaboratorError wraps a failure reported by an external store or service.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Warn(interface{}, ...interface{})  {}
func (nopLogger) Error(interface{}, ...interface{}) {}

// reporter forwards errors to the logger together with the calling function.
type reporter struct {
	log Logger
}

func (r reporter) report(err error) error {
	if err == nil {
		return nil
	}
	kv := []interface{}{"caller", callerName(1)}
	var ia *InvalidArgumentError
	var ie *InvariantError
	var ce *CollaboratorError
	switch {
	case errors.As(err, &ia):
		kv = append(kv, "op", ia.Op, "value", ia.Value)
	case errors.As(err, &ie):
		kv = append(kv, "op", ie.Op, "value", ie.Value)
	case errors.As(err, &ce):
		kv = append(kv, "op", ce.Op)
	}
	r.log.Error(err.Error(), kv...)
	return err
}

func callerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
