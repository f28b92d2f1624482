package resource

import "fmt"

// NotFoundError reports that no record of Kind has Key.
type NotFoundError struct {
	Kind string
	Key  any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %v not found", e.Kind, e.Key)
}

// InvalidArgumentError reports a request rejected before it reached the
// store: a failed field rule, a missing parameter, or an unparsable key.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string { return e.Reason }

func invalidArgument(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}
