package engine

import (
	"errors"
	"fmt"
)

// ValidationError reports bad caller input. Nothing is mutated when it is
// returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ErrNotFound is returned by the lookup helpers. By-id operations never return
// it; an unknown id there is a no-op.
var ErrNotFound = errors.New("not found")

// ErrAmbiguous is returned when an id fragment matches more than one entity.
var ErrAmbiguous = errors.New("ambiguous id")
