package widget

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural is wrapped by every StructuralError.
	ErrStructural = errors.New("widget: structural error")
	// ErrInvalidType is wrapped by every TypeError.
	ErrInvalidType = errors.New("widget: invalid value type")
)

// StructuralError reports misuse of the tree API: bad uids, duplicate
// children, missing constructor arguments. It signals a programming mistake
// and is never a user-facing validation failure.
type StructuralError struct {
	Op     string
	Parent string
	Child  string
	Reason string
}

func (e *StructuralError) Error() string {
	switch {
	case e.Parent != "" && e.Child != "":
		return fmt.Sprintf("widget: %s: %q/%q: %s", e.Op, e.Parent, e.Child, e.Reason)
	case e.Parent != "":
		return fmt.Sprintf("widget: %s: %q: %s", e.Op, e.Parent, e.Reason)
	default:
		return fmt.Sprintf("widget: %s: %s", e.Op, e.Reason)
	}
}

func (e *StructuralError) Unwrap() error {
	return ErrStructural
}

// TypeError reports a value whose shape cannot be normalised by SetVal.
type TypeError struct {
	Widget   string
	Expected string
	Got      any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("widget %q: %s expected, %T given", e.Widget, e.Expected, e.Got)
}

func (e *TypeError) Unwrap() error {
	return ErrInvalidType
}

func typeError(uid, expected string, got any) error {
	return &TypeError{Widget: uid, Expected: expected, Got: got}
}

func structural(op, parent, child, reason string) *StructuralError {
	return &StructuralError{Op: op, Parent: parent, Child: child, Reason: reason}
}
