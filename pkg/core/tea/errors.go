package tea

import "fmt"

// NotFoundKind says which kind of design-table lookup failed.
type NotFoundKind string

const (
	NotFoundTechnology NotFoundKind = "technology"
	NotFoundProduct    NotFoundKind = "product"
)

// NotFoundError reports a technology or product missing from the design
// table. It is always fatal to the evaluation that raised it.
type NotFoundError struct {
	Kind       NotFoundKind
	Name       string
	Technology string // set for product lookups
}

func (e *NotFoundError) Error() string {
	if e.Kind == NotFoundProduct {
		return fmt.Sprintf("product %s not found in technology %s design data", e.Name, e.Technology)
	}
	return fmt.Sprintf("technology %s not found in design data", e.Name)
}

// ValidationError reports a malformed scenario configuration. It is raised
// before any computation begins.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid scenario: %s: %s", e.Field, e.Reason)
}

// ComputationError reports an evaluation that cannot produce a finite result,
// such as a zero primary output or a missing unit cost.
type ComputationError struct {
	Technology string
	Reason     string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("technology %s: %s", e.Technology, e.Reason)
}
