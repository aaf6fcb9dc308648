// Package eqn implements a logical equation algebra over functional-structure
// expressions, together with its surface grammar. Equations are parameterized
// by the kind of identifier they contain: Relative identifiers refer to scope
// positions not yet bound to structure, Absolute identifiers are concrete
// structure addresses. Grounding converts the former to the latter and is
// only expressible on all-Relative equations; the conversion is enforced by
// the type parameter, not by a runtime check.
package eqn

// Designator is the constraint satisfied by identifier kinds usable as the
// type parameter of equations and expressions.
type Designator interface {
	comparable
	String() string
}

// RefKind is the variant of a Relative identifier.
type RefKind int

const (
	// RefUp refers to the immediate dominator of the current scope. Written
	// %f in surface syntax.
	RefUp RefKind = iota

	// RefDown refers to the current scope itself. Written %g in surface
	// syntax.
	RefDown

	// RefNamed is a named local reference.
	RefNamed
)

// Relative is a scope-relative identifier: a metavariable standing for the
// enclosing structure (%f), for the structure itself (%g), or a named local
// reference.
type Relative struct {
	Kind RefKind

	// Name is only meaningful when Kind is RefNamed.
	Name string
}

func (r Relative) String() string {
	switch r.Kind {
	case RefUp:
		return "%f"
	case RefDown:
		return "%g"
	default:
		return r.Name
	}
}

// Named returns a named Relative reference.
func Named(name string) Relative {
	return Relative{Kind: RefNamed, Name: name}
}

// Absolute is a concrete address into a functional-structure graph, such as
// f1 or f2.
type Absolute struct {
	Name string
}

func (a Absolute) String() string {
	return a.Name
}
