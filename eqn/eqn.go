package eqn

import (
	"fmt"

	"github.com/dekarrin/garfish/internal/util"
)

// EqType is the type of an Equation.
type EqType int

const (
	// TypeCompound is an equation joining two sub-equations with a boolean
	// connective.
	TypeCompound EqType = iota

	// TypeDefining is an equation that defines a value or membership and
	// can spawn new feature structure when solved.
	TypeDefining

	// TypeConstraint is an equation that only checks existing structure and
	// never creates any.
	TypeConstraint
)

func (et EqType) String() string {
	switch et {
	case TypeCompound:
		return "COMPOUND"
	case TypeDefining:
		return "DEFINING"
	case TypeConstraint:
		return "CONSTRAINT"
	default:
		return fmt.Sprintf("EqType(%d)", int(et))
	}
}

// Equation is a single well-formed formula over functional-structure
// expressions. The concrete type is one of Compound, Defining, or Constraint;
// Type tells which, and the As* functions cast to it, panicking when called on
// the wrong variant.
type Equation[D Designator] interface {
	// Type returns the variant of the equation.
	Type() EqType

	// AsCompound returns the equation as a Compound. Panics if Type() is
	// not TypeCompound.
	AsCompound() Compound[D]

	// AsDefining returns the equation as a Defining. Panics if Type() is
	// not TypeDefining.
	AsDefining() Defining[D]

	// AsConstraint returns the equation as a Constraint. Panics if Type()
	// is not TypeConstraint.
	AsConstraint() Constraint[D]

	// Negate returns the logical negation of the equation. Negation never
	// fails and never produces a Defining equation; defining equations
	// negate to negative constraints.
	Negate() Equation[D]

	// Identifiers returns every identifier mentioned anywhere in the
	// equation.
	Identifiers() util.KeySet[D]

	// Equal returns whether the equation is structurally identical to
	// another value.
	Equal(o any) bool

	fmt.Stringer
}

// CompoundOp is a boolean connective joining two equations.
type CompoundOp int

const (
	OpConjunction CompoundOp = iota
	OpDisjunction
)

func (op CompoundOp) String() string {
	switch op {
	case OpConjunction:
		return "AND"
	case OpDisjunction:
		return "OR"
	default:
		return fmt.Sprintf("CompoundOp(%d)", int(op))
	}
}

// Compound is an equation combining two sub-equations with a connective.
type Compound[D Designator] struct {
	Op    CompoundOp
	Left  Equation[D]
	Right Equation[D]
}

func (c Compound[D]) Type() EqType { return TypeCompound }
func (c Compound[D]) AsCompound() Compound[D] { return c }
func (c Compound[D]) AsDefining() Defining[D] { panic("equation is not a defining equation") }
func (c Compound[D]) AsConstraint() Constraint[D] {
	panic("equation is not a constraint equation")
}

// Negate applies De Morgan's laws: the connective flips and the negation is
// pushed down into both operands.
func (c Compound[D]) Negate() Equation[D] {
	newOp := OpDisjunction
	if c.Op == OpDisjunction {
		newOp = OpConjunction
	}
	return Compound[D]{
		Op:    newOp,
		Left:  c.Left.Negate(),
		Right: c.Right.Negate(),
	}
}

func (c Compound[D]) Identifiers() util.KeySet[D] {
	idents := c.Left.Identifiers().Copy()
	idents.AddAll(c.Right.Identifiers())
	return idents
}

func (c Compound[D]) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left.String(), c.Op.String(), c.Right.String())
}

// Equal returns whether c is structurally identical to another Compound[D] or
// *Compound[D].
func (c Compound[D]) Equal(o any) bool {
	other, ok := o.(Compound[D])
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*Compound[D])
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if c.Op != other.Op {
		return false
	}
	if !c.Left.Equal(other.Left) {
		return false
	}
	return c.Right.Equal(other.Right)
}

// DefiningOp is the relation a Defining equation establishes.
type DefiningOp int

const (
	// OpAssign requires the two expressions to denote the same value,
	// creating structure as needed.
	OpAssign DefiningOp = iota

	// OpContain requires the left expression's value to be a member of the
	// right expression's set value, creating structure as needed.
	OpContain
)

func (op DefiningOp) String() string {
	switch op {
	case OpAssign:
		return "="
	case OpContain:
		return "IN"
	default:
		return fmt.Sprintf("DefiningOp(%d)", int(op))
	}
}

// Defining is an equation that defines structure when solved.
type Defining[D Designator] struct {
	Op    DefiningOp
	Left  Expr[D]
	Right Expr[D]
}

func (d Defining[D]) Type() EqType { return TypeDefining }
func (d Defining[D]) AsCompound() Compound[D] { panic("equation is not a compound equation") }
func (d Defining[D]) AsDefining() Defining[D] { return d }
func (d Defining[D]) AsConstraint() Constraint[D] {
	panic("equation is not a constraint equation")
}

// Negate converts the defining equation to the corresponding negative
// constraint; a negated definition cannot create structure, it can only rule
// structure out.
func (d Defining[D]) Negate() Equation[D] {
	newOp := OpEquals
	if d.Op == OpContain {
		newOp = OpContains
	}
	return Constraint[D]{
		Op:       newOp,
		Positive: false,
		Left:     d.Left,
		Right:    d.Right,
	}
}

func (d Defining[D]) Identifiers() util.KeySet[D] {
	idents := d.Left.Identifiers().Copy()
	idents.AddAll(d.Right.Identifiers())
	return idents
}

func (d Defining[D]) String() string {
	return fmt.Sprintf("(%s %s %s)", d.Left.String(), d.Op.String(), d.Right.String())
}

// Equal returns whether d is structurally identical to another Defining[D] or
// *Defining[D].
func (d Defining[D]) Equal(o any) bool {
	other, ok := o.(Defining[D])
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*Defining[D])
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if d.Op != other.Op {
		return false
	}
	if !d.Left.Equal(other.Left) {
		return false
	}
	return d.Right.Equal(other.Right)
}

// ConstraintOp is the check a Constraint equation performs.
type ConstraintOp int

const (
	// OpEquals checks that two expressions denote the same existing value.
	OpEquals ConstraintOp = iota

	// OpContains checks membership in an existing set value.
	OpContains

	// OpExists checks that the left expression denotes any value at all.
	// Right is unused for this operation.
	OpExists
)

func (op ConstraintOp) String() string {
	switch op {
	case OpEquals:
		return "=c"
	case OpContains:
		return "INc"
	case OpExists:
		return "EXISTS"
	default:
		return fmt.Sprintf("ConstraintOp(%d)", int(op))
	}
}

// Constraint is an equation that checks existing structure without creating
// any. A Constraint with Positive set to false asserts that its check fails.
type Constraint[D Designator] struct {
	Op       ConstraintOp
	Positive bool

	Left Expr[D]

	// Right is unused when Op is OpExists.
	Right Expr[D]
}

func (c Constraint[D]) Type() EqType { return TypeConstraint }
func (c Constraint[D]) AsCompound() Compound[D] { panic("equation is not a compound equation") }
func (c Constraint[D]) AsDefining() Defining[D] { panic("equation is not a defining equation") }
func (c Constraint[D]) AsConstraint() Constraint[D] { return c }

// Negate flips the sign of the constraint. Negating twice gives back the
// original.
func (c Constraint[D]) Negate() Equation[D] {
	neg := c
	neg.Positive = !c.Positive
	return neg
}

func (c Constraint[D]) Identifiers() util.KeySet[D] {
	idents := c.Left.Identifiers().Copy()
	if c.Op != OpExists {
		idents.AddAll(c.Right.Identifiers())
	}
	return idents
}

func (c Constraint[D]) String() string {
	var inner string
	if c.Op == OpExists {
		inner = fmt.Sprintf("(%s %s)", c.Op.String(), c.Left.String())
	} else {
		inner = fmt.Sprintf("(%s %s %s)", c.Left.String(), c.Op.String(), c.Right.String())
	}
	if !c.Positive {
		return "(NOT " + inner + ")"
	}
	return inner
}

// Equal returns whether c is structurally identical to another Constraint[D]
// or *Constraint[D].
func (c Constraint[D]) Equal(o any) bool {
	other, ok := o.(Constraint[D])
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*Constraint[D])
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if c.Op != other.Op {
		return false
	}
	if c.Positive != other.Positive {
		return false
	}
	if !c.Left.Equal(other.Left) {
		return false
	}
	if c.Op == OpExists {
		return true
	}
	return c.Right.Equal(other.Right)
}

// Ground binds every relative identifier in the equation to a concrete
// structure address, with the up metavariable mapping to up and the down
// metavariable mapping to down. Grounding is total: it succeeds on every
// well-formed relative equation and the result contains only absolute
// addresses.
func Ground(eq Equation[Relative], up, down Absolute) Equation[Absolute] {
	switch eq.Type() {
	case TypeCompound:
		c := eq.AsCompound()
		return Compound[Absolute]{
			Op:    c.Op,
			Left:  Ground(c.Left, up, down),
			Right: Ground(c.Right, up, down),
		}
	case TypeDefining:
		d := eq.AsDefining()
		return Defining[Absolute]{
			Op:    d.Op,
			Left:  GroundExpr(d.Left, up, down),
			Right: GroundExpr(d.Right, up, down),
		}
	default:
		c := eq.AsConstraint()
		ground := Constraint[Absolute]{
			Op:       c.Op,
			Positive: c.Positive,
			Left:     GroundExpr(c.Left, up, down),
		}
		if c.Op != OpExists {
			ground.Right = GroundExpr(c.Right, up, down)
		}
		return ground
	}
}
