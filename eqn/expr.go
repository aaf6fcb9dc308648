package eqn

import (
	"strings"

	"github.com/dekarrin/garfish/internal/util"
)

// Expr is a functional-structure expression: an identifier with a possibly
// empty path of attribute selections applied to it, e.g. (%f SUBJ) is the
// SUBJ attribute of the structure %f refers to.
type Expr[D Designator] struct {
	Root D
	Path []string
}

// Select returns the expression extended by one attribute selection.
func (e Expr[D]) Select(attr string) Expr[D] {
	newPath := make([]string, len(e.Path)+1)
	copy(newPath, e.Path)
	newPath[len(e.Path)] = attr
	return Expr[D]{Root: e.Root, Path: newPath}
}

// Identifiers returns the set of identifiers the expression mentions.
func (e Expr[D]) Identifiers() util.KeySet[D] {
	return util.KeySetOf([]D{e.Root})
}

func (e Expr[D]) String() string {
	if len(e.Path) == 0 {
		return e.Root.String()
	}
	return "(" + e.Root.String() + " " + strings.Join(e.Path, " ") + ")"
}

// Equal returns whether the expression has the same root identifier and the
// same selection path as another Expr[D] or *Expr[D].
func (e Expr[D]) Equal(o any) bool {
	other, ok := o.(Expr[D])
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*Expr[D])
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if e.Root != other.Root {
		return false
	}
	if len(e.Path) != len(other.Path) {
		return false
	}
	for i := range e.Path {
		if e.Path[i] != other.Path[i] {
			return false
		}
	}
	return true
}

// GroundExpr binds the expression's relative identifier to concrete structure
// addresses: the up metavariable becomes up, the down metavariable becomes
// down, and a named reference becomes the same-named absolute address. It is
// total over Relative expressions and always yields an Absolute one.
func GroundExpr(e Expr[Relative], up, down Absolute) Expr[Absolute] {
	var root Absolute
	switch e.Root.Kind {
	case RefUp:
		root = up
	case RefDown:
		root = down
	default:
		root = Absolute{Name: e.Root.Name}
	}

	path := make([]string, len(e.Path))
	copy(path, e.Path)
	return Expr[Absolute]{Root: root, Path: path}
}
