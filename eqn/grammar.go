package eqn

import (
	"fmt"
	"sync"
	"unicode"

	"github.com/dekarrin/garfish/sym"
)

var (
	langCacheMu sync.Mutex
	langCache   = map[Dialect]*sym.Symbol{}
)

// Language returns the root symbol of the equation language under the given
// dialect. The symbol graph is built once per dialect and shared; all derived
// grammar artifacts are read-only and safe for concurrent use.
func Language(d Dialect) *sym.Symbol {
	langCacheMu.Lock()
	defer langCacheMu.Unlock()

	if s, ok := langCache[d]; ok {
		return s
	}
	s := buildLanguage(d)
	langCache[d] = s
	return s
}

func buildLanguage(d Dialect) *sym.Symbol {
	name := sym.NewLexical("NAME", func(lexeme string) bool {
		if lexeme == "" {
			return false
		}
		for i, r := range lexeme {
			if i == 0 && !unicode.IsLetter(r) {
				return false
			}
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				return false
			}
		}
		return true
	})

	var expr *sym.Symbol
	expr = sym.NewNonterminal("EXPR", func() []sym.SyncProduction {
		return []sym.SyncProduction{
			{
				Of:    []sym.Constituent{sym.Lit("%f")},
				Build: func(args []interface{}) (interface{}, error) {
					return Expr[Relative]{Root: Relative{Kind: RefUp}}, nil
				},
			},
			{
				Of:    []sym.Constituent{sym.Lit("%g")},
				Build: func(args []interface{}) (interface{}, error) {
					return Expr[Relative]{Root: Relative{Kind: RefDown}}, nil
				},
			},
			{
				Of:    []sym.Constituent{name},
				Build: func(args []interface{}) (interface{}, error) {
					lexeme, err := argString(args, 0)
					if err != nil {
						return nil, err
					}
					return Expr[Relative]{Root: Named(lexeme)}, nil
				},
			},
			{
				Of:    []sym.Constituent{sym.Lit("("), expr, name, sym.Lit(")")},
				Build: func(args []interface{}) (interface{}, error) {
					e, err := argExpr(args, 1)
					if err != nil {
						return nil, err
					}
					attr, err := argString(args, 2)
					if err != nil {
						return nil, err
					}
					return e.Select(attr), nil
				},
			},
		}
	})

	defining := sym.NewNonterminal("DEFINING", func() []sym.SyncProduction {
		return []sym.SyncProduction{
			definingProd(expr, "=", OpAssign),
			definingProd(expr, "IN", OpContain),
		}
	})

	constraint := sym.NewNonterminal("CONSTRAINT", func() []sym.SyncProduction {
		return []sym.SyncProduction{
			constraintProd(expr, "=c", OpEquals),
			constraintProd(expr, "INc", OpContains),
			{
				Of:    []sym.Constituent{expr},
				Build: func(args []interface{}) (interface{}, error) {
					e, err := argExpr(args, 0)
					if err != nil {
						return nil, err
					}
					return Constraint[Relative]{Op: OpExists, Positive: true, Left: e}, nil
				},
			},
		}
	})

	// in the default dialect OR joins equations conjunctively; the strict
	// dialect builds a real disjunction
	orOp := OpConjunction
	if d.StrictDisjunction {
		orOp = OpDisjunction
	}

	var equation *sym.Symbol
	equation = sym.NewNonterminal("EQUATION", func() []sym.SyncProduction {
		return []sym.SyncProduction{
			{
				Of:    []sym.Constituent{sym.Lit("NOT"), equation},
				Build: func(args []interface{}) (interface{}, error) {
					eq, err := argEquation(args, 1)
					if err != nil {
						return nil, err
					}
					return eq.Negate(), nil
				},
			},
			{
				Of:    []sym.Constituent{sym.Lit("("), equation, sym.Lit(")")},
				Build: func(args []interface{}) (interface{}, error) {
					return argEquation(args, 1)
				},
			},
			compoundProd(equation, "AND", OpConjunction),
			compoundProd(equation, "OR", orOp),
			{
				Of:    []sym.Constituent{defining},
				Build: func(args []interface{}) (interface{}, error) {
					return argEquation(args, 0)
				},
			},
			{
				Of:    []sym.Constituent{constraint},
				Build: func(args []interface{}) (interface{}, error) {
					return argEquation(args, 0)
				},
			},
		}
	})

	return equation
}

func compoundProd(equation *sym.Symbol, lit string, op CompoundOp) sym.SyncProduction {
	return sym.SyncProduction{
		Of: []sym.Constituent{equation, sym.Lit(lit), equation},
		Build: func(args []interface{}) (interface{}, error) {
			left, err := argEquation(args, 0)
			if err != nil {
				return nil, err
			}
			right, err := argEquation(args, 2)
			if err != nil {
				return nil, err
			}
			return Compound[Relative]{Op: op, Left: left, Right: right}, nil
		},
	}
}

func definingProd(expr *sym.Symbol, lit string, op DefiningOp) sym.SyncProduction {
	return sym.SyncProduction{
		Of: []sym.Constituent{expr, sym.Lit(lit), expr},
		Build: func(args []interface{}) (interface{}, error) {
			left, err := argExpr(args, 0)
			if err != nil {
				return nil, err
			}
			right, err := argExpr(args, 2)
			if err != nil {
				return nil, err
			}
			return Defining[Relative]{Op: op, Left: left, Right: right}, nil
		},
	}
}

func constraintProd(expr *sym.Symbol, lit string, op ConstraintOp) sym.SyncProduction {
	return sym.SyncProduction{
		Of: []sym.Constituent{expr, sym.Lit(lit), expr},
		Build: func(args []interface{}) (interface{}, error) {
			left, err := argExpr(args, 0)
			if err != nil {
				return nil, err
			}
			right, err := argExpr(args, 2)
			if err != nil {
				return nil, err
			}
			return Constraint[Relative]{Op: op, Positive: true, Left: left, Right: right}, nil
		},
	}
}

func argString(args []interface{}, idx int) (string, error) {
	if idx >= len(args) {
		return "", fmt.Errorf("missing constituent %d", idx)
	}
	s, ok := args[idx].(string)
	if !ok {
		return "", fmt.Errorf("constituent %d is not a lexeme: %v", idx, args[idx])
	}
	return s, nil
}

func argExpr(args []interface{}, idx int) (Expr[Relative], error) {
	if idx >= len(args) {
		return Expr[Relative]{}, fmt.Errorf("missing constituent %d", idx)
	}
	e, ok := args[idx].(Expr[Relative])
	if !ok {
		return Expr[Relative]{}, fmt.Errorf("constituent %d is not an expression: %v", idx, args[idx])
	}
	return e, nil
}

func argEquation(args []interface{}, idx int) (Equation[Relative], error) {
	if idx >= len(args) {
		return nil, fmt.Errorf("missing constituent %d", idx)
	}
	eq, ok := args[idx].(Equation[Relative])
	if !ok {
		return nil, fmt.Errorf("constituent %d is not an equation: %v", idx, args[idx])
	}
	return eq, nil
}
