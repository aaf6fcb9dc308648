// Package trans reconstructs typed semantic values from parse trees. It is a
// semantic-action evaluator over an already-built tree: for each nonterminal
// node it resolves which declared synchronous production the node
// instantiates, by exact (head, child-tag) key, and invokes that production's
// constructor with the already-reconstructed values of the children.
package trans

import (
	"errors"
	"fmt"

	"github.com/dekarrin/garfish/lex"
	"github.com/dekarrin/garfish/parse"
	"github.com/dekarrin/garfish/sym"
)

var (
	// ErrNoValue is wrapped by every recoverable reconstruction failure: the
	// node's production key was never declared, a constituent failed to
	// reconstruct, or a constructor declined. Callers should treat it as
	// "this parse tree has no well-formed semantic value" and may try another
	// tree from the same parse forest.
	ErrNoValue = errors.New("no semantic value")

	// ErrLexicalMismatch is wrapped when a terminal's lexeme fails its
	// lexical category's membership predicate. It also wraps ErrNoValue.
	ErrLexicalMismatch = fmt.Errorf("%w: lexeme not in lexical category", ErrNoValue)
)

// Reconstruct recovers the semantic value of the given parse tree node under
// the given grammar.
//
// A terminal node for a lexical category reconstructs to its lexeme if the
// lexeme satisfies the category's membership predicate; a literal terminal
// reconstructs to its lexeme; the empty node never reconstructs. A
// nonterminal node reconstructs each child, then invokes the constructor of
// the exactly-matching declared production. Failure at any point is returned
// as an error wrapping ErrNoValue, never a panic; it marks the tree (not the
// whole input) as uninterpretable.
func Reconstruct(g *sym.Grammar, node *parse.Tree) (interface{}, error) {
	if node == nil || node.Empty {
		return nil, fmt.Errorf("%w: empty node", ErrNoValue)
	}

	if node.Terminal {
		return reconstructTerminal(g, node)
	}

	args := make([]interface{}, len(node.Children))
	for i, child := range node.Children {
		val, err := Reconstruct(g, child)
		if err != nil {
			return nil, fmt.Errorf("constituent %d of %q: %w", i, node.Value, err)
		}
		args[i] = val
	}

	childTags := node.ChildTags()
	build, ok := g.ConstructorFor(node.Value, childTags)
	if !ok {
		return nil, fmt.Errorf("%w: no synchronous production %q", ErrNoValue, sym.Production{Head: node.Value, Symbols: childTags})
	}

	val, err := build(args)
	if err != nil {
		return nil, fmt.Errorf("%w: constructor for %q declined: %v", ErrNoValue, node.Value, err)
	}
	return val, nil
}

func reconstructTerminal(g *sym.Grammar, node *parse.Tree) (interface{}, error) {
	if cat, ok := g.LexicalFor(node.Value); ok {
		if node.Source.Class != lex.ClassWord || !cat.Matches(node.Source.Lexeme) {
			return nil, fmt.Errorf("%q as %q: %w", node.Source.Lexeme, node.Value, ErrLexicalMismatch)
		}
		return node.Source.Lexeme, nil
	}

	// literal token terminal
	return node.Source.Lexeme, nil
}
