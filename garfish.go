// Package garfish is a synchronous-grammar framework: grammar symbols double
// as typed reconstruction targets, declaring both the productions that can
// derive them and the constructors that assemble semantic values from their
// constituents' values. From a single root symbol the framework derives the
// complete grammar — every reachable symbol, production, lexical category,
// and literal token — builds a longest-match tokenizer over it, parses input
// with an Earley engine, and reconstructs typed values from the resulting
// parse trees.
package garfish

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dekarrin/garfish/lex"
	"github.com/dekarrin/garfish/parse"
	"github.com/dekarrin/garfish/sym"
	"github.com/dekarrin/garfish/trans"
)

var (
	// ErrNoParse means the input has no grammatically valid parse at all.
	ErrNoParse = errors.New("no valid parse")

	// ErrNoInterpretation means the input parsed, but no parse tree
	// reconstructed to a semantic value of the expected type. It is distinct
	// from ErrNoParse: the input is grammatical but meaningless.
	ErrNoInterpretation = errors.New("no valid interpretation")
)

// Analyzer is a complete frontend for one root symbol: tokenizer, parser, and
// reconstructor, derived once on first use and cached. The zero value with
// Root assigned is ready for use. An Analyzer is safe for concurrent Analyze
// calls once initialized.
type Analyzer[E any] struct {
	// Root is the grammar's start symbol. Must be a nonterminal.
	Root *sym.Symbol

	initOnce sync.Once
	g        *sym.Grammar
	tz       *lex.Tokenizer
	p        *parse.Parser
	initErr  error
}

// init derives the grammar, tokenizer, and parser. Any error is a
// configuration error in the symbol declarations and is returned by every
// subsequent call on the Analyzer.
func (an *Analyzer[E]) init() error {
	an.initOnce.Do(func() {
		if an.Root == nil {
			an.initErr = fmt.Errorf("analyzer has no root symbol")
			return
		}

		g, err := an.Root.Grammar()
		if err != nil {
			an.initErr = err
			return
		}

		tz, err := lex.NewTokenizer(g.Literals())
		if err != nil {
			an.initErr = fmt.Errorf("deriving tokenizer for %q: %w", an.Root.Tag(), err)
			return
		}

		an.g = g
		an.tz = tz
		an.p = parse.NewParser(g)
	})
	return an.initErr
}

// Grammar returns the derived grammar for the analyzer's root symbol.
func (an *Analyzer[E]) Grammar() (*sym.Grammar, error) {
	if err := an.init(); err != nil {
		return nil, err
	}
	return an.g, nil
}

// Tokenize splits the input into tokens using the tokenizer derived from the
// root symbol's literal token set.
func (an *Analyzer[E]) Tokenize(input string) ([]lex.Token, error) {
	if err := an.init(); err != nil {
		return nil, err
	}
	return an.tz.Tokenize(input), nil
}

// Parse returns every grammatically valid parse tree for the input.
func (an *Analyzer[E]) Parse(input string) ([]*parse.Tree, error) {
	if err := an.init(); err != nil {
		return nil, err
	}
	return an.p.Parse(an.tz.Tokenize(input)), nil
}

// Analyze tokenizes and parses the input, then reconstructs parse trees until
// one yields a semantic value of type E, which is returned.
//
// If no tree exists at all, the returned error wraps ErrNoParse. If trees
// exist but none reconstructs to an E, it wraps ErrNoInterpretation; the two
// conditions are deliberately distinguishable with errors.Is.
func (an *Analyzer[E]) Analyze(input string) (E, error) {
	var zero E

	if err := an.init(); err != nil {
		return zero, err
	}

	trees := an.p.Parse(an.tz.Tokenize(input))
	if len(trees) == 0 {
		return zero, fmt.Errorf("%w of %q as %q", ErrNoParse, input, an.Root.Tag())
	}

	var lastErr error
	for _, t := range trees {
		val, err := trans.Reconstruct(an.g, t)
		if err != nil {
			lastErr = err
			continue
		}
		if typed, ok := val.(E); ok {
			return typed, nil
		}
		lastErr = fmt.Errorf("reconstructed value has type %T", val)
	}

	if lastErr != nil {
		return zero, fmt.Errorf("%w of %q: %v", ErrNoInterpretation, input, lastErr)
	}
	return zero, fmt.Errorf("%w of %q", ErrNoInterpretation, input)
}
