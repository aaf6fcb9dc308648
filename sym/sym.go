// Package sym implements grammar symbols that double as typed reconstruction
// targets. A symbol declares the synchronous productions that can derive it:
// each production pairs an ordered constituent list with a constructor that
// assembles a semantic value from the already-reconstructed values of those
// constituents. From the local declarations the package derives the complete
// grammar reachable from a root symbol, even when the declaration graph is
// self-referential or mutually recursive.
package sym

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Kind is the capability variant of a Symbol.
type Kind int

const (
	// KindNonterminal is a symbol that owns synchronous productions.
	KindNonterminal Kind = iota

	// KindLexical is a terminal-class symbol defined by a string-membership
	// predicate instead of productions.
	KindLexical

	// KindEmpty is a symbol that matches nothing; it is used as an explicit
	// "no value" sentinel and contributes neither productions nor tokens.
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindNonterminal:
		return "nonterminal"
	case KindLexical:
		return "lexical category"
	case KindEmpty:
		return "empty"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Constituent is one element of a production body: either a *Symbol or a
// literal token Lit.
type Constituent interface {

	// Tag returns the grammar tag the constituent contributes to the derived
	// production. For a Symbol this is its declared tag; for a Lit it is the
	// literal text itself.
	Tag() string
}

// Lit is a literal token string used as a production constituent.
type Lit string

// Tag returns the literal text.
func (l Lit) Tag() string { return string(l) }

// Constructor builds a semantic value from the ordered, already-reconstructed
// values of a production's constituents. Returning a non-nil error means the
// constructor declines the derivation; this is a recoverable outcome, not a
// fatal one.
type Constructor func(args []interface{}) (interface{}, error)

// SyncProduction is a synchronous production: an ordered constituent list
// paired with the constructor invoked when a parse node matching it is
// reconstructed.
type SyncProduction struct {
	Of    []Constituent
	Build Constructor
}

// Symbol is a grammar symbol. Symbols are long-lived and compared by
// identity: two symbols with identical declarations are still distinct
// grammar symbols. Create them with NewNonterminal, NewLexical, or NewEmpty
// and reference them thereafter; all derived values (closure, grammar) are
// computed once and cached on the symbol.
type Symbol struct {
	kind Kind
	tag  string
	id   uuid.UUID

	// nonterminal only; resolved once so that declarations may refer to
	// themselves and each other
	prodsFn   func() []SyncProduction
	prodsOnce sync.Once
	prods     []SyncProduction

	// lexical only
	matches func(lexeme string) bool

	closureOnce sync.Once
	closure     []*Symbol

	grammarOnce sync.Once
	grammar     *Grammar
	grammarErr  error
}

// NewNonterminal declares a nonterminal symbol with the given tag. The
// productions are given as a function rather than a slice so the declaration
// may reference the symbol being declared (or one declared later); it is
// called exactly once, on first use of the symbol's productions.
func NewNonterminal(tag string, prods func() []SyncProduction) *Symbol {
	return &Symbol{
		kind:    KindNonterminal,
		tag:     tag,
		id:      uuid.New(),
		prodsFn: prods,
	}
}

// NewLexical declares a lexical category symbol: a terminal class whose
// membership is decided by the given predicate on lexemes.
func NewLexical(tag string, matches func(lexeme string) bool) *Symbol {
	return &Symbol{
		kind:    KindLexical,
		tag:     tag,
		id:      uuid.New(),
		matches: matches,
	}
}

// NewEmpty declares an empty symbol. Empty symbols never match input and
// never reconstruct to a value.
func NewEmpty() *Symbol {
	return &Symbol{
		kind: KindEmpty,
		tag:  "ε",
		id:   uuid.New(),
	}
}

// Kind returns the capability variant of the symbol.
func (s *Symbol) Kind() Kind { return s.kind }

// Tag returns the symbol's grammar tag.
func (s *Symbol) Tag() string { return s.tag }

// ID returns the unique identity assigned to the symbol at declaration.
func (s *Symbol) ID() uuid.UUID { return s.id }

func (s *Symbol) String() string {
	return fmt.Sprintf("%s %q", s.kind, s.tag)
}

// Productions returns the symbol's declared synchronous productions, resolving
// the declaration function on first call. Non-nonterminal symbols have none.
func (s *Symbol) Productions() []SyncProduction {
	if s.kind != KindNonterminal {
		return nil
	}
	s.prodsOnce.Do(func() {
		if s.prodsFn != nil {
			s.prods = s.prodsFn()
		}
	})
	return s.prods
}

// Matches reports whether the given lexeme is a member of the symbol's
// lexical category. It is false for any non-lexical symbol.
func (s *Symbol) Matches(lexeme string) bool {
	if s.kind != KindLexical || s.matches == nil {
		return false
	}
	return s.matches(lexeme)
}

// Literals returns the literal token strings that appear directly in the
// symbol's own production bodies, in first-appearance order.
func (s *Symbol) Literals() []string {
	var lits []string
	seen := map[string]bool{}
	for _, p := range s.Productions() {
		for _, c := range p.Of {
			if l, ok := c.(Lit); ok && !seen[string(l)] {
				seen[string(l)] = true
				lits = append(lits, string(l))
			}
		}
	}
	return lits
}
