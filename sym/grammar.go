package sym

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/garfish/internal/util"
)

// ErrBadGrammar is wrapped by all grammar assembly errors. These are fatal
// configuration problems in the symbol declarations, detected before any
// parse is attempted.
var ErrBadGrammar = errors.New("invalid grammar declarations")

// Production is a derived grammar production: a head symbol tag and the
// ordered tags of its constituents.
type Production struct {
	Head    string
	Symbols []string
}

func (p Production) String() string {
	return p.Head + " -> " + strings.Join(p.Symbols, " ")
}

// Equal returns whether the production has the same head and the same symbol
// sequence as another Production or *Production.
func (p Production) Equal(o any) bool {
	other, ok := o.(Production)
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*Production)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if p.Head != other.Head {
		return false
	}
	if len(p.Symbols) != len(other.Symbols) {
		return false
	}
	for i := range p.Symbols {
		if p.Symbols[i] != other.Symbols[i] {
			return false
		}
	}
	return true
}

// prodKey is the exact-match key that reconstruction uses to resolve which
// declared production a parse node instantiates.
func prodKey(head string, symbols []string) string {
	return head + " -> " + strings.Join(symbols, " ")
}

// Grammar is the closed grammar derived from a root symbol: every production,
// lexical category, and literal token reachable from it. Grammars are
// immutable once assembled and safe to share across concurrent parses.
type Grammar struct {
	start       *Symbol
	symbols     map[string]*Symbol
	productions []Production
	cons        map[string]Constructor
	byHead      map[string][]Production
	lexicals    map[string]*Symbol
	literals    []string
}

// Grammar derives the full grammar rooted at s: productions for every
// nonterminal in closure(s) ∪ {s}, the lexical categories among them, and the
// union of all literal tokens. The result is assembled once and cached; all
// later calls return the same Grammar.
//
// A non-nil error wraps ErrBadGrammar and means the declarations themselves
// are broken: the root is not a nonterminal, two distinct symbols share a
// tag, a nonterminal declares no productions, a production is empty or
// contains an empty symbol, or the same (head, constituents) pair is declared
// twice.
func (s *Symbol) Grammar() (*Grammar, error) {
	s.grammarOnce.Do(func() {
		s.grammar, s.grammarErr = assemble(s)
	})
	return s.grammar, s.grammarErr
}

func assemble(root *Symbol) (*Grammar, error) {
	if root.Kind() != KindNonterminal {
		return nil, fmt.Errorf("%w: start symbol %s is not a nonterminal", ErrBadGrammar, root)
	}

	all := append([]*Symbol{root}, root.Closure()...)

	g := &Grammar{
		start:    root,
		symbols:  map[string]*Symbol{},
		cons:     map[string]Constructor{},
		byHead:   map[string][]Production{},
		lexicals: map[string]*Symbol{},
	}

	litSet := util.NewKeySet[string]()

	for _, symb := range all {
		if prior, ok := g.symbols[symb.Tag()]; ok && prior != symb {
			return nil, fmt.Errorf("%w: two distinct symbols share the tag %q", ErrBadGrammar, symb.Tag())
		}
		g.symbols[symb.Tag()] = symb

		switch symb.Kind() {
		case KindLexical:
			g.lexicals[symb.Tag()] = symb
		case KindEmpty:
			// contributes nothing
		case KindNonterminal:
			prods := symb.Productions()
			if len(prods) == 0 {
				return nil, fmt.Errorf("%w: nonterminal %q declares no productions", ErrBadGrammar, symb.Tag())
			}
			for _, sp := range prods {
				if len(sp.Of) == 0 {
					return nil, fmt.Errorf("%w: nonterminal %q declares an empty production", ErrBadGrammar, symb.Tag())
				}
				tags := make([]string, len(sp.Of))
				for i, c := range sp.Of {
					if cs, ok := c.(*Symbol); ok && cs.Kind() == KindEmpty {
						return nil, fmt.Errorf("%w: empty symbol used as a constituent of %q", ErrBadGrammar, symb.Tag())
					}
					if l, ok := c.(Lit); ok {
						litSet.Add(string(l))
					}
					tags[i] = c.Tag()
				}

				key := prodKey(symb.Tag(), tags)
				if _, dup := g.cons[key]; dup {
					return nil, fmt.Errorf("%w: synchronous production %q declared twice", ErrBadGrammar, key)
				}
				if sp.Build == nil {
					return nil, fmt.Errorf("%w: synchronous production %q has no constructor", ErrBadGrammar, key)
				}

				p := Production{Head: symb.Tag(), Symbols: tags}
				g.cons[key] = sp.Build
				g.productions = append(g.productions, p)
				g.byHead[symb.Tag()] = append(g.byHead[symb.Tag()], p)
			}
		}
	}

	for _, l := range litSet.Elements() {
		if _, clash := g.symbols[l]; clash {
			return nil, fmt.Errorf("%w: literal token %q has the same tag as a symbol", ErrBadGrammar, l)
		}
	}

	g.literals = litSet.Elements()
	sort.Strings(g.literals)

	return g, nil
}

// Start returns the grammar's root symbol.
func (g *Grammar) Start() *Symbol { return g.start }

// Productions returns every derived production. The returned slice must not
// be modified.
func (g *Grammar) Productions() []Production { return g.productions }

// ProductionsFor returns the productions with the given head tag, in
// declaration order.
func (g *Grammar) ProductionsFor(head string) []Production { return g.byHead[head] }

// ConstructorFor resolves the constructor for the exact (head, constituent
// tags) pair. There is no partial or prefix matching; a key that was never
// declared yields ok == false.
func (g *Grammar) ConstructorFor(head string, symbols []string) (c Constructor, ok bool) {
	c, ok = g.cons[prodKey(head, symbols)]
	return c, ok
}

// LexicalFor returns the lexical category symbol with the given tag, if the
// grammar contains one.
func (g *Grammar) LexicalFor(tag string) (*Symbol, bool) {
	s, ok := g.lexicals[tag]
	return s, ok
}

// IsNonterminalTag returns whether the tag names a nonterminal of the
// grammar, i.e. one with derived productions.
func (g *Grammar) IsNonterminalTag(tag string) bool {
	_, ok := g.byHead[tag]
	return ok
}

// IsTerminalTag returns whether the tag is matched against single tokens: a
// literal token or a lexical category.
func (g *Grammar) IsTerminalTag(tag string) bool {
	if _, ok := g.lexicals[tag]; ok {
		return true
	}
	return !g.IsNonterminalTag(tag)
}

// Literals returns the union of every literal token string appearing in any
// production of the grammar, sorted. This is the input for tokenizer
// construction.
func (g *Grammar) Literals() []string {
	lits := make([]string, len(g.literals))
	copy(lits, g.literals)
	return lits
}

// String renders the grammar's rule table.
func (g *Grammar) String() string {
	data := [][]string{{"HEAD", "PRODUCTION"}}

	for _, head := range util.OrderedKeys(g.byHead) {
		for _, p := range g.byHead[head] {
			data = append(data, []string{p.Head, strings.Join(p.Symbols, " ")})
		}
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
