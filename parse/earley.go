package parse

import (
	"fmt"

	"github.com/dekarrin/garfish/lex"
	"github.com/dekarrin/garfish/sym"
)

// Parser is an Earley chart parser for one derived grammar. It is immutable
// after creation and safe for concurrent Parse calls; each call carries its
// own chart.
type Parser struct {
	g     *sym.Grammar
	prods []sym.Production
}

// NewParser creates a Parser for the given grammar.
func NewParser(g *sym.Grammar) *Parser {
	return &Parser{
		g:     g,
		prods: g.Productions(),
	}
}

// item is an Earley item: a production with a dot position and the chart
// position the derivation started at.
type item struct {
	prod   int
	dot    int
	origin int
}

func (it item) String() string {
	return fmt.Sprintf("[#%d • %d, %d]", it.prod, it.dot, it.origin)
}

// itemSet is the set of items at one chart position. Iteration order is
// insertion order so new items may be added while iterating.
type itemSet struct {
	items []item
	has   map[item]bool
}

func newItemSet() *itemSet {
	return &itemSet{has: map[item]bool{}}
}

func (s *itemSet) add(it item) bool {
	if s.has[it] {
		return false
	}
	s.has[it] = true
	s.items = append(s.items, it)
	return true
}

// span identifies one completed derivation extent: a head tag over the token
// range [start, end).
type span struct {
	tag   string
	start int
	end   int
}

// Parse parses the token sequence and returns every parse tree that spans all
// of it and is rooted at the grammar's start symbol. An empty result means no
// valid parse exists; more than one tree means the input is ambiguous under
// the grammar.
func (p *Parser) Parse(tokens []lex.Token) []*Tree {
	n := len(tokens)

	chart := make([]*itemSet, n+1)
	for i := range chart {
		chart[i] = newItemSet()
	}

	startTag := p.g.Start().Tag()
	for pi, prod := range p.prods {
		if prod.Head == startTag {
			chart[0].add(item{prod: pi})
		}
	}

	for i := 0; i <= n; i++ {
		// items may be added to chart[i] during iteration
		for j := 0; j < len(chart[i].items); j++ {
			it := chart[i].items[j]
			prod := p.prods[it.prod]

			if it.dot >= len(prod.Symbols) {
				p.complete(chart, i, it)
				continue
			}

			next := prod.Symbols[it.dot]
			if p.g.IsNonterminalTag(next) {
				p.predict(chart, i, next)
			} else if i < n && p.terminalMatches(next, tokens[i]) {
				chart[i+1].add(item{prod: it.prod, dot: it.dot + 1, origin: it.origin})
			}
		}
	}

	// index completed derivations by extent for tree building
	completed := map[span][]int{}
	for end := 0; end <= n; end++ {
		for _, it := range chart[end].items {
			prod := p.prods[it.prod]
			if it.dot >= len(prod.Symbols) {
				sp := span{tag: prod.Head, start: it.origin, end: end}
				completed[sp] = append(completed[sp], it.prod)
			}
		}
	}

	b := &treeBuilder{p: p, tokens: tokens, completed: completed, visiting: map[span]bool{}}
	return b.treesFor(startTag, 0, n)
}

// predict adds items for every production of the nonterminal after the dot.
func (p *Parser) predict(chart []*itemSet, pos int, tag string) {
	for pi, prod := range p.prods {
		if prod.Head == tag {
			chart[pos].add(item{prod: pi, origin: pos})
		}
	}
}

// complete advances every item at the completed item's origin that was
// waiting on its head.
func (p *Parser) complete(chart []*itemSet, pos int, done item) {
	head := p.prods[done.prod].Head
	for _, waiting := range chart[done.origin].items {
		prod := p.prods[waiting.prod]
		if waiting.dot < len(prod.Symbols) && prod.Symbols[waiting.dot] == head {
			chart[pos].add(item{prod: waiting.prod, dot: waiting.dot + 1, origin: waiting.origin})
		}
	}
}

// terminalMatches reports whether the token satisfies the terminal tag: a
// lexical category matches a word satisfying its membership predicate, any
// other terminal tag is a literal token matched by exact lexeme.
func (p *Parser) terminalMatches(tag string, tok lex.Token) bool {
	if cat, ok := p.g.LexicalFor(tag); ok {
		return tok.Class == lex.ClassWord && cat.Matches(tok.Lexeme)
	}
	return tok.Class == lex.ClassLiteral && tok.Lexeme == tag
}

// treeBuilder enumerates parse trees over the completed-derivation index left
// behind by recognition.
type treeBuilder struct {
	p         *Parser
	tokens    []lex.Token
	completed map[span][]int

	// guards against re-entering the same extent mid-derivation, which would
	// otherwise recurse forever on unit-production cycles
	visiting map[span]bool
}

func (b *treeBuilder) treesFor(tag string, start, end int) []*Tree {
	if b.p.g.IsTerminalTag(tag) {
		if end == start+1 && start < len(b.tokens) && b.p.terminalMatches(tag, b.tokens[start]) {
			return []*Tree{{Terminal: true, Value: tag, Source: b.tokens[start]}}
		}
		return nil
	}

	sp := span{tag: tag, start: start, end: end}
	if b.visiting[sp] {
		return nil
	}
	b.visiting[sp] = true
	defer delete(b.visiting, sp)

	var trees []*Tree
	for _, pi := range b.completed[sp] {
		prod := b.p.prods[pi]
		for _, children := range b.childSeqs(prod.Symbols, start, end) {
			trees = append(trees, &Tree{Value: tag, Children: children})
		}
	}
	return trees
}

// childSeqs enumerates every way the symbol sequence can derive exactly the
// token range [start, end), returning one child-node slice per way.
func (b *treeBuilder) childSeqs(symbols []string, start, end int) [][]*Tree {
	if len(symbols) == 0 {
		if start == end {
			return [][]*Tree{{}}
		}
		return nil
	}

	first := symbols[0]
	rest := symbols[1:]

	var results [][]*Tree
	for _, mid := range b.extentsOf(first, start, end) {
		firstTrees := b.treesFor(first, start, mid)
		if len(firstTrees) == 0 {
			continue
		}
		for _, restSeq := range b.childSeqs(rest, mid, end) {
			for _, ft := range firstTrees {
				children := make([]*Tree, 0, len(restSeq)+1)
				children = append(children, ft)
				children = append(children, restSeq...)
				results = append(results, children)
			}
		}
	}
	return results
}

// extentsOf returns the possible end positions of a derivation of tag
// starting at start and ending no later than max.
func (b *treeBuilder) extentsOf(tag string, start, max int) []int {
	if b.p.g.IsTerminalTag(tag) {
		if start < len(b.tokens) && start+1 <= max && b.p.terminalMatches(tag, b.tokens[start]) {
			return []int{start + 1}
		}
		return nil
	}

	var ends []int
	for end := start + 1; end <= max; end++ {
		if len(b.completed[span{tag: tag, start: start, end: end}]) > 0 {
			ends = append(ends, end)
		}
	}
	return ends
}
