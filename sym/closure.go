package sym

import (
	"sort"

	"github.com/dekarrin/garfish/internal/util"
)

// Closure returns the set of symbols transitively reachable from s through
// declared production constituents, excluding s itself. The declaration graph
// may contain cycles, both direct self-reference and mutual reference; the
// traversal carries a visited set shared across the whole computation, so
// each reachable symbol is expanded exactly once and the cost is linear in
// the number of distinct symbols even on graphs with heavily shared
// sub-grammars.
//
// The result is computed once per symbol and cached, so repeated use of a
// symbol as a root, or as a shared sub-grammar, costs one traversal. The
// returned slice is ordered by tag for determinism and must not be modified.
func (s *Symbol) Closure() []*Symbol {
	s.closureOnce.Do(func() {
		seen := util.KeySetOf([]*Symbol{s})
		frontier := []*Symbol{s}

		for len(frontier) > 0 {
			cur := frontier[0]
			frontier = frontier[1:]

			for _, p := range cur.Productions() {
				for _, c := range p.Of {
					if cs, ok := c.(*Symbol); ok && !seen.Has(cs) {
						seen.Add(cs)
						frontier = append(frontier, cs)
					}
				}
			}
		}

		// the root is not part of its own closure, even when reachable from
		// itself through a cycle
		seen.Remove(s)

		s.closure = seen.Elements()
		sort.Slice(s.closure, func(i, j int) bool {
			return s.closure[i].tag < s.closure[j].tag
		})
	})
	return s.closure
}
