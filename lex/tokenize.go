package lex

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ErrAmbiguousTokens is returned by NewTokenizer when the literal token set
// admits more than one tokenization of some input. This is a configuration
// error in the grammar declarations, not a property of any particular input.
var ErrAmbiguousTokens = errors.New("ambiguous literal token set")

// Tokenizer splits input strings into tokens by longest match against a fixed
// set of literal token strings. A Tokenizer is immutable once created and safe
// for concurrent use.
type Tokenizer struct {
	// literals sorted longest-first so the first match is the longest one.
	literals []string
}

// NewTokenizer creates a Tokenizer for the given literal token strings.
// Duplicates are removed. It returns a non-nil error wrapping
// ErrAmbiguousTokens if one literal is a proper prefix of another in a way
// that permits two tokenizations of the same input.
func NewTokenizer(literals []string) (*Tokenizer, error) {
	seen := map[string]bool{}
	lits := make([]string, 0, len(literals))
	for _, l := range literals {
		if l == "" {
			return nil, fmt.Errorf("empty string used as a literal token")
		}
		if !seen[l] {
			seen[l] = true
			lits = append(lits, l)
		}
	}

	sort.Slice(lits, func(i, j int) bool {
		if len(lits[i]) != len(lits[j]) {
			return len(lits[i]) > len(lits[j])
		}
		return lits[i] < lits[j]
	})

	tz := &Tokenizer{literals: lits}

	// a longer literal must not be splittable into a shorter literal followed
	// by text that itself starts a literal, or longest-match would be choosing
	// between two valid tokenizations
	for _, longer := range lits {
		for _, shorter := range lits {
			if len(shorter) >= len(longer) || !strings.HasPrefix(longer, shorter) {
				continue
			}
			rest := longer[len(shorter):]
			for _, other := range lits {
				if strings.HasPrefix(rest, other) || strings.HasPrefix(other, rest) {
					return nil, fmt.Errorf("%w: %q splits into %q and a token starting like %q", ErrAmbiguousTokens, longer, shorter, rest)
				}
			}
		}
	}

	return tz, nil
}

// Literals returns the literal token strings the Tokenizer matches, longest
// first.
func (tz *Tokenizer) Literals() []string {
	lits := make([]string, len(tz.literals))
	copy(lits, tz.literals)
	return lits
}

// Tokenize splits s into tokens. Literal tokens are matched longest-first; a
// literal consisting only of word characters is only matched at a word
// boundary, so "IN" does not match inside "INVOICE". Any text that matches no
// literal accumulates into word tokens, which end at whitespace or at the
// start of a literal match. Tokenize is total; unrecognized input simply
// becomes word tokens.
func (tz *Tokenizer) Tokenize(s string) []Token {
	var tokens []Token

	lines := strings.Split(s, "\n")
	for lineIdx, line := range lines {
		runes := []rune(line)
		i := 0
		for i < len(runes) {
			if unicode.IsSpace(runes[i]) {
				i++
				continue
			}

			if lit, ok := tz.matchLiteral(runes, i); ok {
				tokens = append(tokens, Token{
					Class:    ClassLiteral,
					Lexeme:   lit,
					Line:     lineIdx + 1,
					LinePos:  i + 1,
					FullLine: line,
				})
				i += len([]rune(lit))
				continue
			}

			// accumulate a word until whitespace or the start of a literal
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) {
				if _, ok := tz.matchLiteral(runes, i); ok {
					break
				}
				i++
			}
			tokens = append(tokens, Token{
				Class:    ClassWord,
				Lexeme:   string(runes[start:i]),
				Line:     lineIdx + 1,
				LinePos:  start + 1,
				FullLine: line,
			})
		}
	}

	return tokens
}

// matchLiteral finds the longest literal matching at runes[at:], honoring the
// word-boundary rule for all-word-character literals: a wordy literal must
// have a non-word character (or the edge of input) on both sides.
func (tz *Tokenizer) matchLiteral(runes []rune, at int) (string, bool) {
	rest := string(runes[at:])
	for _, lit := range tz.literals {
		if !strings.HasPrefix(rest, lit) {
			continue
		}
		if isWordy(lit) {
			if at > 0 && isWordChar(runes[at-1]) {
				continue
			}
			after := at + len([]rune(lit))
			if after < len(runes) && isWordChar(runes[after]) {
				continue
			}
		}
		return lit, true
	}
	return "", false
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isWordy(s string) bool {
	for _, r := range s {
		if !isWordChar(r) {
			return false
		}
	}
	return true
}
