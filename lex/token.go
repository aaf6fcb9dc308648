// Package lex provides the tokenizer derived from a grammar's literal token
// set. It splits input strings into literal tokens and free-form words by
// longest match; words are later checked against lexical category membership
// by the parser and reconstructor.
package lex

import "fmt"

// Class is the lexical class of a token.
type Class int

const (
	// ClassLiteral is a token that exactly matches one of the tokenizer's
	// literal token strings.
	ClassLiteral Class = iota

	// ClassWord is a maximal run of input that matches no literal token. Words
	// are candidates for lexical category membership.
	ClassWord
)

func (c Class) String() string {
	if c == ClassLiteral {
		return "literal"
	}
	return "word"
}

// Token is a single token scanned from input text.
type Token struct {
	// Class is whether the token is a literal token or a free word.
	Class Class

	// Lexeme is the exact text of the token.
	Lexeme string

	// Line is the 1-based line number the token was found on.
	Line int

	// LinePos is the 1-based position of the token within its line.
	LinePos int

	// FullLine is the complete line of input the token was found on, without
	// its line terminator.
	FullLine string
}

func (t Token) String() string {
	return fmt.Sprintf("(%s %q)", t.Class, t.Lexeme)
}

// Equal returns whether the token is equal to another. Position information is
// not considered; two tokens are equal if they have the same class and lexeme.
func (t Token) Equal(o any) bool {
	other, ok := o.(Token)
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*Token)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return t.Class == other.Class && t.Lexeme == other.Lexeme
}
