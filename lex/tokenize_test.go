package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewTokenizer(t *testing.T) {
	testCases := []struct {
		name      string
		literals  []string
		expectErr bool
	}{
		{
			name:     "empty literal set",
			literals: []string{},
		},
		{
			name:     "single literal",
			literals: []string{"+"},
		},
		{
			name:     "duplicate literals are collapsed",
			literals: []string{"+", "+"},
		},
		{
			name:      "empty string literal",
			literals:  []string{""},
			expectErr: true,
		},
		{
			name:     "prefix pair with distinct continuation",
			literals: []string{"=", "=c"},
		},
		{
			name:      "ambiguous prefix overlap",
			literals:  []string{"=", "=="},
			expectErr: true,
		},
		{
			name:      "literal splits two ways",
			literals:  []string{"ab", "a", "b"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := NewTokenizer(tc.literals)

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_NewTokenizer_ambiguityIsConfigError(t *testing.T) {
	assert := assert.New(t)

	_, err := NewTokenizer([]string{"ab", "a", "b"})

	assert.ErrorIs(err, ErrAmbiguousTokens)
}

func Test_Tokenizer_Tokenize(t *testing.T) {
	testCases := []struct {
		name     string
		literals []string
		input    string
		expect   []Token
	}{
		{
			name:     "empty input",
			literals: []string{"+"},
			input:    "",
			expect:   []Token{},
		},
		{
			name:     "digits and operator",
			literals: []string{"+"},
			input:    "3 + 4",
			expect: []Token{
				{Class: ClassWord, Lexeme: "3"},
				{Class: ClassLiteral, Lexeme: "+"},
				{Class: ClassWord, Lexeme: "4"},
			},
		},
		{
			name:     "longest match wins",
			literals: []string{"=", "=c"},
			input:    "X =c Y",
			expect: []Token{
				{Class: ClassWord, Lexeme: "X"},
				{Class: ClassLiteral, Lexeme: "=c"},
				{Class: ClassWord, Lexeme: "Y"},
			},
		},
		{
			name:     "literal without surrounding space",
			literals: []string{"(", ")"},
			input:    "(X)",
			expect: []Token{
				{Class: ClassLiteral, Lexeme: "("},
				{Class: ClassWord, Lexeme: "X"},
				{Class: ClassLiteral, Lexeme: ")"},
			},
		},
		{
			name:     "wordy literal needs a word boundary",
			literals: []string{"IN"},
			input:    "INVOICE IN SET",
			expect: []Token{
				{Class: ClassWord, Lexeme: "INVOICE"},
				{Class: ClassLiteral, Lexeme: "IN"},
				{Class: ClassWord, Lexeme: "SET"},
			},
		},
		{
			name:     "wordy literal is not split out of a word's tail",
			literals: []string{"IN", "=", "NOT"},
			input:    "LOGIN = X",
			expect: []Token{
				{Class: ClassWord, Lexeme: "LOGIN"},
				{Class: ClassLiteral, Lexeme: "="},
				{Class: ClassWord, Lexeme: "X"},
			},
		},
		{
			name:     "wordy literal at end of input",
			literals: []string{"IN"},
			input:    "X IN",
			expect: []Token{
				{Class: ClassWord, Lexeme: "X"},
				{Class: ClassLiteral, Lexeme: "IN"},
			},
		},
		{
			name:     "symbolic literal inside a word splits it",
			literals: []string{"%f", "%g"},
			input:    "%f%g",
			expect: []Token{
				{Class: ClassLiteral, Lexeme: "%f"},
				{Class: ClassLiteral, Lexeme: "%g"},
			},
		},
		{
			name:     "multi-line input",
			literals: []string{"="},
			input:    "X = Y\nA = B",
			expect: []Token{
				{Class: ClassWord, Lexeme: "X"},
				{Class: ClassLiteral, Lexeme: "="},
				{Class: ClassWord, Lexeme: "Y"},
				{Class: ClassWord, Lexeme: "A"},
				{Class: ClassLiteral, Lexeme: "="},
				{Class: ClassWord, Lexeme: "B"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			tz, err := NewTokenizer(tc.literals)
			if !assert.NoError(err) {
				return
			}

			actual := tz.Tokenize(tc.input)

			if !assert.Len(actual, len(tc.expect)) {
				return
			}
			for i := range tc.expect {
				assert.True(tc.expect[i].Equal(actual[i]), "token %d: expected %s, got %s", i, tc.expect[i], actual[i])
			}
		})
	}
}

func Test_Tokenizer_Tokenize_positions(t *testing.T) {
	assert := assert.New(t)

	tz, err := NewTokenizer([]string{"="})
	if !assert.NoError(err) {
		return
	}

	toks := tz.Tokenize("X = Y\nZ")
	if !assert.Len(toks, 4) {
		return
	}

	assert.Equal(1, toks[0].Line)
	assert.Equal(1, toks[1].Line)
	assert.Equal(1, toks[2].Line)
	assert.Equal(2, toks[3].Line)
	assert.Equal("X = Y", toks[0].FullLine)
	assert.Equal("Z", toks[3].FullLine)
}
