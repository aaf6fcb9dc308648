package trans

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/garfish/lex"
	"github.com/dekarrin/garfish/parse"
	"github.com/dekarrin/garfish/sym"
)

func allDigits(lexeme string) bool {
	if lexeme == "" {
		return false
	}
	for _, r := range lexeme {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// sumGrammar is Sum -> Num "+" Num; Num -> digit, reconstructing to the
// integer sum.
func sumGrammar(t *testing.T) *sym.Grammar {
	digit := sym.NewLexical("digit", allDigits)
	num := sym.NewNonterminal("Num", func() []sym.SyncProduction {
		return []sym.SyncProduction{
			{
				Of: []sym.Constituent{digit},
				Build: func(args []interface{}) (interface{}, error) {
					lexeme, ok := args[0].(string)
					if !ok {
						return nil, fmt.Errorf("constituent is not a lexeme")
					}
					return strconv.Atoi(lexeme)
				},
			},
		}
	})
	sum := sym.NewNonterminal("Sum", func() []sym.SyncProduction {
		return []sym.SyncProduction{
			{
				Of: []sym.Constituent{num, sym.Lit("+"), num},
				Build: func(args []interface{}) (interface{}, error) {
					left, lok := args[0].(int)
					right, rok := args[2].(int)
					if !lok || !rok {
						return nil, fmt.Errorf("constituents are not numbers")
					}
					return left + right, nil
				},
			},
		}
	})

	g, err := sum.Grammar()
	if err != nil {
		t.Fatalf("building grammar: %v", err)
	}
	return g
}

func wordTok(lexeme string) lex.Token {
	return lex.Token{Class: lex.ClassWord, Lexeme: lexeme}
}

func litTok(lexeme string) lex.Token {
	return lex.Token{Class: lex.ClassLiteral, Lexeme: lexeme}
}

func sumTree(left, right string) *parse.Tree {
	return &parse.Tree{
		Value: "Sum",
		Children: []*parse.Tree{
			{Value: "Num", Children: []*parse.Tree{
				{Terminal: true, Value: "digit", Source: wordTok(left)},
			}},
			{Terminal: true, Value: "+", Source: litTok("+")},
			{Value: "Num", Children: []*parse.Tree{
				{Terminal: true, Value: "digit", Source: wordTok(right)},
			}},
		},
	}
}

func Test_Reconstruct(t *testing.T) {
	assert := assert.New(t)

	g := sumGrammar(t)

	val, err := Reconstruct(g, sumTree("3", "4"))

	if !assert.NoError(err) {
		return
	}
	assert.Equal(7, val)
}

func Test_Reconstruct_exactKeyOnly(t *testing.T) {
	testCases := []struct {
		name string
		node *parse.Tree
	}{
		{
			name: "undeclared key with similar production present",
			node: &parse.Tree{
				Value: "Sum",
				Children: []*parse.Tree{
					{Value: "Num", Children: []*parse.Tree{
						{Terminal: true, Value: "digit", Source: wordTok("3")},
					}},
					{Terminal: true, Value: "-", Source: litTok("-")},
					{Value: "Num", Children: []*parse.Tree{
						{Terminal: true, Value: "digit", Source: wordTok("4")},
					}},
				},
			},
		},
		{
			name: "prefix of a declared key",
			node: &parse.Tree{
				Value: "Sum",
				Children: []*parse.Tree{
					{Value: "Num", Children: []*parse.Tree{
						{Terminal: true, Value: "digit", Source: wordTok("3")},
					}},
				},
			},
		},
		{
			name: "undeclared head",
			node: &parse.Tree{
				Value: "Difference",
				Children: []*parse.Tree{
					{Value: "Num", Children: []*parse.Tree{
						{Terminal: true, Value: "digit", Source: wordTok("3")},
					}},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := sumGrammar(t)

			_, err := Reconstruct(g, tc.node)

			assert.ErrorIs(err, ErrNoValue)
		})
	}
}

func Test_Reconstruct_lexicalMismatch(t *testing.T) {
	assert := assert.New(t)

	g := sumGrammar(t)

	node := &parse.Tree{Value: "Num", Children: []*parse.Tree{
		{Terminal: true, Value: "digit", Source: wordTok("three")},
	}}

	_, err := Reconstruct(g, node)

	assert.ErrorIs(err, ErrLexicalMismatch)
	assert.ErrorIs(err, ErrNoValue)
}

func Test_Reconstruct_constructorDeclines(t *testing.T) {
	assert := assert.New(t)

	cat := sym.NewLexical("word", func(lexeme string) bool { return lexeme != "" })
	root := sym.NewNonterminal("Root", func() []sym.SyncProduction {
		return []sym.SyncProduction{
			{
				Of: []sym.Constituent{cat},
				Build: func(args []interface{}) (interface{}, error) {
					return nil, fmt.Errorf("value not acceptable here")
				},
			},
		}
	})
	g, err := root.Grammar()
	if !assert.NoError(err) {
		return
	}

	node := &parse.Tree{Value: "Root", Children: []*parse.Tree{
		{Terminal: true, Value: "word", Source: wordTok("anything")},
	}}

	_, err = Reconstruct(g, node)

	// a declining constructor is a recoverable mismatch, not a fatal error
	assert.ErrorIs(err, ErrNoValue)
}

func Test_Reconstruct_emptyNode(t *testing.T) {
	assert := assert.New(t)

	g := sumGrammar(t)

	_, err := Reconstruct(g, &parse.Tree{Empty: true})
	assert.ErrorIs(err, ErrNoValue)

	_, err = Reconstruct(g, nil)
	assert.ErrorIs(err, ErrNoValue)
}
