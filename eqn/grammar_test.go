package eqn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/garfish"
)

func analyzer(d Dialect) *garfish.Analyzer[Equation[Relative]] {
	return &garfish.Analyzer[Equation[Relative]]{Root: Language(d)}
}

func Test_Language_Analyze(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect Equation[Relative]
	}{
		{
			name:   "assignment",
			input:  "X = Y",
			expect: Defining[Relative]{Op: OpAssign, Left: testX, Right: testY},
		},
		{
			name:   "containment",
			input:  "X IN Y",
			expect: Defining[Relative]{Op: OpContain, Left: testX, Right: testY},
		},
		{
			name:  "name ending in an operator's letters",
			input: "LOGIN = X",
			expect: Defining[Relative]{
				Op:    OpAssign,
				Left:  Expr[Relative]{Root: Relative{Kind: RefNamed, Name: "LOGIN"}},
				Right: testX,
			},
		},
		{
			name:   "equality constraint",
			input:  "X =c Y",
			expect: Constraint[Relative]{Op: OpEquals, Positive: true, Left: testX, Right: testY},
		},
		{
			name:   "containment constraint",
			input:  "X INc Y",
			expect: Constraint[Relative]{Op: OpContains, Positive: true, Left: testX, Right: testY},
		},
		{
			name:   "bare expression is an existence constraint",
			input:  "X",
			expect: Constraint[Relative]{Op: OpExists, Positive: true, Left: testX},
		},
		{
			name:   "negated assignment is a negative constraint",
			input:  "NOT ( X = Y )",
			expect: Constraint[Relative]{Op: OpEquals, Positive: false, Left: testX, Right: testY},
		},
		{
			name:  "conjunction",
			input: "X = Y AND Y =c Z",
			expect: Compound[Relative]{
				Op:    OpConjunction,
				Left:  Defining[Relative]{Op: OpAssign, Left: testX, Right: testY},
				Right: Constraint[Relative]{Op: OpEquals, Positive: true, Left: testY, Right: testZ},
			},
		},
		{
			name:   "metavariables and selection",
			input:  "(%f SUBJ) = %g",
			expect: Defining[Relative]{
				Op:    OpAssign,
				Left:  Expr[Relative]{Root: Relative{Kind: RefUp}, Path: []string{"SUBJ"}},
				Right: Expr[Relative]{Root: Relative{Kind: RefDown}},
			},
		},
		{
			name:   "nested selection",
			input:  "((%f SUBJ) NUM) =c X",
			expect: Constraint[Relative]{
				Op:       OpEquals,
				Positive: true,
				Left:     Expr[Relative]{Root: Relative{Kind: RefUp}, Path: []string{"SUBJ", "NUM"}},
				Right:    testX,
			},
		},
		{
			name:   "double negation cancels",
			input:  "NOT NOT ( X =c Y )",
			expect: Constraint[Relative]{Op: OpEquals, Positive: true, Left: testX, Right: testY},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			an := analyzer(Dialect{})

			actual, err := an.Analyze(tc.input)

			if !assert.NoError(err) {
				return
			}
			assert.True(tc.expect.Equal(actual), "expected %s, got %s", tc.expect, actual)
		})
	}
}

func Test_Language_Analyze_dialect(t *testing.T) {
	assert := assert.New(t)

	input := "X =c Y OR X INc Z"

	// the default dialect reads OR conjunctively
	defaultAn := analyzer(Dialect{})
	eq, err := defaultAn.Analyze(input)
	if assert.NoError(err) {
		assert.Equal(OpConjunction, eq.AsCompound().Op)
	}

	strictAn := analyzer(Dialect{StrictDisjunction: true})
	eq, err = strictAn.Analyze(input)
	if assert.NoError(err) {
		assert.Equal(OpDisjunction, eq.AsCompound().Op)
	}
}

func Test_Language_Analyze_errors(t *testing.T) {
	assert := assert.New(t)

	an := analyzer(Dialect{})

	// not grammatical at all
	_, err := an.Analyze("= = =")
	assert.ErrorIs(err, garfish.ErrNoParse)

	// unbalanced parens
	_, err = an.Analyze("NOT ( X = Y")
	assert.ErrorIs(err, garfish.ErrNoParse)
}

func Test_Language_endToEndGrounding(t *testing.T) {
	assert := assert.New(t)

	an := analyzer(Dialect{})

	eq, err := an.Analyze("(%f SUBJ) =c %g")
	if !assert.NoError(err) {
		return
	}

	ground := Ground(eq, Absolute{Name: "f1"}, Absolute{Name: "f2"})

	expect := Constraint[Absolute]{
		Op:       OpEquals,
		Positive: true,
		Left:     Expr[Absolute]{Root: Absolute{Name: "f1"}, Path: []string{"SUBJ"}},
		Right:    Expr[Absolute]{Root: Absolute{Name: "f2"}},
	}
	assert.True(expect.Equal(ground), "expected %s, got %s", expect, ground)

	idents := ground.Identifiers()
	assert.Equal(2, idents.Len())
	assert.True(idents.Has(Absolute{Name: "f1"}))
	assert.True(idents.Has(Absolute{Name: "f2"}))
}
