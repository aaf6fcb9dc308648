package eqn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_EncodeEquation_roundTrip(t *testing.T) {
	assert := assert.New(t)

	// a grounded equation exercising every variant
	eq := Compound[Absolute]{
		Op: OpConjunction,
		Left: Defining[Absolute]{
			Op:    OpAssign,
			Left:  Expr[Absolute]{Root: Absolute{Name: "f1"}, Path: []string{"SUBJ", "NUM"}},
			Right: Expr[Absolute]{Root: Absolute{Name: "f2"}},
		},
		Right: Compound[Absolute]{
			Op: OpDisjunction,
			Left: Constraint[Absolute]{
				Op:       OpEquals,
				Positive: false,
				Left:     Expr[Absolute]{Root: Absolute{Name: "f2"}, Path: []string{"CASE"}},
				Right:    Expr[Absolute]{Root: Absolute{Name: "f3"}},
			},
			Right: Constraint[Absolute]{
				Op:       OpExists,
				Positive: true,
				Left:     Expr[Absolute]{Root: Absolute{Name: "f1"}},
			},
		},
	}

	data := EncodeEquation(eq)
	decoded, n, err := DecodeEquation(data)

	if !assert.NoError(err) {
		return
	}
	assert.Equal(len(data), n)
	assert.True(eq.Equal(decoded), "expected %s, got %s", eq, decoded)
}

func Test_DecodeEquation_badData(t *testing.T) {
	assert := assert.New(t)

	_, _, err := DecodeEquation(nil)
	assert.Error(err)

	_, _, err = DecodeEquation([]byte{0x01})
	assert.Error(err)
}
