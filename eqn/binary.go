package eqn

import (
	"fmt"

	"github.com/dekarrin/rezi"
)

// This file contains the format for binary encoding of grounded equations.
// Only Absolute-identifier equations are persistable; relative ones are
// transient parse artifacts and get grounded before storage.

func (a Absolute) MarshalBinary() ([]byte, error) {
	return rezi.EncString(a.Name), nil
}

func (a *Absolute) UnmarshalBinary(data []byte) error {
	var err error
	a.Name, _, err = rezi.DecString(data)
	return err
}

// EncodeEquation serializes a grounded equation to bytes.
func EncodeEquation(eq Equation[Absolute]) []byte {
	var data []byte

	data = append(data, rezi.EncInt(int(eq.Type()))...)

	switch eq.Type() {
	case TypeCompound:
		c := eq.AsCompound()
		data = append(data, rezi.EncInt(int(c.Op))...)
		data = append(data, EncodeEquation(c.Left)...)
		data = append(data, EncodeEquation(c.Right)...)
	case TypeDefining:
		d := eq.AsDefining()
		data = append(data, rezi.EncInt(int(d.Op))...)
		data = append(data, encExpr(d.Left)...)
		data = append(data, encExpr(d.Right)...)
	default:
		c := eq.AsConstraint()
		data = append(data, rezi.EncInt(int(c.Op))...)
		data = append(data, rezi.EncBool(c.Positive)...)
		data = append(data, encExpr(c.Left)...)
		if c.Op != OpExists {
			data = append(data, encExpr(c.Right)...)
		}
	}

	return data
}

// DecodeEquation deserializes a grounded equation from bytes, returning it
// along with the number of bytes consumed.
func DecodeEquation(data []byte) (Equation[Absolute], int, error) {
	var readBytes int

	eqType, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding equation type: %w", err)
	}
	data = data[n:]
	readBytes += n

	switch EqType(eqType) {
	case TypeCompound:
		var c Compound[Absolute]

		op, n, err := rezi.DecInt(data)
		if err != nil {
			return nil, 0, fmt.Errorf("decoding connective: %w", err)
		}
		c.Op = CompoundOp(op)
		data = data[n:]
		readBytes += n

		c.Left, n, err = DecodeEquation(data)
		if err != nil {
			return nil, 0, err
		}
		data = data[n:]
		readBytes += n

		c.Right, n, err = DecodeEquation(data)
		if err != nil {
			return nil, 0, err
		}
		readBytes += n

		return c, readBytes, nil
	case TypeDefining:
		var d Defining[Absolute]

		op, n, err := rezi.DecInt(data)
		if err != nil {
			return nil, 0, fmt.Errorf("decoding operator: %w", err)
		}
		d.Op = DefiningOp(op)
		data = data[n:]
		readBytes += n

		d.Left, n, err = decExpr(data)
		if err != nil {
			return nil, 0, err
		}
		data = data[n:]
		readBytes += n

		d.Right, n, err = decExpr(data)
		if err != nil {
			return nil, 0, err
		}
		readBytes += n

		return d, readBytes, nil
	case TypeConstraint:
		var c Constraint[Absolute]

		op, n, err := rezi.DecInt(data)
		if err != nil {
			return nil, 0, fmt.Errorf("decoding operator: %w", err)
		}
		c.Op = ConstraintOp(op)
		data = data[n:]
		readBytes += n

		c.Positive, n, err = rezi.DecBool(data)
		if err != nil {
			return nil, 0, fmt.Errorf("decoding sign: %w", err)
		}
		data = data[n:]
		readBytes += n

		c.Left, n, err = decExpr(data)
		if err != nil {
			return nil, 0, err
		}
		data = data[n:]
		readBytes += n

		if c.Op != OpExists {
			c.Right, n, err = decExpr(data)
			if err != nil {
				return nil, 0, err
			}
			readBytes += n
		}

		return c, readBytes, nil
	default:
		return nil, 0, fmt.Errorf("unknown equation type: %d", eqType)
	}
}

func encExpr(e Expr[Absolute]) []byte {
	var data []byte

	data = append(data, rezi.EncBinary(e.Root)...)
	data = append(data, rezi.EncInt(len(e.Path))...)
	for _, attr := range e.Path {
		data = append(data, rezi.EncString(attr)...)
	}

	return data
}

func decExpr(data []byte) (Expr[Absolute], int, error) {
	var e Expr[Absolute]
	var readBytes int

	n, err := rezi.DecBinary(data, &e.Root)
	if err != nil {
		return e, 0, fmt.Errorf("decoding expression root: %w", err)
	}
	data = data[n:]
	readBytes += n

	pathLen, n, err := rezi.DecInt(data)
	if err != nil {
		return e, 0, fmt.Errorf("decoding expression path length: %w", err)
	}
	data = data[n:]
	readBytes += n

	if pathLen < 0 {
		return e, 0, fmt.Errorf("expression path length < 0")
	}

	for i := 0; i < pathLen; i++ {
		attr, n, err := rezi.DecString(data)
		if err != nil {
			return e, 0, fmt.Errorf("decoding expression path: %w", err)
		}
		e.Path = append(e.Path, attr)
		data = data[n:]
		readBytes += n
	}

	return e, readBytes, nil
}
