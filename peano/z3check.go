package peano

import (
	"fmt"
	"math/big"

	"github.com/aclements/go-z3/z3"
	"github.com/borzacchiello/gorewrite"
)

// Oracle cross-checks ground Peano equations with Z3, independently of the
// rewriting engine. Naturals are modelled as 64-bit bitvectors: zero and
// literals map to constants, successor to +1, addition to bitvector
// addition.
type Oracle struct {
	ctx    *z3.Context
	solver *z3.Solver
}

func NewOracle() *Oracle {
	cfg := z3.NewContextConfig()
	ctx := z3.NewContext(cfg)
	return &Oracle{
		ctx:    ctx,
		solver: z3.NewSolver(ctx),
	}
}

// CheckEquation reports whether a ground equation holds: it asserts the
// negation and asks Z3 for a counterexample. Terms containing variables
// are rejected.
func (o *Oracle) CheckEquation(eq *gorewrite.TermPtr) (bool, error) {
	if eq.Opcode() != OP_EQUALS {
		return false, fmt.Errorf("CheckEquation(): %s is not an equation", eq)
	}
	if !IsGround(eq) {
		return false, fmt.Errorf("CheckEquation(): %s is not ground", eq)
	}

	children := eq.Subterms()
	lhs, err := o.convert(children[0])
	if err != nil {
		return false, err
	}
	rhs, err := o.convert(children[1])
	if err != nil {
		return false, err
	}

	o.solver.Reset()
	o.solver.Assert(lhs.Eq(rhs).Not())
	sat, err := o.solver.Check()
	if err != nil {
		return false, err
	}
	return !sat, nil
}

func (o *Oracle) convert(t *gorewrite.TermPtr) (z3.BV, error) {
	switch t.Opcode() {
	case OP_NUM:
		n := t.Term().(*Num)
		v := o.ctx.FromBigInt(new(big.Int).SetUint64(n.Value()), o.ctx.BVSort(64))
		return v.(z3.BV), nil
	case OP_SUCC:
		child, err := o.convert(t.Subterms()[0])
		if err != nil {
			return z3.BV{}, err
		}
		one := o.ctx.FromBigInt(big.NewInt(1), o.ctx.BVSort(64))
		return child.Add(one.(z3.BV)), nil
	case OP_ADD:
		children := t.Subterms()
		lhs, err := o.convert(children[0])
		if err != nil {
			return z3.BV{}, err
		}
		rhs, err := o.convert(children[1])
		if err != nil {
			return z3.BV{}, err
		}
		return lhs.Add(rhs), nil
	}
	return z3.BV{}, fmt.Errorf("convert(): unexpected opcode %d in %s", t.Opcode(), t)
}
