package peano

import (
	"fmt"

	"github.com/borzacchiello/gorewrite"
)

// EvalGround evaluates a ground arithmetic term to a natural number.
// Fails on variables, equations and truth literals.
func EvalGround(t *gorewrite.TermPtr) (uint64, error) {
	switch t.Opcode() {
	case OP_NUM:
		return t.Term().(*Num).Value(), nil
	case OP_SUCC:
		v, err := EvalGround(t.Subterms()[0])
		if err != nil {
			return 0, err
		}
		return v + 1, nil
	case OP_ADD:
		children := t.Subterms()
		l, err := EvalGround(children[0])
		if err != nil {
			return 0, err
		}
		r, err := EvalGround(children[1])
		if err != nil {
			return 0, err
		}
		return l + r, nil
	}
	return 0, fmt.Errorf("EvalGround(): %s is not a ground arithmetic term", t)
}

// IsGround reports whether no variable leaf occurs in t.
func IsGround(t *gorewrite.TermPtr) bool {
	if _, ok := t.Var(); ok {
		return false
	}
	for _, child := range t.Subterms() {
		if !IsGround(child) {
			return false
		}
	}
	return true
}
