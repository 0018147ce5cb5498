package peano

import "github.com/borzacchiello/gorewrite"

// ContradictionGoal recognises states that are provably false: the literal
// false, or an equation whose sides are a successor and zero. Hosts that
// want to terminate the search on a disproved theorem install it alongside
// the identity goal; the default CLI wiring does not, so a non-theorem
// simply exhausts its budget.
func ContradictionGoal(lhs, rhs *gorewrite.TermPtr) bool {
	return isContradiction(lhs) || isContradiction(rhs)
}

func isContradiction(t *gorewrite.TermPtr) bool {
	if truth, ok := t.Term().(*Truth); ok {
		return !truth.Value()
	}
	if t.Opcode() != OP_EQUALS {
		return false
	}
	children := t.Subterms()
	return (isSucc(children[0]) && isZero(children[1])) ||
		(isZero(children[0]) && isSucc(children[1]))
}

func isSucc(t *gorewrite.TermPtr) bool {
	return t.Opcode() == OP_SUCC
}

func isZero(t *gorewrite.TermPtr) bool {
	n, ok := t.Term().(*Num)
	return ok && n.Value() == 0
}
