package gorewrite

import (
	"errors"
	"fmt"
)

var (
	ErrMismatch        = errors.New("mismatch")
	ErrOccursCheck     = errors.New("occurs check")
	ErrArityMismatch   = errors.New("arity mismatch")
	ErrUnboundVariable = errors.New("unbound variable")
)

// Unify matches pattern against an interned term under subst and returns
// the extended substitution. The input substitution is never mutated; the
// returned one may alias it when no new binding was added. Failures are
// expected and frequent: callers treat them as "this rule does not apply
// here".
func Unify(pattern *Pattern, term *TermPtr, subst *Substitution, store *TermStore) (*Substitution, error) {
	switch pattern.kind {
	case PAT_WILDCARD:
		return subst, nil

	case PAT_VAR:
		if bound, ok := subst.Get(pattern.index); ok {
			if bound == term {
				return subst, nil
			}
			return nil, fmt.Errorf("%w: /%d already bound to a different term",
				ErrMismatch, pattern.index)
		}
		if occurs(pattern.index, term, subst) {
			return nil, fmt.Errorf("%w: /%d occurs in %s", ErrOccursCheck,
				pattern.index, term)
		}
		extended := subst.Clone()
		extended.Bind(pattern.index, term)
		return extended, nil

	case PAT_CONST:
		if pattern.con == term {
			return subst, nil
		}
		return nil, fmt.Errorf("%w: constant %s != %s", ErrMismatch, pattern.con, term)

	case PAT_COMPOUND:
		children := term.Subterms()
		if children == nil {
			return nil, fmt.Errorf("%w: atomic term %s against compound pattern",
				ErrMismatch, term)
		}
		if term.Opcode() != pattern.opcode {
			return nil, fmt.Errorf("%w: opcode %d != %d", ErrMismatch,
				term.Opcode(), pattern.opcode)
		}
		if len(children) != len(pattern.args) {
			return nil, fmt.Errorf("%w: %d children against %d arguments",
				ErrArityMismatch, len(children), len(pattern.args))
		}
		out := subst
		var err error
		for i := 0; i < len(pattern.args); i++ {
			out, err = Unify(pattern.args[i], children[i], out, store)
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	panic("unknown pattern kind")
}

// occurs walks term respecting the current bindings and reports whether
// variable index appears anywhere in it. Required for soundness: a rule
// may map a variable to a context containing other variables.
func occurs(index uint32, term *TermPtr, subst *Substitution) bool {
	if idx, ok := term.Var(); ok {
		if idx == index {
			return true
		}
		if bound, ok := subst.Get(idx); ok {
			return occurs(index, bound, subst)
		}
		return false
	}
	children := term.Subterms()
	for i := 0; i < len(children); i++ {
		if occurs(index, children[i], subst) {
			return true
		}
	}
	return false
}
