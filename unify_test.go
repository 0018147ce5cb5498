package gorewrite

import (
	"errors"
	"testing"
)

func TestUnifyVar(t *testing.T) {
	s := newTestStore()

	term := wrap(s, atom(s, 1))
	subst, err := Unify(Var(0), term, NewSubstitution(), s)
	if err != nil {
		t.Error(err)
		return
	}
	bound, ok := subst.Get(0)
	if !ok || bound != term {
		t.Error("expected /0 bound to the term")
	}
}

func TestUnifyVarConsistency(t *testing.T) {
	s := newTestStore()

	a, b := atom(s, 1), atom(s, 2)

	// (/0 . /0) against (a . a) binds once
	subst, err := Unify(Compound(T_PAIR, Var(0), Var(0)), pair(s, a, a),
		NewSubstitution(), s)
	if err != nil {
		t.Error(err)
		return
	}
	if subst.Len() != 1 {
		t.Errorf("expected 1 binding, got %d", subst.Len())
	}

	// (/0 . /0) against (a . b) must fail
	_, err = Unify(Compound(T_PAIR, Var(0), Var(0)), pair(s, a, b),
		NewSubstitution(), s)
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestUnifyWildcard(t *testing.T) {
	s := newTestStore()

	subst := NewSubstitution()
	out, err := Unify(Wildcard(), pair(s, atom(s, 1), atom(s, 2)), subst, s)
	if err != nil {
		t.Error(err)
		return
	}
	if out.Len() != 0 {
		t.Error("wildcard must not bind")
	}
}

func TestUnifyConst(t *testing.T) {
	s := newTestStore()

	a := atom(s, 1)
	if _, err := Unify(Const(a), a, NewSubstitution(), s); err != nil {
		t.Error(err)
	}
	_, err := Unify(Const(a), atom(s, 2), NewSubstitution(), s)
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestUnifyCompound(t *testing.T) {
	s := newTestStore()

	a, b := atom(s, 1), atom(s, 2)
	term := pair(s, wrap(s, a), b)

	subst, err := Unify(Compound(T_PAIR, Compound(T_WRAP, Var(0)), Var(1)),
		term, NewSubstitution(), s)
	if err != nil {
		t.Error(err)
		return
	}
	if got, _ := subst.Get(0); got != a {
		t.Error("expected /0 bound to a")
	}
	if got, _ := subst.Get(1); got != b {
		t.Error("expected /1 bound to b")
	}

	// opcode mismatch
	_, err = Unify(Compound(T_WRAP, Var(0)), term, NewSubstitution(), s)
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}

	// compound pattern against a leaf
	_, err = Unify(Compound(T_WRAP, Var(0)), a, NewSubstitution(), s)
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestUnifyArityMismatch(t *testing.T) {
	s := newTestStore()

	term := pair(s, atom(s, 1), atom(s, 2))
	_, err := Unify(&Pattern{kind: PAT_COMPOUND, opcode: T_PAIR,
		args: []*Pattern{Var(0)}}, term, NewSubstitution(), s)
	if !errors.Is(err, ErrArityMismatch) {
		t.Errorf("expected ErrArityMismatch, got %v", err)
	}
}

func TestOccursCheck(t *testing.T) {
	s := newTestStore()

	// /0 against a term containing /0
	_, err := Unify(Var(0), wrap(s, tvar(s, 0)), NewSubstitution(), s)
	if !errors.Is(err, ErrOccursCheck) {
		t.Errorf("expected ErrOccursCheck, got %v", err)
	}

	// indirectly through an existing binding: /1 -> /0, then /0 vs w(/1)
	subst := NewSubstitution()
	subst.Bind(1, tvar(s, 0))
	_, err = Unify(Var(0), wrap(s, tvar(s, 1)), subst, s)
	if !errors.Is(err, ErrOccursCheck) {
		t.Errorf("expected ErrOccursCheck, got %v", err)
	}
}

func TestUnifySoundness(t *testing.T) {
	// If unify(p, t) yields a substitution, instantiating p under it must
	// reproduce t exactly.
	s := newTestStore()

	a, b := atom(s, 1), atom(s, 2)
	cases := []struct {
		pattern *Pattern
		term    *TermPtr
	}{
		{Var(0), wrap(s, a)},
		{Const(b), b},
		{Compound(T_PAIR, Var(0), Var(1)), pair(s, a, b)},
		{Compound(T_PAIR, Var(0), Var(0)), pair(s, wrap(s, b), wrap(s, b))},
		{Compound(T_WRAP, Compound(T_PAIR, Const(a), Var(2))), wrap(s, pair(s, a, b))},
	}

	for i, tc := range cases {
		subst, err := Unify(tc.pattern, tc.term, NewSubstitution(), s)
		if err != nil {
			t.Errorf("case %d: %v", i, err)
			continue
		}
		back, err := Instantiate(tc.pattern, subst, s)
		if err != nil {
			t.Errorf("case %d: %v", i, err)
			continue
		}
		if back != tc.term {
			t.Errorf("case %d: instantiate(%s) = %s, want %s", i, tc.pattern,
				back, tc.term)
		}
	}
}

func TestSubstitutionClone(t *testing.T) {
	s := newTestStore()

	subst := NewSubstitution()
	subst.Bind(0, atom(s, 1))

	clone := subst.Clone()
	clone.Bind(1, atom(s, 2))

	if subst.Has(1) {
		t.Error("clone must not mutate the original")
	}
	if !clone.Has(0) {
		t.Error("clone must carry the original bindings")
	}
}
