package peano

import (
	"errors"
	"testing"

	"github.com/borzacchiello/gorewrite"
)

func TestParseTheorem(t *testing.T) {
	s := gorewrite.NewTermStore(NewSignature())

	lhs, rhs, err := ParseTheorem(s, "S(0) + 0 = S(0)")
	if err != nil {
		t.Error(err)
		return
	}

	zero := NewNum(s, 0)
	one := NewSucc(s, zero)
	if lhs != NewEquals(s, NewAdd(s, one, zero), one) {
		t.Errorf("lhs: got %s", lhs)
	}
	if rhs != NewTruth(s, true) {
		t.Errorf("rhs: got %s", rhs)
	}
}

func TestParseTerm(t *testing.T) {
	s := gorewrite.NewTermStore(NewSignature())

	zero := NewNum(s, 0)
	cases := []struct {
		input string
		want  *gorewrite.TermPtr
	}{
		{"0", zero},
		{"S(0)", NewSucc(s, zero)},
		{"S( S(0) )", NewSucc(s, NewSucc(s, zero))},
		{"0 + S(0)", NewAdd(s, zero, NewSucc(s, zero))},
		// addition is left-associative
		{"0 + 0 + S(0)", NewAdd(s, NewAdd(s, zero, zero), NewSucc(s, zero))},
		{"0 + (0 + S(0))", NewAdd(s, zero, NewAdd(s, zero, NewSucc(s, zero)))},
		{"/1", NewVar(s, 1)},
		{"42", NewNum(s, 42)},
	}
	for _, tc := range cases {
		got, err := ParseTerm(s, tc.input)
		if err != nil {
			t.Errorf("%q: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestParsePattern(t *testing.T) {
	s := gorewrite.NewTermStore(NewSignature())

	pat, err := ParsePattern(s, "/0 + S(/1)")
	if err != nil {
		t.Error(err)
		return
	}
	if pat.Kind() != gorewrite.PAT_COMPOUND || pat.Opcode() != OP_ADD {
		t.Error("expected an addition pattern")
		return
	}
	args := pat.Args()
	if args[0].Kind() != gorewrite.PAT_VAR || args[0].Index() != 0 {
		t.Error("expected /0 on the left")
	}
	if args[1].Kind() != gorewrite.PAT_COMPOUND || args[1].Opcode() != OP_SUCC {
		t.Error("expected S(...) on the right")
	}

	wild, err := ParsePattern(s, "_ = S(_)")
	if err != nil {
		t.Error(err)
		return
	}
	if !wild.HasWildcard() {
		t.Error("expected wildcards")
	}

	truth, err := ParsePattern(s, "true")
	if err != nil {
		t.Error(err)
		return
	}
	if truth.Kind() != gorewrite.PAT_CONST || truth.Const() != NewTruth(s, true) {
		t.Error("expected the true constant")
	}
}

func TestParseErrors(t *testing.T) {
	s := gorewrite.NewTermStore(NewSignature())

	bad := []string{
		"",
		"S(0",
		"0 +",
		"foo",
		"= 0",
		"0 = 0 = 0",
		"0 0",
		"/",
		"S 0",
	}
	for _, input := range bad {
		if _, _, err := ParseTheorem(s, input); !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected ErrParse, got %v", input, err)
		}
	}

	// a theorem must be an equation
	if _, _, err := ParseTheorem(s, "0 + 0"); !errors.Is(err, ErrParse) {
		t.Error("expected ErrParse for a non-equation")
	}
	// wildcards are not terms
	if _, err := ParseTerm(s, "_"); !errors.Is(err, ErrParse) {
		t.Error("expected ErrParse for a wildcard term")
	}
	// '=' is not valid inside a term
	if _, err := ParseTerm(s, "0 = 0"); !errors.Is(err, ErrParse) {
		t.Error("expected ErrParse for '=' inside a term")
	}
}
