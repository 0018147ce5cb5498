package gorewrite

import (
	"fmt"
	"strings"
)

// Minimal algebra used by the engine tests: atoms with a numeric payload,
// de Bruijn variables, a unary wrapper and an ordered pair.

const (
	T_ATOM = 1
	T_VAR  = 2
	T_WRAP = 3
	T_PAIR = 4
)

type testAtom struct {
	payload uint64
}

func (a *testAtom) String() string       { return fmt.Sprintf("a%d", a.payload) }
func (a *testAtom) Opcode() int          { return T_ATOM }
func (a *testAtom) Hash() uint64         { return HashLeaf(T_ATOM, a.payload) }
func (a *testAtom) Size() uint64         { return 1 }
func (a *testAtom) Subterms() []*TermPtr { return nil }
func (a *testAtom) Var() (uint32, bool)  { return 0, false }

func (a *testAtom) Equal(o Term) bool {
	oa, ok := o.(*testAtom)
	return ok && oa.payload == a.payload
}

type testVar struct {
	index uint32
}

func (v *testVar) String() string       { return fmt.Sprintf("/%d", v.index) }
func (v *testVar) Opcode() int          { return T_VAR }
func (v *testVar) Hash() uint64         { return HashLeaf(T_VAR, uint64(v.index)) }
func (v *testVar) Size() uint64         { return 1 }
func (v *testVar) Subterms() []*TermPtr { return nil }
func (v *testVar) Var() (uint32, bool)  { return v.index, true }

func (v *testVar) Equal(o Term) bool {
	ov, ok := o.(*testVar)
	return ok && ov.index == v.index
}

type testCompound struct {
	opcode   int
	children []*TermPtr
}

func (c *testCompound) String() string {
	parts := make([]string, len(c.children))
	for i := 0; i < len(c.children); i++ {
		parts[i] = c.children[i].String()
	}
	if c.opcode == T_WRAP {
		return fmt.Sprintf("w(%s)", parts[0])
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " . "))
}

func (c *testCompound) Opcode() int          { return c.opcode }
func (c *testCompound) Hash() uint64         { return HashCompound(c.opcode, c.children) }
func (c *testCompound) Size() uint64         { return SizeCompound(c.children) }
func (c *testCompound) Subterms() []*TermPtr { return c.children }
func (c *testCompound) Var() (uint32, bool)  { return 0, false }

func (c *testCompound) Equal(o Term) bool {
	oc, ok := o.(*testCompound)
	return ok && oc.opcode == c.opcode && SameSubterms(oc.children, c.children)
}

type testSig struct{}

func (testSig) Arity(opcode int) (int, bool) {
	switch opcode {
	case T_ATOM, T_VAR:
		return 0, true
	case T_WRAP:
		return 1, true
	case T_PAIR:
		return 2, true
	}
	return 0, false
}

func (testSig) Make(opcode int, children []*TermPtr) (Term, error) {
	switch opcode {
	case T_WRAP:
		if len(children) != 1 {
			return nil, fmt.Errorf("wrap wants 1 child, got %d", len(children))
		}
		return &testCompound{opcode: T_WRAP, children: children}, nil
	case T_PAIR:
		if len(children) != 2 {
			return nil, fmt.Errorf("pair wants 2 children, got %d", len(children))
		}
		return &testCompound{opcode: T_PAIR, children: children}, nil
	}
	return nil, fmt.Errorf("opcode %d is atomic or unknown", opcode)
}

func newTestStore() *TermStore {
	return NewTermStore(testSig{})
}

func atom(s *TermStore, payload uint64) *TermPtr {
	return s.Intern(&testAtom{payload: payload})
}

func tvar(s *TermStore, index uint32) *TermPtr {
	return s.Intern(&testVar{index: index})
}

func wrap(s *TermStore, child *TermPtr) *TermPtr {
	return s.Intern(&testCompound{opcode: T_WRAP, children: []*TermPtr{child}})
}

func pair(s *TermStore, lhs, rhs *TermPtr) *TermPtr {
	return s.Intern(&testCompound{opcode: T_PAIR, children: []*TermPtr{lhs, rhs}})
}
