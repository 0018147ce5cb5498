// Package peano is the demonstration domain of the rewriting engine:
// Peano arithmetic over zero, successor and addition, lifted to equations
// so that axioms such as reflexivity can rewrite an equation to the
// literal true.
package peano

import (
	"fmt"
	"strings"

	"github.com/borzacchiello/gorewrite"
)

const (
	OP_NUM    = 1
	OP_VAR    = 2
	OP_SUCC   = 3
	OP_ADD    = 4
	OP_EQUALS = 5
	OP_TRUTH  = 6
)

/*
 *  OP_NUM
 */

// Num is a numeric literal leaf.
type Num struct {
	value uint64
}

func (n *Num) String() string {
	return fmt.Sprintf("%d", n.value)
}

func (n *Num) Opcode() int {
	return OP_NUM
}

func (n *Num) Hash() uint64 {
	return gorewrite.HashLeaf(OP_NUM, n.value)
}

func (n *Num) Size() uint64 {
	return 1
}

func (n *Num) Subterms() []*gorewrite.TermPtr {
	return nil
}

func (n *Num) Var() (uint32, bool) {
	return 0, false
}

func (n *Num) Equal(o gorewrite.Term) bool {
	on, ok := o.(*Num)
	return ok && on.value == n.value
}

func (n *Num) Value() uint64 {
	return n.value
}

/*
 *  OP_VAR
 */

// DeBruijn is a free-variable leaf, identified by its de Bruijn index.
type DeBruijn struct {
	index uint32
}

func (v *DeBruijn) String() string {
	return fmt.Sprintf("/%d", v.index)
}

func (v *DeBruijn) Opcode() int {
	return OP_VAR
}

func (v *DeBruijn) Hash() uint64 {
	return gorewrite.HashLeaf(OP_VAR, uint64(v.index))
}

func (v *DeBruijn) Size() uint64 {
	return 1
}

func (v *DeBruijn) Subterms() []*gorewrite.TermPtr {
	return nil
}

func (v *DeBruijn) Var() (uint32, bool) {
	return v.index, true
}

func (v *DeBruijn) Equal(o gorewrite.Term) bool {
	ov, ok := o.(*DeBruijn)
	return ok && ov.index == v.index
}

/*
 *  OP_TRUTH
 */

// Truth is a propositional constant leaf.
type Truth struct {
	value bool
}

func (t *Truth) String() string {
	if t.value {
		return "true"
	}
	return "false"
}

func (t *Truth) Opcode() int {
	return OP_TRUTH
}

func (t *Truth) Hash() uint64 {
	if t.value {
		return gorewrite.HashLeaf(OP_TRUTH, 1)
	}
	return gorewrite.HashLeaf(OP_TRUTH, 0)
}

func (t *Truth) Size() uint64 {
	return 1
}

func (t *Truth) Subterms() []*gorewrite.TermPtr {
	return nil
}

func (t *Truth) Var() (uint32, bool) {
	return 0, false
}

func (t *Truth) Equal(o gorewrite.Term) bool {
	ot, ok := o.(*Truth)
	return ok && ot.value == t.value
}

func (t *Truth) Value() bool {
	return t.value
}

/*
 *  OP_SUCC, OP_ADD, OP_EQUALS
 */

type compound struct {
	opcode   int
	symbol   string
	children []*gorewrite.TermPtr
}

func (c *compound) String() string {
	if c.opcode == OP_SUCC {
		return fmt.Sprintf("S(%s)", c.children[0])
	}

	b := strings.Builder{}
	for i := 0; i < len(c.children); i++ {
		if i > 0 {
			b.WriteString(fmt.Sprintf(" %s ", c.symbol))
		}
		if c.children[i].Subterms() == nil || c.children[i].Opcode() == OP_SUCC {
			b.WriteString(c.children[i].String())
		} else {
			b.WriteString(fmt.Sprintf("(%s)", c.children[i]))
		}
	}
	return b.String()
}

func (c *compound) Opcode() int {
	return c.opcode
}

func (c *compound) Hash() uint64 {
	return gorewrite.HashCompound(c.opcode, c.children)
}

func (c *compound) Size() uint64 {
	return gorewrite.SizeCompound(c.children)
}

func (c *compound) Subterms() []*gorewrite.TermPtr {
	return c.children
}

func (c *compound) Var() (uint32, bool) {
	return 0, false
}

func (c *compound) Equal(o gorewrite.Term) bool {
	oc, ok := o.(*compound)
	return ok && oc.opcode == c.opcode &&
		gorewrite.SameSubterms(oc.children, c.children)
}

/*
 *  Signature
 */

// Signature is the opcode table of the Peano domain.
type Signature struct{}

func NewSignature() Signature {
	return Signature{}
}

func (Signature) Arity(opcode int) (int, bool) {
	switch opcode {
	case OP_NUM, OP_VAR, OP_TRUTH:
		return 0, true
	case OP_SUCC:
		return 1, true
	case OP_ADD, OP_EQUALS:
		return 2, true
	}
	return 0, false
}

func (Signature) Make(opcode int, children []*gorewrite.TermPtr) (gorewrite.Term, error) {
	switch opcode {
	case OP_SUCC:
		if len(children) != 1 {
			return nil, fmt.Errorf("Make(): S wants 1 child, got %d", len(children))
		}
		return &compound{opcode: OP_SUCC, symbol: "S", children: children}, nil
	case OP_ADD:
		if len(children) != 2 {
			return nil, fmt.Errorf("Make(): + wants 2 children, got %d", len(children))
		}
		return &compound{opcode: OP_ADD, symbol: "+", children: children}, nil
	case OP_EQUALS:
		if len(children) != 2 {
			return nil, fmt.Errorf("Make(): = wants 2 children, got %d", len(children))
		}
		return &compound{opcode: OP_EQUALS, symbol: "=", children: children}, nil
	}
	return nil, fmt.Errorf("Make(): opcode %d is atomic or unknown", opcode)
}

// *** Constructors ***

func NewNum(store *gorewrite.TermStore, value uint64) *gorewrite.TermPtr {
	return store.Intern(&Num{value: value})
}

func NewVar(store *gorewrite.TermStore, index uint32) *gorewrite.TermPtr {
	return store.Intern(&DeBruijn{index: index})
}

func NewTruth(store *gorewrite.TermStore, value bool) *gorewrite.TermPtr {
	return store.Intern(&Truth{value: value})
}

func NewSucc(store *gorewrite.TermStore, arg *gorewrite.TermPtr) *gorewrite.TermPtr {
	return store.Intern(&compound{opcode: OP_SUCC, symbol: "S",
		children: []*gorewrite.TermPtr{arg}})
}

func NewAdd(store *gorewrite.TermStore, lhs, rhs *gorewrite.TermPtr) *gorewrite.TermPtr {
	return store.Intern(&compound{opcode: OP_ADD, symbol: "+",
		children: []*gorewrite.TermPtr{lhs, rhs}})
}

func NewEquals(store *gorewrite.TermStore, lhs, rhs *gorewrite.TermPtr) *gorewrite.TermPtr {
	return store.Intern(&compound{opcode: OP_EQUALS, symbol: "=",
		children: []*gorewrite.TermPtr{lhs, rhs}})
}
