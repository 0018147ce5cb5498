package gorewrite

import (
	"encoding/binary"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

/*
 *   Public Interface
 */

// Term is implemented by the node types of a domain algebra. A term is a
// finite ordered tree: compounds carry an opcode and interned children,
// leaves are either atomic constructors or de Bruijn variable references.
type Term interface {
	String() string

	// Opcode returns the small integer tag identifying this node kind.
	Opcode() int
	// Hash returns the 64-bit structural hash of the whole subtree.
	Hash() uint64
	// Size returns the number of nodes in the subtree.
	Size() uint64
	// Subterms returns the interned children, nil for atomic terms.
	Subterms() []*TermPtr
	// Var returns the de Bruijn index if this term is a free-variable
	// reference.
	Var() (uint32, bool)
	// Equal compares shallowly: same opcode, same payload, identical
	// children (children are already interned, so pointer identity).
	Equal(o Term) bool
}

// Signature captures the opcode table of a domain: which compound opcodes
// exist, their arities, and how to rebuild a compound from interned
// children. Reconstruction is the inverse of Subterms modulo interning.
type Signature interface {
	// Arity returns the number of children for opcode, or false if the
	// opcode is unknown.
	Arity(opcode int) (int, bool)
	// Make builds a non-interned compound node. Fails if the opcode is
	// atomic, unknown, or the arity is wrong.
	Make(opcode int, children []*TermPtr) (Term, error)
}

// TermPtr is a shared, immutable handle to an interned term. Two TermPtrs
// from the same store represent structurally equal terms iff they are the
// same pointer. TermPtrs are owned by their TermStore and remain valid for
// the store's lifetime.
type TermPtr struct {
	t    Term
	hash uint64
	size uint64
}

func (p *TermPtr) Term() Term {
	return p.t
}

func (p *TermPtr) Hash() uint64 {
	return p.hash
}

func (p *TermPtr) Size() uint64 {
	return p.size
}

func (p *TermPtr) Opcode() int {
	return p.t.Opcode()
}

func (p *TermPtr) Subterms() []*TermPtr {
	return p.t.Subterms()
}

func (p *TermPtr) Var() (uint32, bool) {
	return p.t.Var()
}

func (p *TermPtr) Id() uintptr {
	return uintptr(unsafe.Pointer(p))
}

func (p *TermPtr) String() string {
	return p.t.String()
}

/*
 *   Structural Hashing
 */

// HashLeaf hashes an atomic term from its opcode tag and payload. The mix
// is order sensitive, so distinct (opcode, payload) pairs keep distinct
// hashes with negligible collision probability.
func HashLeaf(opcode int, payload uint64) uint64 {
	h := xxhash.New()
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(opcode))
	h.Write(raw)
	binary.BigEndian.PutUint64(raw, payload)
	h.Write(raw)
	return h.Sum64()
}

// HashCompound hashes a compound term from its opcode tag, arity and the
// structural hashes of its children, in order. Operand order is
// semantically significant, so the mix must not commute.
func HashCompound(opcode int, children []*TermPtr) uint64 {
	h := xxhash.New()
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(opcode))
	h.Write(raw)
	binary.BigEndian.PutUint64(raw, uint64(len(children)))
	h.Write(raw)
	for i := 0; i < len(children); i++ {
		binary.BigEndian.PutUint64(raw, children[i].Hash())
		h.Write(raw)
	}
	return h.Sum64()
}

// SizeCompound sums the subtree sizes of the children plus the node itself.
func SizeCompound(children []*TermPtr) uint64 {
	size := uint64(1)
	for i := 0; i < len(children); i++ {
		size += children[i].Size()
	}
	return size
}

// SameSubterms compares two child lists by pointer identity.
func SameSubterms(a, b []*TermPtr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
