package gorewrite

import (
	"fmt"
	"sort"
	"strings"
)

const (
	PAT_VAR      = 1
	PAT_WILDCARD = 2
	PAT_CONST    = 3
	PAT_COMPOUND = 4
)

// Pattern is a term schema: a parallel tree to Term with holes. Var(k)
// matches any term and binds de Bruijn variable k; Wildcard matches any
// term without binding; Const matches one interned term by identity;
// Compound matches a compound with the same opcode and arity.
type Pattern struct {
	kind   int
	index  uint32
	con    *TermPtr
	opcode int
	args   []*Pattern
}

func Var(index uint32) *Pattern {
	return &Pattern{kind: PAT_VAR, index: index}
}

func Wildcard() *Pattern {
	return &Pattern{kind: PAT_WILDCARD}
}

func Const(t *TermPtr) *Pattern {
	return &Pattern{kind: PAT_CONST, con: t}
}

func Compound(opcode int, args ...*Pattern) *Pattern {
	return &Pattern{kind: PAT_COMPOUND, opcode: opcode, args: args}
}

func (p *Pattern) Kind() int {
	return p.kind
}

func (p *Pattern) Index() uint32 {
	return p.index
}

func (p *Pattern) Const() *TermPtr {
	return p.con
}

func (p *Pattern) Opcode() int {
	return p.opcode
}

func (p *Pattern) Args() []*Pattern {
	return p.args
}

// Vars returns the distinct variable indices occurring in p, sorted.
func (p *Pattern) Vars() []uint32 {
	set := make(map[uint32]bool)
	p.collectVars(set)

	res := make([]uint32, 0, len(set))
	for k := range set {
		res = append(res, k)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

func (p *Pattern) collectVars(set map[uint32]bool) {
	switch p.kind {
	case PAT_VAR:
		set[p.index] = true
	case PAT_COMPOUND:
		for i := 0; i < len(p.args); i++ {
			p.args[i].collectVars(set)
		}
	}
}

// HasWildcard reports whether p contains a Wildcard at any position.
func (p *Pattern) HasWildcard() bool {
	switch p.kind {
	case PAT_WILDCARD:
		return true
	case PAT_COMPOUND:
		for i := 0; i < len(p.args); i++ {
			if p.args[i].HasWildcard() {
				return true
			}
		}
	}
	return false
}

func (p *Pattern) String() string {
	switch p.kind {
	case PAT_VAR:
		return fmt.Sprintf("/%d", p.index)
	case PAT_WILDCARD:
		return "_"
	case PAT_CONST:
		return p.con.String()
	case PAT_COMPOUND:
		b := strings.Builder{}
		b.WriteString(fmt.Sprintf("(%d", p.opcode))
		for i := 0; i < len(p.args); i++ {
			b.WriteString(" ")
			b.WriteString(p.args[i].String())
		}
		b.WriteString(")")
		return b.String()
	}
	panic("unknown pattern kind")
}

// Substitution maps de Bruijn variable indices to interned terms. Lookups
// are O(1) expected. Substitutions are ephemeral: they live only for the
// duration of a rule application.
type Substitution struct {
	bindings map[uint32]*TermPtr
}

func NewSubstitution() *Substitution {
	return &Substitution{bindings: map[uint32]*TermPtr{}}
}

func (s *Substitution) Bind(index uint32, t *TermPtr) {
	s.bindings[index] = t
}

func (s *Substitution) Get(index uint32) (*TermPtr, bool) {
	t, ok := s.bindings[index]
	return t, ok
}

func (s *Substitution) Has(index uint32) bool {
	_, ok := s.bindings[index]
	return ok
}

func (s *Substitution) Len() int {
	return len(s.bindings)
}

func (s *Substitution) Clone() *Substitution {
	clone := NewSubstitution()
	for k, v := range s.bindings {
		clone.bindings[k] = v
	}
	return clone
}

func (s *Substitution) String() string {
	keys := make([]uint32, 0, len(s.bindings))
	for k := range s.bindings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	b := strings.Builder{}
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("/%d -> %s", k, s.bindings[k]))
	}
	b.WriteString("}")
	return b.String()
}
