package gorewrite

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a structural path from the root of a term: the child index
// taken at each level. The empty path is the root.
type Position []int

func (p Position) String() string {
	if len(p) == 0 {
		return "top"
	}
	parts := make([]string, len(p))
	for i := 0; i < len(p); i++ {
		parts[i] = strconv.Itoa(p[i])
	}
	return strings.Join(parts, ".")
}

// Instantiate replaces every Var(k) in pattern by its binding in subst and
// rebuilds compounds through the store's signature. Fails with
// ErrUnboundVariable if a variable has no binding. Wildcard is not legal
// in a replacement position; hitting one is a programmer error.
func Instantiate(pattern *Pattern, subst *Substitution, store *TermStore) (*TermPtr, error) {
	switch pattern.kind {
	case PAT_VAR:
		bound, ok := subst.Get(pattern.index)
		if !ok {
			return nil, fmt.Errorf("%w: /%d in replacement", ErrUnboundVariable,
				pattern.index)
		}
		return bound, nil

	case PAT_WILDCARD:
		panic("Instantiate(): wildcard in replacement position")

	case PAT_CONST:
		return pattern.con, nil

	case PAT_COMPOUND:
		children := make([]*TermPtr, len(pattern.args))
		for i := 0; i < len(pattern.args); i++ {
			child, err := Instantiate(pattern.args[i], subst, store)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return store.Build(pattern.opcode, children)
	}
	panic("unknown pattern kind")
}

// RewriteAny applies tryRewrite at the first position that admits a
// rewrite, visiting the root first and then the children left to right.
// It produces at most one rewrite per invocation and returns false if no
// position admits one. Callers that need all rewrites enumerate positions
// explicitly (the rule engine does).
func RewriteAny(term *TermPtr, tryRewrite func(*TermPtr) *TermPtr, store *TermStore) (*TermPtr, bool) {
	if rewritten := tryRewrite(term); rewritten != nil {
		return rewritten, true
	}

	children := term.Subterms()
	for i := 0; i < len(children); i++ {
		rewritten, ok := RewriteAny(children[i], tryRewrite, store)
		if !ok {
			continue
		}
		newChildren := make([]*TermPtr, len(children))
		copy(newChildren, children)
		newChildren[i] = rewritten

		whole, err := store.Build(term.Opcode(), newChildren)
		if err != nil {
			// Rebuilding a decomposed compound with same-arity children
			// cannot fail.
			panic(fmt.Sprintf("RewriteAny(): reconstruction failed: %v", err))
		}
		return whole, true
	}
	return nil, false
}
