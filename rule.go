package gorewrite

import (
	"errors"
	"fmt"
)

const (
	DIR_FORWARD  = 1
	DIR_BACKWARD = 2
	DIR_BOTH     = DIR_FORWARD | DIR_BACKWARD
)

var ErrInvalidRule = errors.New("invalid rule")

// RewriteRule is a named, directed or bidirectional pair of patterns.
// Rules are validated at construction and immutable afterwards: for every
// enabled direction, each variable of the replacement side must occur in
// the matched side, and the replacement side must not contain wildcards.
type RewriteRule struct {
	name        string
	pattern     *Pattern
	replacement *Pattern
	direction   int
}

func NewRule(name string, pattern, replacement *Pattern, direction int) (*RewriteRule, error) {
	if direction&DIR_BOTH == 0 {
		return nil, fmt.Errorf("%w: %q has no direction", ErrInvalidRule, name)
	}
	if direction&DIR_FORWARD != 0 {
		if err := checkReplacement(name, pattern, replacement); err != nil {
			return nil, err
		}
	}
	if direction&DIR_BACKWARD != 0 {
		if err := checkReplacement(name, replacement, pattern); err != nil {
			return nil, err
		}
	}
	return &RewriteRule{
		name:        name,
		pattern:     pattern,
		replacement: replacement,
		direction:   direction,
	}, nil
}

func Bidirectional(name string, pattern, replacement *Pattern) (*RewriteRule, error) {
	return NewRule(name, pattern, replacement, DIR_BOTH)
}

func checkReplacement(name string, matched, produced *Pattern) error {
	if produced.HasWildcard() {
		return fmt.Errorf("%w: %q has a wildcard in replacement position",
			ErrInvalidRule, name)
	}
	bound := make(map[uint32]bool)
	for _, v := range matched.Vars() {
		bound[v] = true
	}
	for _, v := range produced.Vars() {
		if !bound[v] {
			return fmt.Errorf("%w: %q replacement references unbound /%d",
				ErrInvalidRule, name, v)
		}
	}
	return nil
}

func (r *RewriteRule) Name() string {
	return r.name
}

func (r *RewriteRule) Direction() int {
	return r.direction
}

func (r *RewriteRule) Pattern() *Pattern {
	return r.pattern
}

func (r *RewriteRule) Replacement() *Pattern {
	return r.replacement
}

// ApplyForward rewrites the whole term by the rule's pattern, returning
// nil if the pattern does not match or the direction forbids it.
func (r *RewriteRule) ApplyForward(term *TermPtr, store *TermStore) *TermPtr {
	if r.direction&DIR_FORWARD == 0 {
		return nil
	}
	return applyOriented(r.pattern, r.replacement, term, store)
}

// ApplyBackward is ApplyForward with pattern and replacement swapped.
func (r *RewriteRule) ApplyBackward(term *TermPtr, store *TermStore) *TermPtr {
	if r.direction&DIR_BACKWARD == 0 {
		return nil
	}
	return applyOriented(r.replacement, r.pattern, term, store)
}

func applyOriented(pattern, replacement *Pattern, term *TermPtr, store *TermStore) *TermPtr {
	subst, err := Unify(pattern, term, NewSubstitution(), store)
	if err != nil {
		return nil
	}
	rewritten, err := Instantiate(replacement, subst, store)
	if err != nil {
		// Rule validation guarantees every replacement variable is bound.
		panic(fmt.Sprintf("applyOriented(): %v", err))
	}
	return rewritten
}

// Rewrite is one result of applying a rule somewhere inside a term: the
// whole rewritten term, the position of the rewritten subterm, and the
// orientation used.
type Rewrite struct {
	Term    *TermPtr
	Pos     Position
	Forward bool
}

// AllRewrites enumerates every position of term at which the rule, in
// whichever directions it permits, produces a rewrite. Enumeration is
// deterministic: root first, then children left to right, forward before
// backward at each position.
func (r *RewriteRule) AllRewrites(term *TermPtr, store *TermStore) []Rewrite {
	res := make([]Rewrite, 0)

	if rewritten := r.ApplyForward(term, store); rewritten != nil {
		res = append(res, Rewrite{Term: rewritten, Forward: true})
	}
	if rewritten := r.ApplyBackward(term, store); rewritten != nil {
		res = append(res, Rewrite{Term: rewritten, Forward: false})
	}

	children := term.Subterms()
	for i := 0; i < len(children); i++ {
		for _, sub := range r.AllRewrites(children[i], store) {
			newChildren := make([]*TermPtr, len(children))
			copy(newChildren, children)
			newChildren[i] = sub.Term

			whole, err := store.Build(term.Opcode(), newChildren)
			if err != nil {
				panic(fmt.Sprintf("AllRewrites(): reconstruction failed: %v", err))
			}

			pos := make(Position, 0, len(sub.Pos)+1)
			pos = append(pos, i)
			pos = append(pos, sub.Pos...)
			res = append(res, Rewrite{Term: whole, Pos: pos, Forward: sub.Forward})
		}
	}
	return res
}
