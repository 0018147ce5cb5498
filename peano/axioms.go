package peano

import (
	"fmt"

	"github.com/borzacchiello/gorewrite"
)

// Axioms returns the Peano axiom set as rewrite rules over equation terms.
//
// Reflexivity is forward-only: its replacement drops the matched variable,
// so the backward orientation would be rejected at construction. The other
// axioms are bidirectional.
func Axioms(store *gorewrite.TermStore) ([]*gorewrite.RewriteRule, error) {
	defs := []struct {
		name        string
		pattern     string
		replacement string
		direction   int
	}{
		{"axiom1_reflexivity", "/0 = /0", "true", gorewrite.DIR_FORWARD},
		{"axiom3_additive_identity", "/0 + 0", "/0", gorewrite.DIR_BOTH},
		{"axiom4_additive_successor", "/0 + S(/1)", "S(/0 + /1)", gorewrite.DIR_BOTH},
		{"axiom6_successor_injectivity", "S(/0) = S(/1)", "/0 = /1", gorewrite.DIR_BOTH},
	}

	rules := make([]*gorewrite.RewriteRule, 0, len(defs))
	for _, def := range defs {
		pattern, err := ParsePattern(store, def.pattern)
		if err != nil {
			return nil, fmt.Errorf("axiom %q: %w", def.name, err)
		}
		replacement, err := ParsePattern(store, def.replacement)
		if err != nil {
			return nil, fmt.Errorf("axiom %q: %w", def.name, err)
		}
		rule, err := gorewrite.NewRule(def.name, pattern, replacement, def.direction)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
