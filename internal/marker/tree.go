// Package marker implements PEP 508 environment markers as immutable
// boolean formulas that can be combined, tested for disjointness and
// evaluated against a concrete marker environment.
package marker

import (
	"sort"
	"strings"
)

// Tree is an immutable marker expression kept in disjunctive normal
// form. Copies share the underlying data. The zero value matches every
// environment.
type Tree struct {
	t *tree
}

type tree struct {
	clauses  []clause
	rendered string
	program  compiled
}

var falseTree = &tree{rendered: "false"}

// True returns the expression that matches every environment.
func True() Tree {
	return Tree{}
}

// False returns the expression that matches no environment.
func False() Tree {
	return Tree{t: falseTree}
}

func fromClauses(clauses []clause) Tree {
	for _, c := range clauses {
		if c.isEmpty() {
			return True()
		}
	}
	clauses = absorb(clauses)
	clauses = mergeAll(clauses)
	for _, c := range clauses {
		if c.isEmpty() {
			return True()
		}
	}
	if len(clauses) == 0 {
		return False()
	}
	sort.SliceStable(clauses, func(i, j int) bool {
		return clauses[i].String() < clauses[j].String()
	})
	return Tree{t: &tree{clauses: clauses, rendered: render(clauses)}}
}

// absorb drops clauses that imply another clause of the disjunction.
func absorb(clauses []clause) []clause {
	var out []clause
	for i, c := range clauses {
		redundant := false
		for j, other := range clauses {
			if i == j || !c.implies(other) {
				continue
			}
			// Mutually implied clauses are equal; keep the first one.
			if other.implies(c) && i < j {
				continue
			}
			redundant = true
			break
		}
		if !redundant {
			out = append(out, c)
		}
	}
	return out
}

func mergeAll(clauses []clause) []clause {
	for {
		merged := false
		for i := 0; i < len(clauses) && !merged; i++ {
			for j := i + 1; j < len(clauses); j++ {
				joined, ok := clauses[i].mergeAdjacent(clauses[j])
				if !ok {
					continue
				}
				next := append([]clause(nil), clauses[:j]...)
				next = append(next, clauses[j+1:]...)
				next[i] = joined
				clauses = next
				merged = true
				break
			}
		}
		if !merged {
			return clauses
		}
	}
}

func render(clauses []clause) string {
	if len(clauses) == 1 {
		return clauses[0].String()
	}
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		atoms := c.atoms()
		if len(atoms) > 1 {
			parts = append(parts, "("+strings.Join(atoms, " and ")+")")
			continue
		}
		parts = append(parts, atoms[0])
	}
	return strings.Join(parts, " or ")
}

// IsTrue reports whether the expression matches every environment.
func (m Tree) IsTrue() bool {
	return m.t == nil
}

// IsFalse reports whether the expression can never match.
func (m Tree) IsFalse() bool {
	return m.t != nil && len(m.t.clauses) == 0
}

// And returns the conjunction of both expressions.
func (m Tree) And(o Tree) Tree {
	switch {
	case m.IsTrue():
		return o
	case o.IsTrue():
		return m
	case m.IsFalse() || o.IsFalse():
		return False()
	}
	var clauses []clause
	for _, left := range m.t.clauses {
		for _, right := range o.t.clauses {
			if joined, ok := left.and(right); ok {
				clauses = append(clauses, joined)
			}
		}
	}
	return fromClauses(clauses)
}

// Or returns the disjunction of both expressions.
func (m Tree) Or(o Tree) Tree {
	switch {
	case m.IsTrue() || o.IsTrue():
		return True()
	case m.IsFalse():
		return o
	case o.IsFalse():
		return m
	}
	clauses := append(append([]clause(nil), m.t.clauses...), o.t.clauses...)
	return fromClauses(clauses)
}

// IsDisjoint reports whether no environment can match both expressions.
func (m Tree) IsDisjoint(o Tree) bool {
	return m.And(o).IsFalse()
}

// Equal reports whether both expressions have the same canonical form.
func (m Tree) Equal(o Tree) bool {
	return m.String() == o.String()
}

// String renders the expression in PEP 508 syntax. The always-true
// expression renders as the empty string and the never-true one as
// "false".
func (m Tree) String() string {
	if m.t == nil {
		return ""
	}
	return m.t.rendered
}
