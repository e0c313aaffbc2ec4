package marker

import (
	"sort"
	"strings"

	"forkenv/internal/pyversion"
)

// clause is a conjunction of constraints. Version variables are kept as
// a single range each; string variables as a sorted list of atoms.
// A clause is never modified once built.
type clause struct {
	versions map[string]pyversion.Range
	strings  []stringAtom
}

func versionClause(key string, rng pyversion.Range) clause {
	if rng.IsFull() {
		return clause{}
	}
	return clause{versions: map[string]pyversion.Range{key: rng}}
}

func stringClause(atom stringAtom) clause {
	return clause{strings: []stringAtom{atom}}
}

func (c clause) isEmpty() bool {
	return len(c.versions) == 0 && len(c.strings) == 0
}

// and merges two clauses. The second result is false when the merged
// clause can never hold.
func (c clause) and(o clause) (clause, bool) {
	versions := make(map[string]pyversion.Range, len(c.versions)+len(o.versions))
	for key, rng := range c.versions {
		versions[key] = rng
	}
	for key, rng := range o.versions {
		if existing, ok := versions[key]; ok {
			rng = existing.Intersect(rng)
		}
		if rng.IsEmpty() {
			return clause{}, false
		}
		versions[key] = rng
	}
	atoms := append(append([]stringAtom(nil), c.strings...), o.strings...)
	simplified, ok := simplifyStrings(atoms)
	if !ok {
		return clause{}, false
	}
	if len(versions) == 0 {
		versions = nil
	}
	return clause{versions: versions, strings: simplified}, true
}

// simplifyStrings sorts and dedupes atoms, drops atoms implied by an
// equality on the same variable, and reports contradictions.
func simplifyStrings(atoms []stringAtom) ([]stringAtom, bool) {
	if len(atoms) == 0 {
		return nil, true
	}
	byKey := map[string][]stringAtom{}
	for _, atom := range atoms {
		byKey[atom.key] = append(byKey[atom.key], atom)
	}
	var out []stringAtom
	for _, group := range byKey {
		if !stringSatisfiable(group) {
			return nil, false
		}
		pinned := false
		for _, atom := range group {
			if atom.op == OpEqual {
				out = append(out, atom)
				pinned = true
				break
			}
		}
		if !pinned {
			out = append(out, group...)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].less(out[j])
	})
	deduped := out[:0]
	for i, atom := range out {
		if i > 0 && atom == out[i-1] {
			continue
		}
		deduped = append(deduped, atom)
	}
	return deduped, true
}

// implies reports whether every environment matching c also matches o.
func (c clause) implies(o clause) bool {
	for key, want := range o.versions {
		have, ok := c.versions[key]
		if !ok {
			return false
		}
		if !have.Intersect(want).Equal(have) {
			return false
		}
	}
	for _, want := range o.strings {
		if !c.impliesAtom(want) {
			return false
		}
	}
	return true
}

func (c clause) impliesAtom(want stringAtom) bool {
	for _, have := range c.strings {
		if have == want {
			return true
		}
		if have.key == want.key && have.op == OpEqual && want.holds(have.value) {
			return true
		}
	}
	return false
}

// sameStrings reports whether both clauses carry identical string atoms.
func (c clause) sameStrings(o clause) bool {
	if len(c.strings) != len(o.strings) {
		return false
	}
	for i := range c.strings {
		if c.strings[i] != o.strings[i] {
			return false
		}
	}
	return true
}

// mergeAdjacent joins two clauses that differ only in one version
// variable whose ranges overlap or touch.
func (c clause) mergeAdjacent(o clause) (clause, bool) {
	if !c.sameStrings(o) || len(c.versions) != len(o.versions) {
		return clause{}, false
	}
	differing := ""
	for key, rng := range c.versions {
		other, ok := o.versions[key]
		if !ok {
			return clause{}, false
		}
		if rng.Equal(other) {
			continue
		}
		if differing != "" {
			return clause{}, false
		}
		differing = key
	}
	if differing == "" {
		return c, true
	}
	union, ok := c.versions[differing].Union(o.versions[differing])
	if !ok {
		return clause{}, false
	}
	versions := make(map[string]pyversion.Range, len(c.versions))
	for key, rng := range c.versions {
		versions[key] = rng
	}
	if union.IsFull() {
		delete(versions, differing)
	} else {
		versions[differing] = union
	}
	if len(versions) == 0 {
		versions = nil
	}
	return clause{versions: versions, strings: c.strings}, true
}

func (c clause) versionKeys() []string {
	keys := make([]string, 0, len(c.versions))
	for key := range c.versions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (c clause) atoms() []string {
	var out []string
	for _, key := range c.versionKeys() {
		out = append(out, versionAtoms(key, c.versions[key])...)
	}
	for _, atom := range c.strings {
		out = append(out, atom.String())
	}
	return out
}

func (c clause) String() string {
	return strings.Join(c.atoms(), " and ")
}
