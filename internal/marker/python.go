package marker

import "forkenv/internal/pyversion"

// PythonRange returns the tightest python_full_version window implied
// by the expression: the hull of the windows of its clauses. It returns
// false when the expression is always true, never true, or leaves the
// Python version unconstrained.
func (m Tree) PythonRange() (pyversion.Range, bool) {
	if m.IsTrue() || m.IsFalse() {
		return pyversion.Range{}, false
	}
	var hull pyversion.Range
	for i, c := range m.t.clauses {
		rng, ok := c.versions[KeyPythonFullVersion]
		if !ok {
			return pyversion.Range{}, false
		}
		if i == 0 {
			hull = rng
			continue
		}
		hull = hull.Hull(rng)
	}
	if hull.IsFull() {
		return pyversion.Range{}, false
	}
	return hull, true
}
