package pyversion

import (
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// Bound is one end of a version range. The zero value is unbounded.
type Bound struct {
	version   pep440.Version
	inclusive bool
	bounded   bool
}

func Unbounded() Bound {
	return Bound{}
}

func Inclusive(v pep440.Version) Bound {
	return Bound{version: v, inclusive: true, bounded: true}
}

func Exclusive(v pep440.Version) Bound {
	return Bound{version: v, bounded: true}
}

// Version returns the bound's version, or false when unbounded.
func (b Bound) Version() (pep440.Version, bool) {
	return b.version, b.bounded
}

func (b Bound) IsInclusive() bool {
	return b.bounded && b.inclusive
}

func (b Bound) equal(o Bound) bool {
	if b.bounded != o.bounded {
		return false
	}
	if !b.bounded {
		return true
	}
	return b.inclusive == o.inclusive && b.version.Equal(o.version)
}

// Range is a contiguous window of versions between a lower and an
// upper bound. The zero value contains every version.
type Range struct {
	lower Bound
	upper Bound
}

func Full() Range {
	return Range{}
}

func NewRange(lower Bound, upper Bound) Range {
	return Range{lower: lower, upper: upper}
}

// Exactly is the range holding only v.
func Exactly(v pep440.Version) Range {
	return Range{lower: Inclusive(v), upper: Inclusive(v)}
}

func (r Range) Lower() Bound {
	return r.lower
}

func (r Range) Upper() Bound {
	return r.upper
}

func (r Range) IsFull() bool {
	return !r.lower.bounded && !r.upper.bounded
}

// IsEmpty reports whether no version lies inside the range.
func (r Range) IsEmpty() bool {
	if !r.lower.bounded || !r.upper.bounded {
		return false
	}
	cmp := r.lower.version.Compare(r.upper.version)
	if cmp > 0 {
		return true
	}
	if cmp == 0 {
		return !(r.lower.inclusive && r.upper.inclusive)
	}
	return false
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v pep440.Version) bool {
	if r.lower.bounded {
		cmp := v.Compare(r.lower.version)
		if cmp < 0 || (cmp == 0 && !r.lower.inclusive) {
			return false
		}
	}
	if r.upper.bounded {
		cmp := v.Compare(r.upper.version)
		if cmp > 0 || (cmp == 0 && !r.upper.inclusive) {
			return false
		}
	}
	return true
}

// Intersect returns the versions contained in both ranges. The result
// may be empty.
func (r Range) Intersect(o Range) Range {
	return Range{
		lower: tighterLower(r.lower, o.lower),
		upper: tighterUpper(r.upper, o.upper),
	}
}

// Hull returns the smallest range containing both ranges.
func (r Range) Hull(o Range) Range {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	lower := tighterLower(r.lower, o.lower)
	if lower.equal(r.lower) {
		lower = o.lower
	} else {
		lower = r.lower
	}
	upper := tighterUpper(r.upper, o.upper)
	if upper.equal(r.upper) {
		upper = o.upper
	} else {
		upper = r.upper
	}
	return Range{lower: lower, upper: upper}
}

func (r Range) Equal(o Range) bool {
	return r.lower.equal(o.lower) && r.upper.equal(o.upper)
}

// String renders the range as a specifier set, e.g. ">=3.8, <4".
// The full range renders as the empty string.
func (r Range) String() string {
	if r.lower.bounded && r.upper.bounded && r.lower.inclusive && r.upper.inclusive &&
		r.lower.version.Equal(r.upper.version) {
		return "==" + r.lower.version.String()
	}
	var parts []string
	if r.lower.bounded {
		op := ">"
		if r.lower.inclusive {
			op = ">="
		}
		parts = append(parts, op+r.lower.version.String())
	}
	if r.upper.bounded {
		op := "<"
		if r.upper.inclusive {
			op = "<="
		}
		parts = append(parts, op+r.upper.version.String())
	}
	return strings.Join(parts, ", ")
}

func tighterLower(a Bound, b Bound) Bound {
	if !a.bounded {
		return b
	}
	if !b.bounded {
		return a
	}
	cmp := a.version.Compare(b.version)
	switch {
	case cmp > 0:
		return a
	case cmp < 0:
		return b
	case !a.inclusive:
		return a
	default:
		return b
	}
}

func tighterUpper(a Bound, b Bound) Bound {
	if !a.bounded {
		return b
	}
	if !b.bounded {
		return a
	}
	cmp := a.version.Compare(b.version)
	switch {
	case cmp < 0:
		return a
	case cmp > 0:
		return b
	case !a.inclusive:
		return a
	default:
		return b
	}
}

// Union returns the single range covering both ranges when they
// overlap or touch. It returns false when a gap separates them.
func (r Range) Union(o Range) (Range, bool) {
	if r.IsEmpty() {
		return o, true
	}
	if o.IsEmpty() {
		return r, true
	}
	if !r.Intersect(o).IsEmpty() || touches(r.upper, o.lower) || touches(o.upper, r.lower) {
		return r.Hull(o), true
	}
	return Range{}, false
}

// touches reports whether an upper bound and a lower bound meet at the
// same version with no gap between them.
func touches(upper Bound, lower Bound) bool {
	if !upper.bounded || !lower.bounded {
		return false
	}
	return upper.version.Equal(lower.version) && (upper.inclusive || lower.inclusive)
}
