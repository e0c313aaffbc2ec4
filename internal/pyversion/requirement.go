package pyversion

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// Requirement is a requires-python requirement: the specifier text a
// user wrote plus the contiguous version window it allows.
type Requirement struct {
	specifiers string
	check      *pep440.Specifiers
	rng        Range
}

// ParseRequirement parses a comma-separated specifier set such as
// ">=3.8, <4". An empty string allows every version.
func ParseRequirement(raw string) (Requirement, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return Requirement{}, nil
	}
	rng := Full()
	for _, part := range strings.Split(raw, ",") {
		op, version, err := SplitSpecifier(part)
		if err != nil {
			return Requirement{}, err
		}
		ranges, err := SpecifierRanges(op, version)
		if err != nil {
			return Requirement{}, err
		}
		hull := ranges[0]
		for _, r := range ranges[1:] {
			hull = hull.Hull(r)
		}
		rng = rng.Intersect(hull)
	}
	specs, err := pep440.NewSpecifiers(raw, pep440.WithPreRelease(true))
	if err != nil {
		return Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid requires-python: " + raw).
			WithCause(err)
	}
	return Requirement{specifiers: raw, check: &specs, rng: rng}, nil
}

// FromRange builds a requirement allowing exactly the given window.
func FromRange(r Range) Requirement {
	return Requirement{specifiers: r.String(), rng: r}
}

func (r Requirement) Range() Range {
	return r.rng
}

// Specifiers returns the specifier text the requirement was built from.
func (r Requirement) Specifiers() string {
	return r.specifiers
}

// Narrow restricts the requirement to the given window. It returns
// false when no version satisfies both.
func (r Requirement) Narrow(window Range) (Requirement, bool) {
	narrowed := r.rng.Intersect(window)
	if narrowed.IsEmpty() {
		return Requirement{}, false
	}
	return Requirement{specifiers: r.specifiers, check: r.check, rng: narrowed}, true
}

// Contains reports whether the given interpreter version satisfies the
// requirement. Unparseable versions never do.
func (r Requirement) Contains(version string) bool {
	v, err := Parse(version)
	if err != nil {
		return false
	}
	if !r.rng.Contains(v) {
		return false
	}
	if r.check != nil && !r.check.Check(v) {
		return false
	}
	return true
}

// String renders the requirement's window. Unbounded requirements
// render as "*".
func (r Requirement) String() string {
	if r.rng.IsFull() {
		return "*"
	}
	return r.rng.String()
}
