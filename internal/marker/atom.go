package marker

import (
	"strings"

	"forkenv/internal/pyversion"
)

// Op is a comparison operator between a string marker variable and a
// literal.
type Op string

const (
	OpEqual        Op = "=="
	OpNotEqual     Op = "!="
	OpLess         Op = "<"
	OpLessEqual    Op = "<="
	OpGreater      Op = ">"
	OpGreaterEqual Op = ">="
	// OpIn holds when the variable is a substring of the literal.
	OpIn    Op = "in"
	OpNotIn Op = "not in"
	// OpContains holds when the literal is a substring of the variable.
	OpContains    Op = "contains"
	OpNotContains Op = "not contains"
)

// Variables whose values are PEP 440 versions. python_version is folded
// into python_full_version at parse time.
const (
	KeyPythonFullVersion     = "python_full_version"
	KeyPythonVersion         = "python_version"
	KeyImplementationVersion = "implementation_version"
	KeyExtra                 = "extra"
)

var stringKeys = map[string]struct{}{
	"implementation_name":            {},
	"os_name":                        {},
	"platform_machine":               {},
	"platform_python_implementation": {},
	"platform_release":               {},
	"platform_system":                {},
	"platform_version":               {},
	"sys_platform":                   {},
	KeyExtra:                         {},
}

var versionKeys = map[string]struct{}{
	KeyPythonFullVersion:     {},
	KeyPythonVersion:         {},
	KeyImplementationVersion: {},
}

var legacyKeys = map[string]string{
	"os.name":                        "os_name",
	"sys.platform":                   "sys_platform",
	"platform.version":               "platform_version",
	"platform.machine":               "platform_machine",
	"platform.python_implementation": "platform_python_implementation",
	"python_implementation":          "platform_python_implementation",
}

func canonicalKey(name string) (string, bool) {
	if mapped, ok := legacyKeys[name]; ok {
		name = mapped
	}
	if _, ok := stringKeys[name]; ok {
		return name, true
	}
	if _, ok := versionKeys[name]; ok {
		return name, true
	}
	return "", false
}

func isVersionKey(key string) bool {
	_, ok := versionKeys[key]
	return ok
}

// stringAtom compares a string variable against a literal.
type stringAtom struct {
	key   string
	op    Op
	value string
}

func (a stringAtom) holds(actual string) bool {
	switch a.op {
	case OpEqual:
		return actual == a.value
	case OpNotEqual:
		return actual != a.value
	case OpLess:
		return actual < a.value
	case OpLessEqual:
		return actual <= a.value
	case OpGreater:
		return actual > a.value
	case OpGreaterEqual:
		return actual >= a.value
	case OpIn:
		return strings.Contains(a.value, actual)
	case OpNotIn:
		return !strings.Contains(a.value, actual)
	case OpContains:
		return strings.Contains(actual, a.value)
	case OpNotContains:
		return !strings.Contains(actual, a.value)
	default:
		return false
	}
}

func (a stringAtom) less(o stringAtom) bool {
	if a.key != o.key {
		return a.key < o.key
	}
	if a.op != o.op {
		return a.op < o.op
	}
	return a.value < o.value
}

func (a stringAtom) String() string {
	switch a.op {
	case OpContains:
		return quote(a.value) + " in " + a.key
	case OpNotContains:
		return quote(a.value) + " not in " + a.key
	default:
		return a.key + " " + string(a.op) + " " + quote(a.value)
	}
}

// stringSatisfiable reports whether some value satisfies every atom in
// atoms, all of which constrain the same variable. The check is sound
// but not complete: false is only returned for real contradictions.
func stringSatisfiable(atoms []stringAtom) bool {
	var pinned *string
	for _, atom := range atoms {
		if atom.op != OpEqual {
			continue
		}
		if pinned != nil && *pinned != atom.value {
			return false
		}
		value := atom.value
		pinned = &value
	}
	if pinned != nil {
		for _, atom := range atoms {
			if !atom.holds(*pinned) {
				return false
			}
		}
		return true
	}
	for _, a := range atoms {
		for _, b := range atoms {
			switch {
			case a.op == OpContains && b.op == OpNotContains && strings.Contains(a.value, b.value):
				return false
			case a.op == OpIn && b.op == OpNotIn && strings.Contains(b.value, a.value):
				return false
			case a.op == OpIn && b.op == OpContains && !strings.Contains(a.value, b.value):
				return false
			}
		}
	}
	return true
}

// versionAtoms renders a version range over key as marker atoms.
func versionAtoms(key string, rng pyversion.Range) []string {
	lower, hasLower := rng.Lower().Version()
	upper, hasUpper := rng.Upper().Version()
	if hasLower && hasUpper && rng.Lower().IsInclusive() && rng.Upper().IsInclusive() && lower.Equal(upper) {
		return []string{key + " == " + quote(lower.String())}
	}
	var out []string
	if hasLower {
		op := " > "
		if rng.Lower().IsInclusive() {
			op = " >= "
		}
		out = append(out, key+op+quote(lower.String()))
	}
	if hasUpper {
		op := " < "
		if rng.Upper().IsInclusive() {
			op = " <= "
		}
		out = append(out, key+op+quote(upper.String()))
	}
	return out
}

func quote(value string) string {
	if strings.Contains(value, "'") {
		return `"` + value + `"`
	}
	return "'" + value + "'"
}
