package marker

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"forkenv/internal/pyversion"
	"forkenv/internal/shared"
)

var flipped = map[string]string{
	"<":  ">",
	"<=": ">=",
	">":  "<",
	">=": "<=",
	"==": "==",
	"!=": "!=",
}

func invalid(format string, args ...any) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf(format, args...))
}

// comparison builds the expression for one `lhs op rhs` marker term.
func comparison(lhs token, op string, rhs token) (Tree, error) {
	switch {
	case lhs.kind == tokenIdent && rhs.kind == tokenString:
		key, ok := canonicalKey(lhs.text)
		if !ok {
			return Tree{}, invalid("unknown marker variable %q", lhs.text)
		}
		return variableComparison(key, op, rhs.text, false)
	case lhs.kind == tokenString && rhs.kind == tokenIdent:
		key, ok := canonicalKey(rhs.text)
		if !ok {
			return Tree{}, invalid("unknown marker variable %q", rhs.text)
		}
		return variableComparison(key, op, lhs.text, true)
	case lhs.kind == tokenString && rhs.kind == tokenString:
		return constantComparison(lhs.text, op, rhs.text)
	default:
		return Tree{}, invalid("cannot compare two variables: %s %s %s", lhs.text, op, rhs.text)
	}
}

// variableComparison builds `key op literal`, or `literal op key` when
// reversed is set.
func variableComparison(key string, op string, literal string, reversed bool) (Tree, error) {
	if reversed {
		switch op {
		case "in":
			op = string(OpContains)
		case "not in":
			op = string(OpNotContains)
		case "===":
			op = "=="
		default:
			mirrored, ok := flipped[op]
			if !ok {
				return Tree{}, invalid("operator %s cannot take the variable on the right", op)
			}
			op = mirrored
		}
	}
	if isVersionKey(key) {
		return versionComparison(key, op, literal)
	}
	if key == KeyExtra && (op == "==" || op == "!=" || op == "===") {
		literal = shared.NormalizeName(literal)
	}
	switch op {
	case "===":
		op = "=="
	case "~=":
		return Tree{}, invalid("operator ~= needs a version variable, got %s", key)
	}
	return fromClauses([]clause{stringClause(stringAtom{key: key, op: Op(op), value: literal})}), nil
}

func versionComparison(key string, op string, literal string) (Tree, error) {
	switch op {
	case "in", "not in":
		fields := strings.Fields(literal)
		if len(fields) == 0 {
			return Tree{}, invalid("empty version list for %s %s", key, op)
		}
		out := False()
		if op == "not in" {
			out = True()
		}
		for _, field := range fields {
			if op == "in" {
				term, err := versionComparison(key, "==", field)
				if err != nil {
					return Tree{}, err
				}
				out = out.Or(term)
				continue
			}
			term, err := versionComparison(key, "!=", field)
			if err != nil {
				return Tree{}, err
			}
			out = out.And(term)
		}
		return out, nil
	case string(OpContains), string(OpNotContains):
		return Tree{}, invalid("substring tests are not supported on %s", key)
	}
	var (
		ranges []pyversion.Range
		err    error
	)
	if key == KeyPythonVersion {
		ranges, err = shortVersionRanges(op, literal)
		key = KeyPythonFullVersion
	} else {
		ranges, err = pyversion.SpecifierRanges(op, literal)
	}
	if err != nil {
		return Tree{}, err
	}
	clauses := make([]clause, 0, len(ranges))
	for _, rng := range ranges {
		clauses = append(clauses, versionClause(key, rng))
	}
	return fromClauses(clauses), nil
}

// shortVersionRanges maps a python_version comparison onto
// python_full_version. python_version only carries major.minor, so
// `python_version > '3.8'` means `python_full_version >= '3.9'`.
func shortVersionRanges(op string, literal string) ([]pyversion.Range, error) {
	if strings.HasSuffix(literal, ".*") {
		return pyversion.SpecifierRanges(op, literal)
	}
	v, err := pyversion.Parse(literal)
	if err != nil {
		return nil, err
	}
	if len(pyversion.Release(v)) != 2 {
		return pyversion.SpecifierRanges(op, literal)
	}
	next, err := pyversion.BumpPrefix(v, 2)
	if err != nil {
		return nil, err
	}
	switch op {
	case "==", "===":
		return []pyversion.Range{pyversion.NewRange(pyversion.Inclusive(v), pyversion.Exclusive(next))}, nil
	case "!=":
		return []pyversion.Range{
			pyversion.NewRange(pyversion.Unbounded(), pyversion.Exclusive(v)),
			pyversion.NewRange(pyversion.Inclusive(next), pyversion.Unbounded()),
		}, nil
	case ">":
		return []pyversion.Range{pyversion.NewRange(pyversion.Inclusive(next), pyversion.Unbounded())}, nil
	case "<=":
		return []pyversion.Range{pyversion.NewRange(pyversion.Unbounded(), pyversion.Exclusive(next))}, nil
	default:
		return pyversion.SpecifierRanges(op, literal)
	}
}

func constantComparison(lhs string, op string, rhs string) (Tree, error) {
	var atomOp Op
	switch op {
	case "in":
		atomOp = OpIn
	case "not in":
		atomOp = OpNotIn
	case "===":
		atomOp = OpEqual
	case "~=":
		return Tree{}, invalid("operator ~= needs a version variable")
	default:
		atomOp = Op(op)
	}
	if (stringAtom{op: atomOp, value: rhs}).holds(lhs) {
		return True(), nil
	}
	return False(), nil
}
