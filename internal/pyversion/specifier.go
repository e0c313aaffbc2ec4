package pyversion

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// specifierOps is ordered so that longer operators are tried first.
var specifierOps = []string{"===", "==", "!=", "~=", ">=", "<=", ">", "<"}

// SplitSpecifier splits a single specifier such as ">=3.8" into its
// operator and version.
func SplitSpecifier(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	for _, op := range specifierOps {
		if strings.HasPrefix(raw, op) {
			version := strings.TrimSpace(raw[len(op):])
			if version == "" {
				break
			}
			return op, version, nil
		}
	}
	return "", "", errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid version specifier: %q", raw))
}

// SpecifierRanges returns the pairwise disjoint ranges whose union is
// the set of versions matched by `op version`. Exclusions (!=) produce
// two ranges; every other operator produces one.
func SpecifierRanges(op string, version string) ([]Range, error) {
	wildcard := strings.HasSuffix(version, ".*")
	if wildcard && op != "==" && op != "!=" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("wildcard not allowed with %s: %s", op, version))
	}
	v, err := Parse(strings.TrimSuffix(version, ".*"))
	if err != nil {
		return nil, err
	}
	if wildcard {
		upper, err := BumpPrefix(v, len(Release(v)))
		if err != nil {
			return nil, err
		}
		if op == "==" {
			return []Range{NewRange(Inclusive(v), Exclusive(upper))}, nil
		}
		return []Range{
			NewRange(Unbounded(), Exclusive(v)),
			NewRange(Inclusive(upper), Unbounded()),
		}, nil
	}
	switch op {
	case "==", "===":
		return []Range{Exactly(v)}, nil
	case "!=":
		return []Range{
			NewRange(Unbounded(), Exclusive(v)),
			NewRange(Exclusive(v), Unbounded()),
		}, nil
	case ">=":
		return []Range{NewRange(Inclusive(v), Unbounded())}, nil
	case ">":
		return []Range{NewRange(Exclusive(v), Unbounded())}, nil
	case "<=":
		return []Range{NewRange(Unbounded(), Inclusive(v))}, nil
	case "<":
		return []Range{NewRange(Unbounded(), Exclusive(v))}, nil
	case "~=":
		release := Release(v)
		if len(release) < 2 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("~= needs at least two release segments: %s", version))
		}
		upper, err := BumpPrefix(v, len(release)-1)
		if err != nil {
			return nil, err
		}
		return []Range{NewRange(Inclusive(v), Exclusive(upper))}, nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported version operator: %s", op))
	}
}
