package marker

import (
	"strconv"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"

	"forkenv/internal/pyversion"
	"forkenv/internal/types"
)

// compiled holds the lazily built evaluation program of a tree.
type compiled struct {
	once    sync.Once
	program *vm.Program
	err     error
}

// Evaluate reports whether env satisfies the expression. Variables the
// environment leaves empty compare as empty strings; an empty version
// never satisfies a version comparison.
func (m Tree) Evaluate(env types.MarkerEnvironment) bool {
	if m.IsTrue() {
		return true
	}
	if m.IsFalse() {
		return false
	}
	program, err := m.t.compile()
	if err != nil {
		log.Debug().Err(err).Str("marker", m.String()).Msg("marker compile failed")
		return false
	}
	out, err := expr.Run(program, evalEnv(env))
	if err != nil {
		log.Debug().Err(err).Str("marker", m.String()).Msg("marker evaluation failed")
		return false
	}
	matched, ok := out.(bool)
	return ok && matched
}

func (t *tree) compile() (*vm.Program, error) {
	t.program.once.Do(func() {
		t.program.program, t.program.err = expr.Compile(
			source(t.clauses),
			expr.Env(declaredEnv()),
			expr.AsBool(),
			expr.Function("pep440", pep440Compare, new(func(string, string, string) bool)),
		)
	})
	return t.program.program, t.program.err
}

// source translates clauses into an expr program.
func source(clauses []clause) string {
	if len(clauses) == 0 {
		return "false"
	}
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		var terms []string
		for _, key := range c.versionKeys() {
			terms = append(terms, rangeSource(key, c.versions[key])...)
		}
		for _, atom := range c.strings {
			terms = append(terms, atomSource(atom))
		}
		if len(terms) == 0 {
			terms = append(terms, "true")
		}
		parts = append(parts, "("+strings.Join(terms, " && ")+")")
	}
	return strings.Join(parts, " || ")
}

func rangeSource(key string, rng pyversion.Range) []string {
	var out []string
	if lower, ok := rng.Lower().Version(); ok {
		op := ">"
		if rng.Lower().IsInclusive() {
			op = ">="
		}
		out = append(out, "pep440("+key+", "+strconv.Quote(op)+", "+strconv.Quote(lower.String())+")")
	}
	if upper, ok := rng.Upper().Version(); ok {
		op := "<"
		if rng.Upper().IsInclusive() {
			op = "<="
		}
		out = append(out, "pep440("+key+", "+strconv.Quote(op)+", "+strconv.Quote(upper.String())+")")
	}
	return out
}

func atomSource(atom stringAtom) string {
	literal := strconv.Quote(atom.value)
	switch atom.op {
	case OpIn:
		return literal + " contains " + atom.key
	case OpNotIn:
		return "not (" + literal + " contains " + atom.key + ")"
	case OpContains:
		return atom.key + " contains " + literal
	case OpNotContains:
		return "not (" + atom.key + " contains " + literal + ")"
	default:
		return atom.key + " " + string(atom.op) + " " + literal
	}
}

func declaredEnv() map[string]any {
	env := map[string]any{}
	for key := range stringKeys {
		env[key] = ""
	}
	for key := range versionKeys {
		env[key] = ""
	}
	return env
}

func evalEnv(env types.MarkerEnvironment) map[string]any {
	out := declaredEnv()
	for key, value := range env.Values() {
		out[key] = value
	}
	return out
}

// pep440Compare implements pep440(actual, op, bound) for compiled
// programs. Unparseable versions compare false.
func pep440Compare(params ...any) (any, error) {
	if len(params) != 3 {
		return false, nil
	}
	actual, _ := params[0].(string)
	op, _ := params[1].(string)
	bound, _ := params[2].(string)
	v, err := pyversion.Parse(actual)
	if err != nil {
		return false, nil
	}
	ranges, err := pyversion.SpecifierRanges(op, bound)
	if err != nil {
		return false, err
	}
	for _, rng := range ranges {
		if rng.Contains(v) {
			return true, nil
		}
	}
	return false, nil
}
