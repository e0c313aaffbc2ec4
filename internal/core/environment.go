package core

import (
	"forkenv/internal/marker"
	"forkenv/internal/pyversion"
	"forkenv/internal/types"
)

// ResolverEnvironment is the set of marker environments a resolution,
// or one fork of it, must support.
//
// A specific environment is pinned to one marker environment; this is
// what a pip-style resolution for the running interpreter uses. A
// universal environment describes an open set of marker environments
// with a marker expression, starting from "all environments" and
// narrowing as the resolver discovers dependency markers. A universal
// environment may also carry initial fork seeds: marker expressions
// that partition the environment space before resolution starts.
//
// Values are immutable and cheap to copy; copies share the seed list
// and marker data. The zero value is a universal environment without
// seeds.
type ResolverEnvironment struct {
	kind kind
}

// kind is implemented by exactly specificKind and universalKind. Case
// analysis on it stays inside this file.
type kind interface {
	isKind()
}

type specificKind struct {
	env types.MarkerEnvironment
}

type universalKind struct {
	// initialForks is shared between copies and never written after
	// construction.
	initialForks []marker.Tree
	markers      marker.Tree
}

func (specificKind) isKind()  {}
func (universalKind) isKind() {}

// Specific returns an environment fixed to one marker environment. Any
// dependency whose marker env does not satisfy is ignored.
func Specific(env types.MarkerEnvironment) ResolverEnvironment {
	return ResolverEnvironment{kind: specificKind{env: env}}
}

// Universal returns an environment for a multi-platform resolution,
// seeded with the given initial forks. Seeds usually come from a
// previous lock file or from the environments a project declares; when
// empty, resolution starts with one fork matching every environment.
//
// Seeds are expected to be pairwise disjoint. Their order only decides
// the order in which forks are produced.
func Universal(seeds []marker.Tree) ResolverEnvironment {
	return ResolverEnvironment{kind: universalKind{
		initialForks: append([]marker.Tree(nil), seeds...),
		markers:      marker.True(),
	}}
}

func (e ResolverEnvironment) resolve() kind {
	if e.kind == nil {
		return universalKind{markers: marker.True()}
	}
	return e.kind
}

// Included reports whether a dependency with the given marker applies
// to this environment.
func (e ResolverEnvironment) Included(m marker.Tree) bool {
	switch k := e.resolve().(type) {
	case specificKind:
		return m.Evaluate(k.env)
	case universalKind:
		return !k.markers.IsDisjoint(m)
	}
	return false
}

// InFork reports whether the given marker overlaps the environments of
// this fork. A specific environment is never split, so it always does.
func (e ResolverEnvironment) InFork(m marker.Tree) bool {
	switch k := e.resolve().(type) {
	case specificKind:
		return true
	case universalKind:
		return !k.markers.IsDisjoint(m)
	}
	return false
}

// MarkerEnvironment returns the pinned marker environment of a specific
// environment.
func (e ResolverEnvironment) MarkerEnvironment() (types.MarkerEnvironment, bool) {
	if k, ok := e.resolve().(specificKind); ok {
		return k.env, true
	}
	return types.MarkerEnvironment{}, false
}

// NarrowMarkers returns an environment restricted to the given marker.
// Specific environments are returned unchanged.
func (e ResolverEnvironment) NarrowMarkers(m marker.Tree) ResolverEnvironment {
	switch k := e.resolve().(type) {
	case universalKind:
		return ResolverEnvironment{kind: universalKind{
			initialForks: k.initialForks,
			markers:      k.markers.And(m),
		}}
	}
	return e
}

// ForkedStates splits init into one state per initial fork seed. The
// states come out in reverse seed order, so the last seed is explored
// first. Specific environments and universal environments without
// seeds return init alone.
func (e ResolverEnvironment) ForkedStates(init ForkState) []ForkState {
	k, ok := e.resolve().(universalKind)
	if !ok || len(k.initialForks) == 0 {
		return []ForkState{init}
	}
	states := make([]ForkState, 0, len(k.initialForks))
	for i := len(k.initialForks) - 1; i >= 0; i-- {
		states = append(states, init.WithEnv(k.initialForks[i]))
	}
	return states
}

// NarrowPythonRequirement restricts a requires-python requirement to the
// Python versions this environment can have. It returns false when no
// window is derivable or when nothing is left after narrowing.
func (e ResolverEnvironment) NarrowPythonRequirement(req pyversion.Requirement) (pyversion.Requirement, bool) {
	window, ok := e.requiresPythonRange()
	if !ok {
		return pyversion.Requirement{}, false
	}
	return req.Narrow(window)
}

func (e ResolverEnvironment) requiresPythonRange() (pyversion.Range, bool) {
	switch k := e.resolve().(type) {
	case specificKind:
		v, err := pyversion.Parse(k.env.InterpreterVersion())
		if err != nil {
			return pyversion.Range{}, false
		}
		return pyversion.Exactly(v), true
	case universalKind:
		return k.markers.PythonRange()
	}
	return pyversion.Range{}, false
}

// Markers returns the marker expression of this fork. Specific
// environments report the always-true expression.
//
// TODO: unexport once fork labelling moves behind EndUserForkDisplay.
func (e ResolverEnvironment) Markers() marker.Tree {
	if k, ok := e.resolve().(universalKind); ok {
		return k.markers
	}
	return marker.True()
}

// TryMarkers returns the marker expression of a narrowed universal
// environment.
func (e ResolverEnvironment) TryMarkers() (marker.Tree, bool) {
	k, ok := e.resolve().(universalKind)
	if !ok || k.markers.IsTrue() {
		return marker.Tree{}, false
	}
	return k.markers, true
}

// EndUserForkDisplay labels a fork for reports. Only narrowed universal
// environments get a label.
func (e ResolverEnvironment) EndUserForkDisplay() (string, bool) {
	m, ok := e.TryMarkers()
	if !ok {
		return "", false
	}
	return "split (" + m.String() + ")", true
}

func (e ResolverEnvironment) String() string {
	switch k := e.resolve().(type) {
	case specificKind:
		return "single environment"
	case universalKind:
		if k.markers.IsTrue() {
			return "all environments"
		}
		return "split (" + k.markers.String() + ")"
	}
	return ""
}
