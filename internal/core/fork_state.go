package core

import (
	"forkenv/internal/marker"
	"forkenv/internal/pyversion"
)

// ForkState is the per-fork state the resolver carries down one branch.
// It is a value: WithEnv returns a modified copy.
type ForkState struct {
	env    ResolverEnvironment
	python pyversion.Requirement
}

func NewForkState(env ResolverEnvironment, python pyversion.Requirement) ForkState {
	return ForkState{env: env, python: python}
}

func (s ForkState) Env() ResolverEnvironment {
	return s.env
}

func (s ForkState) PythonRequirement() pyversion.Requirement {
	return s.python
}

// WithEnv narrows the fork to the given marker. The requires-python
// requirement follows when the narrowed markers bound the Python
// version.
func (s ForkState) WithEnv(m marker.Tree) ForkState {
	s.env = s.env.NarrowMarkers(m)
	if python, ok := s.env.NarrowPythonRequirement(s.python); ok {
		s.python = python
	}
	return s
}
