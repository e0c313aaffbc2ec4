package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"forkenv/internal/core"
	"forkenv/internal/marker"
	"forkenv/internal/pyversion"
	"forkenv/internal/types"
)

// Check tests one marker against every fork of the selected
// environment.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	text := strings.TrimSpace(req.Marker)
	if text == "" {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("marker is required")
	}
	m, err := marker.Parse(text)
	if err != nil {
		return CheckResult{}, err
	}
	env, _, err := s.environment(ctx, req.EnvironmentInput)
	if err != nil {
		return CheckResult{}, err
	}
	result := CheckResult{Marker: m.String()}
	for _, state := range env.ForkedStates(core.NewForkState(env, pyversion.Requirement{})) {
		result.Checks = append(result.Checks, types.ForkCheck{
			Label:    forkLabel(state.Env()),
			Included: state.Env().Included(m),
			InFork:   state.Env().InFork(m),
		})
	}
	return result, nil
}
