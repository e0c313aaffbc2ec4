package app

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"forkenv/internal/core"
	"forkenv/internal/pyversion"
	"forkenv/internal/types"
)

// Forks splits the selected environment into its initial forks and
// reports, per fork, its markers, its requires-python window and the
// requirements that apply to it.
func (s Service) Forks(ctx context.Context, req ForksRequest) (ForksResult, error) {
	env, kind, err := s.environment(ctx, req.EnvironmentInput)
	if err != nil {
		return ForksResult{}, err
	}
	reqFile := types.RequirementsFile{}
	if path := strings.TrimSpace(req.RequirementsPath); path != "" {
		reqFile, err = s.Requirements.LoadRequirements(path)
		if err != nil {
			return ForksResult{}, err
		}
	}
	requiresPython := strings.TrimSpace(req.RequiresPython)
	if requiresPython == "" {
		requiresPython = reqFile.RequiresPython
	}
	python, err := pyversion.ParseRequirement(requiresPython)
	if err != nil {
		return ForksResult{}, err
	}
	var requirements []types.Requirement
	for i, raw := range reqFile.Requirements {
		parsed, err := core.ParseRequirement(raw, fmt.Sprintf("requirements:%d", i))
		if err != nil {
			return ForksResult{}, err
		}
		requirements = append(requirements, parsed)
	}

	report := types.ForkReport{Environment: kind}
	for _, state := range env.ForkedStates(core.NewForkState(env, python)) {
		applicable, err := core.ApplicableRequirements(ctx, state.Env(), requirements)
		if err != nil {
			return ForksResult{}, err
		}
		entry := types.ForkReportEntry{
			Label:          forkLabel(state.Env()),
			RequiresPython: state.PythonRequirement().String(),
			Requirements:   []string{},
		}
		if markers, ok := state.Env().TryMarkers(); ok {
			entry.Markers = markers.String()
		}
		assert.NotEmpty(ctx, entry.Label, "fork label must be set")
		for _, r := range applicable {
			entry.Requirements = append(entry.Requirements, r.String())
		}
		report.Forks = append(report.Forks, entry)
	}
	log.Ctx(ctx).Debug().Int("forks", len(report.Forks)).Msg("environment forked")

	if path := strings.TrimSpace(req.OutputPath); path != "" {
		if err := s.ReportWriter.WriteForkReport(path, report); err != nil {
			return ForksResult{}, err
		}
	}
	return ForksResult{Report: report}, nil
}
