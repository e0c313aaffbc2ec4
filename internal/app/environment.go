package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"forkenv/internal/core"
	"forkenv/internal/marker"
	"forkenv/internal/types"
)

func (s Service) environment(ctx context.Context, input EnvironmentInput) (core.ResolverEnvironment, types.EnvironmentKind, error) {
	envPath := strings.TrimSpace(input.EnvironmentPath)
	if envPath != "" {
		if strings.TrimSpace(input.SeedsPath) != "" || len(input.Seeds) > 0 {
			return core.ResolverEnvironment{}, "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("fork seeds cannot be combined with a specific environment")
		}
		env, err := s.Environments.LoadEnvironment(envPath)
		if err != nil {
			return core.ResolverEnvironment{}, "", err
		}
		log.Ctx(ctx).Debug().Str("python", env.InterpreterVersion()).Msg("specific environment loaded")
		return core.Specific(env), types.EnvironmentKindSpecific, nil
	}
	seeds, err := s.seeds(ctx, input.SeedsPath, input.Seeds)
	if err != nil {
		return core.ResolverEnvironment{}, "", err
	}
	return core.Universal(seeds), types.EnvironmentKindUniversal, nil
}

// seeds loads, parses and validates fork seeds from a file and from
// explicit values, file seeds first.
func (s Service) seeds(ctx context.Context, path string, explicit []string) ([]marker.Tree, error) {
	var raw []string
	if path = strings.TrimSpace(path); path != "" {
		file, err := s.Seeds.LoadSeeds(path)
		if err != nil {
			return nil, err
		}
		raw = append(raw, file.Seeds...)
	}
	raw = append(raw, explicit...)
	seeds, err := core.ParseSeeds(raw)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateSeeds(ctx, seeds); err != nil {
		return nil, err
	}
	return seeds, nil
}

func forkLabel(env core.ResolverEnvironment) string {
	if label, ok := env.EndUserForkDisplay(); ok {
		return label
	}
	return env.String()
}
