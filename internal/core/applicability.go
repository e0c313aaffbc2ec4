package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"forkenv/internal/marker"
	"forkenv/internal/types"
)

// ApplicableRequirements keeps the requirements whose marker can hold
// somewhere in env. Requirements without a marker always apply.
func ApplicableRequirements(ctx context.Context, env ResolverEnvironment, reqs []types.Requirement) ([]types.Requirement, error) {
	var out []types.Requirement
	for _, req := range reqs {
		m, err := marker.Parse(req.Marker)
		if err != nil {
			return nil, err
		}
		if env.Included(m) {
			out = append(out, req)
		}
	}
	log.Ctx(ctx).Debug().
		Str("environment", env.String()).
		Int("requirements", len(reqs)).
		Int("applicable", len(out)).
		Msg("requirements filtered")
	return out, nil
}
