package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ValidateSeeds checks that fork seeds parse and are pairwise disjoint.
func (s Service) ValidateSeeds(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	if strings.TrimSpace(req.SeedsPath) == "" && len(req.Seeds) == 0 {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("seeds file or seeds are required")
	}
	seeds, err := s.seeds(ctx, req.SeedsPath, req.Seeds)
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{SeedCount: len(seeds)}, nil
}
