package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"forkenv/internal/marker"
)

// ParseSeeds parses initial fork seeds, keeping their order.
func ParseSeeds(raw []string) ([]marker.Tree, error) {
	seeds := make([]marker.Tree, 0, len(raw))
	for i, text := range raw {
		seed, err := marker.Parse(text)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid fork seed %d", i)).
				WithCause(err)
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// ValidateSeeds checks that no seed is unsatisfiable and that seeds are
// pairwise disjoint. Universal does not check this itself; callers
// building seeds from user input should.
func ValidateSeeds(ctx context.Context, seeds []marker.Tree) error {
	for i, seed := range seeds {
		if seed.IsFalse() {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("fork seed %d never matches", i))
		}
	}
	for i := range seeds {
		for j := i + 1; j < len(seeds); j++ {
			if seeds[i].IsDisjoint(seeds[j]) {
				continue
			}
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("fork seeds %d and %d overlap: %s", i, j, seeds[i].And(seeds[j]).String()))
		}
	}
	log.Ctx(ctx).Debug().Int("seeds", len(seeds)).Msg("fork seeds validated")
	return nil
}
