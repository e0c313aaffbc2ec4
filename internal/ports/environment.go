package ports

import "forkenv/internal/types"

// EnvironmentSourcePort loads a concrete marker environment.
type EnvironmentSourcePort interface {
	LoadEnvironment(path string) (types.MarkerEnvironment, error)
}

// SeedSourcePort loads the ordered initial fork seeds of a universal
// resolution.
type SeedSourcePort interface {
	LoadSeeds(path string) (types.SeedsFile, error)
}

// RequirementSourcePort loads direct requirements and requires-python.
type RequirementSourcePort interface {
	LoadRequirements(path string) (types.RequirementsFile, error)
}
