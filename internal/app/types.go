package app

import "forkenv/internal/types"

// EnvironmentInput selects the resolver environment. EnvironmentPath
// pins a specific environment; otherwise the environment is universal,
// seeded from SeedsPath followed by Seeds.
type EnvironmentInput struct {
	EnvironmentPath string
	SeedsPath       string
	Seeds           []string
}

type ForksRequest struct {
	EnvironmentInput
	RequirementsPath string
	RequiresPython   string
	OutputPath       string
}

type ForksResult struct {
	Report types.ForkReport
}

type CheckRequest struct {
	EnvironmentInput
	Marker string
}

type CheckResult struct {
	Marker string
	Checks []types.ForkCheck
}

type ValidateRequest struct {
	SeedsPath string
	Seeds     []string
}

type ValidateResult struct {
	SeedCount int
}

type InspectRequest struct {
	ReportPath string
}

type InspectResult struct {
	Report types.ForkReport
}
