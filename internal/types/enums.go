package types

type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatYAML OutputFormat = "yaml"
)

type EnvironmentKind string

const (
	EnvironmentKindSpecific  EnvironmentKind = "specific"
	EnvironmentKindUniversal EnvironmentKind = "universal"
)
