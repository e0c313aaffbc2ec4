package types

// ForkReportEntry describes one fork produced from an environment.
type ForkReportEntry struct {
	Label          string   `yaml:"label"`
	Markers        string   `yaml:"markers,omitempty"`
	RequiresPython string   `yaml:"requires_python,omitempty"`
	Requirements   []string `yaml:"requirements"`
}

type ForkReport struct {
	Environment EnvironmentKind   `yaml:"environment"`
	Forks       []ForkReportEntry `yaml:"forks"`
}

// ForkCheck is the outcome of testing one marker against one fork.
type ForkCheck struct {
	Label    string `yaml:"label"`
	Included bool   `yaml:"included"`
	InFork   bool   `yaml:"in_fork"`
}
