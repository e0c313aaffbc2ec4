package types

// SeedsFile lists the initial fork seeds of a universal resolution,
// in order. They usually come from a previous lock file or from the
// supported environments a project declares.
type SeedsFile struct {
	Seeds []string `yaml:"seeds"`
}

// RequirementsFile is the set of direct requirements a fork report is
// computed for.
type RequirementsFile struct {
	RequiresPython string   `yaml:"requires_python,omitempty"`
	Requirements   []string `yaml:"requirements"`
}
