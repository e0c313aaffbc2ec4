package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"forkenv/internal/ports"
	"forkenv/internal/types"
)

// InputFileAdapter loads the YAML inputs of a fork report: marker
// environments, fork seeds and requirements.
type InputFileAdapter struct{}

func NewInputFileAdapter() InputFileAdapter {
	return InputFileAdapter{}
}

func (a InputFileAdapter) LoadEnvironment(path string) (types.MarkerEnvironment, error) {
	var env types.MarkerEnvironment
	if err := loadYAML(path, "environment", &env); err != nil {
		return types.MarkerEnvironment{}, err
	}
	if strings.TrimSpace(env.InterpreterVersion()) == "" {
		return types.MarkerEnvironment{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("environment file must set python_full_version or python_version")
	}
	return env, nil
}

func (a InputFileAdapter) LoadSeeds(path string) (types.SeedsFile, error) {
	var seeds types.SeedsFile
	if err := loadYAML(path, "seeds", &seeds); err != nil {
		return types.SeedsFile{}, err
	}
	for i, seed := range seeds.Seeds {
		if strings.TrimSpace(seed) == "" {
			return types.SeedsFile{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("seeds file has an empty seed at index %d", i))
		}
	}
	return seeds, nil
}

func (a InputFileAdapter) LoadRequirements(path string) (types.RequirementsFile, error) {
	var reqs types.RequirementsFile
	if err := loadYAML(path, "requirements", &reqs); err != nil {
		return types.RequirementsFile{}, err
	}
	return reqs, nil
}

func loadYAML(path string, what string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s file not found", what)).
			WithCause(err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse %s yaml", what)).
			WithCause(err)
	}
	return nil
}

var _ ports.EnvironmentSourcePort = InputFileAdapter{}
var _ ports.SeedSourcePort = InputFileAdapter{}
var _ ports.RequirementSourcePort = InputFileAdapter{}
