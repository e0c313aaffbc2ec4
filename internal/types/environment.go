package types

import "strings"

// MarkerEnvironment is a concrete snapshot of the PEP 508 environment
// variables of one interpreter on one platform.
type MarkerEnvironment struct {
	ImplementationName           string `yaml:"implementation_name"`
	ImplementationVersion        string `yaml:"implementation_version"`
	OSName                       string `yaml:"os_name"`
	PlatformMachine              string `yaml:"platform_machine"`
	PlatformPythonImplementation string `yaml:"platform_python_implementation"`
	PlatformRelease              string `yaml:"platform_release"`
	PlatformSystem               string `yaml:"platform_system"`
	PlatformVersion              string `yaml:"platform_version"`
	PythonFullVersion            string `yaml:"python_full_version"`
	PythonVersion                string `yaml:"python_version"`
	SysPlatform                  string `yaml:"sys_platform"`
}

// Values returns the environment keyed by marker variable name.
// python_version and python_full_version fill in for each other when
// only one of them is set.
func (e MarkerEnvironment) Values() map[string]string {
	full := strings.TrimSpace(e.PythonFullVersion)
	short := strings.TrimSpace(e.PythonVersion)
	if short == "" && full != "" {
		short = majorMinor(full)
	}
	if full == "" && short != "" {
		full = short
	}
	return map[string]string{
		"implementation_name":            e.ImplementationName,
		"implementation_version":         e.ImplementationVersion,
		"os_name":                        e.OSName,
		"platform_machine":               e.PlatformMachine,
		"platform_python_implementation": e.PlatformPythonImplementation,
		"platform_release":               e.PlatformRelease,
		"platform_system":                e.PlatformSystem,
		"platform_version":               e.PlatformVersion,
		"python_full_version":            full,
		"python_version":                 short,
		"sys_platform":                   e.SysPlatform,
	}
}

// InterpreterVersion returns the most precise Python version the
// environment carries.
func (e MarkerEnvironment) InterpreterVersion() string {
	return e.Values()["python_full_version"]
}

func majorMinor(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}
