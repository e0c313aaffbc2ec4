package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironment(t *testing.T) {
	adapter := NewInputFileAdapter()
	env, err := adapter.LoadEnvironment("../../fixtures/linux-cp311.yaml")
	require.NoError(t, err)

	assert.Equal(t, "cpython", env.ImplementationName)
	assert.Equal(t, "x86_64", env.PlatformMachine)
	assert.Equal(t, "linux", env.SysPlatform)
	assert.Equal(t, "3.11", env.PythonVersion)
	assert.Equal(t, "3.11.4", env.InterpreterVersion())
}

func TestLoadEnvironmentRequiresPython(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sys_platform: linux\n"), 0o644))

	_, err := NewInputFileAdapter().LoadEnvironment(path)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestLoadSeeds(t *testing.T) {
	seeds, err := NewInputFileAdapter().LoadSeeds("../../fixtures/platform-seeds.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"sys_platform == 'linux'",
		"sys_platform == 'darwin'",
		"sys_platform != 'linux' and sys_platform != 'darwin'",
	}, seeds.Seeds)
}

func TestLoadSeedsRejectsBlankSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seeds:\n  - sys_platform == 'linux'\n  - ''\n"), 0o644))

	_, err := NewInputFileAdapter().LoadSeeds(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
}

func TestLoadRequirements(t *testing.T) {
	reqs, err := NewInputFileAdapter().LoadRequirements("../../fixtures/requirements.yaml")
	require.NoError(t, err)
	assert.Equal(t, ">=3.8", reqs.RequiresPython)
	require.Len(t, reqs.Requirements, 5)
	assert.Equal(t, `numpy>=1.26; python_version >= "3.9"`, reqs.Requirements[1])
}

func TestLoadYAMLErrors(t *testing.T) {
	adapter := NewInputFileAdapter()

	_, err := adapter.LoadRequirements(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("requirements: [unterminated\n"), 0o644))
	_, err = adapter.LoadRequirements(path)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
