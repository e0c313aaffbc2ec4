package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forkenv/internal/marker"
	"forkenv/internal/pyversion"
	"forkenv/internal/types"
)

func parseMarkers(t *testing.T, raw ...string) []marker.Tree {
	t.Helper()
	seeds, err := ParseSeeds(raw)
	require.NoError(t, err)
	return seeds
}

func requiresPython(t *testing.T, raw string) pyversion.Requirement {
	t.Helper()
	req, err := pyversion.ParseRequirement(raw)
	require.NoError(t, err)
	return req
}

func forkMarkers(states []ForkState) []string {
	out := make([]string, 0, len(states))
	for _, state := range states {
		out = append(out, state.Env().Markers().String())
	}
	return out
}

// descriptorGrid spans the platforms and interpreters the partition
// tests check coverage against.
func descriptorGrid() []types.MarkerEnvironment {
	var grid []types.MarkerEnvironment
	for _, platform := range []string{"linux", "darwin", "win32", "freebsd"} {
		for _, python := range []string{"3.7.17", "3.8.0", "3.9.18", "3.10.2", "3.12.1"} {
			grid = append(grid, types.MarkerEnvironment{SysPlatform: platform, PythonFullVersion: python})
		}
	}
	return grid
}

var linux311 = types.MarkerEnvironment{
	OSName:            "posix",
	PlatformMachine:   "x86_64",
	PlatformSystem:    "Linux",
	PythonFullVersion: "3.11.4",
	SysPlatform:       "linux",
}

// ---------------------------------------------------------------------------
// ForkedStates
// ---------------------------------------------------------------------------

func TestForkedStatesWithoutSeeds(t *testing.T) {
	start := NewForkState(Universal(nil), requiresPython(t, ">=3.8"))
	states := Universal(nil).ForkedStates(start)
	require.Len(t, states, 1)
	assert.Equal(t, start, states[0])
	assert.Equal(t, "all environments", states[0].Env().String())

	specific := Specific(linux311)
	start = NewForkState(specific, requiresPython(t, ">=3.8"))
	states = specific.ForkedStates(start)
	require.Len(t, states, 1)
	assert.Equal(t, start, states[0])
}

func TestForkedStatesReverseSeedOrder(t *testing.T) {
	env := Universal(parseMarkers(t,
		"sys_platform == 'linux'",
		"sys_platform == 'darwin'",
		"sys_platform == 'win32'",
	))
	states := env.ForkedStates(NewForkState(env, pyversion.Requirement{}))
	want := []string{
		"sys_platform == 'win32'",
		"sys_platform == 'darwin'",
		"sys_platform == 'linux'",
	}
	if diff := cmp.Diff(want, forkMarkers(states)); diff != "" {
		t.Fatalf("unexpected forks (-want +got):\n%s", diff)
	}
}

func TestForkedStatesInFork(t *testing.T) {
	env := Universal(parseMarkers(t, "sys_platform == 'linux'", "sys_platform == 'darwin'"))
	states := env.ForkedStates(NewForkState(env, pyversion.Requirement{}))
	require.Len(t, states, 2)

	linux := marker.MustParse("sys_platform == 'linux'")
	assert.False(t, states[0].Env().InFork(linux))
	assert.True(t, states[1].Env().InFork(linux))
	assert.True(t, env.InFork(linux), "the unsplit environment holds every fork")
}

func TestForkedStatesPartitionDescriptors(t *testing.T) {
	env := Universal(parseMarkers(t,
		"sys_platform == 'linux'",
		"sys_platform == 'darwin'",
		"sys_platform != 'linux' and sys_platform != 'darwin'",
	))
	states := env.ForkedStates(NewForkState(env, pyversion.Requirement{}))
	for _, descriptor := range descriptorGrid() {
		matched := 0
		for _, state := range states {
			if state.Env().Markers().Evaluate(descriptor) {
				matched++
			}
		}
		assert.Equal(t, 1, matched, "descriptor %s/%s", descriptor.SysPlatform, descriptor.PythonFullVersion)
	}
	for i := range states {
		for j := i + 1; j < len(states); j++ {
			assert.True(t, states[i].Env().Markers().IsDisjoint(states[j].Env().Markers()))
		}
	}
}

func TestForkedStatesNarrowPython(t *testing.T) {
	env := Universal(parseMarkers(t, "python_version < '3.10'", "python_version >= '3.10'"))
	states := env.ForkedStates(NewForkState(env, requiresPython(t, ">=3.8")))
	require.Len(t, states, 2)
	assert.Equal(t, ">=3.10", states[0].PythonRequirement().String())
	assert.Equal(t, ">=3.8, <3.10", states[1].PythonRequirement().String())
}

func TestForkedStatesKeepPythonWhenUnbounded(t *testing.T) {
	env := Universal(parseMarkers(t, "sys_platform == 'linux'", "sys_platform != 'linux'"))
	states := env.ForkedStates(NewForkState(env, requiresPython(t, ">=3.8")))
	for _, state := range states {
		assert.Equal(t, ">=3.8", state.PythonRequirement().String())
	}
}

func TestUniversalCopiesSeeds(t *testing.T) {
	seeds := parseMarkers(t, "sys_platform == 'linux'", "sys_platform == 'darwin'")
	env := Universal(seeds)
	seeds[0] = marker.MustParse("sys_platform == 'win32'")
	states := env.ForkedStates(NewForkState(env, pyversion.Requirement{}))
	assert.Equal(t, []string{"sys_platform == 'darwin'", "sys_platform == 'linux'"}, forkMarkers(states))
}

// ---------------------------------------------------------------------------
// NarrowMarkers / Included / InFork
// ---------------------------------------------------------------------------

func TestNarrowMarkersIsMonotonic(t *testing.T) {
	base := Universal(nil)
	narrowed := base.NarrowMarkers(marker.MustParse("sys_platform == 'linux'"))
	twice := narrowed.NarrowMarkers(marker.MustParse("python_version >= '3.10'"))

	probes := []string{
		"sys_platform == 'linux'",
		"sys_platform == 'darwin'",
		"python_version < '3.10'",
		"python_version >= '3.12'",
		"os_name == 'nt'",
		"sys_platform == 'linux' and python_version < '3.9'",
	}
	for _, probe := range probes {
		m := marker.MustParse(probe)
		if twice.Included(m) {
			assert.True(t, narrowed.Included(m), probe)
		}
		if narrowed.Included(m) {
			assert.True(t, base.Included(m), probe)
		}
	}
	assert.False(t, narrowed.Included(marker.MustParse("sys_platform == 'darwin'")))
	assert.False(t, twice.Included(marker.MustParse("python_version < '3.10'")))
	assert.Equal(t, "python_full_version >= '3.10' and sys_platform == 'linux'", twice.Markers().String())
}

func TestSpecificIgnoresNarrowing(t *testing.T) {
	env := Specific(linux311)
	narrowed := env.NarrowMarkers(marker.MustParse("sys_platform == 'darwin'"))
	assert.Equal(t, env, narrowed)

	darwin := marker.MustParse("sys_platform == 'darwin'")
	assert.False(t, narrowed.Included(darwin))
	assert.True(t, narrowed.InFork(darwin), "a specific environment is never split")
	assert.True(t, narrowed.Included(marker.MustParse("sys_platform == 'linux' and python_version >= '3.11'")))
	assert.Equal(t, "single environment", narrowed.String())
}

func TestIncludedMatchesEvaluation(t *testing.T) {
	markers := []string{
		"",
		"sys_platform == 'linux'",
		"sys_platform == 'win32' or python_version < '3.9'",
		"platform_machine == 'aarch64'",
		"'86' in platform_machine",
	}
	for _, raw := range markers {
		m := marker.MustParse(raw)
		assert.Equal(t, m.Evaluate(linux311), Specific(linux311).Included(m), raw)
	}
}

func TestZeroValueIsUniversal(t *testing.T) {
	var env ResolverEnvironment
	assert.True(t, env.Included(marker.MustParse("sys_platform == 'linux'")))
	assert.False(t, env.Included(marker.False()))
	assert.Equal(t, "all environments", env.String())
	_, ok := env.MarkerEnvironment()
	assert.False(t, ok)
	_, ok = env.TryMarkers()
	assert.False(t, ok)

	start := NewForkState(env, pyversion.Requirement{})
	assert.Len(t, env.ForkedStates(start), 1)
}

// ---------------------------------------------------------------------------
// MarkerEnvironment / TryMarkers / display
// ---------------------------------------------------------------------------

func TestSpecificAccessors(t *testing.T) {
	env := Specific(linux311)
	got, ok := env.MarkerEnvironment()
	require.True(t, ok)
	assert.Equal(t, linux311, got)

	_, ok = env.TryMarkers()
	assert.False(t, ok)
	assert.True(t, env.Markers().IsTrue())

	_, ok = env.EndUserForkDisplay()
	assert.False(t, ok)
}

func TestUniversalAccessors(t *testing.T) {
	env := Universal(nil)
	_, ok := env.TryMarkers()
	assert.False(t, ok, "unnarrowed environments have no markers to report")

	narrowed := env.NarrowMarkers(marker.MustParse("sys_platform == 'linux'"))
	m, ok := narrowed.TryMarkers()
	require.True(t, ok)
	assert.Equal(t, "sys_platform == 'linux'", m.String())

	label, ok := narrowed.EndUserForkDisplay()
	require.True(t, ok)
	assert.Equal(t, "split (sys_platform == 'linux')", label)
	assert.Equal(t, label, narrowed.String())

	_, ok = narrowed.MarkerEnvironment()
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// NarrowPythonRequirement
// ---------------------------------------------------------------------------

func TestNarrowPythonRequirementSpecific(t *testing.T) {
	env := Specific(linux311)
	narrowed, ok := env.NarrowPythonRequirement(requiresPython(t, ">=3.8"))
	require.True(t, ok)
	assert.True(t, narrowed.Contains("3.11.4"))
	assert.False(t, narrowed.Contains("3.12"))
	assert.Equal(t, "==3.11.4", narrowed.String())

	_, ok = env.NarrowPythonRequirement(requiresPython(t, ">=3.12"))
	assert.False(t, ok)

	_, ok = Specific(types.MarkerEnvironment{SysPlatform: "linux"}).NarrowPythonRequirement(requiresPython(t, ">=3.8"))
	assert.False(t, ok, "no interpreter version to narrow to")
}

func TestNarrowPythonRequirementUniversal(t *testing.T) {
	req := requiresPython(t, ">=3.8")

	_, ok := Universal(nil).NarrowPythonRequirement(req)
	assert.False(t, ok)

	_, ok = Universal(nil).NarrowMarkers(marker.MustParse("sys_platform == 'linux'")).NarrowPythonRequirement(req)
	assert.False(t, ok)

	env := Universal(nil).NarrowMarkers(marker.MustParse("python_version >= '3.10' and python_version < '3.12'"))
	narrowed, ok := env.NarrowPythonRequirement(req)
	require.True(t, ok)
	assert.Equal(t, ">=3.10, <3.12", narrowed.String())

	env = Universal(nil).NarrowMarkers(marker.MustParse("python_version < '3.8'"))
	_, ok = env.NarrowPythonRequirement(req)
	assert.False(t, ok, "nothing left after narrowing")
}
