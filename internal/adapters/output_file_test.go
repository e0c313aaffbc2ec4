package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forkenv/internal/types"
)

func TestReportFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "forks.yaml")
	report := types.ForkReport{
		Environment: types.EnvironmentKindUniversal,
		Forks: []types.ForkReportEntry{
			{
				Label:          "split (sys_platform == 'darwin')",
				Markers:        "sys_platform == 'darwin'",
				RequiresPython: ">=3.8",
				Requirements:   []string{"attrs>=23.1"},
			},
			{
				Label:        "split (sys_platform == 'linux')",
				Markers:      "sys_platform == 'linux'",
				Requirements: []string{"attrs>=23.1", "uvloop; sys_platform == 'linux'"},
			},
		},
	}

	adapter := NewReportFileAdapter()
	require.NoError(t, adapter.WriteForkReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "environment: universal")

	got, err := adapter.ReadForkReport(path)
	require.NoError(t, err)
	if diff := cmp.Diff(report, got); diff != "" {
		t.Fatalf("unexpected report (-want +got):\n%s", diff)
	}
}

func TestReadForkReportMissing(t *testing.T) {
	_, err := NewReportFileAdapter().ReadForkReport(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestWriteForkReportUnwritableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := NewReportFileAdapter().WriteForkReport(filepath.Join(blocker, "forks.yaml"), types.ForkReport{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}
