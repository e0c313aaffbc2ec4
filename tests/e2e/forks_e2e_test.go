package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"forkenv/tests/testutil"
)

func TestForksCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	report := filepath.Join(t.TempDir(), "forks.yaml")

	cmd := exec.Command("go", "run", "./cmd/forkenv", "forks",
		"--seeds", "fixtures/platform-seeds.yaml",
		"--requirements", "fixtures/requirements.yaml",
		"--report", report,
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	require.FileExists(t, report)

	cmd = exec.Command("go", "run", "./cmd/forkenv", "inspect", "--report", report)
	cmd.Dir = root
	out, err = cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	require.Contains(t, string(out), "split (sys_platform == 'linux')")
}

func TestValidateCommandOverlapE2E(t *testing.T) {
	root := testutil.RepoRoot(t)

	cmd := exec.Command("go", "run", "./cmd/forkenv", "validate",
		"--seed", "sys_platform == 'linux'",
		"--seed", "os_name == 'posix'",
	)
	cmd.Dir = root
	out, err := cmd.CombinedOutput()
	require.Error(t, err, string(out))
	require.Contains(t, string(out), "overlap")
}
