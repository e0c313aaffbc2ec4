package app

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return filepath.Join(root, "fixtures", name)
}

func TestValidateApp(t *testing.T) {
	service := NewService()
	result, err := service.ValidateSeeds(t.Context(), ValidateRequest{
		SeedsPath: fixture(t, "platform-seeds.yaml"),
	})
	require.NoError(t, err)
	if diff := cmp.Diff(3, result.SeedCount); diff != "" {
		t.Fatalf("unexpected seed count (-want +got):\n%s", diff)
	}
}

func TestValidateAppExplicitSeedsAppendToFile(t *testing.T) {
	service := NewService()
	_, err := service.ValidateSeeds(t.Context(), ValidateRequest{
		SeedsPath: fixture(t, "platform-seeds.yaml"),
		Seeds:     []string{"sys_platform == 'win32'"},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "fork seeds 2 and 3 overlap")
}

func TestValidateAppRequiresSeeds(t *testing.T) {
	_, err := NewService().ValidateSeeds(t.Context(), ValidateRequest{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestValidateAppMissingFile(t *testing.T) {
	_, err := NewService().ValidateSeeds(t.Context(), ValidateRequest{
		SeedsPath: filepath.Join(t.TempDir(), "missing.yaml"),
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
