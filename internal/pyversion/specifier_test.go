package pyversion

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecifierRanges(t *testing.T) {
	tests := []struct {
		op      string
		version string
		want    []string
	}{
		{"==", "3.8", []string{"==3.8"}},
		{"===", "3.8", []string{"==3.8"}},
		{">=", "3.8", []string{">=3.8"}},
		{">", "3.8", []string{">3.8"}},
		{"<=", "3.8", []string{"<=3.8"}},
		{"<", "3.8", []string{"<3.8"}},
		{"!=", "3.8", []string{"<3.8", ">3.8"}},
		{"~=", "3.8", []string{">=3.8, <4"}},
		{"~=", "3.8.1", []string{">=3.8.1, <3.9"}},
		{"==", "3.8.*", []string{">=3.8, <3.9"}},
		{"!=", "3.8.*", []string{"<3.8", ">=3.9"}},
	}
	for _, tt := range tests {
		t.Run(tt.op+tt.version, func(t *testing.T) {
			ranges, err := SpecifierRanges(tt.op, tt.version)
			require.NoError(t, err)
			got := make([]string, 0, len(ranges))
			for _, r := range ranges {
				got = append(got, r.String())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected ranges (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpecifierRangesErrors(t *testing.T) {
	tests := []struct {
		op      string
		version string
	}{
		{">=", "3.8.*"},
		{"~=", "3"},
		{"==", "not-a-version"},
		{"<>", "3.8"},
	}
	for _, tt := range tests {
		_, err := SpecifierRanges(tt.op, tt.version)
		require.Error(t, err, "%s%s", tt.op, tt.version)
		assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	}
}

func TestSplitSpecifier(t *testing.T) {
	op, version, err := SplitSpecifier(" >= 3.8 ")
	require.NoError(t, err)
	assert.Equal(t, ">=", op)
	assert.Equal(t, "3.8", version)

	op, version, err = SplitSpecifier("===3.8")
	require.NoError(t, err)
	assert.Equal(t, "===", op)
	assert.Equal(t, "3.8", version)

	_, _, err = SplitSpecifier("3.8")
	require.Error(t, err)
	_, _, err = SplitSpecifier(">=")
	require.Error(t, err)
}

func TestBumpPrefix(t *testing.T) {
	v, err := Parse("3.8.2")
	require.NoError(t, err)

	next, err := BumpPrefix(v, 2)
	require.NoError(t, err)
	assert.Equal(t, "3.9", next.String())

	next, err = BumpPrefix(v, 1)
	require.NoError(t, err)
	assert.Equal(t, "4", next.String())

	_, err = BumpPrefix(v, 4)
	require.Error(t, err)
	assert.Equal(t, []int{3, 8, 2}, Release(v))
}
