package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distsys-lab/grade-runner/types"
)

func makeCase(t *testing.T, captured, expected string) types.TestCase {
	t.Helper()
	dir := t.TempDir()
	tc := types.TestCase{
		Name:         "t1",
		ExpectedPath: filepath.Join(dir, "t1.expected"),
		CapturedOut:  filepath.Join(dir, "t1.captured"),
	}
	require.NoError(t, os.WriteFile(tc.ExpectedPath, []byte(expected), 0644))
	require.NoError(t, os.WriteFile(tc.CapturedOut, []byte(captured), 0644))
	return tc
}

func TestCompareCase(t *testing.T) {
	tests := []struct {
		name     string
		captured string
		expected string
		verdict  types.Verdict
	}{
		{
			name:     "exact match",
			captured: "9\n",
			expected: "9\n",
			verdict:  types.VerdictCorrect,
		},
		{
			name:     "leading and trailing whitespace is ignored",
			captured: "  9\n\n",
			expected: "\t9",
			verdict:  types.VerdictCorrect,
		},
		{
			name:     "interior whitespace is significant",
			captured: "1 2\n",
			expected: "1  2\n",
			verdict:  types.VerdictWrong,
		},
		{
			name:     "content difference",
			captured: "10\n",
			expected: "9\n",
			verdict:  types.VerdictWrong,
		},
		{
			name:     "empty captured output",
			captured: "",
			expected: "9\n",
			verdict:  types.VerdictWrong,
		},
		{
			name:     "both empty",
			captured: "\n",
			expected: "",
			verdict:  types.VerdictCorrect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := CompareCase(makeCase(t, tt.captured, tt.expected))
			require.NoError(t, err)
			assert.Equal(t, tt.verdict, verdict)
		})
	}
}

func TestCompareCaseMissingExpectedFile(t *testing.T) {
	tc := makeCase(t, "9\n", "9\n")
	require.NoError(t, os.Remove(tc.ExpectedPath))

	_, err := CompareCase(tc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected output")
}

func TestCompareCaseMissingCapturedFile(t *testing.T) {
	tc := makeCase(t, "9\n", "9\n")
	require.NoError(t, os.Remove(tc.CapturedOut))

	_, err := CompareCase(tc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "captured output")
}
