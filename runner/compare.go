package runner

import (
	"fmt"
	"os"
	"strings"

	"github.com/distsys-lab/grade-runner/types"
)

// CompareCase reads the captured and expected output files for tc fully into
// memory and compares them after stripping leading and trailing whitespace
// from each. The verdict is correct iff the trimmed contents are equal; any
// non-whitespace difference is wrong. A read error on either file is fatal
// to the run and is returned to the caller.
func CompareCase(tc types.TestCase) (types.Verdict, error) {
	captured, err := os.ReadFile(tc.CapturedOut)
	if err != nil {
		return "", fmt.Errorf("failed to read captured output for %s: %w", tc.Name, err)
	}
	expected, err := os.ReadFile(tc.ExpectedPath)
	if err != nil {
		return "", fmt.Errorf("failed to read expected output for %s: %w", tc.Name, err)
	}

	if strings.TrimSpace(string(captured)) == strings.TrimSpace(string(expected)) {
		return types.VerdictCorrect, nil
	}
	return types.VerdictWrong, nil
}
