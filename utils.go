package grader

import (
	"fmt"
	"time"

	"github.com/distsys-lab/grade-runner/types"
)

// getVerdictString returns a marked string representing the case verdict
func getVerdictString(v types.Verdict) string {
	if v == types.VerdictCorrect {
		return "✓ correct"
	}
	return "✗ wrong"
}

// Helper function to format duration to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
