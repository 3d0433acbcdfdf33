package reporting

import (
	"os"
	"strings"

	"github.com/acarl005/stripansi"
)

const maxDetailLen = 80

// ExtractFailureDetail returns the first non-empty line of a case's captured
// stderr, with ANSI escapes stripped and long lines truncated, for display
// in the summary table. Subjects often print colored diagnostics before
// crashing; the raw capture file stays untouched.
func ExtractFailureDetail(stderrPath string) string {
	data, err := os.ReadFile(stderrPath)
	if err != nil {
		return ""
	}

	clean := stripansi.Strip(string(data))
	for _, line := range strings.Split(clean, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > maxDetailLen {
			return line[:maxDetailLen-3] + "..."
		}
		return line
	}
	return ""
}
