// Package testlist discovers grading test cases in a test directory.
package testlist

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/distsys-lab/grade-runner/types"
)

// FindTestCases lists testDir and returns one TestCase per regular file whose
// name ends with the input suffix, sorted lexicographically ascending by base
// name. Directories and files without the suffix are skipped. Discovery is
// performed fresh on every call; nothing is cached between runs.
func FindTestCases(testDir, captureDir string) ([]types.TestCase, error) {
	entries, err := os.ReadDir(testDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read test directory %s: %w", testDir, err)
	}

	var cases []types.TestCase
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), types.InputSuffix) {
			continue
		}
		cases = append(cases, types.NewTestCase(entry.Name(), testDir, captureDir))
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})

	return cases, nil
}

// Names returns the ordered base names of the discovered cases.
func Names(cases []types.TestCase) []string {
	names := make([]string, len(cases))
	for i, tc := range cases {
		names[i] = tc.Name
	}
	return names
}
