package sources

import "strings"

// findColumn locates a header column by candidate names, case-insensitively.
// Upstream datasets rename columns between publications, so each adapter
// lists the wordings it has seen. Returns -1 when none is present.
func findColumn(header []string, candidates ...string) int {
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for _, candidate := range candidates {
			if name == candidate {
				return i
			}
		}
	}
	return -1
}

// cellAt returns the trimmed cell at index or "" when the row is short.
func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
