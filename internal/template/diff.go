package template

import "strings"

// EditOp is a single line-level edit.
type EditOp int

const (
	// OpEqual means the line is unchanged.
	OpEqual EditOp = iota
	// OpInsert means a line was added.
	OpInsert
	// OpDelete means a line was removed.
	OpDelete
)

// Edit is one step of an edit script between two line slices.
type Edit struct {
	Op EditOp
	// OldLine is the 0-based index in a. -1 for inserts.
	OldLine int
	// NewLine is the 0-based index in b. -1 for deletes.
	NewLine int
}

// DiffLines computes an LCS edit script turning a into b. Equal lines are
// omitted; an empty result means a and b are identical.
func DiffLines(a, b []string) []Edit {
	m, n := len(a), len(b)

	// dp[i][j] = length of LCS of a[:i] and b[:j]
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case a[i-1] == b[j-1]:
				dp[i][j] = dp[i-1][j-1] + 1
			case dp[i-1][j] >= dp[i][j-1]:
				dp[i][j] = dp[i-1][j]
			default:
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	var edits []Edit
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			edits = append(edits, Edit{Op: OpInsert, OldLine: -1, NewLine: j - 1})
			j--
		default:
			edits = append(edits, Edit{Op: OpDelete, OldLine: i - 1, NewLine: -1})
			i--
		}
	}

	for left, right := 0, len(edits)-1; left < right; left, right = left+1, right-1 {
		edits[left], edits[right] = edits[right], edits[left]
	}
	return edits
}

// DiffStat counts the lines that differ between two versions of a file.
type DiffStat struct {
	Added   int
	Removed int
}

// Changed reports whether any line differs.
func (s DiffStat) Changed() bool {
	return s.Added > 0 || s.Removed > 0
}

// CompareContent diffs the file on disk (current) against the rendered
// version (generated). Added counts lines only present on disk.
func CompareContent(generated, current []byte) DiffStat {
	var s DiffStat
	for _, e := range DiffLines(splitLines(string(generated)), splitLines(string(current))) {
		switch e.Op {
		case OpInsert:
			s.Added++
		case OpDelete:
			s.Removed++
		}
	}
	return s
}

// splitLines splits s on newlines. A trailing newline does not produce an
// empty last line, and CRLF endings compare equal to LF.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
