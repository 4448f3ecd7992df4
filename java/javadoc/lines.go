package javadoc

import "sort"

// LineTable holds the offset of the last character of every line
// terminator in a source buffer, in ascending order. Line numbers are
// 1-based.
type LineTable []int

// ComputeLines scans src for line terminators. A "\r\n" pair ends one
// line at the '\n'.
func ComputeLines(src []rune) LineTable {
	var ends LineTable
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			ends = append(ends, i)
		case '\n':
			ends = append(ends, i)
		}
	}
	return ends
}

// LineNumber returns the line containing pos. A terminator belongs to
// the line it ends.
func (t LineTable) LineNumber(pos int) int {
	return sort.SearchInts(t, pos) + 1
}

// LineStart returns the offset of the first character of line.
func (t LineTable) LineStart(line int) int {
	if line <= 1 {
		return 0
	}
	if line-2 >= len(t) {
		return -1
	}
	return t[line-2] + 1
}

// LineEnd returns the offset of the terminator ending line, or eof for
// the last line.
func (t LineTable) LineEnd(line, eof int) int {
	switch {
	case line <= 0 || line > len(t)+1:
		return -1
	case line == len(t)+1:
		return eof
	}
	return t[line-1]
}
