package org

import "strings"

// SplitLines normalizes line breaks ("\r\n" and a lone "\r" become "\n") and
// splits text into lines. The empty text is a single empty line, and a
// trailing line break yields a trailing empty line, so joining the result
// with "\n" gives back the normalized text.
func SplitLines(text string) []string {
	if strings.ContainsRune(text, '\r') {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}

	return strings.Split(text, "\n")
}

// SplitBlocks groups lines into heading blocks. A block starts at every
// heading line and runs up to the next heading line of any level. Lines
// before the first heading line form a leading preamble block, which is
// absent when the first line is a heading.
//
// Blocks are subslices of lines (capacity-limited, so appending to one block
// does not overwrite the next).
func SplitBlocks(lines []string) [][]string {
	var blocks [][]string

	start := 0

	for i, line := range lines {
		if i > start && IsHeadingLine(line) {
			blocks = append(blocks, lines[start:i:i])
			start = i
		}
	}

	if start < len(lines) {
		blocks = append(blocks, lines[start:len(lines):len(lines)])
	}

	return blocks
}
