package org

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Document is a parsed outline: its headings in source order. Nesting is
// only expressed by each heading's Level.
type Document []*Heading

// Parse splits src into heading blocks and parses each one. Line breaks are
// normalized first, so no carriage return reaches a parsed value.
//
// The only failure is src not being valid UTF-8, reported as
// [ErrInvalidInput] before any heading is built.
func Parse(src []byte) (Document, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrInvalidInput)
	}

	return parseLines(SplitLines(string(src))), nil
}

// ParseString is [Parse] for a string.
func ParseString(src string) (Document, error) {
	if !utf8.ValidString(src) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrInvalidInput)
	}

	return parseLines(SplitLines(src)), nil
}

func parseLines(lines []string) Document {
	blocks := SplitBlocks(lines)

	doc := make(Document, 0, len(blocks))
	for _, block := range blocks {
		doc = append(doc, NewHeading(block))
	}

	return doc
}

// Format serializes doc: each heading as by [FormatHeading], joined by a
// line break. Every heading is validated before output is produced, and the
// first invalid one is reported with its index.
func Format(doc Document) (string, error) {
	for i, h := range doc {
		err := validateHeading(h)
		if err != nil {
			return "", fmt.Errorf("heading %d: %w", i, err)
		}
	}

	var b strings.Builder

	for i, h := range doc {
		if i > 0 {
			b.WriteByte('\n')
		}

		writeHeading(&b, h)
	}

	return b.String(), nil
}
