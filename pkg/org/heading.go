package org

import "strings"

// Heading is one node of an outline. Level 0 is the preamble: the lines
// before the first heading, with no metadata. Real headings have Level >= 1.
//
// Drawers is derived from Body when the heading is parsed; Body keeps the
// drawer lines. Fields may be assigned directly to build headings in code.
type Heading struct {
	Level    int
	State    State
	Priority Priority
	Title    string
	Tags     []string
	Drawers  Drawers
	Body     []string
}

// NewHeading builds a heading from one block: its heading line followed by
// its body. Sub-headings must not be included.
//
// With no lines it returns an empty heading. When the first line is not a
// heading line, the whole block becomes the body of a level 0 heading.
func NewHeading(lines []string) *Heading {
	if len(lines) == 0 {
		return &Heading{Tags: []string{}, Drawers: Drawers{}, Body: []string{}}
	}

	hl, ok := ParseHeadline(lines[0])
	if !ok {
		return &Heading{Tags: []string{}, Drawers: Drawers{}, Body: copyLines(lines)}
	}

	body := copyLines(lines[1:])

	return &Heading{
		Level:    hl.Level,
		State:    hl.State,
		Priority: hl.Priority,
		Title:    hl.Title,
		Tags:     hl.Tags,
		Drawers:  DrawersOf(body),
		Body:     body,
	}
}

// HasTag reports whether tag is one of the heading's tags.
func (h *Heading) HasTag(tag string) bool {
	for _, t := range h.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

// Headline returns the metadata of h as parsed from its heading line.
func (h *Heading) Headline() Headline {
	return Headline{
		Level:    h.Level,
		State:    h.State,
		Priority: h.Priority,
		Title:    h.Title,
		Tags:     h.Tags,
	}
}

func copyLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSuffix(l, "\r")
	}

	return out
}
