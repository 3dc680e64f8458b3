package org

import (
	"slices"
	"strings"
)

// FormatHeadline renders the heading line of h: the markers, then the
// keyword and the priority cookie, each after a space when set, then a space
// and the title, then a tab and the tag group when there are tags. The space
// before the title is written even when the title is empty, so "* " and
// "* TODO " stay heading lines with their keyword intact.
func FormatHeadline(h *Heading) (string, error) {
	err := validateHeading(h)
	if err != nil {
		return "", err
	}

	if h.Level == 0 {
		return "", headingErr("level 0 heading has no heading line")
	}

	var b strings.Builder

	writeHeadline(&b, h)

	return b.String(), nil
}

// FormatHeading renders h and its body. For Level >= 1 the heading line is
// followed by each body line on its own line; for the level 0 preamble only
// the body lines are written. No trailing line break is added, so a body that
// ends with an empty line is what produces one.
//
// h is validated before anything is rendered.
func FormatHeading(h *Heading) (string, error) {
	err := validateHeading(h)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	writeHeading(&b, h)

	return b.String(), nil
}

func writeHeading(b *strings.Builder, h *Heading) {
	if h.Level == 0 {
		b.WriteString(strings.Join(h.Body, "\n"))

		return
	}

	writeHeadline(b, h)

	for _, line := range h.Body {
		b.WriteByte('\n')
		b.WriteString(line)
	}
}

func writeHeadline(b *strings.Builder, h *Heading) {
	for range h.Level {
		b.WriteByte(Marker)
	}

	if h.State != StateNone {
		b.WriteByte(' ')
		b.WriteString(h.State.String())
	}

	if h.Priority != PriorityNone {
		b.WriteString(" [#")
		b.WriteByte(byte(h.Priority))
		b.WriteByte(']')
	}

	b.WriteByte(' ')
	b.WriteString(h.Title)

	if len(h.Tags) > 0 {
		// After a title ending in ':' any separator would read back as a tag.
		if !strings.HasSuffix(h.Title, ":") {
			b.WriteByte('\t')
		}

		b.WriteByte(':')
		b.WriteString(strings.Join(h.Tags, ":"))
		b.WriteByte(':')
	}
}

func validateHeading(h *Heading) error {
	if h == nil {
		return headingErr("nil heading")
	}

	if h.Level < 0 {
		return headingErr("negative level %d", h.Level)
	}

	if !h.State.Valid() {
		return headingErr("unknown state %s", h.State)
	}

	if h.Priority != PriorityNone && !h.Priority.Valid() {
		return headingErr("priority %q not in A-C", rune(h.Priority))
	}

	if h.Level == 0 && (h.State != StateNone || h.Priority != PriorityNone || h.Title != "" || len(h.Tags) > 0) {
		return headingErr("level 0 heading cannot carry metadata")
	}

	if hasLineBreak(h.Title) {
		return headingErr("title contains a line break")
	}

	for _, tag := range h.Tags {
		if !validTag(tag) || hasLineBreak(tag) {
			return headingErr("bad tag %q", tag)
		}
	}

	for i, line := range h.Body {
		if hasLineBreak(line) {
			return headingErr("body line %d contains a line break", i)
		}
	}

	if h.Level > 0 {
		return checkReadsBack(h)
	}

	return nil
}

// checkReadsBack rejects headings whose line would parse to other fields,
// such as a title that starts with a keyword or ends in a tag group.
func checkReadsBack(h *Heading) error {
	var b strings.Builder

	writeHeadline(&b, h)

	hl, ok := ParseHeadline(b.String())
	if !ok || hl.State != h.State || hl.Priority != h.Priority || hl.Title != h.Title || !slices.Equal(hl.Tags, h.Tags) {
		return headingErr("title %q does not read back from %q", h.Title, b.String())
	}

	return nil
}

func hasLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}
