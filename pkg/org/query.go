package org

import "slices"

// Filter selects headings by their metadata. Zero fields match anything.
type Filter struct {
	State    State
	Priority Priority
	Tag      string
	MaxLevel int
}

// Match reports whether h satisfies every set field of f. The level 0
// preamble never matches.
func (f Filter) Match(h *Heading) bool {
	if h == nil || h.Level == 0 {
		return false
	}

	if f.State != StateNone && h.State != f.State {
		return false
	}

	if f.Priority != PriorityNone && h.Priority != f.Priority {
		return false
	}

	if f.Tag != "" && !h.HasTag(f.Tag) {
		return false
	}

	if f.MaxLevel > 0 && h.Level > f.MaxLevel {
		return false
	}

	return true
}

// Select returns the headings matching f, in document order. The headings
// are shared with d.
func (d Document) Select(f Filter) Document {
	out := Document{}

	for _, h := range d {
		if f.Match(h) {
			out = append(out, h)
		}
	}

	return out
}

// StripDrawers returns a copy of d whose headings have every well-formed
// drawer removed from their bodies. d is not modified.
func (d Document) StripDrawers() Document {
	out := make(Document, 0, len(d))

	for _, h := range d {
		if h == nil {
			out = append(out, nil)

			continue
		}

		c := *h
		c.Tags = slices.Clone(h.Tags)

		if h.Level > 0 {
			body := LinesOf(h.Body)
			ExtractDrawers(body, true)
			c.Body = body.Strings()
			c.Drawers = Drawers{}
		} else {
			c.Body = slices.Clone(h.Body)
		}

		out = append(out, &c)
	}

	return out
}
