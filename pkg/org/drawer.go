package org

import "strings"

const drawerEnd = "END"

// Line is one entry of an index-stable line sequence. A Hole is a line that
// was consumed by [ExtractDrawers] in remove mode; it keeps its index so
// positions held by other code stay valid.
type Line struct {
	Text string
	Hole bool
}

// Lines is a body whose entries can be turned into holes without reindexing.
type Lines []Line

// LinesOf wraps plain lines. The returned slice does not alias ss.
func LinesOf(ss []string) Lines {
	out := make(Lines, len(ss))
	for i, s := range ss {
		out[i] = Line{Text: s}
	}

	return out
}

// Strings returns the text of every line that is not a hole, in order.
func (ls Lines) Strings() []string {
	out := make([]string, 0, len(ls))

	for _, l := range ls {
		if !l.Hole {
			out = append(out, l.Text)
		}
	}

	return out
}

// Holes counts the hole entries.
func (ls Lines) Holes() int {
	n := 0

	for _, l := range ls {
		if l.Hole {
			n++
		}
	}

	return n
}

// Drawer is a named region of a heading body.
type Drawer struct {
	Name  string
	Lines []string
}

// Drawers holds a body's drawers in order of first appearance.
type Drawers []Drawer

// Get returns the lines of the drawer called name.
func (d Drawers) Get(name string) ([]string, bool) {
	for _, dr := range d {
		if dr.Name == name {
			return dr.Lines, true
		}
	}

	return nil, false
}

// Names returns the drawer names in order.
func (d Drawers) Names() []string {
	out := make([]string, len(d))
	for i, dr := range d {
		out[i] = dr.Name
	}

	return out
}

// Len returns the number of drawers.
func (d Drawers) Len() int {
	return len(d)
}

// set replaces the lines of an existing drawer in place, or appends.
func (d Drawers) set(name string, lines []string) Drawers {
	for i := range d {
		if d[i].Name == name {
			d[i].Lines = lines

			return d
		}
	}

	return append(d, Drawer{Name: name, Lines: lines})
}

// ExtractDrawers collects the drawers of body.
//
// A line ":NAME:" (surrounding whitespace ignored, NAME not "END") opens a
// drawer and drops any drawer still open. A line ":END:" commits the open
// drawer; without an open drawer it is ignored. A drawer that is never closed
// is not returned. When a name repeats, the later drawer's lines replace the
// earlier ones.
//
// With remove set, the start, content and end lines of every committed drawer
// become holes in body. Nothing is spliced out, so len(body) is unchanged.
// Holes already present in body are skipped.
func ExtractDrawers(body Lines, remove bool) Drawers {
	out := Drawers{}

	for _, sp := range scanDrawers(body) {
		lines := []string{}

		for i := sp.start + 1; i < sp.end; i++ {
			if !body[i].Hole {
				lines = append(lines, body[i].Text)
			}
		}

		out = out.set(sp.name, lines)

		if remove {
			for i := sp.start; i <= sp.end; i++ {
				body[i] = Line{Hole: true}
			}
		}
	}

	return out
}

// DrawersOf is the non-destructive form of [ExtractDrawers] for plain lines.
func DrawersOf(body []string) Drawers {
	return ExtractDrawers(LinesOf(body), false)
}

// drawerSpan covers a committed drawer: start and end are the indices of its
// start and end marker lines.
type drawerSpan struct {
	name       string
	start, end int
}

func scanDrawers(body Lines) []drawerSpan {
	var (
		spans []drawerSpan
		open  bool
		cur   drawerSpan
	)

	for i, l := range body {
		if l.Hole {
			continue
		}

		if name, ok := drawerStart(l.Text); ok {
			cur = drawerSpan{name: name, start: i}
			open = true

			continue
		}

		if isDrawerEnd(l.Text) && open {
			cur.end = i
			spans = append(spans, cur)
			open = false
		}
	}

	return spans
}

func drawerStart(line string) (string, bool) {
	name, ok := drawerMarker(line)
	if !ok || name == drawerEnd {
		return "", false
	}

	return name, true
}

func isDrawerEnd(line string) bool {
	name, ok := drawerMarker(line)

	return ok && name == drawerEnd
}

// drawerMarker matches a whole line of the form ":NAME:". Names may hold
// spaces but not colons, so a property line ending in ':' is not a marker.
func drawerMarker(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if len(t) < 3 || t[0] != ':' || t[len(t)-1] != ':' {
		return "", false
	}

	name := t[1 : len(t)-1]
	if strings.ContainsRune(name, ':') {
		return "", false
	}

	return name, true
}
