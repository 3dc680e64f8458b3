package cli

import (
	"strings"

	"github.com/calvinalkan/orgtext/pkg/org"
)

// headingView is the encoded form of a heading for json and yaml output.
type headingView struct {
	Level    int          `json:"level"              yaml:"level"`
	State    org.State    `json:"state,omitempty"    yaml:"state,omitempty"`
	Priority org.Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
	Title    string       `json:"title,omitempty"    yaml:"title,omitempty"`
	Tags     []string     `json:"tags"               yaml:"tags"`
	Drawers  []drawerView `json:"drawers,omitempty"  yaml:"drawers,omitempty"`
	Body     []string     `json:"body,omitempty"     yaml:"body,omitempty"`
}

type drawerView struct {
	Name  string   `json:"name"  yaml:"name"`
	Lines []string `json:"lines" yaml:"lines"`
}

func viewOf(h *org.Heading, withBody bool) headingView {
	v := headingView{
		Level:    h.Level,
		State:    h.State,
		Priority: h.Priority,
		Title:    h.Title,
		Tags:     h.Tags,
	}

	if v.Tags == nil {
		v.Tags = []string{}
	}

	if withBody {
		v.Drawers = drawerViews(h.Drawers)
		v.Body = h.Body
	}

	return v
}

func drawerViews(drawers org.Drawers) []drawerView {
	out := make([]drawerView, 0, len(drawers))
	for _, d := range drawers {
		out = append(out, drawerView{Name: d.Name, Lines: d.Lines})
	}

	return out
}

// summary renders the metadata of h on one line: keyword, priority cookie,
// title and tag group, space separated.
func summary(h *org.Heading) string {
	parts := make([]string, 0, 4)

	if h.State != org.StateNone {
		parts = append(parts, h.State.String())
	}

	if h.Priority != org.PriorityNone {
		parts = append(parts, "[#"+h.Priority.String()+"]")
	}

	if h.Title != "" {
		parts = append(parts, h.Title)
	}

	if len(h.Tags) > 0 {
		parts = append(parts, ":"+strings.Join(h.Tags, ":")+":")
	}

	return strings.Join(parts, " ")
}

// indent returns the prefix for a heading at level under the configured width.
func (a *app) indent(level int) string {
	if level <= 1 {
		return ""
	}

	return strings.Repeat(" ", (level-1)*a.cfg.IndentWidth())
}
