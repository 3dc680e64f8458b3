package org_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/orgtext/pkg/org"
)

// Contract: two distinct drawers are returned with their exact content and
// nothing from outside any drawer.
func Test_ExtractDrawers_Returns_Each_Drawer_When_Body_Has_Two(t *testing.T) {
	t.Parallel()

	body := []string{
		"   :LOGBOOK:",
		"   - Note taken on [2016-08-21 Sun 23:41] \\",
		"     This is a test.",
		"   :END:",
		"\t:PROPERTIES:",
		"\t:date:2016-01-21 12:32:32",
		"\t:prop2:some property",
		"\t:END:",
		"Some other body lines of text",
	}

	got := org.DrawersOf(body)

	want := org.Drawers{
		{Name: "LOGBOOK", Lines: []string{
			"   - Note taken on [2016-08-21 Sun 23:41] \\",
			"     This is a test.",
		}},
		{Name: "PROPERTIES", Lines: []string{
			"\t:date:2016-01-21 12:32:32",
			"\t:prop2:some property",
		}},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("drawers mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"LOGBOOK", "PROPERTIES"}, got.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func Test_ExtractDrawers_Returns_Minimal_Drawers_When_Single_Line_Content(t *testing.T) {
	t.Parallel()

	got := org.DrawersOf([]string{":PROPERTIES:", ":k: v", ":END:", ":LOGBOOK:", "- entry", ":END:"})

	props, ok := got.Get("PROPERTIES")
	if !ok || !cmp.Equal(props, []string{":k: v"}) {
		t.Fatalf("PROPERTIES=%q ok=%v", props, ok)
	}

	logbook, ok := got.Get("LOGBOOK")
	if !ok || !cmp.Equal(logbook, []string{"- entry"}) {
		t.Fatalf("LOGBOOK=%q ok=%v", logbook, ok)
	}

	if got.Len() != 2 {
		t.Fatalf("len=%d, want=2", got.Len())
	}
}

// Contract: remove mode turns consumed lines into holes without reindexing.
func Test_ExtractDrawers_Leaves_Holes_When_Remove_Mode(t *testing.T) {
	t.Parallel()

	body := org.LinesOf([]string{
		"\t:PROPERTIES:",
		"\t:date:2016-01-21 12:32:32",
		"\t:prop2:some property",
		"\t:END:",
		"Some other body lines of text",
		"that makes up the body",
	})

	drawers := org.ExtractDrawers(body, true)

	want := org.Lines{
		{Hole: true},
		{Hole: true},
		{Hole: true},
		{Hole: true},
		{Text: "Some other body lines of text"},
		{Text: "that makes up the body"},
	}

	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}

	if body.Holes() != 4 {
		t.Fatalf("holes=%d, want=4", body.Holes())
	}

	if diff := cmp.Diff([]string{"Some other body lines of text", "that makes up the body"}, body.Strings()); diff != "" {
		t.Fatalf("remaining lines mismatch (-want +got):\n%s", diff)
	}

	if _, ok := drawers.Get("PROPERTIES"); !ok {
		t.Fatalf("PROPERTIES drawer not returned in remove mode")
	}
}

// Contract: without remove mode the input is never touched.
func Test_ExtractDrawers_Keeps_Body_When_Not_Removing(t *testing.T) {
	t.Parallel()

	body := org.LinesOf([]string{":A:", "x", ":END:"})
	before := append(org.Lines(nil), body...)

	org.ExtractDrawers(body, false)

	if diff := cmp.Diff(before, body); diff != "" {
		t.Fatalf("body changed (-before +after):\n%s", diff)
	}
}

// Contract: malformed drawer structures degrade instead of failing.
func Test_ExtractDrawers_Degrades_Gracefully_When_Markers_Malformed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body []string
		want org.Drawers
	}{
		{
			name: "unterminated drawer is dropped",
			body: []string{":LOGBOOK:", "- entry", "text"},
			want: org.Drawers{},
		},
		{
			name: "orphan end is ignored",
			body: []string{"text", ":END:", ":A:", "a", ":END:"},
			want: org.Drawers{{Name: "A", Lines: []string{"a"}}},
		},
		{
			name: "later start discards open drawer",
			body: []string{":A:", "a", ":B:", "b", ":END:"},
			want: org.Drawers{{Name: "B", Lines: []string{"b"}}},
		},
		{
			name: "repeated name keeps last content at first position",
			body: []string{":A:", "first", ":END:", ":B:", ":END:", ":A:", "second", ":END:"},
			want: org.Drawers{
				{Name: "A", Lines: []string{"second"}},
				{Name: "B", Lines: []string{}},
			},
		},
		{
			name: "names may hold spaces",
			body: []string{":MY DRAWER:", "x", ":END:"},
			want: org.Drawers{{Name: "MY DRAWER", Lines: []string{"x"}}},
		},
		{
			name: "names with colons are not markers",
			body: []string{":A:", ":URL: http://x/:", ":END:"},
			want: org.Drawers{{Name: "A", Lines: []string{":URL: http://x/:"}}},
		},
		{
			name: "trailing whitespace tolerated",
			body: []string{"  :A:  ", "x", " :END: "},
			want: org.Drawers{{Name: "A", Lines: []string{"x"}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := org.DrawersOf(tc.body)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("drawers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Contract: lines of an unterminated drawer stay in place even in remove mode.
func Test_ExtractDrawers_Keeps_Unterminated_Lines_When_Remove_Mode(t *testing.T) {
	t.Parallel()

	body := org.LinesOf([]string{":A:", "kept", ":B:", "b", ":END:", ":END:"})

	org.ExtractDrawers(body, true)

	want := []string{":A:", "kept", ":END:"}
	if diff := cmp.Diff(want, body.Strings()); diff != "" {
		t.Fatalf("remaining lines mismatch (-want +got):\n%s", diff)
	}

	if len(body) != 6 {
		t.Fatalf("len=%d, want=6", len(body))
	}
}
