package org_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/orgtext/pkg/org"
)

// Contract: a heading built from nothing has every field absent and every
// collection empty (not nil), ready for field assignment.
func Test_NewHeading_Returns_Empty_Heading_When_No_Lines(t *testing.T) {
	t.Parallel()

	for _, lines := range [][]string{nil, {}} {
		h := org.NewHeading(lines)

		want := &org.Heading{Tags: []string{}, Drawers: org.Drawers{}, Body: []string{}}
		if diff := cmp.Diff(want, h); diff != "" {
			t.Fatalf("heading mismatch (-want +got):\n%s", diff)
		}

		if h.Tags == nil || h.Drawers == nil || h.Body == nil {
			t.Fatalf("collections must be non-nil: %+v", h)
		}
	}
}

func Test_NewHeading_Parses_Metadata_Drawers_And_Body_When_Block_Complete(t *testing.T) {
	t.Parallel()

	lines := []string{
		"*** NEXT [#B] Example heading with TODO, PRIORITY and Tags :tag1:tag2:",
		":PROPERTIES:",
		":prop1: one",
		":prop2: two",
		":END:",
		"The first line of the body",
		"The second line of the body",
	}

	got := org.NewHeading(lines)

	want := &org.Heading{
		Level:    3,
		State:    org.StateNext,
		Priority: org.PriorityB,
		Title:    "Example heading with TODO, PRIORITY and Tags",
		Tags:     []string{"tag1", "tag2"},
		Drawers:  org.Drawers{{Name: "PROPERTIES", Lines: []string{":prop1: one", ":prop2: two"}}},
		Body:     lines[1:],
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("heading mismatch (-want +got):\n%s", diff)
	}

	got.Body[0] = "changed"
	if lines[1] != ":PROPERTIES:" {
		t.Fatalf("NewHeading must not alias the caller's lines")
	}
}

func Test_NewHeading_Returns_Empty_Body_When_Only_Heading_Line(t *testing.T) {
	t.Parallel()

	got := org.NewHeading([]string{"*** Example heading"})

	want := &org.Heading{Level: 3, Title: "Example heading", Tags: []string{}, Drawers: org.Drawers{}, Body: []string{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("heading mismatch (-want +got):\n%s", diff)
	}
}

// Contract: a block that does not start with a heading line becomes the
// level 0 preamble with no metadata, even if it contains drawer markers.
func Test_NewHeading_Returns_Preamble_When_First_Line_Not_Heading(t *testing.T) {
	t.Parallel()

	lines := []string{"#+TITLE: x", ":A:", "a", ":END:"}

	got := org.NewHeading(lines)

	want := &org.Heading{Tags: []string{}, Drawers: org.Drawers{}, Body: lines}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("heading mismatch (-want +got):\n%s", diff)
	}
}

func Test_Heading_HasTag_And_Headline_Reflect_Fields(t *testing.T) {
	t.Parallel()

	h := org.NewHeading([]string{"** DONE Ship :release:v2:"})

	if !h.HasTag("v2") || h.HasTag("v3") {
		t.Fatalf("HasTag gave wrong answers for %v", h.Tags)
	}

	hl := h.Headline()
	if hl.Level != 2 || hl.State != org.StateDone || hl.Title != "Ship" {
		t.Fatalf("unexpected headline %+v", hl)
	}
}
