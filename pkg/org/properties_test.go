package org_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/orgtext/pkg/org"
)

func Test_ParseProperties_Returns_Entries_In_Order_When_Lines_Valid(t *testing.T) {
	t.Parallel()

	got, err := org.ParseProperties([]string{
		"\t:date:2016-01-21 12:32:32",
		"",
		"  :prop2:   some property  ",
		":EMPTY:",
	})
	require.NoError(t, err)

	want := org.Properties{
		{Key: "date", Value: "2016-01-21 12:32:32"},
		{Key: "prop2", Value: "some property"},
		{Key: "EMPTY", Value: ""},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}

	v, ok := got.Get("prop2")
	require.True(t, ok)
	require.Equal(t, "some property", v)

	_, ok = got.Get("missing")
	require.False(t, ok)
}

// Contract: malformed lines fail with the 1-based line inside the drawer.
func Test_ParseProperties_Returns_PropertyError_When_Line_Malformed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		lines    []string
		wantLine int
		wantMsg  string
	}{
		{name: "no leading colon", lines: []string{"key: v"}, wantLine: 1, wantMsg: "missing leading ':'"},
		{name: "no closing colon", lines: []string{":k: v", ":key v"}, wantLine: 2, wantMsg: "missing ':' after key"},
		{name: "empty key", lines: []string{":: v"}, wantLine: 1, wantMsg: "empty key"},
		{name: "space in key", lines: []string{":a b: v"}, wantLine: 1, wantMsg: "whitespace in key"},
		{name: "duplicate", lines: []string{":k: 1", "", ":k: 2"}, wantLine: 3, wantMsg: "duplicate key"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := org.ParseProperties(tc.lines)

			var perr *org.PropertyError
			if !errors.As(err, &perr) {
				t.Fatalf("err=%v, want *PropertyError", err)
			}

			if perr.Line != tc.wantLine || perr.Msg != tc.wantMsg {
				t.Fatalf("got line=%d msg=%q, want line=%d msg=%q", perr.Line, perr.Msg, tc.wantLine, tc.wantMsg)
			}
		})
	}
}

func Test_Heading_Properties_Returns_Empty_When_No_Drawer(t *testing.T) {
	t.Parallel()

	h := org.NewHeading([]string{"* A", "text"})

	props, err := h.Properties()
	require.NoError(t, err)
	require.Empty(t, props)
}

// Contract: a heading without a property drawer gets one at the top of its body.
func Test_SetProperty_Creates_Drawer_When_Heading_Has_None(t *testing.T) {
	t.Parallel()

	h := org.NewHeading([]string{"* A", "text"})

	require.NoError(t, h.SetProperty("ID", "abc"))
	require.Equal(t, []string{":PROPERTIES:", ":ID: abc", ":END:", "text"}, h.Body)

	lines, ok := h.Drawers.Get(org.PropertiesDrawer)
	require.True(t, ok)
	require.Equal(t, []string{":ID: abc"}, lines)
}

// Contract: existing keys are rewritten in place keeping their indent; new
// keys go before the end line with its indent.
func Test_SetProperty_Edits_Existing_Drawer_When_Present(t *testing.T) {
	t.Parallel()

	h := org.NewHeading([]string{
		"** Task",
		"  :PROPERTIES:",
		"  :ID: old",
		"  :END:",
		"body",
	})

	require.NoError(t, h.SetProperty("ID", "new"))
	require.NoError(t, h.SetProperty("OWNER", "ana"))

	want := []string{
		"  :PROPERTIES:",
		"  :ID: new",
		"  :OWNER: ana",
		"  :END:",
		"body",
	}
	require.Equal(t, want, h.Body)

	props, err := h.Properties()
	require.NoError(t, err)
	require.Equal(t, org.Properties{{Key: "ID", Value: "new"}, {Key: "OWNER", Value: "ana"}}, props)

	out, err := org.FormatHeading(h)
	require.NoError(t, err)
	require.Equal(t, "** Task\n  :PROPERTIES:\n  :ID: new\n  :OWNER: ana\n  :END:\nbody", out)
}

func Test_SetProperty_Returns_ErrInvalidProperty_When_Input_Unrepresentable(t *testing.T) {
	t.Parallel()

	h := org.NewHeading([]string{"* A"})

	for _, kv := range [][2]string{{"", "v"}, {"a b", "v"}, {"a:b", "v"}, {"END", "v"}, {"K", ""}, {"K", "  "}, {"K", "a\nb"}} {
		err := h.SetProperty(kv[0], kv[1])
		require.ErrorIs(t, err, org.ErrInvalidProperty, "key=%q value=%q", kv[0], kv[1])
	}

	require.Empty(t, h.Body)

	preamble := org.NewHeading([]string{"text"})
	require.ErrorIs(t, preamble.SetProperty("K", "v"), org.ErrInvalidProperty)
}
