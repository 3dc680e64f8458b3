package mdimport_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/orgtext/internal/mdimport"
	"github.com/calvinalkan/orgtext/pkg/org"
)

func convert(t *testing.T, src string, opts ...mdimport.Option) string {
	t.Helper()

	doc, err := mdimport.Convert([]byte(src), opts...)
	require.NoError(t, err)

	out, err := org.Format(doc)
	require.NoError(t, err)

	return out
}

// Contract: heading depth carries over and body text stays verbatim.
func Test_Convert_Maps_Nested_Headings_When_Document_Has_Levels(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"Intro paragraph.",
		"",
		"# Guide",
		"",
		"Some *emphasis* here.",
		"",
		"## Install",
		"```sh",
		"go install ./cmd/orgtext",
		"```",
		"### Linux ###",
		"",
	}, "\n")

	want := strings.Join([]string{
		"Intro paragraph.",
		"",
		"* Guide",
		"",
		"Some *emphasis* here.",
		"",
		"** Install",
		"```sh",
		"go install ./cmd/orgtext",
		"```",
		"*** Linux",
		"",
	}, "\n")

	require.Equal(t, want, convert(t, src))
}

func Test_Convert_Recognizes_Setext_Headings(t *testing.T) {
	t.Parallel()

	src := "Title\n=====\n\ntext\n\nSection\n-------\n"

	require.Equal(t, "* Title\n\ntext\n\n** Section\n", convert(t, src))
}

// Contract: body lines never turn into headings of the outline.
func Test_Convert_Escapes_Body_Lines_When_They_Look_Like_Headings(t *testing.T) {
	t.Parallel()

	src := "# List\n* one\n* two\n\n** stars\n"

	out := convert(t, src)
	require.Equal(t, "* List\n- one\n- two\n\n ** stars\n", out)

	doc, err := org.ParseString(out)
	require.NoError(t, err)
	require.Len(t, doc, 1)
}

func Test_Convert_Reads_Outline_Metadata_When_Present_In_Titles(t *testing.T) {
	t.Parallel()

	doc, err := mdimport.Convert([]byte("## DONE [#A] Ship it :release:\n"))
	require.NoError(t, err)
	require.Len(t, doc, 1)

	h := doc[0]
	require.Equal(t, 2, h.Level)
	require.Equal(t, org.StateDone, h.State)
	require.Equal(t, org.PriorityA, h.Priority)
	require.Equal(t, "Ship it", h.Title)
	require.Equal(t, []string{"release"}, h.Tags)
}

func Test_Convert_Offsets_Levels_When_Base_Level_Given(t *testing.T) {
	t.Parallel()

	require.Equal(t, "*** A\n**** B", convert(t, "# A\n## B", mdimport.WithBaseLevel(2)))

	_, err := mdimport.Convert([]byte("# A"), mdimport.WithBaseLevel(-1))
	require.Error(t, err)
}

func Test_Convert_Keeps_Quoted_Headings_As_Body(t *testing.T) {
	t.Parallel()

	require.Equal(t, "* Top\n> # quoted", convert(t, "# Top\n> # quoted"))
}

func Test_Convert_Returns_ErrInvalidInput_When_Not_UTF8(t *testing.T) {
	t.Parallel()

	_, err := mdimport.Convert([]byte{'#', ' ', 0xff})
	if !errors.Is(err, org.ErrInvalidInput) {
		t.Fatalf("err=%v, want ErrInvalidInput", err)
	}
}

// Contract: front matter turns into keyword lines in key order; the rest of
// the file converts as usual.
func Test_Convert_Turns_Front_Matter_Into_Keywords_When_Present(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"---",
		"title: Release notes",
		"tags: [docs, release]",
		"draft:",
		"---",
		"",
		"# Intro",
		"text",
	}, "\n")

	want := strings.Join([]string{
		"#+TITLE: Release notes",
		"#+TAGS: docs release",
		"#+DRAFT:",
		"",
		"* Intro",
		"text",
	}, "\n")

	require.Equal(t, want, convert(t, src))
}

func Test_Convert_Treats_Fence_As_Markdown_When_Not_Closed(t *testing.T) {
	t.Parallel()

	require.Equal(t, "---\n* A", convert(t, "---\n# A"))
}

func Test_Convert_Returns_ErrFrontMatter_When_Block_Unsupported(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
	}{
		{name: "not a mapping", src: "---\n- a\n- b\n---\n# A"},
		{name: "nested mapping", src: "---\nauthor:\n  name: ana\n---\n"},
		{name: "multi-line value", src: "---\nsummary: |\n  one\n  two\n---\n"},
		{name: "broken yaml", src: "---\ntitle: [unclosed\n---\n"},
		{name: "key with space", src: "---\n\"bad key\": x\n---\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := mdimport.Convert([]byte(tc.src))
			if !errors.Is(err, mdimport.ErrFrontMatter) {
				t.Fatalf("err=%v, want ErrFrontMatter", err)
			}
		})
	}
}
