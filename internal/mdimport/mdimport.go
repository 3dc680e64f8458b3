// Package mdimport converts Markdown documents into outlines.
//
// Top-level Markdown headings become outline headings of the same depth.
// Everything between two headings is kept verbatim as the body of the first,
// except lines that would read as outline headings, which are escaped. YAML
// front matter becomes outline keyword lines.
package mdimport

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/calvinalkan/orgtext/pkg/org"
)

type options struct {
	baseLevel int
}

// Option configures [Convert].
type Option func(*options)

// WithBaseLevel nests every imported heading n levels deeper, so a Markdown
// "#" becomes a heading of level n+1.
func WithBaseLevel(n int) Option {
	return func(o *options) {
		o.baseLevel = n
	}
}

type mdHeading struct {
	level int
	title string
	first int // index of the first source line
	last  int // index of the last source line (the underline for setext)
}

// Convert parses Markdown src and returns the equivalent outline. Text
// before the first heading becomes the level 0 preamble. A leading YAML
// front matter block becomes "#+KEY: value" lines at the top of the
// preamble.
func Convert(src []byte, opts ...Option) (org.Document, error) {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}

	if o.baseLevel < 0 {
		return nil, fmt.Errorf("base level %d is negative", o.baseLevel)
	}

	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%w: not valid UTF-8", org.ErrInvalidInput)
	}

	keywords, lines, err := splitFrontMatter(org.SplitLines(string(src)))
	if err != nil {
		return nil, err
	}

	heads := scanHeadings(lines)

	doc := org.Document{}

	end := len(lines)
	if len(heads) > 0 {
		end = heads[0].first
	}

	if preamble := append(keywords, escapeBody(lines[:end])...); len(preamble) > 0 {
		doc = append(doc, org.NewHeading(preamble))
	}

	for i, h := range heads {
		end := len(lines)
		if i+1 < len(heads) {
			end = heads[i+1].first
		}

		headline := strings.Repeat(string(org.Marker), h.level+o.baseLevel) + " " + h.title
		block := append([]string{headline}, escapeBody(lines[h.last+1:end])...)

		doc = append(doc, org.NewHeading(block))
	}

	return doc, nil
}

// scanHeadings returns the top-level headings of the document made of lines,
// located by line index. Headings nested in quotes or lists are body text.
func scanHeadings(lines []string) []mdHeading {
	src := []byte(strings.Join(lines, "\n"))

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(src))

	starts := make([]int, 0, len(lines))
	off := 0

	for _, l := range lines {
		starts = append(starts, off)
		off += len(l) + 1
	}

	var heads []mdHeading

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}

		segs := h.Lines()
		if segs.Len() == 0 {
			// An empty "#" heading has no segment to locate it by.
			continue
		}

		parts := make([]string, 0, segs.Len())
		for i := range segs.Len() {
			seg := segs.At(i)
			parts = append(parts, strings.TrimSpace(string(seg.Value(src))))
		}

		first := lineOf(starts, segs.At(0).Start)
		last := lineOf(starts, segs.At(segs.Len()-1).Start)

		if !isATX(lines[first]) {
			last++
		}

		heads = append(heads, mdHeading{
			level: h.Level,
			title: strings.Join(parts, " "),
			first: first,
			last:  min(last, len(lines)-1),
		})
	}

	return heads
}

func lineOf(starts []int, offset int) int {
	i, found := slices.BinarySearch(starts, offset)
	if !found {
		i--
	}

	return i
}

func isATX(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), "#")
}

// escapeBody keeps body lines from being read as headings: a "* " bullet
// becomes "- ", any other heading-like line is indented by one space.
func escapeBody(lines []string) []string {
	out := make([]string, len(lines))

	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, "* "):
			out[i] = "- " + l[2:]
		case org.IsHeadingLine(l):
			out[i] = " " + l
		default:
			out[i] = l
		}
	}

	return out
}
