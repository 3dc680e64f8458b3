package mdimport

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

const (
	frontMatterDelimiter = "---"
	maxFrontMatterLines  = 200
)

// ErrFrontMatter is returned when a Markdown file opens with a front matter
// block that cannot become outline keywords.
var ErrFrontMatter = errors.New("invalid front matter")

// splitFrontMatter separates a leading "---" fenced YAML block from lines
// and returns it as "#+KEY: value" keyword lines. Without a closing fence
// within the line limit there is no front matter and lines are returned
// unchanged.
func splitFrontMatter(lines []string) ([]string, []string, error) {
	if len(lines) == 0 || lines[0] != frontMatterDelimiter {
		return nil, lines, nil
	}

	closing := -1

	for i := 1; i < len(lines) && i <= maxFrontMatterLines; i++ {
		if lines[i] == frontMatterDelimiter {
			closing = i

			break
		}
	}

	if closing < 0 {
		return nil, lines, nil
	}

	keywords, err := keywordLines(strings.Join(lines[1:closing], "\n"))
	if err != nil {
		return nil, nil, err
	}

	return keywords, lines[closing+1:], nil
}

// keywordLines decodes a YAML mapping of scalars and scalar lists, keeping
// key order. List items are joined by a space.
func keywordLines(src string) ([]string, error) {
	var root yaml.Node

	err := yaml.Unmarshal([]byte(src), &root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFrontMatter, err)
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return []string{}, nil
	}

	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping", ErrFrontMatter, m.Line)
	}

	out := make([]string, 0, len(m.Content)/2)

	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]

		if k.Value == "" || strings.IndexFunc(k.Value, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("%w: line %d: bad key %q", ErrFrontMatter, k.Line, k.Value)
		}

		value, err := keywordValue(v)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s: %w", ErrFrontMatter, v.Line, k.Value, err)
		}

		line := "#+" + strings.ToUpper(k.Value) + ":"
		if value != "" {
			line += " " + value
		}

		out = append(out, line)
	}

	return out, nil
}

func keywordValue(v *yaml.Node) (string, error) {
	switch v.Kind {
	case yaml.ScalarNode:
		if strings.ContainsAny(v.Value, "\r\n") {
			return "", errors.New("multi-line values are not supported")
		}

		if v.Tag == "!!null" {
			return "", nil
		}

		return v.Value, nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(v.Content))

		for _, item := range v.Content {
			if item.Kind != yaml.ScalarNode || strings.ContainsAny(item.Value, "\r\n") {
				return "", errors.New("lists may only hold single-line scalars")
			}

			items = append(items, item.Value)
		}

		return strings.Join(items, " "), nil
	default:
		return "", errors.New("nested mappings are not supported")
	}
}
