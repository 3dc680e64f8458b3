package org

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// PropertiesDrawer is the name of the drawer holding heading properties.
const PropertiesDrawer = "PROPERTIES"

// Property is one ":KEY: value" line of a property drawer.
type Property struct {
	Key   string `json:"key"   yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Properties keeps property drawer entries in source order.
type Properties []Property

// Get returns the value stored under key.
func (p Properties) Get(key string) (string, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop.Value, true
		}
	}

	return "", false
}

// ParseProperties parses the content lines of a property drawer.
//
// Blank lines are skipped. Every other line must be ":KEY:" optionally
// followed by a value; whitespace around the value and the line is ignored. Keys
// must be non-empty, free of whitespace and unique. Unlike heading parsing
// this is strict: the first bad line is reported as a [*PropertyError].
func ParseProperties(lines []string) (Properties, error) {
	out := Properties{}
	seen := make(map[string]struct{}, len(lines))

	for i, raw := range lines {
		num := i + 1

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if line[0] != ':' {
			return nil, propertyErr(num, "missing leading ':'")
		}

		key, value, ok := strings.Cut(line[1:], ":")
		if !ok {
			return nil, propertyErr(num, "missing ':' after key")
		}

		if key == "" {
			return nil, propertyErr(num, "empty key")
		}

		if strings.IndexFunc(key, unicode.IsSpace) >= 0 {
			return nil, propertyErr(num, "whitespace in key")
		}

		if _, dup := seen[key]; dup {
			return nil, propertyErr(num, "duplicate key")
		}

		seen[key] = struct{}{}
		out = append(out, Property{Key: key, Value: strings.TrimSpace(value)})
	}

	return out, nil
}

// Properties parses the heading's PROPERTIES drawer. A heading without one
// has no properties.
func (h *Heading) Properties() (Properties, error) {
	lines, ok := h.Drawers.Get(PropertiesDrawer)
	if !ok {
		return Properties{}, nil
	}

	return ParseProperties(lines)
}

// SetProperty stores key in the heading's PROPERTIES drawer, rewriting the
// key's line if present, adding it before the drawer's end line otherwise,
// and creating the drawer at the top of the body when the heading has none.
// Body is edited and Drawers derived again from it.
//
// Keys must be non-empty and free of colons and whitespace, and may not be
// "END"; values must be non-empty single lines.
func (h *Heading) SetProperty(key, value string) error {
	if h.Level == 0 {
		return fmt.Errorf("%w: level 0 heading has no property drawer", ErrInvalidProperty)
	}

	if !validKey(key) || key == drawerEnd {
		return fmt.Errorf("%w: bad key %q", ErrInvalidProperty, key)
	}

	value = strings.TrimSpace(value)
	if value == "" || hasLineBreak(value) {
		return fmt.Errorf("%w: value for %s must be a non-empty single line", ErrInvalidProperty, key)
	}

	line := ":" + key + ": " + value

	spans := scanDrawers(LinesOf(h.Body))

	at := -1

	for i, sp := range spans {
		if sp.name == PropertiesDrawer {
			at = i
		}
	}

	if at < 0 {
		h.Body = slices.Insert(h.Body, 0, ":"+PropertiesDrawer+":", line, ":"+drawerEnd+":")
		h.Drawers = DrawersOf(h.Body)

		return nil
	}

	sp := spans[at]

	for i := sp.start + 1; i < sp.end; i++ {
		if k, ok := propertyKey(h.Body[i]); ok && k == key {
			h.Body[i] = indentOf(h.Body[i]) + line
			h.Drawers = DrawersOf(h.Body)

			return nil
		}
	}

	h.Body = slices.Insert(h.Body, sp.end, indentOf(h.Body[sp.end])+line)
	h.Drawers = DrawersOf(h.Body)

	return nil
}

func propertyKey(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if t == "" || t[0] != ':' {
		return "", false
	}

	key, _, ok := strings.Cut(t[1:], ":")

	return key, ok && key != ""
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}
