package org

import (
	"errors"
	"strings"
	"unicode"
)

// Marker is the character whose leading run encodes a heading's level.
const Marker = '*'

// Headline holds the metadata carried by a single heading line.
type Headline struct {
	Level    int
	State    State
	Priority Priority
	Title    string
	Tags     []string
}

// IsHeadingLine reports whether line starts with one or more markers
// followed by a space.
func IsHeadingLine(line string) bool {
	n := markerRun(line)

	return n > 0 && n < len(line) && line[n] == ' '
}

// ParseHeadline decomposes a heading line into its metadata. It returns false
// when line is not a heading line; every heading line parses.
//
// Fields are taken left to right (level, keyword, priority), except for the
// tag group, which is matched from the end of the line before the title is
// cut. A keyword or priority that is not followed by a space, or is not in
// the fixed set, stays part of the title.
func ParseHeadline(line string) (Headline, bool) {
	line = strings.TrimSuffix(line, "\r")

	if !IsHeadingLine(line) {
		return Headline{}, false
	}

	level := markerRun(line)
	rest := line[level+1:]

	hl := Headline{Level: level, Tags: []string{}}
	hl.State, rest = cutState(rest)
	hl.Priority, rest = cutPriority(rest)

	if title, tags, ok := cutTags(rest); ok {
		hl.Tags = tags
		rest = strings.TrimRightFunc(title, unicode.IsSpace)
	}

	hl.Title = rest

	return hl, true
}

// ParseTags splits a ":tag1:tag2:" group into its tags.
func ParseTags(group string) ([]string, error) {
	if len(group) < 3 || group[0] != ':' || group[len(group)-1] != ':' {
		return nil, errors.New("tag group must look like :tag:")
	}

	tags := strings.Split(group[1:len(group)-1], ":")
	for _, tag := range tags {
		if !validTag(tag) {
			return nil, errors.New("tag group has an empty tag")
		}
	}

	return tags, nil
}

func markerRun(line string) int {
	n := 0
	for n < len(line) && line[n] == Marker {
		n++
	}

	return n
}

func cutState(rest string) (State, string) {
	for s := StateTodo; s <= StateDone; s++ {
		if after, ok := strings.CutPrefix(rest, stateKeywords[s]+" "); ok {
			return s, after
		}
	}

	return StateNone, rest
}

// cutPriority matches the literal "[#X] " cookie.
func cutPriority(rest string) (Priority, string) {
	const cookieLen = len("[#A] ")

	if len(rest) < cookieLen || rest[0] != '[' || rest[1] != '#' || rest[3] != ']' || rest[4] != ' ' {
		return PriorityNone, rest
	}

	p := Priority(rest[2])
	if !p.Valid() {
		return PriorityNone, rest
	}

	return p, rest[cookieLen:]
}

// cutTags finds the trailing ":a:b:" group of s. Segments are walked from the
// right while they are non-empty, so the group grows as far left as it can
// and the title keeps as little as possible.
func cutTags(s string) (string, []string, bool) {
	if len(s) < 3 || s[len(s)-1] != ':' {
		return s, nil, false
	}

	start := -1
	end := len(s) - 1

	for {
		open := strings.LastIndexByte(s[:end], ':')
		if open < 0 || open+1 == end {
			break
		}

		start = open
		end = open
	}

	if start < 0 {
		return s, nil, false
	}

	return s[:start], strings.Split(s[start+1:len(s)-1], ":"), true
}

// validTag accepts any non-empty tag without a colon; tags may hold spaces.
func validTag(tag string) bool {
	return tag != "" && !strings.ContainsRune(tag, ':')
}

// validKey is validTag without whitespace, for property keys.
func validKey(key string) bool {
	return validTag(key) && strings.IndexFunc(key, unicode.IsSpace) < 0
}
