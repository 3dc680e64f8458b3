package org

import (
	"fmt"
	"strconv"
)

// State is the workflow keyword of a heading.
type State uint8

// State values. StateNone means the heading carries no keyword.
const (
	StateNone State = iota
	StateTodo
	StateNext
	StateDone
)

var stateKeywords = [...]string{
	StateNone: "",
	StateTodo: "TODO",
	StateNext: "NEXT",
	StateDone: "DONE",
}

// String returns the keyword as written on a heading line, or "" for StateNone.
func (s State) String() string {
	if !s.Valid() {
		return "State(" + strconv.Itoa(int(s)) + ")"
	}

	return stateKeywords[s]
}

// Valid reports whether s is one of the declared states.
func (s State) Valid() bool {
	return int(s) < len(stateKeywords)
}

// ParseState maps a case-sensitive keyword to its State.
// The empty string is not a keyword.
func ParseState(keyword string) (State, bool) {
	for s := StateTodo; s <= StateDone; s++ {
		if stateKeywords[s] == keyword {
			return s, true
		}
	}

	return StateNone, false
}

// MarshalText encodes s as its keyword; StateNone encodes as "".
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: unknown state %d", ErrInvalidHeading, s)
	}

	return []byte(stateKeywords[s]), nil
}

// UnmarshalText is the inverse of [State.MarshalText].
func (s *State) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = StateNone

		return nil
	}

	v, ok := ParseState(string(text))
	if !ok {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidHeading, text)
	}

	*s = v

	return nil
}

// Priority is the priority cookie letter of a heading.
type Priority byte

// Priority values. PriorityNone means the heading carries no cookie.
const (
	PriorityNone Priority = 0
	PriorityA    Priority = 'A'
	PriorityB    Priority = 'B'
	PriorityC    Priority = 'C'
)

// Valid reports whether p is A, B or C.
func (p Priority) Valid() bool {
	return p >= PriorityA && p <= PriorityC
}

// String returns the letter, or "" for PriorityNone.
func (p Priority) String() string {
	if p == PriorityNone {
		return ""
	}

	return string(rune(p))
}

// ParsePriority maps "A", "B" or "C" to its Priority.
func ParsePriority(letter string) (Priority, bool) {
	if len(letter) != 1 {
		return PriorityNone, false
	}

	p := Priority(letter[0])
	if !p.Valid() {
		return PriorityNone, false
	}

	return p, true
}

// MarshalText encodes p as its letter; PriorityNone encodes as "".
func (p Priority) MarshalText() ([]byte, error) {
	if p != PriorityNone && !p.Valid() {
		return nil, fmt.Errorf("%w: priority %q outside A-C", ErrInvalidHeading, rune(p))
	}

	return []byte(p.String()), nil
}

// UnmarshalText is the inverse of [Priority.MarshalText].
func (p *Priority) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*p = PriorityNone

		return nil
	}

	v, ok := ParsePriority(string(text))
	if !ok {
		return fmt.Errorf("%w: priority %q outside A-C", ErrInvalidHeading, text)
	}

	*p = v

	return nil
}
