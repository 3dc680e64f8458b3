// Package org parses and serializes plain-text outline documents made of
// star-prefixed headings.
//
// The supported heading grammar is fixed:
//
//	*** NEXT [#B] Title text	:tag1:tag2:
//	:PROPERTIES:
//	:ID: 7f0c...
//	:END:
//	Body line
//
// A heading line is a run of '*' markers (the level), one space, an optional
// workflow keyword (TODO, NEXT, DONE) and space, an optional priority cookie
// ([#A], [#B], [#C]) and space, the title, and an optional trailing tag group.
// Lines between a heading line and the next heading line form its body. Named
// drawers (":NAME:" ... ":END:") inside a body are extracted into
// [Heading.Drawers] without changing [Heading.Body].
//
// Parsing is best-effort: lines that do not match the grammar are ordinary
// content, unknown keywords stay in the title, and malformed drawers stay in
// the body. [Parse] only fails on input that is not text. Serialization with
// [Format] is the inverse of [Parse] for canonical input:
//
//	doc, err := org.Parse(src)
//	if err != nil {
//		return err
//	}
//	out, err := org.Format(doc) // out == string(src)
//
// Lines before the first heading are kept in a synthetic level 0 heading
// (the preamble) that carries no metadata.
//
// The package performs no I/O and keeps no state between calls.
package org
