package cli

import (
	"fmt"
	"io"
)

// IO is the output side of a command. Results go to stdout. Problems with
// single files that did not stop the command are collected as warnings and
// written to stderr twice: before the first result line and after the last,
// so they survive head and tail.
type IO struct {
	out     io.Writer
	errOut  io.Writer
	notes   []fileWarning
	seen    map[fileWarning]bool
	flushed bool
}

type fileWarning struct {
	path  string
	issue string
	hint  string
}

func (w fileWarning) String() string {
	return fmt.Sprintf("%s: %s; %s", w.path, w.issue, w.hint)
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut, seen: map[fileWarning]bool{}}
}

// Warn records issue for the document at path with a hint on how to fix it.
// Repeated warnings are kept once. Any warning makes the exit code 1; output
// still happens, the results are partial.
func (o *IO) Warn(path, issue, hint string) {
	w := fileWarning{path: path, issue: issue, hint: hint}
	if o.seen[w] {
		return
	}

	o.seen[w] = true
	o.notes = append(o.notes, w)
}

// Println writes a result line to stdout.
func (o *IO) Println(a ...any) {
	o.flushWarnings()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted results to stdout.
func (o *IO) Printf(format string, a ...any) {
	o.flushWarnings()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Out returns stdout for encoders.
func (o *IO) Out() io.Writer {
	o.flushWarnings()

	return o.out
}

// Finish repeats the warnings after the results and returns the exit code.
func (o *IO) Finish() int {
	if len(o.notes) == 0 {
		return 0
	}

	if o.flushed {
		o.writeWarnings()
	} else {
		o.flushWarnings()
	}

	if len(o.notes) > 1 {
		_, _ = fmt.Fprintf(o.errOut, "%d warnings\n", len(o.notes))
	}

	return 1
}

// flushWarnings writes the warnings collected before the first result.
func (o *IO) flushWarnings() {
	if o.flushed || len(o.notes) == 0 {
		return
	}

	o.flushed = true
	o.writeWarnings()
}

func (o *IO) writeWarnings() {
	for _, w := range o.notes {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}
}
