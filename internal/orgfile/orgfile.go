// Package orgfile moves outline documents between disk and [org.Document].
package orgfile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/calvinalkan/orgtext/pkg/fs"
	"github.com/calvinalkan/orgtext/pkg/org"
)

// Stdin is the path that selects standard input in [Read].
const Stdin = "-"

const filePerm = 0o644

// ErrNoStdin is returned by [Read] when [Stdin] is requested but no reader
// was supplied.
var ErrNoStdin = errors.New("no stdin available")

// Read reads and parses the document at path, or from stdin when path is
// [Stdin].
func Read(fsys fs.FS, path string, stdin io.Reader) (org.Document, error) {
	data, err := ReadBytes(fsys, path, stdin)
	if err != nil {
		return nil, err
	}

	doc, err := org.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// ReadBytes returns the raw content of path, or of stdin when path is [Stdin].
func ReadBytes(fsys fs.FS, path string, stdin io.Reader) ([]byte, error) {
	if path == Stdin {
		if stdin == nil {
			return nil, ErrNoStdin
		}

		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return data, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return data, nil
}

// Write serializes doc and replaces the content of path with it.
//
// Nothing is written when doc does not serialize. The write holds an
// exclusive lock on path+".lock" and goes through [fs.FS.WriteFileAtomic],
// so concurrent writers are serialized and readers never see a partial file.
func Write(ctx context.Context, fsys fs.FS, path string, doc org.Document) error {
	text, err := org.Format(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return WriteText(ctx, fsys, path, text)
}

// WriteText is [Write] for text that is already serialized.
func WriteText(ctx context.Context, fsys fs.FS, path string, text string) (err error) {
	if path == Stdin {
		return errors.New("cannot write back to stdin")
	}

	lock, err := fs.NewLocker(fsys).Lock(ctx, LockPath(path))
	if err != nil {
		return fmt.Errorf("locking %s: %w", path, err)
	}

	defer func() {
		err = errors.Join(err, lock.Close())
	}()

	err = fsys.WriteFileAtomic(path, []byte(text), filePerm)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// LockPath returns the lock file guarding path.
func LockPath(path string) string {
	return path + ".lock"
}
