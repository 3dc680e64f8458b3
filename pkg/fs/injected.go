package fs

import (
	"errors"
	iofs "io/fs"
	"sync"
)

// IsInjected reports whether err (or any error it wraps) was injected by
// [Chaos]. Returns false if err is nil.
//
// Injected errors are plain *fs.PathError values carrying a syscall.Errno, so
// os.IsNotExist and errors.Is keep working. They are tracked by identity to
// tell them apart from real OS errors.
func IsInjected(err error) bool {
	if err == nil {
		return false
	}

	var pathErr *iofs.PathError
	if errors.As(err, &pathErr) {
		_, ok := injectedPathErrors.Load(pathErr)

		return ok
	}

	return false
}

var injectedPathErrors sync.Map // map[*fs.PathError]struct{}

// markInjected registers err as injected. Panics if err is nil.
func markInjected(err *iofs.PathError) {
	injectedPathErrors.Store(err, struct{}{})
}
