package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

var (
	// ErrWouldBlock is returned when a lock is held elsewhere and the caller
	// asked not to wait, or stopped waiting.
	ErrWouldBlock = errors.New("lock would block")

	// errInodeMismatch means the lock file was replaced between open and
	// flock. Callers retry.
	errInodeMismatch = errors.New("inode mismatch")
)

const (
	lockFilePerm = 0o600
	lockDirPerm  = 0o755

	minBackoff = time.Millisecond
	maxBackoff = 25 * time.Millisecond
)

// Locker takes advisory flock(2) locks on lock files.
//
// flock applies to an inode, not a pathname, so a document is guarded by a
// sibling lock file (for example "notes.org.lock") rather than the document
// itself, which is replaced by rename on every write. The lock file is
// removed on release; a waiter that locked the removed inode sees the
// mismatch and retries. All cooperating writers must take the lock for it to
// have effect.
//
// This implementation is Unix-only.
type Locker struct {
	fs    FS
	flock func(fd int, how int) error
}

// NewLocker creates a Locker that opens lock files through fs.
func NewLocker(fs FS) *Locker {
	return &Locker{
		fs:    fs,
		flock: unix.Flock,
	}
}

// Lock is a held file lock. Call [Lock.Close] to release it.
type Lock struct {
	mu    sync.Mutex
	fs    FS
	path  string
	file  File
	flock func(fd int, how int) error
}

// Close removes the lock file, then releases the lock and closes its file
// descriptor. The file is removed while still locked so no other holder can
// own it at that point. Calling Close more than once is safe; later calls
// return nil.
func (lk *Lock) Close() error {
	lk.mu.Lock()
	defer lk.mu.Unlock()

	if lk.file == nil {
		return nil
	}

	var removeErr error

	err := lk.fs.Remove(lk.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		removeErr = fmt.Errorf("removing lock file: %w", err)
	}

	unlockErr := flockRetryEINTR(lk.flock, int(lk.file.Fd()), unix.LOCK_UN)
	closeErr := lk.file.Close()
	lk.file = nil

	if unlockErr != nil {
		unlockErr = fmt.Errorf("unlocking lock: %w", unlockErr)
	}

	if closeErr != nil {
		closeErr = fmt.Errorf("closing lock fd: %w", closeErr)
	}

	return errors.Join(removeErr, unlockErr, closeErr)
}

// Lock acquires an exclusive lock on path, polling with backoff until the
// lock is free or ctx is done. Missing parent directories are created.
//
// When ctx ends first the error wraps both [ErrWouldBlock] and ctx.Err().
func (l *Locker) Lock(ctx context.Context, path string) (*Lock, error) {
	backoff := minBackoff

	for {
		lk, err := l.try(path)
		if err == nil {
			return lk, nil
		}

		if !errors.Is(err, ErrWouldBlock) && !errors.Is(err, errInodeMismatch) {
			return nil, err
		}

		timer := time.NewTimer(backoff)

		select {
		case <-ctx.Done():
			timer.Stop()

			return nil, fmt.Errorf("%w: %s: %w", ErrWouldBlock, path, ctx.Err())
		case <-timer.C:
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

// TryLock acquires an exclusive lock on path without waiting. It returns
// [ErrWouldBlock] when the lock is held elsewhere.
func (l *Locker) TryLock(path string) (*Lock, error) {
	lk, err := l.try(path)
	if errors.Is(err, errInodeMismatch) {
		return nil, fmt.Errorf("%w: lock file was replaced while acquiring lock", ErrWouldBlock)
	}

	return lk, err
}

func (l *Locker) try(path string) (*Lock, error) {
	file, err := l.openLockFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening lockfile: %w", err)
	}

	fd := int(file.Fd())

	err = flockRetryEINTR(l.flock, fd, unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		_ = file.Close()

		if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
			return nil, ErrWouldBlock
		}

		return nil, fmt.Errorf("flock: %w", err)
	}

	match, err := l.inodeMatchesPath(path, file)
	if err != nil || !match {
		_ = flockRetryEINTR(l.flock, fd, unix.LOCK_UN)
		_ = file.Close()

		if err == nil || errors.Is(err, os.ErrNotExist) {
			return nil, errInodeMismatch
		}

		return nil, fmt.Errorf("verifying inode match: %w", err)
	}

	return &Lock{fs: l.fs, path: path, file: file, flock: l.flock}, nil
}

func (l *Locker) openLockFile(path string) (File, error) {
	f, err := l.fs.OpenFile(path, os.O_RDWR|os.O_CREATE, lockFilePerm)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return f, err
	}

	err = l.fs.MkdirAll(filepath.Dir(path), lockDirPerm)
	if err != nil {
		return nil, err
	}

	return l.fs.OpenFile(path, os.O_RDWR|os.O_CREATE, lockFilePerm)
}

// inodeMatchesPath reports whether f still refers to the file at path. A
// lock file swapped between open and flock would otherwise let two holders
// lock different inodes under one name.
func (l *Locker) inodeMatchesPath(path string, f File) (bool, error) {
	openInfo, err := f.Stat()
	if err != nil {
		return false, err
	}

	pathInfo, err := l.fs.Stat(path)
	if err != nil {
		return false, err
	}

	openSys, ok := openInfo.Sys().(*syscall.Stat_t)
	if !ok || openSys == nil {
		return false, fmt.Errorf("file.Stat Sys=%T, want *syscall.Stat_t", openInfo.Sys())
	}

	pathSys, ok := pathInfo.Sys().(*syscall.Stat_t)
	if !ok || pathSys == nil {
		return false, fmt.Errorf("fs.Stat Sys=%T, want *syscall.Stat_t", pathInfo.Sys())
	}

	return openSys.Dev == pathSys.Dev && openSys.Ino == pathSys.Ino, nil
}

// flockRetryEINTR retries flock when a signal interrupts it, up to a cap.
func flockRetryEINTR(flock func(fd int, how int) error, fd int, how int) error {
	const maxEINTRRetries = 10000

	var err error
	for range maxEINTRRetries {
		err = flock(fd, how)
		if err == nil || !errors.Is(err, unix.EINTR) {
			return err
		}
	}

	return err
}
