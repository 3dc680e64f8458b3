package fs

import (
	iofs "io/fs"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
)

// ChaosConfig controls fault injection probabilities.
// Each rate is a float64 from 0.0 (never) to 1.0 (always).
type ChaosConfig struct {
	ReadFailRate   float64 // Fail ReadFile
	WriteFailRate  float64 // Fail WriteFileAtomic before anything is written
	OpenFailRate   float64 // Fail OpenFile, which also fails lock acquisition
	StatFailRate   float64 // Fail Stat/Exists
	RemoveFailRate float64 // Fail Remove, which leaves a released lock file behind
}

// DefaultChaosConfig returns the fault rates used by the document write tests.
func DefaultChaosConfig() ChaosConfig {
	return ChaosConfig{
		ReadFailRate:   0.05,
		WriteFailRate:  0.1,
		OpenFailRate:   0.05,
		StatFailRate:   0.02,
		RemoveFailRate: 0.05,
	}
}

// ChaosMode controls how Chaos behaves.
type ChaosMode uint8

const (
	// ChaosModePassthrough behaves like the underlying FS.
	ChaosModePassthrough ChaosMode = iota

	// ChaosModeInject enables fault-rate injection.
	ChaosModeInject
)

// Chaos wraps an [FS] and injects random failures for testing.
//
// Errors are reality-aware: ENOENT is only returned if the path really does
// not exist on the underlying filesystem. All injected errors are
// *os.PathError values holding a syscall.Errno, like the ones the OS returns.
//
// A failed WriteFileAtomic leaves the target untouched, the same guarantee
// [Real] gives.
type Chaos struct {
	fs     FS
	config ChaosConfig
	mode   atomic.Uint32

	mu  sync.Mutex
	rng *rand.Rand

	readFails   atomic.Int64
	writeFails  atomic.Int64
	openFails   atomic.Int64
	statFails   atomic.Int64
	removeFails atomic.Int64
}

// NewChaos creates a new Chaos filesystem wrapping fs. The seed controls
// fault injection for reproducibility. A new Chaos starts in
// [ChaosModeInject].
func NewChaos(fs FS, seed int64, config ChaosConfig) *Chaos {
	c := &Chaos{
		fs:     fs,
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
	c.SetMode(ChaosModeInject)

	return c
}

// SetMode updates Chaos behavior. Safe to call concurrently with
// filesystem operations.
func (c *Chaos) SetMode(m ChaosMode) { c.mode.Store(uint32(m)) }

// ChaosStats contains counts of injected faults.
type ChaosStats struct {
	ReadFails   int64
	WriteFails  int64
	OpenFails   int64
	StatFails   int64
	RemoveFails int64
}

// Stats returns the number of faults injected so far.
func (c *Chaos) Stats() ChaosStats {
	return ChaosStats{
		ReadFails:   c.readFails.Load(),
		WriteFails:  c.writeFails.Load(),
		OpenFails:   c.openFails.Load(),
		StatFails:   c.statFails.Load(),
		RemoveFails: c.removeFails.Load(),
	}
}

// TotalFaults returns the sum of all injected faults.
func (c *Chaos) TotalFaults() int64 {
	s := c.Stats()

	return s.ReadFails + s.WriteFails + s.OpenFails + s.StatFails + s.RemoveFails
}

func (c *Chaos) should(rate float64) bool {
	if ChaosMode(c.mode.Load()) != ChaosModeInject || rate <= 0 {
		return false
	}

	c.mu.Lock()
	v := c.rng.Float64()
	c.mu.Unlock()

	return v < rate
}

func (c *Chaos) pick(errs []syscall.Errno) syscall.Errno {
	c.mu.Lock()
	i := c.rng.Intn(len(errs))
	c.mu.Unlock()

	return errs[i]
}

// pickError selects an errno that is consistent with the real state of path.
func (c *Chaos) pickError(op, path string) syscall.Errno {
	exists, _ := c.fs.Exists(path)

	switch op {
	case "read", "open", "stat":
		if !exists {
			return syscall.ENOENT
		}

		return c.pick([]syscall.Errno{syscall.EIO, syscall.EACCES})
	case "write":
		return c.pick([]syscall.Errno{syscall.EIO, syscall.ENOSPC, syscall.EROFS, syscall.EACCES})
	default:
		if !exists {
			return syscall.ENOENT
		}

		return c.pick([]syscall.Errno{syscall.EIO, syscall.EACCES, syscall.EBUSY})
	}
}

func (c *Chaos) fail(op, path string) error {
	pe := &iofs.PathError{Op: op, Path: path, Err: c.pickError(op, path)}
	markInjected(pe)

	return pe
}

func (c *Chaos) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	if c.should(c.config.OpenFailRate) {
		c.openFails.Add(1)

		return nil, c.fail("open", path)
	}

	return c.fs.OpenFile(path, flag, perm)
}

func (c *Chaos) ReadFile(path string) ([]byte, error) {
	if c.should(c.config.ReadFailRate) {
		c.readFails.Add(1)

		return nil, c.fail("read", path)
	}

	return c.fs.ReadFile(path)
}

func (c *Chaos) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if c.should(c.config.WriteFailRate) {
		c.writeFails.Add(1)

		return c.fail("write", path)
	}

	return c.fs.WriteFileAtomic(path, data, perm)
}

func (c *Chaos) MkdirAll(path string, perm os.FileMode) error {
	return c.fs.MkdirAll(path, perm)
}

func (c *Chaos) Stat(path string) (os.FileInfo, error) {
	if c.should(c.config.StatFailRate) {
		c.statFails.Add(1)

		return nil, c.fail("stat", path)
	}

	return c.fs.Stat(path)
}

func (c *Chaos) Exists(path string) (bool, error) {
	if c.should(c.config.StatFailRate) {
		c.statFails.Add(1)

		return false, c.fail("stat", path)
	}

	return c.fs.Exists(path)
}

func (c *Chaos) Remove(path string) error {
	if c.should(c.config.RemoveFailRate) {
		c.removeFails.Add(1)

		return c.fail("remove", path)
	}

	return c.fs.Remove(path)
}

var _ FS = (*Chaos)(nil)
