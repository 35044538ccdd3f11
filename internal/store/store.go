package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// Store is a vault file guarded by an advisory lock.
type Store struct {
	path        string
	lockPath    string
	lockTimeout time.Duration
}

// New returns a Store for the vault file at path. A zero lockTimeout waits
// for the lock indefinitely.
func New(path string, lockTimeout time.Duration) *Store {
	return &Store{
		path:        path,
		lockPath:    LockPath(path),
		lockTimeout: lockTimeout,
	}
}

// LockPath returns the lock file used for the vault at path.
func LockPath(vaultPath string) string {
	return vaultPath + ".lock"
}

// Path returns the vault file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the vault file. Callers that intend to save should hold Lock.
func (s *Store) Load() (*File, error) {
	return Load(s.path)
}

// Save atomically replaces the vault file. Callers must hold Lock.
func (s *Store) Save(f *File) error {
	return Save(s.path, f)
}

// Lock takes the exclusive lock and returns a function that releases it.
func (s *Store) Lock(ctx context.Context) (func() error, error) {
	return s.acquire(ctx, true)
}

// RLock takes the shared lock and returns a function that releases it.
func (s *Store) RLock(ctx context.Context) (func() error, error) {
	return s.acquire(ctx, false)
}

func (s *Store) acquire(ctx context.Context, exclusive bool) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create directory for lock file: %w", err)
	}

	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}

	fl := flock.New(s.lockPath)

	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = fl.TryLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = fl.TryRLockContext(ctx, lockRetryDelay)
	}

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && s.lockTimeout > 0 {
			return nil, fmt.Errorf("%w: %s after %s", kerrors.ErrLockTimeout, s.lockPath, s.lockTimeout)
		}
		return nil, fmt.Errorf("failed to lock %s: %w", s.lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrLockTimeout, s.lockPath)
	}

	return fl.Unlock, nil
}
