package vault

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sort"
	"sync"
	"time"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"github.com/PolarWolf314/kete/internal/secrets"
	"github.com/PolarWolf314/kete/internal/store"
	"github.com/google/uuid"
)

const (
	keyCheckContext  = "kete:key-check"
	keyCheckValue    = "kete vault key check v1"
	recordContextTag = "kete:record:"
)

// Options configures an Engine.
type Options struct {
	// KeyPath is the master key file. Ignored when Key is set.
	KeyPath string

	// VaultPath is the vault file.
	VaultPath string

	// Key is an already loaded master key, such as one derived from a
	// passphrase. The engine takes ownership and destroys it on Close.
	Key *secrets.MasterKey

	// LockTimeout bounds how long to wait for the vault lock. Zero waits
	// indefinitely.
	LockTimeout time.Duration
}

// Engine is an open vault.
type Engine struct {
	mu     sync.Mutex
	key    *secrets.MasterKey
	store  *store.Store
	file   *store.File
	closed bool
}

// Open loads the master key and the vault, and checks that the key matches.
func Open(ctx context.Context, opts Options) (*Engine, error) {
	key := opts.Key
	if key == nil {
		loaded, err := secrets.LoadKey(opts.KeyPath)
		if err != nil {
			return nil, err
		}
		key = loaded
	}

	st := store.New(opts.VaultPath, opts.LockTimeout)

	release, err := st.RLock(ctx)
	if err != nil {
		key.Destroy()
		return nil, err
	}
	f, err := st.Load()
	_ = release()
	if err != nil {
		key.Destroy()
		return nil, err
	}

	if err := checkKey(key, f); err != nil {
		key.Destroy()
		return nil, err
	}

	return &Engine{key: key, store: st, file: f}, nil
}

// Add stores password for service, replacing any existing entry.
func (e *Engine) Add(ctx context.Context, service, password string) error {
	if service == "" {
		return kerrors.ErrInvalidServiceName
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mutate(ctx, func(f *store.File) (bool, error) {
		sealed, err := secrets.Seal(e.key, []byte(password), recordContext(service))
		if err != nil {
			return false, fmt.Errorf("failed to seal password for %s: %w", service, err)
		}
		f.Records[service] = store.RecordFromSealed(sealed)
		return true, nil
	})
}

// Initialize writes the vault header if the vault has never been saved. An
// initialized vault rejects other keys at Open even while it has no records.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mutate(ctx, func(f *store.File) (bool, error) {
		return f.KeyCheck == nil, nil
	})
}

// Get decrypts the password stored for service. found is false when the
// service has no entry.
func (e *Engine) Get(service string) (password string, found bool, err error) {
	if service == "" {
		return "", false, kerrors.ErrInvalidServiceName
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return "", false, kerrors.ErrVaultClosed
	}

	rec, ok := e.file.Records[service]
	if !ok {
		return "", false, nil
	}

	plaintext, err := secrets.Open(e.key, rec.Sealed(), recordContext(service))
	if err != nil {
		return "", false, fmt.Errorf("opening record for %s: %w", service, err)
	}

	return string(plaintext), true, nil
}

// List returns the stored service names in sorted order.
func (e *Engine) List() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	services := make([]string, 0, len(e.file.Records))
	for service := range e.file.Records {
		services = append(services, service)
	}
	sort.Strings(services)
	return services
}

// Remove deletes the entry for service. Removing an absent service is not
// an error and leaves the vault file untouched.
func (e *Engine) Remove(ctx context.Context, service string) error {
	if service == "" {
		return kerrors.ErrInvalidServiceName
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mutate(ctx, func(f *store.File) (bool, error) {
		if _, ok := f.Records[service]; !ok {
			return false, nil
		}
		delete(f.Records, service)
		return true, nil
	})
}

// Verify authenticates every record and returns the services that fail,
// in sorted order.
func (e *Engine) Verify() ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, kerrors.ErrVaultClosed
	}

	var failed []string
	for service, rec := range e.file.Records {
		if _, err := secrets.Open(e.key, rec.Sealed(), recordContext(service)); err != nil {
			failed = append(failed, service)
		}
	}
	sort.Strings(failed)
	return failed, nil
}

// VaultID returns the identifier stored in the vault header. It is empty
// until the vault has been saved once.
func (e *Engine) VaultID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.file.VaultID
}

// Path returns the vault file path.
func (e *Engine) Path() string {
	return e.store.Path()
}

// Close destroys the master key. It is safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.key.Destroy()
	e.key = nil
	return nil
}

// mutate runs fn against a fresh copy of the vault under the exclusive lock
// and saves the result when fn reports a change.
func (e *Engine) mutate(ctx context.Context, fn func(f *store.File) (bool, error)) error {
	if e.closed {
		return kerrors.ErrVaultClosed
	}

	release, err := e.store.Lock(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = release() }()

	current, err := e.store.Load()
	if err != nil {
		return err
	}

	// Another process may have created the vault with a different key
	// since we opened it.
	if err := checkKey(e.key, current); err != nil {
		return err
	}

	changed, err := fn(current)
	if err != nil {
		return err
	}
	if !changed {
		e.file = current
		return nil
	}

	if current.VaultID == "" {
		current.VaultID = uuid.New().String()
	}
	if current.KeyCheck == nil {
		sealed, err := secrets.Seal(e.key, []byte(keyCheckValue), []byte(keyCheckContext))
		if err != nil {
			return fmt.Errorf("failed to seal key check: %w", err)
		}
		rec := store.RecordFromSealed(sealed)
		current.KeyCheck = &rec
	}

	if err := e.store.Save(current); err != nil {
		return fmt.Errorf("failed to save vault: %w", err)
	}

	e.file = current
	return nil
}

// checkKey fails with ErrVaultKeyMismatch when key cannot open the vault.
func checkKey(key *secrets.MasterKey, f *store.File) error {
	if f.KeyCheck != nil {
		plaintext, err := secrets.Open(key, f.KeyCheck.Sealed(), []byte(keyCheckContext))
		if err != nil || subtle.ConstantTimeCompare(plaintext, []byte(keyCheckValue)) != 1 {
			return fmt.Errorf("%w: key check failed", kerrors.ErrVaultKeyMismatch)
		}
		return nil
	}

	// Without a key check every record has to be opened.
	for service, rec := range f.Records {
		if _, err := secrets.Open(key, rec.Sealed(), recordContext(service)); err != nil {
			return fmt.Errorf("%w: record %s does not open", kerrors.ErrVaultKeyMismatch, service)
		}
	}
	return nil
}

func recordContext(service string) []byte {
	return []byte(recordContextTag + service)
}
