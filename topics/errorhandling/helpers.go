package errorhandling

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/afero"
)

// PanicError carries the value recovered from a panic.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("recovered panic: %v", e.Value)
}

// SafeCall runs fn and converts a panic into a *PanicError.
func SafeCall(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	fn()
	return nil
}

// SafeOperation returns op's value, or def if op fails or panics.
func SafeOperation[T any](op func() (T, error), def T) T {
	var (
		v   T
		err error
	)
	if perr := SafeCall(func() { v, err = op() }); perr != nil || err != nil {
		return def
	}
	return v
}

// Retry calls op up to attempts times, waiting delay between calls. It
// stops early when op succeeds, when op returns an error wrapped with
// Permanent, or when ctx is done. It returns op's last error, or ctx's
// error if ctx ended first.
func Retry(ctx context.Context, attempts int, delay time.Duration, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(attempts-1)),
		ctx,
	)
	return backoff.Retry(op, b)
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// WithFile opens name on fsys for reading and writing, creating it if
// needed, and passes it to fn. The file is always closed; a close error is
// joined with fn's error.
func WithFile(fsys afero.Fs, name string, fn func(afero.File) error) (err error) {
	f, err := fsys.OpenFile(name, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", name, cerr))
		}
	}()
	return fn(f)
}
