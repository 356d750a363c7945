package history

import (
	"errors"
	"math/rand"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// retryConfig configures how writes are retried while another process
// holds the database lock.
type retryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialBackoff is the starting backoff duration.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration.
	MaxBackoff time.Duration

	// BackoffFactor is the multiplier applied to backoff after each attempt.
	BackoffFactor float64

	// Jitter is the random jitter factor (0.0-1.0).
	Jitter float64

	// Retryable reports whether err is worth another attempt.
	Retryable func(error) bool
}

// busyRetry covers a REPL and a batch run sharing one history file.
var busyRetry = retryConfig{
	MaxAttempts:    5,
	InitialBackoff: 10 * time.Millisecond,
	MaxBackoff:     200 * time.Millisecond,
	BackoffFactor:  2.0,
	Jitter:         0.1,
	Retryable:      isBusy,
}

// withRetry runs fn until it succeeds, fails with a non-retryable error, or
// runs out of attempts. It returns the last error.
func withRetry(cfg retryConfig, fn func() error) error {
	backoff := cfg.InitialBackoff
	var err error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if cfg.Retryable == nil || !cfg.Retryable(err) {
			return err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxAttempts-1 {
			time.Sleep(calculateBackoff(backoff, cfg.Jitter))

			backoff = time.Duration(float64(backoff) * cfg.BackoffFactor)
			if backoff > cfg.MaxBackoff {
				backoff = cfg.MaxBackoff
			}
		}
	}
	return err
}

// calculateBackoff returns the backoff duration with jitter applied.
func calculateBackoff(base time.Duration, jitter float64) time.Duration {
	if jitter <= 0 {
		return base
	}
	jitterAmount := float64(base) * jitter * (rand.Float64()*2 - 1)
	return time.Duration(float64(base) + jitterAmount)
}

// isBusy reports whether err is SQLite's "database is locked".
func isBusy(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// Extended result codes keep the primary code in the low byte.
	code := sqliteErr.Code() & 0xff
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}
