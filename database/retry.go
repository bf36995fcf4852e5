package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"cocomanthra_server/lib"

	"github.com/jackc/pgx/v5/pgconn"
)

// RetryConfig defines retry behavior
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryConfig returns sensible defaults for retry behavior
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	}
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry context errors (timeout, cancellation)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	// Don't retry "no rows" errors
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}

	// Check for pgx/PostgreSQL specific errors
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23000", // integrity_constraint_violation
			"23502", // not_null_violation
			"23503", // foreign_key_violation
			"23505", // unique_violation
			"23514", // check_violation
			"42601", // syntax_error
			"42501", // insufficient_privilege
			"42703", // undefined_column
			"42P01", // undefined_table
			"42804", // datatype_mismatch
			"22P02": // invalid_text_representation
			return false

		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"55P03", // lock_not_available
			"53300", // too_many_connections
			"57P03", // cannot_connect_now
			"08000", // connection_exception
			"08003", // connection_does_not_exist
			"08006": // connection_failure
			return true
		}
	}

	// Fall back to message matching for driver-level network failures
	msg := err.Error()
	for _, probe := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"unexpected EOF",
		"i/o timeout",
	} {
		if strings.Contains(msg, probe) {
			return true
		}
	}

	return false
}

// WithRetry executes the operation, retrying transient failures with
// exponential backoff
func WithRetry(ctx context.Context, operation func() error) error {
	cfg := DefaultRetryConfig()

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			return nil
		}

		if attempt == cfg.MaxAttempts || !isRetryableError(lastErr) {
			return lastErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return lastErr
}

// MapPgError converts well-known SQLSTATEs to the sentinel errors callers
// match on
func MapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return errors.Join(lib.ErrConflict, err)
		case "P0002": // no_data_found
			return errors.Join(lib.ErrNotFound, err)
		}
	}
	return err
}
