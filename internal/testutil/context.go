package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout returns a context canceled after duration or when the test ends.
func ContextWithTimeout(tb testing.TB, duration time.Duration) context.Context {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	tb.Cleanup(cancel)

	return ctx
}
