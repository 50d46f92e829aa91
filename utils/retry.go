package utils

import (
	"context"
	"fmt"
	"time"
)

// RetryBackoff is the base wait between attempts; attempt n waits n*n*RetryBackoff.
var RetryBackoff = time.Second

// RetryWithBackoff retries fn up to maxRetries times with quadratic backoff.
// It stops early when ctx is done.
func RetryWithBackoff(ctx context.Context, maxRetries int, fn func(context.Context) error, logger *Logger) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * RetryBackoff
			logger.Warn("Retrying (attempt %d/%d) after %v...", attempt+1, maxRetries, backoff)
			select {
			case <-ctx.Done():
				return fmt.Errorf("retry aborted after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(backoff):
			}
		}
		if err := fn(ctx); err != nil {
			lastErr = err
			logger.Error("Attempt %d failed: %v", attempt+1, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("all %d attempts failed, last error: %w", maxRetries, lastErr)
}
