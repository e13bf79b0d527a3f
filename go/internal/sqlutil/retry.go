package sqlutil

import (
	"context"
	"fmt"
)

// RetryOnConflict runs attempt up to maxAttempts times. An attempt whose error
// satisfies retryable is retried with the next attempt number; any other error,
// or nil, ends the loop. When every attempt was retryable the last error is
// wrapped into exhausted.
func RetryOnConflict[T any](
	ctx context.Context,
	maxAttempts int,
	retryable func(error) bool,
	exhausted error,
	attempt func(ctx context.Context, n int) (T, error),
) (T, error) {
	var zero T
	if maxAttempts < 1 {
		return zero, fmt.Errorf("max attempts must be positive, got %d", maxAttempts)
	}

	var lastErr error
	for n := 1; n <= maxAttempts; n++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		res, err := attempt(ctx, n)
		if err == nil {
			return res, nil
		}
		if !retryable(err) {
			return zero, err
		}
		lastErr = err
	}

	return zero, fmt.Errorf("%w after %d attempts: %v", exhausted, maxAttempts, lastErr)
}
