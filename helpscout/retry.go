package helpscout

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// RetryConfig holds the retry policy for transient failures.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// Delay is the base wait between attempts; attempt n waits n*Delay,
	// so the backoff grows linearly.
	Delay time.Duration
}

// DefaultRetryConfig returns the default retry policy: three attempts with a
// short, linearly growing delay.  The Docs API doesn't document a policy of
// its own, so we stay conservative.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		Delay:       500 * time.Millisecond,
	}
}

// do performs a GET with retries.  Only transient failures (5xx, network
// errors) are retried; everything else surfaces immediately.
func (api *API) do(ctx context.Context, url *url.URL) ([]byte, error) {
	attempts := api.Retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		body, err := api.request(ctx, url)
		if err == nil {
			if attempt > 1 {
				api.Logger.Info().
					Str("url", url.Path).
					Int("attempt", attempt).
					Msg("request succeeded after retry")
			}
			return body, nil
		}

		if !shouldRetry(KindOf(err)) {
			return nil, err
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		wait := time.Duration(attempt) * api.Retry.Delay
		api.Logger.Debug().
			Str("url", url.Path).
			Int("attempt", attempt).
			Dur("backoff", wait).
			Err(err).
			Msg("retrying request after backoff")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("helpscout: context cancelled during retry backoff: %w", ctx.Err())
		case <-time.After(wait):
		}
	}

	api.Logger.Warn().
		Str("url", url.Path).
		Int("max_attempts", attempts).
		Msg("retry attempts exhausted")

	return nil, fmt.Errorf("helpscout: request failed after %d attempts: %w", attempts, lastErr)
}
