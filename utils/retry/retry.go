package retry

import (
	"fmt"
	"strings"
	"time"

	"github.com/gmxagent/gmxagent/utils/config"
)

// Config holds the backoff parameters for retried operations.
type Config struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Factor      float64
}

// DefaultConfig suits local inference endpoints: a model that is still
// loading responds within a few doubling waits or not at all.
var DefaultConfig = Config{
	MaxRetries:  3,
	InitialWait: 2 * time.Second,
	MaxWait:     30 * time.Second,
	Factor:      2.0,
}

// Do runs operation, retrying while it returns an error accepted by
// shouldRetry, waiting with exponential backoff between attempts.
func Do(operation func() (string, error), shouldRetry func(error) bool, cfg Config) (string, error) {
	wait := cfg.InitialWait

	var result string
	var err error
	for attempt := 0; ; attempt++ {
		result, err = operation()
		if err == nil || !shouldRetry(err) {
			return result, err
		}
		if attempt == cfg.MaxRetries {
			return "", fmt.Errorf("operation failed after %d retries: %w", cfg.MaxRetries, err)
		}

		if wait > cfg.MaxWait {
			wait = cfg.MaxWait
		}
		config.DebugLog("[Retry] Retryable error: %v. Waiting %v (attempt %d/%d)",
			err, wait, attempt+1, cfg.MaxRetries)
		time.Sleep(wait)
		wait = time.Duration(float64(wait) * cfg.Factor)
	}
}

// IsTransient reports whether an error looks like a temporary endpoint
// condition worth retrying: rate limiting, a model still loading, or a
// connection that was refused while the server starts.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "loading model") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout")
}
