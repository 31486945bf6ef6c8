package summary

import (
	"crypto/rand"
	"math"
	"math/big"
	"net/http"
	"strconv"
	"time"
)

// outcome classifies one API attempt.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeRetryable
	outcomeFatal
)

// classify maps an HTTP status to a retry decision. Rate limiting and server
// errors are transient; anything else that is not a success is final.
func classify(status int) outcome {
	switch {
	case status >= 200 && status < 300:
		return outcomeSuccess
	case status == http.StatusTooManyRequests,
		status == http.StatusInternalServerError,
		status == http.StatusBadGateway,
		status == http.StatusServiceUnavailable,
		status == http.StatusGatewayTimeout:
		return outcomeRetryable
	default:
		return outcomeFatal
	}
}

// maxJitter bounds the random component added to each backoff.
const maxJitter = 750 * time.Millisecond

// backoff returns base * 2^(attempt-1) plus random jitter in [0, 750ms).
func backoff(base time.Duration, attempt int) time.Duration {
	delay := float64(base) * math.Pow(2, float64(attempt-1))
	return time.Duration(delay) + randomJitter(maxJitter)
}

func randomJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	bound := big.NewInt(int64(limit))
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return limit / 2
	}
	return time.Duration(n.Int64())
}

// retryAfterDelay parses a numeric Retry-After hint (seconds). Non-numeric
// forms (HTTP dates) are ignored and the caller falls back to backoff.
func retryAfterDelay(header string) (time.Duration, bool) {
	if header == "" {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(header, 64)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}
