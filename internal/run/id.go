// Package run provides per-invocation identifiers for log correlation.
package run

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a UUIDv7 string identifying a single CLI invocation.
// IDs are time-ordered so runs sort chronologically in aggregated logs.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid7: %w", err)
	}
	return id.String(), nil
}
