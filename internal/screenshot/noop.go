package screenshot

import "context"

// Noop implements the capture contract but never produces a screenshot.
// It is used when screenshots are disabled or headless Chrome is not
// available in the environment.
type Noop struct{}

// NewNoop creates a new Noop capturer.
func NewNoop() *Noop {
	return &Noop{}
}

// Capture always reports "no screenshot".
func (Noop) Capture(_ context.Context, _, _ string) string {
	return ""
}
