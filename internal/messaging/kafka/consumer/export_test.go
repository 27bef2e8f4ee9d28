package consumer

import "time"

// SetRetryDelays shortens the backoff for tests and returns a restore func.
func SetRetryDelays(base, max time.Duration) func() {
	oldBase, oldMax := retryBaseDelay, retryMaxDelay
	retryBaseDelay, retryMaxDelay = base, max
	return func() { retryBaseDelay, retryMaxDelay = oldBase, oldMax }
}
