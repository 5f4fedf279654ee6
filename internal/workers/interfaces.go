// Package workers runs the background jobs of the server next to the
// request handlers. Each Worker runs in its own goroutine until the context
// passed to Workers.Run is cancelled.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
