// Package offset tracks the resume position for incrementally read log files.
package offset

import "context"

// Store stores and retrieves file read offsets.
// The only implementation is in-memory: monitoring state intentionally does
// not survive a process restart, every run re-seeds from the log tail.
type Store interface {
	// Get retrieves the offset for a given file.
	// Returns 0 if no offset is stored.
	Get(ctx context.Context, filePath string) (int64, error)

	// Set stores the offset for a given file.
	Set(ctx context.Context, filePath string, offset int64) error

	// Delete removes the offset for a given file.
	Delete(ctx context.Context, filePath string) error
}
