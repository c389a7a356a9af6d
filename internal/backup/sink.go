// Package backup writes export snapshots to one or more sinks on a cron
// schedule. A run is skipped while the autoSave setting is off.
package backup

import "context"

// Sink stores one named snapshot.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
	String() string
}
