// Package queries contains the read side of the order tracker. Every
// handler reads the in-memory snapshot and never touches storage.
package queries

import "scantrack/internal/core/application/snapshot"

// SnapshotSource exposes the current in-memory view of storage.
type SnapshotSource interface {
	Current() snapshot.Snapshot
}
