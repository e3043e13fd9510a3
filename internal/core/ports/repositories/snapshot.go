package repositories

import "context"

// SnapshotStore persists the serialized dataset under a key. The engine
// treats persistence as a side effect: a failing store degrades durability,
// never correctness, so implementations should be cheap to retry.
type SnapshotStore interface {
	// Load returns the stored document and whether one exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	// Save writes the document atomically with respect to Load.
	Save(ctx context.Context, key string, doc []byte) error
}
