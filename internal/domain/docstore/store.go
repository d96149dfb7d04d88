// internal/domain/docstore/store.go
package docstore

import "context"

// Document is one stored record: an opaque key-value map plus the
// store-assigned id. No schema is enforced at this level.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Store is the persistence port for partitioned documents. Partitions are
// plain string keys; the store creates them implicitly on first insert.
//
// Missing documents are reported as xerrors.ErrNotFound by GetOne and
// MergeUpdate. Delete of a missing id is not an error.
type Store interface {
	// Insert stores doc in partition and returns the assigned id.
	Insert(ctx context.Context, partition string, doc map[string]interface{}) (string, error)

	// Put stores doc under a caller-chosen id, replacing any existing
	// document. Used for documents with deterministic ids (profiles).
	Put(ctx context.Context, partition, id string, doc map[string]interface{}) error

	// ListAll returns every document in partition, in store order.
	ListAll(ctx context.Context, partition string) ([]Document, error)

	// GetOne returns a single document by id.
	GetOne(ctx context.Context, partition, id string) (map[string]interface{}, error)

	// MergeUpdate merges partial onto the stored document field by field;
	// fields absent from partial are left untouched.
	MergeUpdate(ctx context.Context, partition, id string, partial map[string]interface{}) error

	// Delete removes the document unconditionally.
	Delete(ctx context.Context, partition, id string) error
}
