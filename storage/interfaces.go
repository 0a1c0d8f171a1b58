package storage

import (
	"context"

	"github.com/dahyuniiiiii/Aigent/core"
)

// DocumentRepository provides operations for managing meeting documents.
// Implementations must be thread-safe and support concurrent access;
// exactly one logical repository instance exists per process.
type DocumentRepository interface {
	// UpsertDocuments writes one or more documents keyed by ID.
	// Absent IDs are inserted; present IDs have text, vector, and date
	// replaced in place. An empty batch is a no-op, and existing IDs
	// never cause a failure. Sets InsertedAt on first write and bumps
	// UpdatedAt on every write.
	UpsertDocuments(ctx context.Context, docs ...*core.Document) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id string) (*core.Document, error)

	// FindSimilar returns up to limit stored documents nearest to the
	// given vector, best match first. An empty store yields an empty
	// result, never an error.
	FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.SearchResult, error)

	// ScanAll returns every stored document. Order carries no guarantee
	// beyond being stable across calls while the store is unmodified.
	ScanAll(ctx context.Context) ([]*core.Document, error)

	// GetDocumentsByDate retrieves the documents recorded under one
	// calendar date (or core.UnknownDate), in ID order.
	GetDocumentsByDate(ctx context.Context, date string) ([]*core.Document, error)

	// CountDocuments reports the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
