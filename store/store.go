// Package store abstracts the vector database behind a small interface so the
// server can run against a Chroma server or fully in-process.
package store

import "context"

// Document is one embedded chunk of documentation.
type Document struct {
	ID        string
	Content   string
	Embedding []float32
	Title     string
	SourceURL string
	Service   string
	Chunk     int
}

// VectorStore is the persistence contract the RAG pipeline depends on.
type VectorStore interface {
	// Add upserts the given chunks. Every document must carry an embedding.
	Add(ctx context.Context, docs []Document) error

	// Query returns up to k chunks closest to the query embedding. A non-empty
	// service restricts results to chunks tagged with that service.
	Query(ctx context.Context, embedding []float32, k int, service string) ([]Document, error)

	// Count reports how many chunks are stored.
	Count(ctx context.Context) (int, error)

	// DeleteService removes every chunk tagged with the given service.
	DeleteService(ctx context.Context, service string) error

	// DeleteSource removes every chunk originating from the given source URL
	// or file path.
	DeleteSource(ctx context.Context, source string) error

	Close() error
}
