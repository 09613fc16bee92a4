// Package embeddings defines the provider-agnostic embedding abstraction
// and a batch builder that respects a model's per-request document cap.
package embeddings

import "context"

// Embedding pairs a source document with its vector.
type Embedding struct {
	// Document is the embedded text, unchanged.
	Document string
	Vec      []float64
}

// Model is an embedding-capable vendor model. EmbedDocuments returns one
// Embedding per input document, in input order.
type Model interface {
	// NDims is the dimensionality of vectors produced by this model.
	NDims() int
	// MaxDocuments is the largest batch the vendor accepts in one call.
	MaxDocuments() int
	EmbedDocuments(ctx context.Context, documents []string) ([]Embedding, error)
}
