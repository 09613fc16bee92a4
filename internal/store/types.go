package store

import (
	"time"

	"github.com/pelagic-ai/coracle/internal/embeddings"
)

// StoredEmbedding is one persisted embedding row.
type StoredEmbedding struct {
	Document  string
	Model     string
	InputType string
	Vec       []float64
	CreatedAt time.Time
	// Similarity is populated by Nearest, zero otherwise.
	Similarity float64
}

// Storage defines the persistence interface: key/value configuration plus
// embedding runs with vector search.
type Storage interface {
	SetConfig(key, value string) error
	GetConfig(key string) (string, error)

	// SaveEmbeddings persists one embedding run under the model and input
	// type that produced it.
	SaveEmbeddings(model, inputType string, embs []embeddings.Embedding) error
	// Nearest returns the stored rows most cosine-similar to vec, best
	// first.
	Nearest(vec []float64, limit int) ([]StoredEmbedding, error)

	Close() error
}
