package embeddings

import (
	"context"
	"errors"
	"testing"
)

// fakeModel records batches and answers with one vector per document.
type fakeModel struct {
	max     int
	batches [][]string
	fail    error
}

func (m *fakeModel) NDims() int        { return 2 }
func (m *fakeModel) MaxDocuments() int { return m.max }

func (m *fakeModel) EmbedDocuments(_ context.Context, docs []string) ([]Embedding, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	batch := append([]string{}, docs...)
	m.batches = append(m.batches, batch)

	out := make([]Embedding, len(docs))
	for i, doc := range docs {
		out[i] = Embedding{Document: doc, Vec: []float64{float64(len(doc)), 0}}
	}
	return out, nil
}

func TestBuilder_ChunksAtModelLimit(t *testing.T) {
	model := &fakeModel{max: 2}
	docs := []string{"a", "bb", "ccc", "dddd", "eeeee"}

	result, err := NewBuilder(model).Documents(docs...).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(model.batches) != 3 {
		t.Fatalf("expected 3 batches for 5 docs at max 2, got %d", len(model.batches))
	}
	if len(model.batches[0]) != 2 || len(model.batches[2]) != 1 {
		t.Errorf("unexpected batch sizes: %v", model.batches)
	}

	if len(result) != 5 {
		t.Fatalf("expected 5 embeddings, got %d", len(result))
	}
	for i, doc := range docs {
		if result[i].Document != doc {
			t.Errorf("result[%d] = %q, want %q (input order must be preserved)", i, result[i].Document, doc)
		}
	}
}

func TestBuilder_SingleDocument(t *testing.T) {
	model := &fakeModel{max: 96}

	result, err := NewBuilder(model).Document("only").Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(result) != 1 || result[0].Document != "only" {
		t.Errorf("unexpected result: %v", result)
	}
	if len(model.batches) != 1 {
		t.Errorf("expected a single batch, got %d", len(model.batches))
	}
}

func TestBuilder_Empty(t *testing.T) {
	model := &fakeModel{max: 2}

	result, err := NewBuilder(model).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result for no documents, got %v", result)
	}
	if len(model.batches) != 0 {
		t.Error("no request should be issued for an empty builder")
	}
}

func TestBuilder_ErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	model := &fakeModel{max: 2, fail: boom}

	result, err := NewBuilder(model).Documents("a", "b", "c").Build(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected the model error, got %v", err)
	}
	if result != nil {
		t.Error("expected no partial result when a chunk fails")
	}
}

func TestDocumentError_Message(t *testing.T) {
	err := &DocumentError{Expected: 3, Got: 1}
	if err.Error() != "expected 3 embeddings, got 1" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
