package store

import (
	"path/filepath"
	"testing"

	"github.com/pelagic-ai/coracle/internal/embeddings"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "coracle.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestConfig_SetAndGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetConfig("cohere.api_key", "secret"); err != nil {
		t.Fatalf("SetConfig failed: %v", err)
	}

	val, err := s.GetConfig("cohere.api_key")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if val != "secret" {
		t.Errorf("GetConfig = %q, want secret", val)
	}
}

func TestConfig_Overwrite(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetConfig("k", "old"); err != nil {
		t.Fatalf("SetConfig failed: %v", err)
	}
	if err := s.SetConfig("k", "new"); err != nil {
		t.Fatalf("SetConfig overwrite failed: %v", err)
	}

	val, err := s.GetConfig("k")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if val != "new" {
		t.Errorf("GetConfig = %q, want new", val)
	}
}

func TestConfig_Missing(t *testing.T) {
	s := newTestStore(t)

	val, err := s.GetConfig("never.set")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if val != "" {
		t.Errorf("expected empty value for a missing key, got %q", val)
	}
}

func TestSaveAndNearest(t *testing.T) {
	s := newTestStore(t)

	embs := []embeddings.Embedding{
		{Document: "east", Vec: []float64{1, 0}},
		{Document: "north", Vec: []float64{0, 1}},
		{Document: "northeast", Vec: []float64{1, 1}},
	}
	if err := s.SaveEmbeddings("embed-english-v3.0", "search_document", embs); err != nil {
		t.Fatalf("SaveEmbeddings failed: %v", err)
	}

	got, err := s.Nearest([]float64{1, 0.1}, 2)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Document != "east" {
		t.Errorf("best match = %q, want east", got[0].Document)
	}
	if got[1].Document != "northeast" {
		t.Errorf("second match = %q, want northeast", got[1].Document)
	}
	if got[0].Similarity < got[1].Similarity {
		t.Error("results must be ordered by descending similarity")
	}
	if got[0].Model != "embed-english-v3.0" || got[0].InputType != "search_document" {
		t.Errorf("model metadata lost: %+v", got[0])
	}
}

func TestNearest_Empty(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Nearest([]float64{1, 0}, 5)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no results from an empty store, got %v", got)
	}
}

func TestVectorCodec(t *testing.T) {
	vec := []float64{0.25, -1.5, 3.14159, 0}

	blob, err := encodeVector(vec)
	if err != nil {
		t.Fatalf("encodeVector failed: %v", err)
	}
	if len(blob) != len(vec)*8 {
		t.Errorf("blob size = %d, want %d", len(blob), len(vec)*8)
	}

	back, err := decodeVector(blob)
	if err != nil {
		t.Fatalf("decodeVector failed: %v", err)
	}
	for i := range vec {
		if back[i] != vec[i] {
			t.Errorf("back[%d] = %v, want %v", i, back[i], vec[i])
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	testCases := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2}, []float64{1, 2}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"length mismatch", []float64{1, 0}, []float64{1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := cosineSimilarity(tc.a, tc.b)
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("cosineSimilarity = %v, want %v", got, tc.want)
			}
		})
	}
}
