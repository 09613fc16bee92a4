package embeddings

import "context"

// Builder collects documents and embeds them in batches no larger than the
// model's MaxDocuments, concatenating results in input order.
type Builder struct {
	model Model
	docs  []string
}

// NewBuilder creates a Builder for the given model.
func NewBuilder(model Model) *Builder {
	return &Builder{model: model}
}

// Document adds a single document.
func (b *Builder) Document(text string) *Builder {
	b.docs = append(b.docs, text)
	return b
}

// Documents adds several documents at once.
func (b *Builder) Documents(texts ...string) *Builder {
	b.docs = append(b.docs, texts...)
	return b
}

// Build embeds all collected documents. Requests are chunked at the model's
// MaxDocuments; a failing chunk fails the whole build.
func (b *Builder) Build(ctx context.Context) ([]Embedding, error) {
	if len(b.docs) == 0 {
		return nil, nil
	}

	max := b.model.MaxDocuments()
	if max <= 0 {
		max = len(b.docs)
	}

	out := make([]Embedding, 0, len(b.docs))
	for start := 0; start < len(b.docs); start += max {
		end := start + max
		if end > len(b.docs) {
			end = len(b.docs)
		}

		batch, err := b.model.EmbedDocuments(ctx, b.docs[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}

	return out, nil
}
