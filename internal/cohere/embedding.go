package cohere

import (
	"context"
	"errors"
	"fmt"

	"github.com/pelagic-ai/coracle/internal/embeddings"
)

// Input type values accepted by the embed endpoint.
const (
	InputSearchDocument = "search_document"
	InputSearchQuery    = "search_query"
	InputClassification = "classification"
	InputClustering     = "clustering"
)

// MaxEmbedDocuments is the largest batch the embed endpoint accepts. The
// adapter sends whatever it is given and lets the vendor reject oversized
// batches; chunking is the embeddings.Builder's job.
const MaxEmbedDocuments = 96

// EmbedModel is the closed set of vendor embedding models. Unlike
// completion models, embeddings are dimensioned per model, so an open
// string would lose the bad-model validation and the NDims table.
type EmbedModel int

const (
	EmbedEnglishV3 EmbedModel = iota
	EmbedEnglishLightV3
	EmbedMultilingualV3
	EmbedMultilingualLightV3
	EmbedEnglishV2
	EmbedEnglishLightV2
	EmbedMultilingualV2
)

var embedModelNames = map[EmbedModel]string{
	EmbedEnglishV3:           "embed-english-v3.0",
	EmbedEnglishLightV3:      "embed-english-light-v3.0",
	EmbedMultilingualV3:      "embed-multilingual-v3.0",
	EmbedMultilingualLightV3: "embed-multilingual-light-v3.0",
	EmbedEnglishV2:           "embed-english-v2.0",
	EmbedEnglishLightV2:      "embed-english-light-v2.0",
	EmbedMultilingualV2:      "embed-multilingual-v2.0",
}

// ParseEmbedModel maps a vendor model string onto the enumeration. Unknown
// strings fail with *embeddings.BadModelError.
func ParseEmbedModel(s string) (EmbedModel, error) {
	for model, name := range embedModelNames {
		if name == s {
			return model, nil
		}
	}
	return 0, &embeddings.BadModelError{Model: s}
}

func (m EmbedModel) String() string {
	if name, ok := embedModelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("EmbedModel(%d)", int(m))
}

// NDims returns the fixed vector dimensionality of the model.
func (m EmbedModel) NDims() int {
	switch m {
	case EmbedEnglishV3:
		return 1024
	case EmbedEnglishLightV3:
		return 384
	case EmbedMultilingualV3:
		return 1024
	case EmbedMultilingualLightV3:
		return 384
	case EmbedEnglishV2:
		return 4096
	case EmbedEnglishLightV2:
		return 1024
	case EmbedMultilingualV2:
		return 768
	default:
		return 0
	}
}

// Embedder implements embeddings.Model against the /v1/embed endpoint.
type Embedder struct {
	client    *Client
	Model     EmbedModel
	InputType string
}

type embedRequest struct {
	Model     string   `json:"model"`
	Texts     []string `json:"texts"`
	InputType string   `json:"input_type"`
}

type embedResponse struct {
	ResponseType string      `json:"response_type,omitempty"`
	ID           string      `json:"id"`
	Embeddings   [][]float64 `json:"embeddings"`
	Texts        []string    `json:"texts"`
	Meta         *Meta       `json:"meta,omitempty"`
}

func (r *embedResponse) ok() bool {
	return r.ID != "" && r.Embeddings != nil
}

// Meta is the vendor's response metadata.
type Meta struct {
	APIVersion  APIVersion  `json:"api_version"`
	BilledUnits BilledUnits `json:"billed_units"`
	Warnings    []string    `json:"warnings,omitempty"`
}

type APIVersion struct {
	Version        string `json:"version"`
	IsDeprecated   *bool  `json:"is_deprecated,omitempty"`
	IsExperimental *bool  `json:"is_experimental,omitempty"`
}

type BilledUnits struct {
	InputTokens     int `json:"input_tokens,omitempty"`
	OutputTokens    int `json:"output_tokens,omitempty"`
	SearchUnits     int `json:"search_units,omitempty"`
	Classifications int `json:"classifications,omitempty"`
}

func (e *Embedder) NDims() int {
	return e.Model.NDims()
}

func (e *Embedder) MaxDocuments() int {
	return MaxEmbedDocuments
}

// EmbedDocuments embeds a batch of documents. The result preserves input
// order and pairs each vector with its source text; a count mismatch from
// the vendor is a hard error, never a partial zip.
func (e *Embedder) EmbedDocuments(ctx context.Context, documents []string) ([]embeddings.Embedding, error) {
	req, err := e.client.newRequest(ctx, "/v1/embed", embedRequest{
		Model:     e.Model.String(),
		Texts:     documents,
		InputType: e.InputType,
	})
	if err != nil {
		return nil, err
	}

	data, err := e.client.do(req)
	if err != nil {
		return nil, fmt.Errorf("embed request failed: %w", err)
	}

	resp, err := decodeEnvelope[embedResponse](data)
	if err != nil {
		var ve *vendorError
		if errors.As(err, &ve) {
			return nil, &embeddings.ProviderError{Message: ve.message}
		}
		return nil, err
	}

	if len(resp.Embeddings) != len(documents) {
		return nil, &embeddings.DocumentError{Expected: len(documents), Got: len(resp.Embeddings)}
	}

	out := make([]embeddings.Embedding, len(documents))
	for i, vec := range resp.Embeddings {
		out[i] = embeddings.Embedding{Document: documents[i], Vec: vec}
	}
	return out, nil
}
