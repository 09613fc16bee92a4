// Package cohere implements the Cohere API adapter: a bearer-authenticated
// transport client plus completion and embedding models speaking the
// vendor's v1 chat and embed wire formats. Every operation is a single
// stateless request/response round trip; the Client is safe to share across
// goroutines once constructed.
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pelagic-ai/coracle/internal/agent"
	"github.com/pelagic-ai/coracle/internal/embeddings"
)

const apiBaseURL = "https://api.cohere.ai"

// Client holds the vendor base URL and an HTTP client that carries the
// bearer credential. It is immutable after construction.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client against the production API.
func New(apiKey string) *Client {
	return FromURL(apiKey, apiBaseURL)
}

// FromURL builds a client against an arbitrary base URL, which is how tests
// point the adapter at a mock server. A key that cannot travel in an HTTP
// header is a configuration bug, not a runtime condition: construction
// panics rather than returning an error a caller might swallow.
func FromURL(apiKey, baseURL string) *Client {
	for _, r := range apiKey {
		if r == '\r' || r == '\n' || (r < 0x20 && r != '\t') || r == 0x7f {
			panic("cohere: API key contains bytes not allowed in an HTTP header")
		}
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: &bearerTransport{key: apiKey, base: http.DefaultTransport},
		},
	}
}

// EmbeddingModel returns an embedding adapter bound to one of the
// enumerated vendor models.
func (c *Client) EmbeddingModel(model EmbedModel, inputType string) *Embedder {
	return &Embedder{client: c, Model: model, InputType: inputType}
}

// Embeddings returns a batch builder over EmbeddingModel.
func (c *Client) Embeddings(model EmbedModel, inputType string) *embeddings.Builder {
	return embeddings.NewBuilder(c.EmbeddingModel(model, inputType))
}

// CompletionModel returns a chat adapter bound to a model name. Completion
// model names are open strings; see the Command* constants for the known
// ones.
func (c *Client) CompletionModel(model string) *ChatModel {
	return &ChatModel{client: c, Model: model}
}

// Agent returns an agent builder over CompletionModel.
func (c *Client) Agent(model string) *agent.Builder[ChatResponse] {
	return agent.NewBuilder[ChatResponse](c.CompletionModel(model))
}

// bearerTransport installs the Authorization header on every request.
type bearerTransport struct {
	key  string
	base http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.key)
	return t.base.RoundTrip(clone)
}

// newRequest builds a JSON POST against base+path. Duplicate path
// separators at the join are collapsed to one.
func (c *Client) newRequest(ctx context.Context, path string, body any) (*http.Request, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do issues the request and returns the response body. Non-2xx statuses
// become a *StatusError carrying the body.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

// StatusError reports a non-2xx HTTP status from the vendor.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cohere: unexpected status %d: %s", e.Code, e.Body)
}
