package cohere

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pelagic-ai/coracle/internal/completion"
	"github.com/pelagic-ai/coracle/internal/jsonutil"
)

// Completion model identifiers known at time of writing. The set is open:
// the vendor adds models without client changes, so any string works.
const (
	CommandRPlus        = "command-r-plus"
	CommandR            = "command-r"
	Command             = "command"
	CommandNightly      = "command-nightly"
	CommandLight        = "command-light"
	CommandLightNightly = "command-light-nightly"
)

// ChatResponse is the vendor's /v1/chat success payload, kept in full so
// callers can reach citations, search metadata and the echoed history after
// normalization.
type ChatResponse struct {
	Text             string         `json:"text"`
	GenerationID     string         `json:"generation_id"`
	Citations        []Citation     `json:"citations,omitempty"`
	Documents        []Document     `json:"documents,omitempty"`
	IsSearchRequired *bool          `json:"is_search_required,omitempty"`
	SearchQueries    []SearchQuery  `json:"search_queries,omitempty"`
	SearchResults    []SearchResult `json:"search_results,omitempty"`
	FinishReason     string         `json:"finish_reason"`
	ToolCalls        []ToolCall     `json:"tool_calls,omitempty"`
	ChatHistory      []ChatTurn     `json:"chat_history,omitempty"`
}

func (r *ChatResponse) ok() bool {
	return r.GenerationID != "" || r.FinishReason != ""
}

// Citation marks a span of the response text grounded in documents.
type Citation struct {
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Text        string   `json:"text"`
	DocumentIDs []string `json:"document_ids"`
}

// Document is a grounding document echoed in responses. Everything beyond
// the id is vendor-defined, so the remaining fields ride in Additional.
type Document struct {
	ID         string
	Additional map[string]any
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if id, ok := raw["id"].(string); ok {
		d.ID = id
	}
	delete(raw, "id")
	d.Additional = raw
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, len(d.Additional)+1)
	for k, v := range d.Additional {
		raw[k] = v
	}
	raw["id"] = d.ID
	return json.Marshal(raw)
}

type SearchQuery struct {
	Text         string `json:"text"`
	GenerationID string `json:"generation_id"`
}

type SearchResult struct {
	SearchQuery       SearchQuery `json:"search_query"`
	Connector         Connector   `json:"connector"`
	DocumentIDs       []string    `json:"document_ids"`
	ErrorMessage      string      `json:"error_message,omitempty"`
	ContinueOnFailure bool        `json:"continue_on_failure,omitempty"`
}

type Connector struct {
	ID string `json:"id"`
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// ChatTurn is one entry of the echoed chat history.
type ChatTurn struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// chatMessage is the vendor's chat history wire shape.
type chatMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// toChatMessage maps generic roles onto the vendor's tokens. Anything
// outside the three recognized roles is coerced to USER.
func toChatMessage(m completion.Message) chatMessage {
	var role string
	switch m.Role {
	case "system":
		role = "SYSTEM"
	case "user":
		role = "USER"
	case "assistant":
		role = "CHATBOT"
	default:
		role = "USER"
	}
	return chatMessage{Role: role, Message: m.Content}
}

// ChatModel implements completion.Model against the /v1/chat endpoint.
type ChatModel struct {
	client *Client
	Model  string
}

// Completion issues one chat round trip. AdditionalParams are merged onto
// the built body with caller keys winning, so any default field can be
// overridden.
func (m *ChatModel) Completion(ctx context.Context, req completion.Request) (*completion.Response[ChatResponse], error) {
	history := make([]chatMessage, len(req.ChatHistory))
	for i, msg := range req.ChatHistory {
		history[i] = toChatMessage(msg)
	}

	tools := make([]toolDefinition, len(req.Tools))
	for i, tool := range req.Tools {
		tools[i] = toToolDefinition(tool)
	}

	body := map[string]any{
		"model":        m.Model,
		"preamble":     req.Preamble,
		"message":      req.Prompt,
		"documents":    req.Documents,
		"chat_history": history,
		"temperature":  req.Temperature,
		"tools":        tools,
	}
	if req.AdditionalParams != nil {
		body = jsonutil.Merge(body, req.AdditionalParams)
	}

	httpReq, err := m.client.newRequest(ctx, "/v1/chat", body)
	if err != nil {
		return nil, err
	}

	data, err := m.client.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}

	resp, err := decodeEnvelope[ChatResponse](data)
	if err != nil {
		var ve *vendorError
		if errors.As(err, &ve) {
			return nil, &completion.ProviderError{Message: ve.message}
		}
		return nil, err
	}

	return &completion.Response[ChatResponse]{
		Choice: normalizeChoice(resp),
		Raw:    *resp,
	}, nil
}

// normalizeChoice reduces a response to its single normalized outcome: the
// first tool call when any are present, the text otherwise. Further tool
// calls stay available on the raw response.
func normalizeChoice(resp *ChatResponse) completion.ModelChoice {
	if len(resp.ToolCalls) > 0 {
		first := resp.ToolCalls[0]
		return completion.ModelChoice{
			Kind:       completion.ChoiceToolCall,
			ToolName:   first.Name,
			ToolParams: first.Parameters,
		}
	}
	return completion.ModelChoice{Kind: completion.ChoiceMessage, Message: resp.Text}
}
