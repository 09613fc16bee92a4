// Package completion defines the provider-agnostic chat completion
// abstraction: a request shape covering prompt, framing, history, tools and
// vendor-specific extras, and a normalized two-variant choice on the way
// back. Vendor adapters implement Model and carry their raw response type
// through Response so callers keep full fidelity.
package completion

import "context"

// Message is a single turn of chat history. Role is a free string; the
// recognized values are "system", "user" and "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Document is a grounding document attached to a request.
type Document struct {
	ID         string            `json:"id"`
	Text       string            `json:"text"`
	Additional map[string]string `json:"additional_props,omitempty"`
}

// ToolDefinition describes a callable tool. Parameters holds a JSON-schema
// style object with a "properties" map and an optional "required" list.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request is a generic completion request.
type Request struct {
	// Prompt is the current user message.
	Prompt string
	// Preamble is optional system framing text.
	Preamble string
	// ChatHistory is ordered oldest first.
	ChatHistory []Message
	Documents   []Document
	Temperature *float64
	Tools       []ToolDefinition
	// AdditionalParams is merged onto the vendor request body; caller keys
	// win on conflict.
	AdditionalParams map[string]any
}

// ChoiceKind discriminates the two ModelChoice variants.
type ChoiceKind int

const (
	ChoiceMessage ChoiceKind = iota
	ChoiceToolCall
)

// ModelChoice is the normalized model output: either a plain message or a
// single tool invocation, never both.
type ModelChoice struct {
	Kind ChoiceKind

	// Message is set when Kind == ChoiceMessage.
	Message string

	// ToolName and ToolParams are set when Kind == ChoiceToolCall.
	ToolName   string
	ToolParams map[string]any
}

// Response pairs the normalized choice with the vendor's raw response.
type Response[T any] struct {
	Choice ModelChoice
	Raw    T
}

// Model is a completion-capable vendor model.
type Model[T any] interface {
	Completion(ctx context.Context, req Request) (*Response[T], error)
}
