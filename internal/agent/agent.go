// Package agent composes completion requests from a fixed configuration: a
// preamble, static context documents, tool definitions and a temperature.
// An Agent issues exactly one completion per call; iteration and tool
// execution stay with the caller.
package agent

import (
	"context"

	"github.com/pelagic-ai/coracle/internal/completion"
)

// Agent wraps a completion model with pre-configured request framing.
type Agent[T any] struct {
	model       completion.Model[T]
	preamble    string
	context     []completion.Document
	tools       []completion.ToolDefinition
	temperature *float64
}

// Prompt issues a single completion with no prior history.
func (a *Agent[T]) Prompt(ctx context.Context, prompt string) (*completion.Response[T], error) {
	return a.Chat(ctx, prompt, nil)
}

// Chat issues a single completion with the given history, oldest first.
func (a *Agent[T]) Chat(ctx context.Context, prompt string, history []completion.Message) (*completion.Response[T], error) {
	return a.model.Completion(ctx, completion.Request{
		Prompt:      prompt,
		Preamble:    a.preamble,
		ChatHistory: history,
		Documents:   a.context,
		Temperature: a.temperature,
		Tools:       a.tools,
	})
}

// Builder accumulates agent configuration.
type Builder[T any] struct {
	agent Agent[T]
}

// NewBuilder starts a builder over the given model.
func NewBuilder[T any](model completion.Model[T]) *Builder[T] {
	return &Builder[T]{agent: Agent[T]{model: model}}
}

// Preamble sets the system framing text.
func (b *Builder[T]) Preamble(preamble string) *Builder[T] {
	b.agent.preamble = preamble
	return b
}

// Context appends static documents attached to every request.
func (b *Builder[T]) Context(docs ...completion.Document) *Builder[T] {
	b.agent.context = append(b.agent.context, docs...)
	return b
}

// Tool appends tool definitions offered on every request.
func (b *Builder[T]) Tool(tools ...completion.ToolDefinition) *Builder[T] {
	b.agent.tools = append(b.agent.tools, tools...)
	return b
}

// Temperature sets the sampling temperature.
func (b *Builder[T]) Temperature(t float64) *Builder[T] {
	b.agent.temperature = &t
	return b
}

// Build returns the configured agent.
func (b *Builder[T]) Build() *Agent[T] {
	agent := b.agent
	return &agent
}
