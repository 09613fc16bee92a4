package agent

import (
	"context"
	"testing"

	"github.com/pelagic-ai/coracle/internal/completion"
)

// captureModel records the last request and returns a canned message.
type captureModel struct {
	last completion.Request
}

func (m *captureModel) Completion(_ context.Context, req completion.Request) (*completion.Response[string], error) {
	m.last = req
	return &completion.Response[string]{
		Choice: completion.ModelChoice{Kind: completion.ChoiceMessage, Message: "ok"},
		Raw:    "raw",
	}, nil
}

func TestAgent_Prompt(t *testing.T) {
	model := &captureModel{}
	ag := NewBuilder[string](model).Build()

	resp, err := ag.Prompt(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Prompt failed: %v", err)
	}
	if resp.Choice.Message != "ok" {
		t.Errorf("unexpected choice: %+v", resp.Choice)
	}
	if model.last.Prompt != "hello" {
		t.Errorf("prompt not threaded: %q", model.last.Prompt)
	}
	if model.last.ChatHistory != nil {
		t.Errorf("Prompt must send no history, got %v", model.last.ChatHistory)
	}
}

func TestAgent_ChatThreadsHistory(t *testing.T) {
	model := &captureModel{}
	ag := NewBuilder[string](model).Build()

	history := []completion.Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}
	if _, err := ag.Chat(context.Background(), "next", history); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if len(model.last.ChatHistory) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(model.last.ChatHistory))
	}
	if model.last.ChatHistory[0].Content != "hi" {
		t.Errorf("history order lost: %+v", model.last.ChatHistory)
	}
}

func TestBuilder_Configuration(t *testing.T) {
	model := &captureModel{}
	tool := completion.ToolDefinition{Name: "lookup"}
	docs := []completion.Document{{ID: "d1", Text: "context"}}

	ag := NewBuilder[string](model).
		Preamble("be brief").
		Context(docs...).
		Tool(tool).
		Temperature(0.3).
		Build()

	if _, err := ag.Prompt(context.Background(), "q"); err != nil {
		t.Fatalf("Prompt failed: %v", err)
	}

	req := model.last
	if req.Preamble != "be brief" {
		t.Errorf("preamble not applied: %q", req.Preamble)
	}
	if len(req.Documents) != 1 || req.Documents[0].ID != "d1" {
		t.Errorf("context documents not applied: %v", req.Documents)
	}
	if len(req.Tools) != 1 || req.Tools[0].Name != "lookup" {
		t.Errorf("tools not applied: %v", req.Tools)
	}
	if req.Temperature == nil || *req.Temperature != 0.3 {
		t.Errorf("temperature not applied: %v", req.Temperature)
	}
}

func TestBuilder_DefaultsLeaveTemperatureUnset(t *testing.T) {
	model := &captureModel{}
	ag := NewBuilder[string](model).Build()

	if _, err := ag.Prompt(context.Background(), "q"); err != nil {
		t.Fatalf("Prompt failed: %v", err)
	}
	if model.last.Temperature != nil {
		t.Errorf("temperature should default to unset, got %v", *model.last.Temperature)
	}
}

func TestBuilder_BuildCopies(t *testing.T) {
	model := &captureModel{}
	builder := NewBuilder[string](model).Preamble("first")

	first := builder.Build()
	builder.Preamble("second")
	second := builder.Build()

	if _, err := first.Prompt(context.Background(), "q"); err != nil {
		t.Fatalf("Prompt failed: %v", err)
	}
	if model.last.Preamble != "first" {
		t.Errorf("agents built earlier must not see later builder edits, got %q", model.last.Preamble)
	}

	if _, err := second.Prompt(context.Background(), "q"); err != nil {
		t.Fatalf("Prompt failed: %v", err)
	}
	if model.last.Preamble != "second" {
		t.Errorf("second agent should carry the updated preamble, got %q", model.last.Preamble)
	}
}
