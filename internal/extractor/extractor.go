// Package extractor turns free text into typed Go values by prompting a
// completion model with a single "submit" tool whose parameters mirror the
// target struct's fields. New is package-level rather than a client method
// because Go methods cannot carry type parameters.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/pelagic-ai/coracle/internal/completion"
)

const extractPreamble = "You are an extraction engine. Read the provided text " +
	"and call the submit tool exactly once with the extracted field values. " +
	"Do not reply with prose."

// Extractor extracts values of type T from text via a completion model
// whose raw response type is R.
type Extractor[T any, R any] struct {
	model completion.Model[R]
	tool  completion.ToolDefinition
}

// New builds an extractor for T. T must be a struct; its exported fields
// become the submit tool's parameters, named after their json tags. A
// `description` struct tag supplies the parameter description.
func New[T any, R any](model completion.Model[R]) *Extractor[T, R] {
	return &Extractor[T, R]{
		model: model,
		tool:  submitToolFor[T](),
	}
}

// Extract runs one completion and decodes the model's submission into T.
// A model that answers with prose instead of the tool is accepted when the
// prose itself is the JSON object.
func (e *Extractor[T, R]) Extract(ctx context.Context, text string) (*T, error) {
	resp, err := e.model.Completion(ctx, completion.Request{
		Prompt:   text,
		Preamble: extractPreamble,
		Tools:    []completion.ToolDefinition{e.tool},
	})
	if err != nil {
		return nil, err
	}

	var out T
	switch resp.Choice.Kind {
	case completion.ChoiceToolCall:
		data, err := json.Marshal(resp.Choice.ToolParams)
		if err != nil {
			return nil, fmt.Errorf("extractor: encode submission: %w", err)
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("extractor: decode submission: %w", err)
		}
	case completion.ChoiceMessage:
		if err := json.Unmarshal([]byte(resp.Choice.Message), &out); err != nil {
			return nil, fmt.Errorf("extractor: model returned non-JSON message: %w", err)
		}
	}
	return &out, nil
}

// submitToolFor derives the submit tool definition from T's fields.
func submitToolFor[T any]() completion.ToolDefinition {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("extractor: target type %s is not a struct", t))
	}

	properties := map[string]any{}
	required := []string{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}

		description := field.Tag.Get("description")
		if description == "" {
			description = "the " + name + " field"
		}

		properties[name] = map[string]any{
			"type":        schemaType(field.Type),
			"description": description,
		}
		required = append(required, name)
	}

	return completion.ToolDefinition{
		Name:        "submit",
		Description: "Submit the extracted data.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}

func schemaType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Pointer:
		return schemaType(t.Elem())
	default:
		return "string"
	}
}
