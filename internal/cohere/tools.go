package cohere

import (
	"fmt"

	"github.com/pelagic-ai/coracle/internal/completion"
)

// toolParameter is one entry of the vendor's flat parameter map.
type toolParameter struct {
	Description string `json:"description"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
}

// toolDefinition is the vendor's tool wire shape.
type toolDefinition struct {
	Name                 string                   `json:"name"`
	Description          string                   `json:"description"`
	ParameterDefinitions map[string]toolParameter `json:"parameter_definitions"`
}

// toToolDefinition flattens a JSON-schema style tool into the vendor's
// parameter-definition map. The schema shape is a caller contract: a tool
// without an object-valued "properties", or a property without a string
// description or a type, is a programmer error and panics. Callers must
// validate tool shapes before handing them to the adapter.
func toToolDefinition(tool completion.ToolDefinition) toolDefinition {
	required := requiredSet(tool.Parameters["required"])

	rawProps, exists := tool.Parameters["properties"]
	if !exists {
		panic(fmt.Sprintf("cohere: tool %q: parameters has no properties", tool.Name))
	}
	props, isObject := rawProps.(map[string]any)
	if !isObject {
		panic(fmt.Sprintf("cohere: tool %q: properties is not an object", tool.Name))
	}

	defs := make(map[string]toolParameter, len(props))
	for name, raw := range props {
		prop, ok := raw.(map[string]any)
		if !ok {
			panic(fmt.Sprintf("cohere: tool %q: parameter %q is not an object", tool.Name, name))
		}
		desc, ok := prop["description"].(string)
		if !ok {
			panic(fmt.Sprintf("cohere: tool %q: parameter %q has no string description", tool.Name, name))
		}
		typ, ok := prop["type"]
		if !ok {
			panic(fmt.Sprintf("cohere: tool %q: parameter %q has no type", tool.Name, name))
		}

		defs[name] = toolParameter{
			Description: desc,
			Type:        convertType(typ),
			Required:    required[name],
		}
	}

	return toolDefinition{
		Name:                 tool.Name,
		Description:          tool.Description,
		ParameterDefinitions: defs,
	}
}

// requiredSet extracts the required parameter names. The list arrives as
// []any when decoded from JSON and []string when built in Go; both are
// accepted. Absence means nothing is required.
func requiredSet(v any) map[string]bool {
	set := map[string]bool{}
	switch list := v.(type) {
	case []string:
		for _, name := range list {
			set[name] = true
		}
	case []any:
		for _, entry := range list {
			if name, ok := entry.(string); ok {
				set[name] = true
			}
		}
	}
	return set
}

// convertType maps a JSON-schema type value onto the vendor's type tokens.
// Array-valued types (the nullable-type pattern) use the first entry that
// is not "null"; anything unrecognized falls back to "string".
func convertType(v any) string {
	switch t := v.(type) {
	case string:
		return convertTypeName(t)
	case []string:
		for _, s := range t {
			if s != "null" {
				return convertTypeName(s)
			}
		}
		return "string"
	case []any:
		for _, entry := range t {
			if s, ok := entry.(string); ok && s != "null" {
				return convertTypeName(s)
			}
		}
		return "string"
	default:
		return "string"
	}
}

func convertTypeName(name string) string {
	switch name {
	case "string", "number", "integer", "boolean", "array", "object":
		return name
	default:
		return "string"
	}
}
