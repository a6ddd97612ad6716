// Package agent handles marketplace agent configuration schemas. An
// AgentType carries a JSON-schema-shaped config object; these helpers
// build such schemas when publishing and describe them when rendering
// an install form. Validation of submitted configs is backend-side.
package agent

import (
	"fmt"
	"sort"
	"strings"
)

// ObjectSchema creates an object schema with the given properties.
func ObjectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// StringProperty creates a string property with a description.
func StringProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// StringEnumProperty creates a string property with allowed values.
func StringEnumProperty(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"enum":        values,
	}
}

// NumberProperty creates a number property with a description.
func NumberProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
	}
}

// IntegerProperty creates an integer property with a description.
func IntegerProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// BooleanProperty creates a boolean property with a description.
func BooleanProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": description,
	}
}

// Field is one config field extracted from a schema, for rendering.
type Field struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Enum        []string
}

// DescribeSchema flattens an agent type's config schema into a sorted
// field list for display. Malformed schemas yield an empty list
// rather than an error; the backend is the authority on schema shape.
func DescribeSchema(schema map[string]interface{}) []Field {
	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		return nil
	}

	required := make(map[string]bool)
	switch req := schema["required"].(type) {
	case []string:
		for _, name := range req {
			required[name] = true
		}
	case []interface{}:
		// JSON round-trips land here.
		for _, name := range req {
			if s, ok := name.(string); ok {
				required[s] = true
			}
		}
	}

	fields := make([]Field, 0, len(props))
	for name, raw := range props {
		prop, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		field := Field{Name: name, Required: required[name]}
		field.Type, _ = prop["type"].(string)
		field.Description, _ = prop["description"].(string)

		switch enum := prop["enum"].(type) {
		case []string:
			field.Enum = enum
		case []interface{}:
			for _, v := range enum {
				if s, ok := v.(string); ok {
					field.Enum = append(field.Enum, s)
				}
			}
		}
		fields = append(fields, field)
	}

	sort.Slice(fields, func(i, j int) bool {
		// Required fields first, then by name.
		if fields[i].Required != fields[j].Required {
			return fields[i].Required
		}
		return fields[i].Name < fields[j].Name
	})
	return fields
}

// FormatField renders one field as an install-form line.
func FormatField(f Field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)", f.Name, f.Type)
	if f.Required {
		b.WriteString(" [required]")
	}
	if len(f.Enum) > 0 {
		fmt.Fprintf(&b, " one of: %s", strings.Join(f.Enum, ", "))
	}
	if f.Description != "" {
		b.WriteString(": ")
		b.WriteString(f.Description)
	}
	return b.String()
}
