package render

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/lossyrob/phased-agent-workflow/annotation"
)

const schemaDraft = "http://json-schema.org/draft-07/schema#"

// TreeSchema returns the JSON Schema of a [Tree] export.
func TreeSchema() *jsonschema.Schema {
	nodeRef := &jsonschema.Schema{Ref: "#/definitions/node"}

	node := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"tag": {Type: "string", Pattern: `^[a-zA-Z][\w-]*$`},
			"scope": {
				Type: "string",
				Enum: []any{
					string(annotation.ScopeReusable),
					string(annotation.ScopePhaseBound),
					string(annotation.ScopeWorkflow),
					string(annotation.ScopeUnspecified),
				},
			},
			"snippet":    {Type: "string"},
			"section":    {Type: "string"},
			"line":       {Type: "integer", Minimum: jsonschema.Ptr(1.0)},
			"attributes": {Type: "object", AdditionalProperties: &jsonschema.Schema{Type: "string"}},
			"children":   {Type: "array", Items: nodeRef},
		},
		Required:             []string{"tag", "scope", "section", "line"},
		AdditionalProperties: falseSchema(),
	}

	diagnostic := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"kind": {
				Type: "string",
				Enum: []any{string(annotation.KindMismatchedClose), string(annotation.KindUnclosed)},
			},
			"tag":      {Type: "string"},
			"expected": {Type: "string"},
			"unclosed": {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			"line":     {Type: "integer", Minimum: jsonschema.Ptr(1.0)},
		},
		Required:             []string{"kind"},
		AdditionalProperties: falseSchema(),
	}

	names := &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "string"}}

	return &jsonschema.Schema{
		Schema:      schemaDraft,
		Title:       "Annotation tree",
		Description: "Hierarchical annotations of an agent prompt document.",
		Type:        "object",
		Properties: map[string]*jsonschema.Schema{
			"name":        {Type: "string"},
			"nodes":       {Type: "array", Items: nodeRef},
			"sections":    names,
			"fragmented":  names,
			"diagnostics": {Type: "array", Items: &jsonschema.Schema{Ref: "#/definitions/diagnostic"}},
		},
		Required:             []string{"name", "nodes", "sections"},
		AdditionalProperties: falseSchema(),
		Definitions: map[string]*jsonschema.Schema{
			"node":       node,
			"diagnostic": diagnostic,
		},
	}
}

// falseSchema is the schema that accepts nothing.
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
