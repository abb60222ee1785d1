//
// Tencent is pleased to support the open source community by making trpc-blockflow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-blockflow-go is licensed under the Apache License Version 2.0.
//
//

// Package tool provides tool declarations offered to language models.
package tool

// Declaration describes a tool the model may invoke. The JSON shape is the
// wire format sent to the inference gateway, so field names are fixed.
type Declaration struct {
	// Name is the tool name the model calls.
	Name string `json:"name"`
	// Description tells the model when to use the tool.
	Description string `json:"description"`
	// InputSchema is the JSON schema of the tool input.
	InputSchema *Schema `json:"input_schema,omitempty"`
}

// Schema is a JSON-Schema-like description of a tool input or one of its
// properties.
type Schema struct {
	// Type is the JSON type: "object", "string", "number", "boolean", "array".
	Type string `json:"type,omitempty"`
	// Description describes the property.
	Description string `json:"description,omitempty"`
	// Properties holds the nested property schemas for object types.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Required lists the required property names for object types.
	Required []string `json:"required,omitempty"`
	// Items is the element schema for array types.
	Items *Schema `json:"items,omitempty"`
	// Enum restricts the value to a fixed set.
	Enum []any `json:"enum,omitempty"`
	// Pattern is a regular expression constraint for string types.
	Pattern string `json:"pattern,omitempty"`
	// Format is a semantic format hint, e.g. "uri".
	Format string `json:"format,omitempty"`
}

// WithName returns a shallow copy of the declaration carrying a different
// tool name. The input schema is shared, not copied; callers must not
// mutate it.
func (d *Declaration) WithName(name string) *Declaration {
	if d == nil {
		return nil
	}
	clone := *d
	clone.Name = name
	return &clone
}
