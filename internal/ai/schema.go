// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

// Schema type names, as accepted by the Gemini responseSchema field.
const (
	TypeObject  = "OBJECT"
	TypeArray   = "ARRAY"
	TypeString  = "STRING"
	TypeInteger = "INTEGER"
	TypeNumber  = "NUMBER"
	TypeBoolean = "BOOLEAN"
)

// Schema is the OpenAPI subset Gemini accepts as a response schema. The same
// value is used afterwards to validate what the model actually returned.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// String returns a string schema with a description.
func String(desc string) *Schema {
	return &Schema{Type: TypeString, Description: desc}
}

// Enum returns a string schema restricted to values.
func Enum(desc string, values ...string) *Schema {
	return &Schema{Type: TypeString, Description: desc, Enum: values}
}

// StringList returns an array-of-strings schema.
func StringList(desc string) *Schema {
	return &Schema{Type: TypeArray, Description: desc, Items: &Schema{Type: TypeString}}
}

// Object returns an object schema with the given required keys.
func Object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: props, Required: required}
}
