// Package schemas holds the embedded JSON Schemas used to validate
// YAML files before they are unmarshaled.
package schemas

import _ "embed"

// PersonaSchemaJSON is the JSON Schema for persona YAML files.
//
//go:embed persona.schema.json
var PersonaSchemaJSON string
