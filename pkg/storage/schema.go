package storage

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// collectionSchema describes the expected shape of a collection document.
// Used for advisory linting on import only; violations are reported as
// warnings, never as errors.
const collectionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "description": {"type": "string"},
    "version": {"type": "string"},
    "variables": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "folders": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string"},
          "requests": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "requests": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "method", "url"],
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string"},
          "method": {
            "type": "string",
            "enum": ["GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"]
          },
          "url": {"type": "string"},
          "params": {"type": "array"},
          "headers": {"type": "array"}
        }
      }
    }
  }
}`

// LintCollectionDocument validates raw JSON against the collection schema
// and returns human-readable warnings. Validator failures produce a single
// warning rather than an error; import must stay available.
func LintCollectionDocument(data []byte) []string {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(collectionSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return []string{fmt.Sprintf("schema lint unavailable: %v", err)}
	}

	var warnings []string
	for _, desc := range result.Errors() {
		warnings = append(warnings, fmt.Sprintf("schema: %s: %s", desc.Field(), desc.Description()))
	}
	return warnings
}
