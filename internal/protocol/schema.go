package protocol

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const protocolSchemaJSON = `{
  "type": "object",
  "required": ["analysis", "am_routine", "pm_routine", "tips"],
  "properties": {
    "analysis": { "type": "string" },
    "am_routine": { "type": "array", "items": { "$ref": "#/definitions/step" } },
    "pm_routine": { "type": "array", "items": { "$ref": "#/definitions/step" } },
    "tips": { "type": "array", "items": { "type": "string" } }
  },
  "definitions": {
    "step": {
      "type": "object",
      "required": ["name", "type", "note"],
      "properties": {
        "name": { "type": "string" },
        "type": { "type": "string" },
        "note": { "type": "string" },
        "example": { "type": "string" },
        "price_range": { "type": "string" }
      }
    }
  }
}`

var protocolSchema = mustCompileSchema(protocolSchemaJSON)

func mustCompileSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("protocol: invalid built-in schema: %v", err))
	}
	return schema
}

// ValidateShape checks raw JSON against the ProtocolResult schema.
func ValidateShape(raw []byte) error {
	result, err := protocolSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("protocol shape invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}
