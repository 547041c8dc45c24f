package ops

import (
	"encoding/json"
	"log"

	"github.com/xeipuuv/gojsonschema"
)

// operationSchema is the oneOf contract each proposed operation must satisfy.
// It mirrors the schema sent to the oracle in strict mode, and is re-checked
// here so a loosely-behaving oracle cannot smuggle malformed items through.
const operationSchema = `{
  "oneOf": [
    {
      "type": "object",
      "properties": {
        "op": {"const": "add_highlight"},
        "section": {"type": "string", "enum": ["work", "projects"]},
        "anchor": {"type": "string"},
        "text": {"type": "string", "minLength": 6, "maxLength": 300}
      },
      "required": ["op", "section", "anchor", "text"],
      "additionalProperties": false
    },
    {
      "type": "object",
      "properties": {
        "op": {"const": "rewrite_highlight"},
        "section": {"type": "string", "enum": ["work", "projects"]},
        "anchor": {"type": "string"},
        "find": {"type": "string", "minLength": 3},
        "text": {"type": "string", "minLength": 6, "maxLength": 300}
      },
      "required": ["op", "section", "anchor", "find", "text"],
      "additionalProperties": false
    },
    {
      "type": "object",
      "properties": {
        "op": {"const": "add_skill_keywords"},
        "keywords": {"type": "array", "items": {"type": "string"}}
      },
      "required": ["op", "keywords"],
      "additionalProperties": false
    },
    {
      "type": "object",
      "properties": {
        "op": {"const": "add_education_highlight"},
        "anchor": {"type": "string"},
        "text": {"type": "string", "minLength": 6, "maxLength": 300}
      },
      "required": ["op", "anchor", "text"],
      "additionalProperties": false
    },
    {
      "type": "object",
      "properties": {
        "op": {"const": "add_certificate"},
        "name": {"type": "string", "minLength": 2},
        "summary": {"type": "string"}
      },
      "required": ["op", "name"],
      "additionalProperties": false
    },
    {
      "type": "object",
      "properties": {
        "op": {"const": "update_summary"},
        "mode": {"type": "string", "enum": ["append"]},
        "text": {"type": "string", "minLength": 6, "maxLength": 140}
      },
      "required": ["op", "mode", "text"],
      "additionalProperties": false
    }
  ]
}`

var compiledOperationSchema *gojsonschema.Schema

func init() {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(operationSchema))
	if err != nil {
		panic("ops: invalid operation schema: " + err.Error())
	}
	compiledOperationSchema = schema
}

// FilterValid validates each raw item against the operation schema and decodes
// the survivors. One malformed item never drops the batch; it is skipped and
// logged.
func FilterValid(items []json.RawMessage) []Operation {
	out := make([]Operation, 0, len(items))
	for i, item := range items {
		result, err := compiledOperationSchema.Validate(gojsonschema.NewBytesLoader(item))
		if err != nil || !result.Valid() {
			log.Printf("operation synthesis: skipping invalid operation at index %d", i)
			continue
		}
		var op Operation
		if err := json.Unmarshal(item, &op); err != nil {
			log.Printf("operation synthesis: skipping undecodable operation at index %d: %v", i, err)
			continue
		}
		out = append(out, op)
	}
	return out
}
