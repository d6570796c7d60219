package jsonstore

import (
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://errika.local/todos.schema.json"

// documentSchema accepts the current envelope or the bare array of records
// written by older versions.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$defs": {
    "record": {
      "type": "object",
      "required": ["id", "text"],
      "properties": {
        "id": {"type": "integer"},
        "text": {"type": "string"},
        "priority": {"type": ["string", "null"]},
        "completed": {"type": ["boolean", "null"]},
        "created": {"type": ["string", "null"]}
      }
    },
    "records": {
      "type": "array",
      "items": {"$ref": "#/$defs/record"}
    }
  },
  "oneOf": [
    {"$ref": "#/$defs/records"},
    {
      "type": "object",
      "required": ["todos"],
      "properties": {
        "version": {"type": "integer", "minimum": 1},
        "next_id": {"type": "integer", "minimum": 0, "maximum": 2147483647},
        "todos": {"$ref": "#/$defs/records"}
      }
    }
  ]
}`

var schema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(documentSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(schemaURL)
}

// schemaMessages flattens a validation error into leaf messages with
// their JSON pointer locations.
func schemaMessages(err error) []string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	var out []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			out = append(out, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return out
}
