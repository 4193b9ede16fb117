package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateEntryJSONSchema produces a JSON Schema Draft 2020-12 document from
// the Go Entry struct using invopop/jsonschema. The same schema backs
// `devstash schema` and import validation.
func GenerateEntryJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&Entry{})
	s.ID = "https://github.com/devstash/devstash/schemas/entry-v0.json"
	s.Title = "Devstash Entry v0"
	s.Description = "Schema for devstash vault entry documents"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
