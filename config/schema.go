package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the configuration file, with property
// names matching the YAML keys.
func Schema() ([]byte, error) {
	r := jsonschema.Reflector{
		FieldNameTag:   "yaml",
		ExpandedStruct: true,
	}
	s := r.Reflect(&Config{})
	s.Title = "wavey run configuration"

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("config: marshal schema: %w", err)
	}
	return b, nil
}
