// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

func LoadRegistry(path string) (*ToolRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ToolRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Find returns the tool definition with the given ID, nil when unknown.
func (r *ToolRegistry) Find(id string) *Tool {
	for i := range r.Tools {
		if r.Tools[i].ID == id {
			return &r.Tools[i]
		}
	}
	return nil
}

// CompileSchemas pre-compiles every tool's input schema so a malformed
// registry fails at startup, and returns the compiled validators keyed by
// tool ID.
func (r *ToolRegistry) CompileSchemas() (map[string]*gojsonschema.Schema, error) {
	schemas := make(map[string]*gojsonschema.Schema, len(r.Tools))
	for _, tool := range r.Tools {
		if tool.InputSchema == nil {
			return nil, fmt.Errorf("tool %s has no input schema", tool.ID)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for tool %s: %w", tool.ID, err)
		}
		schemas[tool.ID] = schema
	}
	return schemas, nil
}
