// pkg/registry/registry_test.go
package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func loadTestRegistry(t *testing.T) *ToolRegistry {
	t.Helper()
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "tool-registry.json"))
	require.NoError(t, err)
	return reg
}

func TestLoadRegistry(t *testing.T) {
	reg := loadTestRegistry(t)

	assert.Len(t, reg.Tools, 3)
	for _, id := range []string{"churn-data-query", "retention-offer", "web-search"} {
		tool := reg.Find(id)
		require.NotNil(t, tool, "tool %s", id)
		assert.NotEmpty(t, tool.Description)
		assert.NotEmpty(t, tool.ErrorCodes)
	}
	assert.Nil(t, reg.Find("no-such-tool"))
}

func TestCompileSchemas(t *testing.T) {
	reg := loadTestRegistry(t)

	schemas, err := reg.CompileSchemas()
	require.NoError(t, err)
	require.Len(t, schemas, 3)

	result, err := schemas["churn-data-query"].Validate(
		gojsonschema.NewStringLoader(`{"customer_id": "7590-VHVEG"}`))
	require.NoError(t, err)
	assert.True(t, result.Valid())

	result, err = schemas["churn-data-query"].Validate(
		gojsonschema.NewStringLoader(`{"customer_id": "bad id!"}`))
	require.NoError(t, err)
	assert.False(t, result.Valid())

	result, err = schemas["web-search"].Validate(
		gojsonschema.NewStringLoader(`{"max_results": 3}`))
	require.NoError(t, err)
	assert.False(t, result.Valid(), "query is required")
}

func TestCompileSchemas_MissingInputSchema(t *testing.T) {
	reg := &ToolRegistry{Tools: []Tool{{ID: "broken"}}}

	_, err := reg.CompileSchemas()
	assert.Error(t, err)
}
