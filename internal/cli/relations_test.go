package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelations_Text(t *testing.T) {
	stdout, _, err := execute(t, "relations", "testdata/small.yaml")
	require.NoError(t, err)

	assert.Contains(t, stdout, "supersorts:\n")
	assert.Contains(t, stdout, "  SortNat{} -> SortInt{}\n")
	assert.Contains(t, stdout, "subsorts:\n")
	assert.Contains(t, stdout, "  SortInt{} -> SortNat{}\n")
	assert.Contains(t, stdout, "overloads:\n")
	assert.Contains(t, stdout, "sort_contains:\n")
}

func TestRelations_Single(t *testing.T) {
	stdout, _, err := execute(t, "relations", "testdata/small.yaml", "--relation", "subsorts")
	require.NoError(t, err)
	assert.Contains(t, stdout, "subsorts:")
	assert.NotContains(t, stdout, "supersorts:")
}

func TestRelations_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "relations", "testdata/small.yaml", "--relation", "supersorts")
	require.NoError(t, err)

	var resp struct {
		Data map[string]map[string][]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Contains(t, resp.Data, "supersorts")
	assert.Equal(t, []string{"SortInt{}"}, resp.Data["supersorts"]["SortNat{}"])
}

func TestRelations_InvalidName(t *testing.T) {
	_, _, err := execute(t, "relations", "testdata/small.yaml", "--relation", "parents")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
