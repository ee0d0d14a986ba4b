package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seek/internal/core/domain"
)

func TestInfoCmd_PrintsDetail(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "info", "serde")

	require.NoError(t, err)
	assert.Contains(t, out, "serde 1.0.219")
	assert.Contains(t, out, "Project version:   1.0")
	assert.Contains(t, out, "Downloads:         1,234,567")
	assert.Contains(t, out, "Updated:           2025-03-09")
	assert.Contains(t, out, "Features:          derive, std")
	assert.Contains(t, out, "Repository:        https://github.com/serde-rs/serde")
	assert.NotContains(t, out, "# Serde")
}

func TestInfoCmd_Readme(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "info", "--readme", "serde")

	require.NoError(t, err)
	assert.Contains(t, out, "# Serde")
}

func TestInfoCmd_ReadmeUnavailable(t *testing.T) {
	ts := setupTestServices(t)
	ts.readme.err = domain.ErrReadmeUnavailable

	out, err := execute(t, "info", "-r", "serde")

	require.NoError(t, err)
	assert.Contains(t, out, "No README available for serde")
}

func TestInfoCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "info", "no-such-crate")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `crate "no-such-crate" not found`)
}

func TestInfoCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "info", "--json", "serde")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "serde", got["name"])
	assert.Equal(t, "1.0", got["project_version"])
	assert.Equal(t, []any{"1.0.219", "1.0.218"}, got["versions"])
}
