package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/psds-microservice/openapi-docs/internal/annotation"
	apperrors "github.com/psds-microservice/openapi-docs/internal/errors"
)

func sampleDocument() annotation.Document {
	return annotation.Document{
		"openapi": "3.0.0",
		"info":    map[string]any{"title": "Demo Api", "version": "1.0"},
		"paths":   map[string]any{},
	}
}

func TestEncodeDocument_JSON(t *testing.T) {
	data, err := encodeDocument(sampleDocument(), "json")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("{\n  \"openapi\": \"3.0.0\",")), string(data))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]any(sampleDocument()), decoded)
}

func TestEncodeDocument_YAML(t *testing.T) {
	data, err := encodeDocument(sampleDocument(), "YAML")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "3.0.0", decoded["openapi"])
	assert.Equal(t, map[string]any{"title": "Demo Api", "version": "1.0"}, decoded["info"])
}

func TestEncodeDocument_UnsupportedFormat(t *testing.T) {
	_, err := encodeDocument(sampleDocument(), "xml")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)
}

func TestGenerateCommand(t *testing.T) {
	cwd := t.TempDir()
	route := filepath.Join(cwd, "src", "routes", "users.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(route), 0o755))
	require.NoError(t, os.WriteFile(route, []byte(`/**
 * @openapi
 * /users:
 *   get:
 *     responses:
 *       200:
 *         description: OK
 */
`), 0o644))
	chdir(t, cwd)
	for _, key := range []string{"SWAGGER_TITLE", "SWAGGER_VERSION", "SWAGGER_DESCRIPTION", "SWAGGER_API_FOLDER"} {
		t.Setenv(key, "")
	}

	out := filepath.Join(cwd, "openapi.json")
	rootCmd.SetArgs([]string{
		"generate",
		"--config", filepath.Join(cwd, "absent.yaml"),
		"--api-folder", "src/routes",
		"--title", "Users",
		"--api-version", "2.0",
		"--description", "Users API",
		"--output", out,
	})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, map[string]any{"title": "Users", "version": "2.0", "description": "Users API"}, doc["info"])
	assert.Contains(t, doc["paths"], "/users")
}
