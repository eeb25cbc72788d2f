package polyglot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"port": 9090,
		"default_language": "en",
		"dev": true,
		"database": {"path": "/tmp/test.sqlite"}
	}`), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Port)
	assert.Equal(t, "en", config.DefaultLanguage)
	assert.True(t, config.Dev)
	assert.Equal(t, "/tmp/test.sqlite", config.Database.Path)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, "translations", config.TranslationsDir)
	assert.Equal(t, "localhost:4317", config.OTLPEndpoint)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{oops`), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
