package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFilename)
	t.Setenv("CMDBASE_TOKEN", "")

	_, err := LoadConfig(path)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Token", verrs[0].Field())
	assert.FileExists(t, path)
}

func TestLoadJSONConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(`{
		"discord": {"token": "abc", "prefix": "?"},
		"database": {"url": "sqlite3://bot.db"},
		"logging": {"console": {"level": "info"}, "file": {"disabled": true}}
	}`), 0o600))

	conf, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "abc", conf.Discord.Token.Reveal())
	assert.Equal(t, "?", conf.Discord.Prefix)
	assert.Equal(t, "sqlite3://bot.db", conf.Database.URL)
	assert.Equal(t, log.InfoLevel, log.Level(conf.Logging.Console.Level))
	assert.True(t, conf.Logging.File.Disabled)
}

func TestLoadYAMLConfigWithEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmdbase.yaml")
	require.NoError(t, os.WriteFile(path, []byte("discord:\n  token: abc\n  prefix: \"?\"\ndatabase:\n  url: sqlite3://bot.db\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CMDBASE_DATABASE_URL=postgres://localhost/bot\n"), 0o600))
	t.Setenv("CMDBASE_PREFIX", "%")
	t.Setenv("CMDBASE_LOG_LEVEL", "error")
	t.Cleanup(func() { _ = os.Unsetenv("CMDBASE_DATABASE_URL") })

	conf, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "%", conf.Discord.Prefix)
	assert.Equal(t, "postgres://localhost/bot", conf.Database.URL)
	assert.Equal(t, log.ErrorLevel, log.Level(conf.Logging.Console.Level))
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "cmdbase.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("{}"), 0o600))

	assert.Equal(t, yamlPath, FindConfigFile([]string{filepath.Join(dir, "missing"), dir}))

	empty := t.TempDir()
	assert.Equal(t, filepath.Join(empty, ConfigFilename), FindConfigFile([]string{empty}))
}
