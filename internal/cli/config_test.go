package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "injectorgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, `
backend: dart
output: gen
semantic_model: model.yaml
injectors:
  - name: App
    source: app_providers.txt
    location: "asset:hero_app/lib/app.dart"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "dart", config.Backend)
	// Relative paths resolve against the config file's directory.
	assert.Equal(t, filepath.Join(dir, "gen"), config.OutputDir)
	assert.Equal(t, filepath.Join(dir, "model.yaml"), config.SemanticModel)
	require.Len(t, config.Injectors, 1)
	assert.Equal(t, filepath.Join(dir, "app_providers.txt"), config.Injectors[0].Source)
	assert.Equal(t, "asset:hero_app/lib/app.dart", config.Injectors[0].Location)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Backend:       "dart",
			SemanticModel: "model.yaml",
			Injectors: []InjectorConfig{
				{Name: "App", Source: "app.txt", Location: "hero_app:app.dart"},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"go backend", func(c *Config) { c.Backend = "go" }, ""},
		{"unknown backend", func(c *Config) { c.Backend = "rust" }, "backend must be"},
		{"missing model", func(c *Config) { c.SemanticModel = "" }, "semantic_model"},
		{"no injectors", func(c *Config) { c.Injectors = nil }, "no injectors"},
		{"unnamed injector", func(c *Config) { c.Injectors[0].Name = "" }, "missing a name"},
		{"missing source", func(c *Config) { c.Injectors[0].Source = "" }, "missing a source"},
		{"missing location", func(c *Config) { c.Injectors[0].Location = "" }, "missing a location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
