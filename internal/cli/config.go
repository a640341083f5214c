package cli

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chalin/angular2/internal/errors"
)

// Config is the build configuration, loaded from a YAML file. Paths are
// interpreted relative to the config file's directory.
type Config struct {
	// Backend selects the output language: "dart" or "go".
	Backend string `yaml:"backend"`

	// OutputDir is where generated files are written.
	OutputDir string `yaml:"output"`

	// Module is the Go module path generated imports resolve under. If
	// empty it is read from the nearest go.mod. Only the Go backend uses
	// it.
	Module string `yaml:"module"`

	// RuntimePackage overrides the injector runtime import of the Go
	// backend.
	RuntimePackage string `yaml:"runtime"`

	// SemanticModel is the path of the semantic model file the compiler
	// resolves tokens and constants against.
	SemanticModel string `yaml:"semantic_model"`

	// Injectors lists the declarations to compile.
	Injectors []InjectorConfig `yaml:"injectors"`

	// Verbose enables detailed diagnostics.
	Verbose bool `yaml:"verbose"`
}

// InjectorConfig is one injector declaration entry.
type InjectorConfig struct {
	// Name is the declaration name the generated class and factory names
	// derive from.
	Name string `yaml:"name"`

	// Source is the path of the file holding the module payload.
	Source string `yaml:"source"`

	// Location is the declaration's source unit in location form, for
	// example "asset:hero_app/lib/app.dart" or "hero_app:app.dart".
	Location string `yaml:"location"`
}

// LoadConfig reads and validates a build configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.WrapConfigurationError(path, "parse", err)
	}

	baseDir := filepath.Dir(path)
	config.OutputDir = resolvePath(baseDir, config.OutputDir)
	config.SemanticModel = resolvePath(baseDir, config.SemanticModel)
	for i := range config.Injectors {
		config.Injectors[i].Source = resolvePath(baseDir, config.Injectors[i].Source)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the configuration for the mistakes a user is likely to
// make, so failures surface before any compilation starts.
func (c *Config) Validate() error {
	if c.Backend != "dart" && c.Backend != "go" {
		return errors.ConfigurationError("build", "backend must be 'dart' or 'go'").
			WithContext("backend", c.Backend)
	}
	if c.SemanticModel == "" {
		return errors.ConfigurationError("build", "semantic_model path is required")
	}
	if len(c.Injectors) == 0 {
		return errors.ConfigurationError("build", "no injectors configured").
			WithSuggestion("Add at least one entry under 'injectors' with name, source and location")
	}
	for _, injector := range c.Injectors {
		if injector.Name == "" {
			return errors.ConfigurationError("build", "injector entry is missing a name")
		}
		if injector.Source == "" {
			return errors.ConfigurationError("build", "injector '"+injector.Name+"' is missing a source path")
		}
		if injector.Location == "" {
			return errors.ConfigurationError("build", "injector '"+injector.Name+"' is missing a location")
		}
	}
	return nil
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
