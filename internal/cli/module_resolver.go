package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModuleResolver determines the Go module path generated imports resolve
// under.
type ModuleResolver struct{}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{}
}

// ResolveModuleName returns customModule when set, otherwise the module path
// of the nearest go.mod above the working directory.
func (r *ModuleResolver) ResolveModuleName(customModule string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}

	moduleName, err := r.readGoModFile()
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w (consider setting 'module' in the config)", err)
	}
	return moduleName, nil
}

// readGoModFile walks up from the working directory looking for go.mod.
func (r *ModuleResolver) readGoModFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return r.parseGoModFile(goModPath)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found")
}

// parseGoModFile extracts the module path from a go.mod file.
func (r *ModuleResolver) parseGoModFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod file: %w", err)
	}

	file, err := modfile.ParseLax(path, data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod file: %w", err)
	}
	if file.Module == nil || file.Module.Mod.Path == "" {
		return "", fmt.Errorf("module declaration not found in go.mod")
	}
	return file.Module.Mod.Path, nil
}
