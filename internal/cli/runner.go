package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/chalin/angular2/internal/compiler"
	"github.com/chalin/angular2/internal/errors"
	"github.com/chalin/angular2/internal/generator"
	"github.com/chalin/angular2/internal/models"
	"github.com/chalin/angular2/internal/semantic"
	"github.com/chalin/angular2/internal/utils"
)

// Runner drives one build: it loads the semantic model, compiles every
// configured injector declaration and writes the generated files.
//
// Failure is per-declaration: a fatal error aborts that declaration entirely
// and the run continues with the rest, collecting the failures.
type Runner struct {
	config      *Config
	resolver    *ModuleResolver
	reporter    *DiagnosticReporter
	diagnostics *utils.DiagnosticSystem
	summary     RunSummary
}

// RunSummary describes what one build produced.
type RunSummary struct {
	RunID             string
	InjectorsCompiled int
	InjectorsFailed   int
	GeneratedFiles    []string
	Duration          time.Duration
}

// NewRunner creates a runner for one build configuration.
func NewRunner(config *Config, diagnostics *utils.DiagnosticSystem) *Runner {
	return &Runner{
		config:      config,
		resolver:    NewModuleResolver(),
		reporter:    NewDiagnosticReporter(config.Verbose),
		diagnostics: diagnostics,
	}
}

// Summary returns the summary of the last run.
func (r *Runner) Summary() RunSummary {
	return r.summary
}

// Run compiles every configured declaration. It returns a MultipleErrors
// holding one entry per failed declaration; successful declarations still
// produce output on a partially failed run.
func (r *Runner) Run() error {
	startTime := time.Now()
	r.summary = RunSummary{RunID: uuid.NewString(), GeneratedFiles: make([]string, 0)}

	r.diagnostics.Verbose("run %s starting at %s", r.summary.RunID, startTime.Format("15:04:05"))

	model, err := semantic.LoadModel(r.config.SemanticModel)
	if err != nil {
		r.diagnostics.Error("failed to load semantic model: %v", err)
		return err
	}
	r.diagnostics.Debug("loaded semantic model from %s", r.config.SemanticModel)

	moduleName := r.config.Module
	if r.config.Backend == "go" {
		moduleName, err = r.resolver.ResolveModuleName(r.config.Module)
		if err != nil {
			return errors.WrapConfigurationError("module", "resolve", err)
		}
		r.diagnostics.Debug("resolved module name: %s", moduleName)
	}

	var failures *errors.MultipleErrors
	for _, entry := range r.config.Injectors {
		file, err := r.compileOne(entry, model, moduleName)
		if err != nil {
			r.summary.InjectorsFailed++
			r.reporter.ReportError(err)
			errors.AddToMultiple(&failures, asCompilerError(err))
			continue
		}

		r.summary.InjectorsCompiled++
		r.summary.GeneratedFiles = append(r.summary.GeneratedFiles, file)
		r.diagnostics.Info("generated %s", file)
	}

	r.summary.Duration = time.Since(startTime)
	r.diagnostics.Verbose("run %s finished in %v", r.summary.RunID, r.summary.Duration)

	if failures != nil {
		return failures
	}
	return nil
}

// compileOne compiles a single declaration and writes its generated file,
// returning the written path.
func (r *Runner) compileOne(entry InjectorConfig, model *semantic.Model, moduleName string) (string, error) {
	decl, err := r.loadDeclaration(entry)
	if err != nil {
		return "", err
	}

	r.diagnostics.Verbose("compiling injector '%s' (%s)", decl.Name, decl.Origin)

	backend, err := r.newBackend(moduleName)
	if err != nil {
		return "", err
	}

	reader := compiler.NewInjectorReader(decl, model, r.diagnostics)
	if err := reader.Accept(backend); err != nil {
		return "", err
	}

	file, err := backend.Finish()
	if err != nil {
		return "", err
	}

	return r.writeFile(file)
}

// loadDeclaration reads an injector's payload file and builds the immutable
// declaration the compiler consumes.
func (r *Runner) loadDeclaration(entry InjectorConfig) (*models.InjectorDeclaration, error) {
	payload, err := os.ReadFile(entry.Source)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", entry.Source, err)
	}

	location, err := models.ParseLocation(entry.Location)
	if err != nil {
		return nil, errors.ConfigurationError("build",
			fmt.Sprintf("injector '%s' has an invalid location: %v", entry.Name, err))
	}

	return &models.InjectorDeclaration{
		Name:     entry.Name,
		Origin:   entry.Source,
		Payload:  string(payload),
		Location: location,
	}, nil
}

func (r *Runner) newBackend(moduleName string) (generator.Backend, error) {
	switch r.config.Backend {
	case "dart":
		return generator.NewDartBackend(), nil
	case "go":
		return generator.NewGoBackend(generator.GoConfig{
			Module:        moduleName,
			RuntimeImport: r.config.RuntimePackage,
		}), nil
	default:
		return nil, errors.ConfigurationError("build", "backend must be 'dart' or 'go'").
			WithContext("backend", r.config.Backend)
	}
}

func (r *Runner) writeFile(file *generator.GeneratedFile) (string, error) {
	outputDir := r.config.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", errors.WrapFileSystemError("create", outputDir, err)
	}

	path := filepath.Join(outputDir, file.Name)
	if err := os.WriteFile(path, []byte(file.Content), 0644); err != nil {
		return "", errors.WrapFileSystemError("write", path, err)
	}
	return path, nil
}

// asCompilerError coerces an arbitrary failure into the compiler error
// taxonomy so it can join a MultipleErrors collection.
func asCompilerError(err error) errors.CompilerError {
	if compilerErr, ok := err.(errors.CompilerError); ok {
		return compilerErr
	}
	return errors.Wrap(errors.UnknownErrorCode, err.Error(), err)
}
