package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chalin/angular2/internal/cli"
	"github.com/chalin/angular2/internal/utils"
)

func main() {
	var (
		configFlag  = flag.String("config", "injectorgen.yaml", "Path to the build configuration file")
		backendFlag = flag.String("backend", "", "Target backend, 'dart' or 'go' (overrides the config file)")
		moduleFlag  = flag.String("module", "", "Module path for generated Go imports (defaults to go.mod module)")
		outputFlag  = flag.String("output", "", "Output directory (overrides the config file)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Injector Code Generator\n")
		fmt.Fprintf(os.Stderr, "Compiles declarative injector configurations into source code.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --config injectorgen.yaml              # Compile everything in the config\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --config build.yaml --output ./gen     # Override the output directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --backend go --module example.com/app  # Generate Go injectors\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --verbose                              # Enable detailed output\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --quiet                                # Minimal output\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.Header("compiling injector declarations")

	config, err := cli.LoadConfig(*configFlag)
	if err != nil {
		reporter := cli.NewDiagnosticReporter(*verboseFlag)
		reporter.ReportError(err)
		os.Exit(1)
	}

	if *backendFlag != "" {
		config.Backend = *backendFlag
	}
	if *moduleFlag != "" {
		config.Module = *moduleFlag
	}
	if *outputFlag != "" {
		config.OutputDir = *outputFlag
	}
	if *verboseFlag {
		config.Verbose = true
	}

	if err := config.Validate(); err != nil {
		reporter := cli.NewDiagnosticReporter(*verboseFlag)
		reporter.ReportError(err)
		os.Exit(1)
	}

	if config.Verbose {
		diagnostics.PhaseHeader("Configuration")
		diagnostics.PhaseItem(fmt.Sprintf("backend: %s", config.Backend))
		diagnostics.PhaseItem(fmt.Sprintf("semantic model: %s", config.SemanticModel))
		diagnostics.PhaseItem(fmt.Sprintf("injectors: %d", len(config.Injectors)))
	}

	runner := cli.NewRunner(config, diagnostics)
	runErr := runner.Run()

	summary := runner.Summary()
	stats := map[string]interface{}{
		"Injectors compiled": summary.InjectorsCompiled,
		"Injectors failed":   summary.InjectorsFailed,
		"Files generated":    len(summary.GeneratedFiles),
	}
	diagnostics.Summary("Compilation Complete", stats)

	if runErr != nil {
		diagnostics.Error("run %s finished with failures: %v", summary.RunID, runErr)
		os.Exit(1)
	}

	diagnostics.Success("all injectors compiled")
}
