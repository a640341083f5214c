package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/chalin/angular2/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
	}
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprint(os.Stderr, "! ")
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(os.Stderr, "\nERROR: Injector Compilation Failed\n")
	fmt.Fprintf(os.Stderr, "==================================\n\n")

	var compilerErr errors.CompilerError
	if stderrors.As(err, &compilerErr) {
		r.reportCompilerError(compilerErr)
	} else {
		r.reportBasicError(err)
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// reportCompilerError reports a CompilerError with full context and
// suggestions
func (r *DiagnosticReporter) reportCompilerError(compilerErr errors.CompilerError) {
	r.printErrorHeader(compilerErr.ErrorCode())

	fmt.Fprintf(os.Stderr, "Message: %s\n\n", compilerErr.Error())

	if r.verbose {
		if cause := compilerErr.Unwrap(); cause != nil {
			fmt.Fprintf(os.Stderr, "Underlying cause: %s\n\n", cause.Error())
		}
	}

	if loc := compilerErr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(os.Stderr, "Location: %s\n\n", loc.String())
	}

	if context := compilerErr.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := compilerErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	if r.verbose {
		r.printErrorChain(compilerErr)
	}
}

// reportBasicError reports an error that carries no taxonomy information
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(os.Stderr, "Message: %s\n\n", err.Error())

	errorMsg := strings.ToLower(err.Error())

	if strings.Contains(errorMsg, "config") {
		fmt.Fprintf(os.Stderr, "This appears to be a configuration issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Check the build configuration file syntax\n")
		fmt.Fprintf(os.Stderr, "  - Ensure all referenced paths exist\n\n")
	} else if strings.Contains(errorMsg, "module") || strings.Contains(errorMsg, "provider") {
		fmt.Fprintf(os.Stderr, "This appears to be a module payload issue.\n")
		fmt.Fprintf(os.Stderr, "Common solutions:\n")
		fmt.Fprintf(os.Stderr, "  - Check the provider list syntax in the payload file\n")
		fmt.Fprintf(os.Stderr, "  - Ensure every referenced token exists in the semantic model\n\n")
	}
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var codeStr string

	switch code {
	case errors.ParseErrorCode:
		codeStr = "Provider Configuration Error"
	case errors.AccessibilityErrorCode:
		codeStr = "Constant Accessibility Error"
	case errors.FactoryProviderErrorCode:
		codeStr = "Factory Provider Error"
	case errors.RevivalErrorCode:
		codeStr = "Constant Revival Error"
	case errors.GenerationErrorCode:
		codeStr = "Code Generation Error"
	case errors.ConfigurationErrorCode:
		codeStr = "Configuration Error"
	case errors.FileSystemErrorCode:
		codeStr = "File System Error"
	default:
		codeStr = "Unknown Error"
	}

	fmt.Fprintf(os.Stderr, "Type: %s\n", codeStr)
	fmt.Fprintf(os.Stderr, "%s\n\n", strings.Repeat("-", len(codeStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "Context:\n")

	importantKeys := []string{"injector_name", "token", "symbol", "defining_unit", "accessor"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(os.Stderr, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	for key, value := range context {
		if !printed[key] {
			fmt.Fprintf(os.Stderr, "   %s: %v\n", r.formatContextKey(key), value)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "injector_name":
		return "Injector"
	case "token":
		return "Token"
	case "symbol":
		return "Symbol"
	case "defining_unit":
		return "Defining Unit"
	case "accessor":
		return "Accessor"
	default:
		// Convert snake_case to Title Case
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(os.Stderr, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(os.Stderr, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(os.Stderr, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
}

// printErrorChain prints the full error chain in verbose mode
func (r *DiagnosticReporter) printErrorChain(compilerErr errors.CompilerError) {
	cause := compilerErr.Unwrap()
	if cause == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error Chain:\n")
	level := 1
	for cause != nil {
		fmt.Fprintf(os.Stderr, "  %d. %s\n", level, cause.Error())
		cause = stderrors.Unwrap(cause)
		level++
	}
	fmt.Fprintf(os.Stderr, "\n")
}

// ReportSuccess reports a completed run with summary information
func (r *DiagnosticReporter) ReportSuccess(summary RunSummary) {
	green := color.New(color.FgGreen, color.Bold)
	green.Printf("\nInjector Compilation Completed Successfully!\n")
	fmt.Printf("============================================\n\n")

	if summary.InjectorsCompiled > 0 {
		fmt.Printf("Compiled %d injectors\n", summary.InjectorsCompiled)
	}

	if len(summary.GeneratedFiles) > 0 {
		fmt.Printf("\nGenerated files:\n")
		for _, file := range summary.GeneratedFiles {
			fmt.Printf("  - %s\n", file)
		}
	}
	fmt.Printf("\n")
}
