package utils

import (
	"fmt"
	"go/format"
	"go/parser"
	"go/token"

	"golang.org/x/tools/imports"
)

// FormatGoCode formats generated Go source using the same logic as gofmt
func FormatGoCode(source []byte) ([]byte, error) {
	return format.Source(source)
}

// FormatGoCodeString formats generated Go source from a string. When plain
// formatting fails it retries with the imports-aware formatter, which also
// prunes unused imports the backend may have emitted.
func FormatGoCodeString(filename, source string) (string, error) {
	formatted, err := format.Source([]byte(source))
	if err == nil {
		return string(formatted), nil
	}

	processed, impErr := imports.Process(filename, []byte(source), nil)
	if impErr == nil {
		return string(processed), nil
	}

	// Parse to distinguish invalid syntax from a formatter limitation
	fset := token.NewFileSet()
	if _, parseErr := parser.ParseFile(fset, filename, source, parser.ParseComments); parseErr != nil {
		return source, fmt.Errorf("invalid Go syntax: %w (format error: %v)", parseErr, err)
	}
	return source, err
}
