package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGoCodeString(t *testing.T) {
	formatted, err := FormatGoCodeString("x.go", "package x\nfunc  F( ) int {return 1}")
	require.NoError(t, err)

	assert.Contains(t, formatted, "func F() int")
}

func TestFormatGoCodeString_InvalidSyntax(t *testing.T) {
	source := "package x\nfunc F( {"

	result, err := FormatGoCodeString("x.go", source)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Go syntax")
	// The original text comes back so callers can show it in diagnostics.
	assert.Equal(t, source, result)
}
