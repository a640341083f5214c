// Package generator contains the concrete emission backends. Each backend
// implements the compiler's visitor interface, buffers the event sequence for
// one declaration and renders it into a single generated source file.
package generator

import "github.com/chalin/angular2/internal/compiler"

// GeneratedFile is one rendered output file.
type GeneratedFile struct {
	Name    string
	Content string
}

// Backend renders the emission events of one injector declaration. A backend
// instance is single-use: one declaration in, one file out.
type Backend interface {
	compiler.InjectorVisitor

	// Finish renders the buffered events. It must only be called after the
	// full event sequence has been delivered.
	Finish() (*GeneratedFile, error)
}
