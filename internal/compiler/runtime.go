package compiler

import "github.com/chalin/angular2/internal/models"

// Fixed symbolic anchors into the target injector runtime. One value per
// target runtime; the compiler references these, it never interprets them.
var (
	// InjectorSymbol is the runtime injector base type the generated class
	// extends and the implicit self-binding resolves to.
	InjectorSymbol = models.Symbol{
		Name:     "Injector",
		Location: models.MustParseLocation("angular2:src/di/injector"),
	}
)
