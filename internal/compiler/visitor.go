// Package compiler drives injector code generation: it resolves a
// declaration's provider list once and replays it as an ordered sequence of
// emission events over the InjectorVisitor interface. Rendering those events
// into source text is entirely a backend concern.
package compiler

import "github.com/chalin/angular2/internal/models"

// InjectorVisitor receives the emission events for one injector declaration.
// It is the sole output boundary of the compiler core.
//
// The call order is fixed regardless of backend: exactly one VisitMeta, then
// one provide call per provider in strictly increasing index order, ending
// with the implicit self-binding delivered as a VisitProvideValue whose token
// is nil. No other call ever carries a nil token.
type InjectorVisitor interface {
	// VisitMeta announces the generated class and factory function names.
	VisitMeta(className, factoryName string)

	// VisitProvideClass emits a binding constructed by instantiating a class.
	// An empty constructorName selects the unnamed constructor; resultType is
	// the class being constructed.
	VisitProvideClass(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, constructorName string, deps []models.Expression, multi bool)

	// VisitProvideExisting emits a binding that redirects to another token.
	VisitProvideExisting(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, redirect models.Expression, multi bool)

	// VisitProvideFactory emits a binding produced by calling a top-level
	// factory function.
	VisitProvideFactory(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, factory models.Reference, deps []models.Expression, multi bool)

	// VisitProvideValue emits a binding to a revived constant value. The
	// implicit self-binding arrives here with a nil token and a SelfRef
	// value expression.
	VisitProvideValue(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, value models.Expression, multi bool)
}
