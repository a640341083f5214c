// Package di declares the runtime surface generated Go injectors link
// against. The compiler references these operations symbolically and never
// interprets them; their semantics live entirely in the runtime
// implementation a consumer supplies.
package di

// Injector is the hierarchical lookup interface a generated injector embeds.
// The parent injector passed to a generated factory satisfies lookups the
// generated bindings do not.
//
// Optional variants return orElse instead of failing when the token is not
// bound at the searched levels.
type Injector interface {
	// Inject resolves a token anywhere in the hierarchy.
	Inject(token any) any
	InjectOptional(token any, orElse any) any

	// InjectFromSelf resolves a token against this injector's own bindings
	// only.
	InjectFromSelf(token any) any
	InjectFromSelfOptional(token any, orElse any) any

	// InjectFromAncestry resolves a token starting at the parent, skipping
	// this injector's own bindings.
	InjectFromAncestry(token any) any
	InjectFromAncestryOptional(token any, orElse any) any

	// InjectFromParent resolves a token against the immediate parent only.
	InjectFromParent(token any) any
	InjectFromParentOptional(token any, orElse any) any
}
