package models

// InjectorDeclaration is one discovered @Injector annotation site. Discovery
// itself happens upstream; by the time a declaration reaches the compiler it
// is immutable.
type InjectorDeclaration struct {
	// Name is the declared injector name; the generated class and factory
	// names are derived from it.
	Name string
	// Origin names where the declaration came from, for diagnostics.
	Origin string
	// Payload is the raw provider/module payload of the annotation. An empty
	// payload is a fatal configuration error.
	Payload string
	// Location is the generating unit's own location. It is only set when the
	// declaration originates from the unit currently being generated into,
	// which enables relative reference resolution for symbols that are not
	// independently importable.
	Location *Location
}
