package models

// Symbol names a declaration together with the unit it is defined in. A nil
// Location denotes a universally-available symbol that needs no import (the
// dynamic placeholder, for example).
//
// Symbols are the data-model form; resolving a Symbol against a generating
// unit yields a Reference, the code form.
type Symbol struct {
	Name     string
	Location *Location
}

// Dynamic is the universally-visible placeholder type used when no more
// precise result type is known.
var Dynamic = Symbol{Name: "dynamic"}

// Key returns a stable string identity for the symbol.
func (s Symbol) Key() string {
	if s.Location == nil {
		return s.Name
	}
	return s.Name + "@" + s.Location.String()
}
