package models

// Token is the lookup key a provider is bound under. Exactly two variants
// exist: TypeToken (identity of a type) and OpaqueToken (an opaque runtime
// token, optionally carrying a string identifier).
//
// Token identity is value equality of the variant's fields; Key() produces a
// stable comparable form used for deduplication.
type Token interface {
	// Key returns a stable string identity for the token.
	Key() string
}

// TypeToken identifies a binding by the type it produces.
type TypeToken struct {
	Symbol   string    // type name as written in the defining unit
	Location *Location // defining unit; nil for universally-visible types
}

// Key implements Token.
func (t *TypeToken) Key() string {
	if t.Location == nil {
		return "type:" + t.Symbol
	}
	return "type:" + t.Symbol + "@" + t.Location.String()
}

// OpaqueToken identifies a binding by an opaque runtime token value.
type OpaqueToken struct {
	ClassRef   Symbol // the runtime token class to instantiate
	Identifier string // optional discriminator; empty means none
}

// Key implements Token.
func (t *OpaqueToken) Key() string {
	return "opaque:" + t.ClassRef.Key() + "#" + t.Identifier
}
