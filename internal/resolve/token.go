package resolve

import "github.com/chalin/angular2/internal/models"

// TokenResolver turns a lookup token into the code expression identifying it
// at runtime. Purely structural; it has no failure modes.
type TokenResolver struct {
	refs *ReferenceResolver
}

// NewTokenResolver creates a token resolver bound to a reference resolver.
func NewTokenResolver(refs *ReferenceResolver) *TokenResolver {
	return &TokenResolver{refs: refs}
}

// Resolve produces the identity expression for a token.
//
// A type token becomes a reference to the type's symbol. An opaque token
// becomes a constructor invocation on its token class, with the identifier as
// a single string-literal argument when present.
func (t *TokenResolver) Resolve(token models.Token) models.Expression {
	switch token := token.(type) {
	case *models.TypeToken:
		return models.Ref{Reference: t.refs.Resolve(token.Symbol, token.Location)}
	case *models.OpaqueToken:
		invoke := models.Invoke{Target: t.refs.ResolveSymbol(token.ClassRef)}
		if token.Identifier != "" {
			invoke.Positional = []models.Expression{models.StringLit{Value: token.Identifier}}
		}
		return invoke
	default:
		// The token variant set is closed; a new variant is a programming
		// error, not an input error.
		panic("resolve: unknown token variant")
	}
}
