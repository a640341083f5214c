package models

// Dependency is a single constructor or factory parameter to be satisfied by
// the injector hierarchy at runtime. The boolean flags control which levels
// of the hierarchy a lookup may search; Optional downgrades a failed lookup
// to a null default instead of an error.
type Dependency struct {
	Token    Token
	Self     bool
	SkipSelf bool
	Host     bool
	Optional bool
}

// Provider is a binding rule from a token to how a value satisfying it is
// produced. Exactly four variants exist: ValueProvider, ClassProvider,
// FactoryProvider and ExistingProvider. The variant set is closed; the
// orchestrator dispatches exhaustively over it.
//
// Token is nil only for the implicit self-binding the orchestrator appends
// itself; a parsed provider without a token is a fatal configuration error.
type Provider interface {
	// ProviderToken returns the token the binding is registered under.
	ProviderToken() Token
	// Result returns the symbol of the type the binding produces.
	Result() Symbol
	// IsMulti reports whether the binding contributes one of several values
	// collected under the same token.
	IsMulti() bool
}

type providerBase struct {
	Token      Token
	ResultType Symbol
	Multi      bool
}

func (p *providerBase) ProviderToken() Token { return p.Token }
func (p *providerBase) Result() Symbol       { return p.ResultType }
func (p *providerBase) IsMulti() bool        { return p.Multi }

// ValueProvider binds a token to an existing compile-time constant.
type ValueProvider struct {
	providerBase
	Value ConstantValue
}

// ClassProvider binds a token to a class to construct, with an ordered
// dependency list for the constructor parameters.
type ClassProvider struct {
	providerBase
	ClassRef        Symbol
	ConstructorName string // empty selects the unnamed constructor
	Dependencies    []Dependency
}

// FactoryProvider binds a token to a top-level factory function.
type FactoryProvider struct {
	providerBase
	FactoryRef   Symbol
	Dependencies []Dependency
}

// ExistingProvider redirects a token to another token's binding.
type ExistingProvider struct {
	providerBase
	RedirectTo Token
}

// NewValueProvider constructs a value binding.
func NewValueProvider(token Token, result Symbol, multi bool, value ConstantValue) *ValueProvider {
	return &ValueProvider{providerBase{token, result, multi}, value}
}

// NewClassProvider constructs a class binding.
func NewClassProvider(token Token, result Symbol, multi bool, class Symbol, constructor string, deps []Dependency) *ClassProvider {
	return &ClassProvider{providerBase{token, result, multi}, class, constructor, deps}
}

// NewFactoryProvider constructs a factory binding.
func NewFactoryProvider(token Token, result Symbol, multi bool, factory Symbol, deps []Dependency) *FactoryProvider {
	return &FactoryProvider{providerBase{token, result, multi}, factory, deps}
}

// NewExistingProvider constructs a redirect binding.
func NewExistingProvider(token Token, result Symbol, multi bool, redirect Token) *ExistingProvider {
	return &ExistingProvider{providerBase{token, result, multi}, redirect}
}
