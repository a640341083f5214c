package modules

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/chalin/angular2/internal/models"
	"github.com/chalin/angular2/internal/semantic"
)

// Parser parses the declarative provider payload of an @Injector annotation.
// Identifiers in the payload are resolved against the semantic model while
// binding, so the resulting Module tree carries fully resolved symbols.
type Parser struct {
	grammar *participle.Parser[moduleAST]
	model   *semantic.Model
}

// moduleAST is the grammar root. A module names a group of providers and may
// include nested module literals.
type moduleAST struct {
	Name      string         `parser:"'module' @Ident '{'"`
	Includes  []*moduleAST   `parser:"('include' @@ (',' @@)*)?"`
	Providers []*providerAST `parser:"('providers' '[' (@@ (',' @@)* ','?)? ']')? '}'"`
}

// providerAST is one provider entry of the four known kinds.
type providerAST struct {
	Kind  string    `parser:"@('ClassProvider' | 'ValueProvider' | 'FactoryProvider' | 'ExistingProvider') '('"`
	Token *tokenAST `parser:"@@"`
	Args  []*argAST `parser:"(',' @@)* ')'"`
}

// tokenAST is a lookup token: a bare type identifier or an opaque token
// constructor.
type tokenAST struct {
	Opaque *opaqueAST `parser:"@@"`
	Type   string     `parser:"| @Ident"`
}

type opaqueAST struct {
	Class      string  `parser:"'OpaqueToken' '(' @Ident"`
	Identifier *string `parser:"(',' @String)? ')'"`
}

// argAST is one named provider argument.
type argAST struct {
	UseClass    *dottedAST `parser:"'useClass' ':' @@"`
	UseValue    *string    `parser:"| 'useValue' ':' @Ident"`
	UseFactory  *string    `parser:"| 'useFactory' ':' @Ident"`
	UseExisting *tokenAST  `parser:"| 'useExisting' ':' @@"`
	Deps        *depsAST   `parser:"| 'deps' ':' @@"`
	Multi       *string    `parser:"| 'multi' ':' @('true' | 'false')"`
}

// dottedAST is a class reference with an optional named constructor.
type dottedAST struct {
	Class string `parser:"@Ident"`
	Ctor  string `parser:"('.' @Ident)?"`
}

type depsAST struct {
	Deps []*depAST `parser:"'[' (@@ (',' @@)* ','?)? ']'"`
}

// depAST is one dependency: a token followed by resolution flags.
type depAST struct {
	Token *tokenAST `parser:"@@"`
	Flags []string  `parser:"('@' @Ident)*"`
}

// NewParser creates a payload parser bound to a semantic model.
func NewParser(model *semantic.Model) *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[\[\](){}:,.@]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	grammar := participle.MustBuild[moduleAST](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)

	return &Parser{grammar: grammar, model: model}
}

// Parse parses a raw payload into a resolved Module tree.
func (p *Parser) Parse(payload string) (*Module, error) {
	ast, err := p.grammar.ParseString("", payload)
	if err != nil {
		return nil, fmt.Errorf("malformed module payload: %w", err)
	}
	return p.bind(ast)
}

func (p *Parser) bind(ast *moduleAST) (*Module, error) {
	module := &Module{Name: ast.Name}
	for _, include := range ast.Includes {
		bound, err := p.bind(include)
		if err != nil {
			return nil, err
		}
		module.Includes = append(module.Includes, bound)
	}
	for _, provider := range ast.Providers {
		bound, err := p.bindProvider(provider)
		if err != nil {
			return nil, err
		}
		module.Providers = append(module.Providers, bound)
	}
	return module, nil
}

// providerArgs is the collected named-argument set of one provider entry.
type providerArgs struct {
	useClass    *dottedAST
	useValue    string
	useFactory  string
	useExisting *tokenAST
	deps        []models.Dependency
	multi       bool
}

func (p *Parser) bindProvider(ast *providerAST) (models.Provider, error) {
	token, err := p.bindToken(ast.Token)
	if err != nil {
		return nil, err
	}

	args, err := p.collectArgs(ast.Args)
	if err != nil {
		return nil, err
	}

	switch ast.Kind {
	case "ClassProvider":
		return p.bindClassProvider(token, args)
	case "ValueProvider":
		return p.bindValueProvider(token, args)
	case "FactoryProvider":
		return p.bindFactoryProvider(token, args)
	case "ExistingProvider":
		return p.bindExistingProvider(token, args)
	default:
		// The grammar only admits the four kinds above.
		return nil, fmt.Errorf("unknown provider kind %q", ast.Kind)
	}
}

func (p *Parser) collectArgs(args []*argAST) (providerArgs, error) {
	var collected providerArgs
	for _, arg := range args {
		switch {
		case arg.UseClass != nil:
			collected.useClass = arg.UseClass
		case arg.UseValue != nil:
			collected.useValue = *arg.UseValue
		case arg.UseFactory != nil:
			collected.useFactory = *arg.UseFactory
		case arg.UseExisting != nil:
			collected.useExisting = arg.UseExisting
		case arg.Deps != nil:
			deps, err := p.bindDependencies(arg.Deps)
			if err != nil {
				return collected, err
			}
			collected.deps = deps
		case arg.Multi != nil:
			collected.multi = *arg.Multi == "true"
		}
	}
	return collected, nil
}

func (p *Parser) bindClassProvider(token models.Token, args providerArgs) (models.Provider, error) {
	var class models.Symbol
	var constructor string

	switch {
	case args.useClass != nil:
		info, ok := p.model.Type(args.useClass.Class)
		if !ok {
			return nil, &UnresolvedTokenError{Name: args.useClass.Class}
		}
		class = models.Symbol{Name: info.Symbol, Location: info.Location}
		constructor = args.useClass.Ctor
	default:
		// Without useClass the token's own type is constructed.
		typeToken, ok := token.(*models.TypeToken)
		if !ok {
			return nil, fmt.Errorf("ClassProvider on an opaque token requires useClass")
		}
		class = models.Symbol{Name: typeToken.Symbol, Location: typeToken.Location}
	}

	return models.NewClassProvider(token, class, args.multi, class, constructor, args.deps), nil
}

func (p *Parser) bindValueProvider(token models.Token, args providerArgs) (models.Provider, error) {
	if args.useValue == "" {
		return nil, fmt.Errorf("ValueProvider for %s requires useValue", token.Key())
	}
	value, ok := p.model.Constant(args.useValue)
	if !ok {
		return nil, &UnresolvedTokenError{Name: args.useValue}
	}
	return models.NewValueProvider(token, resultSymbol(token), args.multi, value), nil
}

func (p *Parser) bindFactoryProvider(token models.Token, args providerArgs) (models.Provider, error) {
	if args.useFactory == "" {
		return nil, fmt.Errorf("FactoryProvider for %s requires useFactory", token.Key())
	}
	info, defined := p.model.Factory(args.useFactory)
	if !defined {
		return nil, &UnresolvedTokenError{Name: args.useFactory}
	}
	if info == nil {
		return nil, &NullFactoryError{Name: args.useFactory, Token: token.Key()}
	}
	factory := models.Symbol{Name: info.Symbol, Location: info.Location}
	return models.NewFactoryProvider(token, resultSymbol(token), args.multi, factory, args.deps), nil
}

func (p *Parser) bindExistingProvider(token models.Token, args providerArgs) (models.Provider, error) {
	if args.useExisting == nil {
		return nil, fmt.Errorf("ExistingProvider for %s requires useExisting", token.Key())
	}
	redirect, err := p.bindToken(args.useExisting)
	if err != nil {
		return nil, err
	}
	return models.NewExistingProvider(token, resultSymbol(token), args.multi, redirect), nil
}

func (p *Parser) bindToken(ast *tokenAST) (models.Token, error) {
	if ast.Opaque != nil {
		info, ok := p.model.Type(ast.Opaque.Class)
		if !ok {
			return nil, &UnresolvedTokenError{Name: ast.Opaque.Class}
		}
		identifier := ""
		if ast.Opaque.Identifier != nil {
			identifier = *ast.Opaque.Identifier
		}
		return &models.OpaqueToken{
			ClassRef:   models.Symbol{Name: info.Symbol, Location: info.Location},
			Identifier: identifier,
		}, nil
	}

	info, ok := p.model.Type(ast.Type)
	if !ok {
		return nil, &UnresolvedTokenError{Name: ast.Type}
	}
	return &models.TypeToken{Symbol: info.Symbol, Location: info.Location}, nil
}

func (p *Parser) bindDependencies(ast *depsAST) ([]models.Dependency, error) {
	deps := make([]models.Dependency, 0, len(ast.Deps))
	for _, depAST := range ast.Deps {
		token, err := p.bindToken(depAST.Token)
		if err != nil {
			return nil, err
		}
		dep := models.Dependency{Token: token}
		for _, flag := range depAST.Flags {
			switch flag {
			case "optional":
				dep.Optional = true
			case "self":
				dep.Self = true
			case "skipSelf":
				dep.SkipSelf = true
			case "host":
				dep.Host = true
			default:
				return nil, fmt.Errorf("unknown dependency flag @%s", flag)
			}
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

// resultSymbol picks the result type a non-class binding produces: the
// token's type when it has one, the dynamic placeholder otherwise.
func resultSymbol(token models.Token) models.Symbol {
	if typeToken, ok := token.(*models.TypeToken); ok {
		return models.Symbol{Name: typeToken.Symbol, Location: typeToken.Location}
	}
	return models.Dynamic
}
