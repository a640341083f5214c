package compiler

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/chalin/angular2/internal/errors"
	"github.com/chalin/angular2/internal/models"
	"github.com/chalin/angular2/internal/modules"
	"github.com/chalin/angular2/internal/resolve"
	"github.com/chalin/angular2/internal/revive"
	"github.com/chalin/angular2/internal/semantic"
	"github.com/chalin/angular2/internal/utils"
)

// InjectorReader compiles one injector declaration: it resolves the
// flattened, deduplicated provider list exactly once and replays it over a
// visitor in a fixed deterministic order.
//
// A reader is confined to a single declaration and a single goroutine.
// Failure is fail-fast: any fatal error aborts the declaration entirely;
// there is no partial emission.
type InjectorReader struct {
	decl    *models.InjectorDeclaration
	parser  *modules.Parser
	refs    *resolve.ReferenceResolver
	tokens  *resolve.TokenResolver
	deps    *resolve.DependencyResolver
	reviver *revive.ConstantReviver
	diag    *utils.DiagnosticSystem

	providers utils.Lazy[[]models.Provider]
}

// NewInjectorReader creates a reader for one declaration against a semantic
// model. diag may be nil when no diagnostics output is wanted.
func NewInjectorReader(decl *models.InjectorDeclaration, model *semantic.Model, diag *utils.DiagnosticSystem) *InjectorReader {
	refs := resolve.NewReferenceResolver(decl.Location)
	tokens := resolve.NewTokenResolver(refs)
	return &InjectorReader{
		decl:    decl,
		parser:  modules.NewParser(model),
		refs:    refs,
		tokens:  tokens,
		deps:    resolve.NewDependencyResolver(tokens),
		reviver: revive.NewConstantReviver(refs),
		diag:    diag,
	}
}

// Providers returns the declaration's flattened, deduplicated provider list.
// The list is resolved at most once per reader; later calls return the
// memoized result, including a memoized failure.
func (r *InjectorReader) Providers() ([]models.Provider, error) {
	return r.providers.Get(r.resolveProviders)
}

func (r *InjectorReader) resolveProviders() ([]models.Provider, error) {
	if strings.TrimSpace(r.decl.Payload) == "" {
		return nil, errors.NewParseError(
			fmt.Sprintf("injector '%s' has no providers payload", r.decl.Name), nil)
	}

	module, err := r.parser.Parse(r.decl.Payload)
	if err != nil {
		return nil, r.translateParseFailure(err)
	}

	return modules.DeduplicateProviders(module.Flatten()), nil
}

// translateParseFailure maps the collaborator's failure conditions into the
// compiler error taxonomy. Anything it does not recognize is logged as a
// warning naming the declaration's origin and re-raised unchanged, so an
// outer driver can record it and continue with other declarations.
func (r *InjectorReader) translateParseFailure(err error) error {
	var unresolved *modules.UnresolvedTokenError
	if stderrors.As(err, &unresolved) {
		parseErr := errors.NewParseError(
			fmt.Sprintf("provider token '%s' of injector '%s' resolved to null", unresolved.Name, r.decl.Name),
			unresolved.Name)
		parseErr.WithCause(err)
		return parseErr
	}

	var nullFactory *modules.NullFactoryError
	if stderrors.As(err, &nullFactory) {
		factoryErr := errors.NewFactoryProviderError(
			fmt.Sprintf("factory for token '%s' of injector '%s' is null", nullFactory.Token, r.decl.Name),
			nullFactory.Token)
		factoryErr.WithCause(err)
		return factoryErr
	}

	if r.diag != nil {
		r.diag.Warn("module parsing failed for injector '%s' (%s): %v", r.decl.Name, r.decl.Origin, err)
	}
	return err
}

// Accept replays the declaration as emission events over visitor.
//
// The sequence is deterministic: one VisitMeta with the derived class and
// factory names, then one provide call per provider with zero-based
// contiguous indices, then the implicit self-binding at index N with a nil
// token, which lets generated injectors resolve themselves.
func (r *InjectorReader) Accept(visitor InjectorVisitor) error {
	providers, err := r.Providers()
	if err != nil {
		return err
	}

	visitor.VisitMeta(ClassName(r.decl.Name), FactoryName(r.decl.Name))

	for index, provider := range providers {
		token := provider.ProviderToken()
		if token == nil {
			return errors.NewParseError(
				fmt.Sprintf("provider %d of injector '%s' has no token", index, r.decl.Name),
				provider)
		}

		tokenExpr := r.tokens.Resolve(token)
		resultType := r.refs.ResolveSymbol(provider.Result())

		switch provider := provider.(type) {
		case *models.ValueProvider:
			value, err := r.reviver.Revive(provider.Value)
			if err != nil {
				return err
			}
			visitor.VisitProvideValue(index, token, tokenExpr, resultType, value, provider.IsMulti())

		case *models.ClassProvider:
			visitor.VisitProvideClass(index, token, tokenExpr, resultType,
				provider.ConstructorName, r.resolveDependencies(provider.Dependencies), provider.IsMulti())

		case *models.FactoryProvider:
			factory := r.refs.ResolveSymbol(provider.FactoryRef)
			visitor.VisitProvideFactory(index, token, tokenExpr, resultType,
				factory, r.resolveDependencies(provider.Dependencies), provider.IsMulti())

		case *models.ExistingProvider:
			redirect := r.tokens.Resolve(provider.RedirectTo)
			visitor.VisitProvideExisting(index, token, tokenExpr, resultType, redirect, provider.IsMulti())

		default:
			// The provider variant set is closed; a new variant must extend
			// this match and the visitor interface together.
			panic("compiler: unknown provider variant")
		}
	}

	self := r.refs.ResolveSymbol(InjectorSymbol)
	visitor.VisitProvideValue(len(providers), nil, models.Ref{Reference: self}, self, models.SelfRef{}, false)
	return nil
}

func (r *InjectorReader) resolveDependencies(deps []models.Dependency) []models.Expression {
	exprs := make([]models.Expression, 0, len(deps))
	for _, dep := range deps {
		exprs = append(exprs, r.deps.Resolve(dep))
	}
	return exprs
}
