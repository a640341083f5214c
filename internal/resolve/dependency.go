package resolve

import "github.com/chalin/angular2/internal/models"

// DependencyResolver maps a dependency's resolution flags to the runtime
// lookup operation the generated injector must call.
type DependencyResolver struct {
	tokens *TokenResolver
}

// NewDependencyResolver creates a dependency resolver bound to a token
// resolver.
func NewDependencyResolver(tokens *TokenResolver) *DependencyResolver {
	return &DependencyResolver{tokens: tokens}
}

// Resolve produces the lookup call for a dependency. The token's identity
// expression is always the first argument; optional variants carry a literal
// null second argument as the default-value sentinel.
func (d *DependencyResolver) Resolve(dep models.Dependency) models.Expression {
	args := []models.Expression{d.tokens.Resolve(dep.Token)}
	if dep.Optional {
		args = append(args, models.Null{})
	}
	return models.LookupCall{Op: lookupOp(dep), Args: args}
}

// lookupOp selects the runtime operation. The priority is a fixed first-match
// chain: self outranks skipSelf outranks host outranks the default case.
// Whether the upstream producer ever sets more than one flag is unverified;
// co-occurrence follows this chain.
func lookupOp(dep models.Dependency) models.LookupOp {
	switch {
	case dep.Self && dep.Optional:
		return models.LookupFromSelfOptional
	case dep.Self:
		return models.LookupFromSelf
	case dep.SkipSelf && dep.Optional:
		return models.LookupFromAncestryOptional
	case dep.SkipSelf:
		return models.LookupFromAncestry
	case dep.Host && dep.Optional:
		return models.LookupFromParentOptional
	case dep.Host:
		return models.LookupFromParent
	case dep.Optional:
		return models.LookupInjectOptional
	default:
		return models.LookupInject
	}
}
