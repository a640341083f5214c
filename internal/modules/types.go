// Package modules parses raw injector annotation payloads into a normalized
// Module tree and flattens it into the deduplicated provider list the
// compiler core consumes. It is the module-parsing collaborator of the
// injector reader; its parse-time failure conditions are sentinel errors the
// reader translates into the compiler error taxonomy.
package modules

import (
	"fmt"

	"github.com/chalin/angular2/internal/models"
)

// Module is a named, reusable group of providers and/or nested modules.
type Module struct {
	Name      string
	Includes  []*Module
	Providers []models.Provider
}

// Flatten produces the module's full provider list: included modules first,
// depth-first in declaration order, then the module's own providers. Order is
// preserved exactly; callers that need token uniqueness run the result
// through DeduplicateProviders.
func (m *Module) Flatten() []models.Provider {
	var flat []models.Provider
	for _, include := range m.Includes {
		flat = append(flat, include.Flatten()...)
	}
	return append(flat, m.Providers...)
}

// DeduplicateProviders removes duplicate-token entries from a flattened
// provider list. The policy is deterministic: for non-multi providers the
// last occurrence of a token wins but keeps the first occurrence's position;
// multi providers all contribute to the same token and are never removed.
func DeduplicateProviders(providers []models.Provider) []models.Provider {
	result := make([]models.Provider, 0, len(providers))
	position := make(map[string]int)

	for _, provider := range providers {
		if provider.IsMulti() {
			result = append(result, provider)
			continue
		}
		token := provider.ProviderToken()
		if token == nil {
			// Tokenless entries are a configuration error the reader reports;
			// keep them in place so it gets the chance to.
			result = append(result, provider)
			continue
		}
		key := token.Key()
		if at, seen := position[key]; seen {
			result[at] = provider
			continue
		}
		position[key] = len(result)
		result = append(result, provider)
	}
	return result
}

// UnresolvedTokenError reports an identifier in the payload that the semantic
// model has no declaration for.
type UnresolvedTokenError struct {
	Name string
}

// Error implements the error interface
func (e *UnresolvedTokenError) Error() string {
	return fmt.Sprintf("token '%s' does not resolve to a declaration", e.Name)
}

// NullFactoryError reports a factory binding whose factory statically
// resolved to an explicit null instead of a callable.
type NullFactoryError struct {
	Name  string
	Token string
}

// Error implements the error interface
func (e *NullFactoryError) Error() string {
	return fmt.Sprintf("factory '%s' for token '%s' is null, expected a callable", e.Name, e.Token)
}
