// Package resolve turns tokens, symbols and dependencies into
// backend-agnostic code expressions. It performs no I/O; every fact it needs
// comes from the already-built semantic model.
package resolve

import (
	"strings"

	"github.com/chalin/angular2/internal/models"
)

// ReferenceResolver computes how to name a symbol defined in a possibly
// different compilation unit from the one being generated into.
//
// The doNotScope location is the generating unit's own location and is only
// set when the declaration originates from the unit currently being generated
// into. That is exactly the case where the defining unit may not be
// independently importable (a test-only unit, for example), so asset-rooted
// targets are rewritten to relative references instead of logical ones.
type ReferenceResolver struct {
	doNotScope *models.Location
}

// NewReferenceResolver creates a resolver for a generating unit. Pass nil
// when the declaration does not originate from the unit being generated.
func NewReferenceResolver(doNotScope *models.Location) *ReferenceResolver {
	return &ReferenceResolver{doNotScope: doNotScope}
}

// Resolve names symbol as seen from the generating unit. A nil defining
// location denotes a universally-visible symbol that needs no import.
func (r *ReferenceResolver) Resolve(symbol string, definingLocation *models.Location) models.Reference {
	if definingLocation == nil {
		return models.Reference{Symbol: symbol}
	}

	if r.doNotScope != nil && definingLocation.IsAsset() {
		return r.resolveAsset(symbol, definingLocation)
	}

	return models.Reference{Symbol: symbol, Import: logicalForm(definingLocation)}
}

// ResolveSymbol names a data-model symbol as seen from the generating unit.
func (r *ReferenceResolver) ResolveSymbol(symbol models.Symbol) models.Reference {
	return r.Resolve(symbol.Name, symbol.Location)
}

// resolveAsset handles targets addressed through the build-internal scheme.
func (r *ReferenceResolver) resolveAsset(symbol string, target *models.Location) models.Reference {
	segments := target.Segments()

	// A target under the public-library root is portably importable despite
	// its filesystem-rooted form; prefer the stable logical reference.
	if len(segments) > 2 && segments[1] == models.PublicRoot {
		return models.Reference{
			Symbol: symbol,
			Import: segments[0] + ":" + strings.Join(segments[2:], "/"),
		}
	}

	// Relativizing needs a package, an addressing segment and a filename on
	// both sides; shorter asset paths fall back to the absolute form.
	base := r.doNotScope.Segments()
	if len(base) < 3 || len(segments) < 3 {
		return models.Reference{Symbol: symbol, Import: target.String()}
	}

	// Different top-level packages live in unrelated distribution units and
	// cannot be relativized.
	if segments[0] != base[0] {
		return models.Reference{Symbol: symbol, Import: target.String()}
	}

	fromDir := base[2 : len(base)-1] // drop addressing segments and the filename
	return models.Reference{
		Symbol: symbol,
		Import: relativize(fromDir, segments[2:]),
	}
}

// relativize computes a slash path from the generating unit's directory to
// the target file.
func relativize(fromDir, to []string) string {
	shared := 0
	for shared < len(fromDir) && shared < len(to)-1 && fromDir[shared] == to[shared] {
		shared++
	}

	parts := make([]string, 0, len(fromDir)-shared+len(to)-shared)
	for i := shared; i < len(fromDir); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, to[shared:]...)
	return strings.Join(parts, "/")
}

// logicalForm returns the stable logical reference for a location: logical
// locations are already in that form, asset locations under the public root
// are stripped down to it, and anything else stays as written.
func logicalForm(loc *models.Location) string {
	if !loc.IsAsset() {
		return loc.String()
	}
	segments := loc.Segments()
	if len(segments) > 2 && segments[1] == models.PublicRoot {
		return segments[0] + ":" + strings.Join(segments[2:], "/")
	}
	return loc.String()
}
