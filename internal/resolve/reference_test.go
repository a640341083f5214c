package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chalin/angular2/internal/models"
)

func TestResolve_NilLocationNeedsNoImport(t *testing.T) {
	resolver := NewReferenceResolver(nil)

	ref := resolver.Resolve("Object", nil)

	assert.Equal(t, models.Reference{Symbol: "Object"}, ref)
}

func TestResolve_LogicalLocationStaysLogical(t *testing.T) {
	resolver := NewReferenceResolver(models.MustParseLocation("asset:projA/lib/a/b.dart"))

	ref := resolver.Resolve("HeroService", models.MustParseLocation("projB:services/hero.dart"))

	assert.Equal(t, "projB:services/hero.dart", ref.Import)
}

func TestResolve_AssetUnderPublicRootBecomesLogical(t *testing.T) {
	// Both units sit under the standard public-library root; the stable
	// logical reference wins over a filesystem-relative path.
	resolver := NewReferenceResolver(models.MustParseLocation("asset:projA/lib/a/b.dart"))

	ref := resolver.Resolve("Backend", models.MustParseLocation("asset:projA/lib/c/d.dart"))

	assert.Equal(t, "projA:c/d.dart", ref.Import)
}

func TestResolve_AssetOutsidePublicRootRelativizes(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		target string
		want   string
	}{
		{
			name:   "sibling file",
			base:   "asset:projA/test/a/injector.dart",
			target: "asset:projA/test/a/helpers.dart",
			want:   "helpers.dart",
		},
		{
			name:   "target in subdirectory",
			base:   "asset:projA/test/injector.dart",
			target: "asset:projA/test/support/helpers.dart",
			want:   "support/helpers.dart",
		},
		{
			name:   "target up one directory",
			base:   "asset:projA/test/a/injector.dart",
			target: "asset:projA/test/helpers.dart",
			want:   "../helpers.dart",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewReferenceResolver(models.MustParseLocation(tt.base))
			ref := resolver.Resolve("helper", models.MustParseLocation(tt.target))
			assert.Equal(t, tt.want, ref.Import)
		})
	}
}

func TestResolve_ShortAssetPathsKeepAbsoluteForm(t *testing.T) {
	// Paths with only a package and a filename carry no addressing segment to
	// relativize under, from either side.
	tests := []struct {
		name   string
		base   string
		target string
	}{
		{
			name:   "generating unit at package root",
			base:   "asset:projA/main.dart",
			target: "asset:projA/test/x.dart",
		},
		{
			name:   "target at package root",
			base:   "asset:projA/test/a/injector.dart",
			target: "asset:projA/main.dart",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewReferenceResolver(models.MustParseLocation(tt.base))
			ref := resolver.Resolve("Thing", models.MustParseLocation(tt.target))
			assert.Equal(t, tt.target, ref.Import)
		})
	}
}

func TestResolve_AssetInForeignPackageKeepsAbsoluteForm(t *testing.T) {
	// Different top-level packages cannot be relativized.
	resolver := NewReferenceResolver(models.MustParseLocation("asset:projA/test/a/b.dart"))

	ref := resolver.Resolve("Thing", models.MustParseLocation("asset:projB/test/c/d.dart"))

	assert.Equal(t, "asset:projB/test/c/d.dart", ref.Import)
}

func TestResolve_AssetWithoutGeneratingUnitUsesLogicalForm(t *testing.T) {
	resolver := NewReferenceResolver(nil)

	ref := resolver.Resolve("Backend", models.MustParseLocation("asset:projA/lib/c/d.dart"))

	assert.Equal(t, "projA:c/d.dart", ref.Import)
}

func TestResolveSymbol(t *testing.T) {
	resolver := NewReferenceResolver(nil)

	ref := resolver.ResolveSymbol(models.Symbol{
		Name:     "HeroService",
		Location: models.MustParseLocation("hero_app:services.dart"),
	})

	assert.Equal(t, "HeroService", ref.Symbol)
	assert.Equal(t, "hero_app:services.dart", ref.Import)
}
