package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chalin/angular2/internal/models"
)

func finishGoInjector(t *testing.T) string {
	t.Helper()
	backend := NewGoBackend(GoConfig{
		Package: "injectors",
		Module:  "example.com/hero",
	})

	fooRef := models.Reference{Symbol: "FooToken", Import: "hero_app:tokens.dart"}
	backend.VisitMeta("_Injector$App", "App$Injector")
	backend.VisitProvideValue(0, fooToken(), models.Ref{Reference: fooRef}, models.Reference{}, models.IntLit{Value: 42}, false)
	backend.VisitProvideValue(1, nil, models.Ref{Reference: injectorRef()}, injectorRef(), models.SelfRef{}, false)

	file, err := backend.Finish()
	require.NoError(t, err)
	assert.Equal(t, "app_injector.gen.go", file.Name)
	return file.Content
}

func TestGoBackend_ContractNamesBecomeLegalIdentifiers(t *testing.T) {
	content := finishGoInjector(t)

	assert.Contains(t, content, "type _Injector_App struct")
	assert.Contains(t, content, "func App_Injector(parent")
	assert.NotContains(t, content, "$")
}

func TestGoBackend_EmbedsRuntimeInjector(t *testing.T) {
	content := finishGoInjector(t)

	assert.Contains(t, content, DefaultRuntimeImport)
	assert.Contains(t, content, "InjectFromSelfOptional(token any, orElse any) any")
	assert.Contains(t, content, "return orElse")
}

func TestGoBackend_ImportsResolveUnderModule(t *testing.T) {
	content := finishGoInjector(t)

	// Logical unit "hero_app:tokens.dart" maps to a package directory under
	// the configured module, with the source extension dropped.
	assert.Contains(t, content, `"example.com/hero/hero_app/tokens"`)
	assert.Contains(t, content, "provideFoo0")
}

func TestGoBackend_LookupCallsUseExportedMethods(t *testing.T) {
	backend := NewGoBackend(GoConfig{Package: "injectors", Module: "example.com/hero"})
	backend.VisitMeta("_Injector$App", "App$Injector")
	backend.VisitProvideClass(0, fooToken(), fooTokenExpr(),
		models.Reference{Symbol: "HeroService", Import: "hero_app:services.dart"},
		"",
		[]models.Expression{models.LookupCall{
			Op:   models.LookupFromAncestryOptional,
			Args: []models.Expression{fooTokenExpr(), models.Null{}},
		}},
		false)

	file, err := backend.Finish()
	require.NoError(t, err)
	assert.Contains(t, file.Content, "NewHeroService(inj.InjectFromAncestryOptional(")
}

func TestGoBackend_FinishWithoutMetaFails(t *testing.T) {
	_, err := NewGoBackend(GoConfig{}).Finish()
	require.Error(t, err)
}

func TestGoName(t *testing.T) {
	assert.Equal(t, "_Injector_App", goName("_Injector$App"))
	assert.Equal(t, "App_Injector", goName("App$Injector"))
	assert.Equal(t, "Plain", goName("Plain"))
}
