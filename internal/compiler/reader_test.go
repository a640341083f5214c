package compiler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chalin/angular2/internal/errors"
	"github.com/chalin/angular2/internal/models"
	"github.com/chalin/angular2/internal/semantic"
)

// recordedEvent is one visitor call captured by the recording visitor.
type recordedEvent struct {
	Kind      string
	Index     int
	Token     models.Token
	TokenExpr models.Expression
	Value     models.Expression
	Multi     bool
}

// recordingVisitor captures the emission event sequence for assertions.
type recordingVisitor struct {
	className   string
	factoryName string
	metaCalls   int
	events      []recordedEvent
}

func (v *recordingVisitor) VisitMeta(className, factoryName string) {
	v.metaCalls++
	v.className = className
	v.factoryName = factoryName
}

func (v *recordingVisitor) VisitProvideClass(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, constructorName string, deps []models.Expression, multi bool) {
	v.events = append(v.events, recordedEvent{Kind: "class", Index: index, Token: token, TokenExpr: tokenExpr, Multi: multi})
}

func (v *recordingVisitor) VisitProvideExisting(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, redirect models.Expression, multi bool) {
	v.events = append(v.events, recordedEvent{Kind: "existing", Index: index, Token: token, TokenExpr: tokenExpr, Multi: multi})
}

func (v *recordingVisitor) VisitProvideFactory(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, factory models.Reference, deps []models.Expression, multi bool) {
	v.events = append(v.events, recordedEvent{Kind: "factory", Index: index, Token: token, TokenExpr: tokenExpr, Multi: multi})
}

func (v *recordingVisitor) VisitProvideValue(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, value models.Expression, multi bool) {
	v.events = append(v.events, recordedEvent{Kind: "value", Index: index, Token: token, TokenExpr: tokenExpr, Value: value, Multi: multi})
}

func testModel() *semantic.Model {
	appLoc := models.MustParseLocation("hero_app:services.dart")
	return semantic.NewModel().
		AddType("Foo", semantic.TypeInfo{Symbol: "Foo", Location: appLoc}).
		AddType("HeroService", semantic.TypeInfo{Symbol: "HeroService", Location: appLoc}).
		AddType("Backend", semantic.TypeInfo{Symbol: "Backend", Location: appLoc}).
		AddConstant("theAnswer", semantic.IntValue{Value: 42}).
		AddFactory("createBackend", semantic.FactoryInfo{Symbol: "createBackend", Location: appLoc}).
		AddNullFactory("brokenFactory")
}

func newTestReader(name, payload string) *InjectorReader {
	decl := &models.InjectorDeclaration{
		Name:    name,
		Origin:  "test",
		Payload: payload,
	}
	return NewInjectorReader(decl, testModel(), nil)
}

func TestAccept_SingleValueProviderSequence(t *testing.T) {
	reader := newTestReader("App", `module App {
		providers [ValueProvider(Foo, useValue: theAnswer)]
	}`)
	visitor := &recordingVisitor{}

	require.NoError(t, reader.Accept(visitor))

	assert.Equal(t, 1, visitor.metaCalls)
	require.Len(t, visitor.events, 2)

	first := visitor.events[0]
	assert.Equal(t, "value", first.Kind)
	assert.Equal(t, 0, first.Index)
	require.NotNil(t, first.Token)
	assert.Equal(t, models.IntLit{Value: 42}, first.Value)
	assert.False(t, first.Multi)

	// The implicit self-binding closes the sequence with a nil token.
	self := visitor.events[1]
	assert.Equal(t, "value", self.Kind)
	assert.Equal(t, 1, self.Index)
	assert.Nil(t, self.Token)
	assert.Equal(t, models.SelfRef{}, self.Value)
	assert.False(t, self.Multi)
}

func TestAccept_NamingContract(t *testing.T) {
	reader := newTestReader("App", `module App {
		providers [ValueProvider(Foo, useValue: theAnswer)]
	}`)
	visitor := &recordingVisitor{}

	require.NoError(t, reader.Accept(visitor))

	assert.Equal(t, "_Injector$App", visitor.className)
	assert.Equal(t, "App$Injector", visitor.factoryName)
}

func TestAccept_IndicesAreContiguous(t *testing.T) {
	reader := newTestReader("App", `module App {
		providers [
			ClassProvider(HeroService, deps: [Backend]),
			FactoryProvider(Backend, useFactory: createBackend),
			ExistingProvider(Foo, useExisting: Backend),
			ValueProvider(Backend, useValue: theAnswer, multi: true),
		]
	}`)
	visitor := &recordingVisitor{}

	require.NoError(t, reader.Accept(visitor))

	require.Len(t, visitor.events, 5)
	kinds := make([]string, 0, len(visitor.events))
	for i, event := range visitor.events {
		assert.Equal(t, i, event.Index)
		kinds = append(kinds, event.Kind)
	}
	assert.Equal(t, []string{"class", "factory", "existing", "value", "value"}, kinds)
}

func TestAccept_FlattensAndDeduplicatesIncludes(t *testing.T) {
	// The included module's Backend binding is overridden by the outer one,
	// which keeps the first occurrence's position.
	reader := newTestReader("App", `module App {
		include module Common {
			providers [
				FactoryProvider(Backend, useFactory: createBackend),
				ValueProvider(Foo, useValue: theAnswer),
			]
		}
		providers [ClassProvider(Backend)]
	}`)
	visitor := &recordingVisitor{}

	require.NoError(t, reader.Accept(visitor))

	require.Len(t, visitor.events, 3)
	assert.Equal(t, "class", visitor.events[0].Kind)
	assert.Equal(t, "value", visitor.events[1].Kind)
	assert.Nil(t, visitor.events[2].Token)
}

func TestProviders_ResolutionIsMemoized(t *testing.T) {
	reader := newTestReader("App", `module App {
		providers [ValueProvider(Foo, useValue: theAnswer)]
	}`)

	first, err := reader.Providers()
	require.NoError(t, err)
	second, err := reader.Providers()
	require.NoError(t, err)

	require.Len(t, first, 1)
	assert.Same(t, first[0], second[0])
}

func TestProviders_FailureIsMemoized(t *testing.T) {
	reader := newTestReader("App", `module App {
		providers [ValueProvider(Foo, useValue: missing)]
	}`)

	_, firstErr := reader.Providers()
	_, secondErr := reader.Providers()

	require.Error(t, firstErr)
	assert.Equal(t, firstErr, secondErr)
}

func TestAccept_EmptyPayloadIsParseError(t *testing.T) {
	reader := newTestReader("App", "   ")
	visitor := &recordingVisitor{}

	err := reader.Accept(visitor)

	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Zero(t, visitor.metaCalls)
}

func TestAccept_UnresolvedTokenBecomesParseError(t *testing.T) {
	reader := newTestReader("App", `module App {
		providers [ValueProvider(Foo, useValue: missing)]
	}`)

	err := reader.Accept(&recordingVisitor{})

	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "missing")
}

func TestAccept_NullFactoryBecomesFactoryProviderError(t *testing.T) {
	reader := newTestReader("App", `module App {
		providers [FactoryProvider(Backend, useFactory: brokenFactory)]
	}`)

	err := reader.Accept(&recordingVisitor{})

	var factoryErr *errors.FactoryProviderError
	require.ErrorAs(t, err, &factoryErr)
}

func TestAccept_FatalErrorAbortsWithoutPartialEmission(t *testing.T) {
	reader := newTestReader("App", `module App {
		providers [ValueProvider(Foo, useValue: missing)]
	}`)
	visitor := &recordingVisitor{}

	require.Error(t, reader.Accept(visitor))

	assert.Empty(t, visitor.events)
}

func TestNames(t *testing.T) {
	tests := []struct {
		declaration string
		class       string
		factory     string
	}{
		{"App", "_Injector$App", "App$Injector"},
		{"HeroModule", "_Injector$HeroModule", "HeroModule$Injector"},
	}

	for _, tt := range tests {
		t.Run(tt.declaration, func(t *testing.T) {
			assert.Equal(t, tt.class, ClassName(tt.declaration))
			assert.Equal(t, tt.factory, FactoryName(tt.declaration))
		})
	}
}

func TestAccept_SelfBindingResolvesRuntimeInjector(t *testing.T) {
	reader := newTestReader("App", `module App {
		providers [ValueProvider(Foo, useValue: theAnswer)]
	}`)
	visitor := &recordingVisitor{}

	require.NoError(t, reader.Accept(visitor))

	self := visitor.events[len(visitor.events)-1]
	ref, ok := self.TokenExpr.(models.Ref)
	require.True(t, ok, fmt.Sprintf("unexpected token expression %T", self.TokenExpr))
	assert.Equal(t, "Injector", ref.Symbol)
	assert.Equal(t, "angular2:src/di/injector", ref.Import)
}
