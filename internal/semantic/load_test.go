package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeModel(t *testing.T) {
	model, err := DecodeModel([]byte(`
types:
  HeroService:
    location: "hero_app:services.dart"
  Backend:
    symbol: BackendImpl
    location: "hero_app:backend.dart"
constants:
  timeout:
    kind: int
    int: 30
  greeting:
    kind: string
    string: "it's"
  defaults:
    kind: list
    elements:
      - kind: bool
        bool: true
      - kind: revivable
        symbol: Duration
        location: "dart:core"
        constructor:
          named:
            - name: seconds
              value:
                kind: int
                int: 5
factories:
  createBackend:
    location: "hero_app:backend.dart"
  brokenFactory:
    "null": true
`))
	require.NoError(t, err)

	hero, ok := model.Type("HeroService")
	require.True(t, ok)
	assert.Equal(t, "HeroService", hero.Symbol)
	assert.Equal(t, "hero_app:services.dart", hero.Location.String())

	// An explicit symbol overrides the map key.
	backend, ok := model.Type("Backend")
	require.True(t, ok)
	assert.Equal(t, "BackendImpl", backend.Symbol)

	timeout, ok := model.Constant("timeout")
	require.True(t, ok)
	assert.Equal(t, IntValue{Value: 30}, timeout)

	greeting, ok := model.Constant("greeting")
	require.True(t, ok)
	assert.Equal(t, StringValue{Value: "it's"}, greeting)

	defaults, ok := model.Constant("defaults")
	require.True(t, ok)
	list, ok := defaults.(ListValue)
	require.True(t, ok)
	require.Len(t, list.Elements, 2)
	revivable, ok := list.Elements[1].(RevivableValue)
	require.True(t, ok)
	assert.Equal(t, "Duration", revivable.Symbol)
	require.NotNil(t, revivable.Constructor)
	require.Len(t, revivable.Constructor.Named, 1)
	assert.Equal(t, "seconds", revivable.Constructor.Named[0].Name)

	factory, defined := model.Factory("createBackend")
	require.True(t, defined)
	require.NotNil(t, factory)
	assert.Equal(t, "createBackend", factory.Symbol)

	// A null entry is defined but carries no callable.
	broken, defined := model.Factory("brokenFactory")
	require.True(t, defined)
	assert.Nil(t, broken)

	_, defined = model.Factory("unknown")
	assert.False(t, defined)
}

func TestDecodeModel_UnknownKind(t *testing.T) {
	_, err := DecodeModel([]byte(`
constants:
  bad:
    kind: closure
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown constant kind")
}

func TestDecodeModel_InvalidLocation(t *testing.T) {
	_, err := DecodeModel([]byte(`
types:
  Broken:
    location: "no-scheme"
`))
	require.Error(t, err)
}
