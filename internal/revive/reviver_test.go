package revive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chalin/angular2/internal/errors"
	"github.com/chalin/angular2/internal/models"
	"github.com/chalin/angular2/internal/resolve"
	"github.com/chalin/angular2/internal/semantic"
)

func newTestReviver() *ConstantReviver {
	return NewConstantReviver(resolve.NewReferenceResolver(nil))
}

func TestRevive_Literals(t *testing.T) {
	tests := []struct {
		name  string
		value semantic.Value
		want  models.Expression
	}{
		{"null", semantic.NullValue{}, models.Null{}},
		{"bool", semantic.BoolValue{Value: true}, models.BoolLit{Value: true}},
		{"int", semantic.IntValue{Value: 42}, models.IntLit{Value: 42}},
		{"float", semantic.FloatValue{Value: 1.5}, models.FloatLit{Value: 1.5}},
	}

	reviver := newTestReviver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := reviver.Revive(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr)
		})
	}
}

func TestRevive_StringPreservesQuotes(t *testing.T) {
	reviver := newTestReviver()

	expr, err := reviver.Revive(semantic.StringValue{Value: "it's"})

	require.NoError(t, err)
	assert.Equal(t, models.StringLit{Value: "it's"}, expr)
}

func TestRevive_NestedListAndMap(t *testing.T) {
	reviver := newTestReviver()

	expr, err := reviver.Revive(semantic.ListValue{Elements: []semantic.Value{
		semantic.IntValue{Value: 1},
		semantic.MapValue{Entries: []semantic.MapEntry{
			{Key: semantic.StringValue{Value: "k"}, Value: semantic.BoolValue{Value: false}},
		}},
	}})

	require.NoError(t, err)
	list, ok := expr.(models.ListLit)
	require.True(t, ok)
	require.Len(t, list.Elements, 2)
	assert.Equal(t, models.IntLit{Value: 1}, list.Elements[0])

	m, ok := list.Elements[1].(models.MapLit)
	require.True(t, ok)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, models.StringLit{Value: "k"}, m.Entries[0].Key)
	assert.Equal(t, models.BoolLit{Value: false}, m.Entries[0].Value)
}

func TestRevive_ConstructorInvocation(t *testing.T) {
	reviver := newTestReviver()

	expr, err := reviver.Revive(semantic.RevivableValue{
		Symbol:   "Duration",
		Location: models.MustParseLocation("dart:core"),
		Constructor: &semantic.ConstructorInvocation{
			Named: []semantic.NamedValue{
				{Name: "seconds", Value: semantic.IntValue{Value: 5}},
			},
		},
	})

	require.NoError(t, err)
	invoke, ok := expr.(models.Invoke)
	require.True(t, ok)
	assert.Equal(t, "Duration", invoke.Target.Symbol)
	assert.Empty(t, invoke.Constructor)
	require.Len(t, invoke.Named, 1)
	assert.Equal(t, "seconds", invoke.Named[0].Name)
	assert.Equal(t, models.IntLit{Value: 5}, invoke.Named[0].Value)
}

func TestRevive_FieldReference(t *testing.T) {
	reviver := newTestReviver()

	expr, err := reviver.Revive(semantic.RevivableValue{
		Symbol:   "defaultConfig",
		Location: models.MustParseLocation("app:config.dart"),
	})

	require.NoError(t, err)
	ref, ok := expr.(models.Ref)
	require.True(t, ok)
	assert.Equal(t, models.Reference{Symbol: "defaultConfig", Import: "app:config.dart"}, ref.Reference)
}

func TestRevive_PrivateSymbolWithAliasUsesAlias(t *testing.T) {
	reviver := newTestReviver()

	expr, err := reviver.Revive(semantic.RevivableValue{
		Symbol:      "_hidden",
		Private:     true,
		PublicAlias: "visibleAlias",
		Location:    models.MustParseLocation("app:config.dart"),
	})

	require.NoError(t, err)
	ref := expr.(models.Ref)
	assert.Equal(t, "visibleAlias", ref.Symbol)
}

func TestRevive_PrivateSymbolWithoutAliasFails(t *testing.T) {
	reviver := newTestReviver()

	_, err := reviver.Revive(semantic.RevivableValue{
		Symbol:   "_hidden",
		Private:  true,
		Location: models.MustParseLocation("app:config.dart"),
	})

	require.Error(t, err)
	var accessErr *errors.AccessibilityError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, "_hidden", accessErr.Accessor)
	assert.Equal(t, "app:config.dart", accessErr.Context()["defining_unit"])
	assert.NotEmpty(t, accessErr.Suggestions())
}

func TestRevive_PrivateConstructorArgumentFails(t *testing.T) {
	// The accessibility check applies recursively to constructor arguments.
	reviver := newTestReviver()

	_, err := reviver.Revive(semantic.RevivableValue{
		Symbol: "Wrapper",
		Constructor: &semantic.ConstructorInvocation{
			Positional: []semantic.Value{
				semantic.RevivableValue{Symbol: "_inner", Private: true},
			},
		},
	})

	var accessErr *errors.AccessibilityError
	require.ErrorAs(t, err, &accessErr)
}

func TestRevive_UnsupportedShapeFails(t *testing.T) {
	reviver := newTestReviver()

	_, err := reviver.Revive(semantic.OpaqueValue{Description: "closure"})

	var revivalErr *errors.RevivalError
	require.ErrorAs(t, err, &revivalErr)
	assert.Equal(t, "closure", revivalErr.Shape)
}
