// Package revive reconstructs compile-time constant values as equivalent
// constructible code expressions.
package revive

import (
	"github.com/chalin/angular2/internal/errors"
	"github.com/chalin/angular2/internal/models"
	"github.com/chalin/angular2/internal/resolve"
	"github.com/chalin/angular2/internal/semantic"
)

// ConstantReviver recursively rebuilds a classified constant value as an
// expression the generated unit can evaluate. Revival enforces that only
// accessible symbols are referenced: a private symbol with no public alias is
// a fatal AccessibilityError, never a silently broken reference.
type ConstantReviver struct {
	refs *resolve.ReferenceResolver
}

// NewConstantReviver creates a reviver bound to a reference resolver.
func NewConstantReviver(refs *resolve.ReferenceResolver) *ConstantReviver {
	return &ConstantReviver{refs: refs}
}

// Revive classifies value and produces the equivalent expression.
func (r *ConstantReviver) Revive(value models.ConstantValue) (models.Expression, error) {
	switch value := value.(type) {
	case semantic.NullValue:
		return models.Null{}, nil
	case semantic.BoolValue:
		return models.BoolLit{Value: value.Value}, nil
	case semantic.IntValue:
		return models.IntLit{Value: value.Value}, nil
	case semantic.FloatValue:
		return models.FloatLit{Value: value.Value}, nil
	case semantic.StringValue:
		// Rendered raw by every backend so embedded quotes and escapes
		// survive re-emission as source text.
		return models.StringLit{Value: value.Value}, nil
	case semantic.ListValue:
		return r.reviveList(value)
	case semantic.MapValue:
		return r.reviveMap(value)
	case semantic.RevivableValue:
		return r.reviveRevivable(value)
	default:
		return nil, errors.NewRevivalError(shapeOf(value))
	}
}

func (r *ConstantReviver) reviveList(value semantic.ListValue) (models.Expression, error) {
	elements := make([]models.Expression, 0, len(value.Elements))
	for _, el := range value.Elements {
		expr, err := r.Revive(el)
		if err != nil {
			return nil, err
		}
		elements = append(elements, expr)
	}
	return models.ListLit{Elements: elements}, nil
}

func (r *ConstantReviver) reviveMap(value semantic.MapValue) (models.Expression, error) {
	entries := make([]models.MapEntry, 0, len(value.Entries))
	for _, entry := range value.Entries {
		key, err := r.Revive(entry.Key)
		if err != nil {
			return nil, err
		}
		val, err := r.Revive(entry.Value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.MapEntry{Key: key, Value: val})
	}
	return models.MapLit{Entries: entries}, nil
}

func (r *ConstantReviver) reviveRevivable(value semantic.RevivableValue) (models.Expression, error) {
	// The accessibility check runs before any invocation node is built.
	accessor := value.Symbol
	if value.Private {
		if value.PublicAlias == "" {
			err := errors.NewAccessibilityError(accessor)
			if value.Location != nil {
				err.WithContext("defining_unit", value.Location.String())
			}
			return nil, err
		}
		accessor = value.PublicAlias
	}

	ref := r.refs.Resolve(accessor, value.Location)

	if ctor := value.Constructor; ctor != nil {
		invoke := models.Invoke{Target: ref, Constructor: ctor.Name}
		for _, arg := range ctor.Positional {
			expr, err := r.Revive(arg)
			if err != nil {
				return nil, err
			}
			invoke.Positional = append(invoke.Positional, expr)
		}
		for _, arg := range ctor.Named {
			expr, err := r.Revive(arg.Value)
			if err != nil {
				return nil, err
			}
			invoke.Named = append(invoke.Named, models.NamedArg{Name: arg.Name, Value: expr})
		}
		return invoke, nil
	}

	return models.Ref{Reference: ref}, nil
}

func shapeOf(value models.ConstantValue) string {
	if opaque, ok := value.(semantic.OpaqueValue); ok && opaque.Description != "" {
		return opaque.Description
	}
	if value == nil {
		return "absent"
	}
	return value.ConstantKind()
}
