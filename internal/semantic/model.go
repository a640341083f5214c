// Package semantic holds the immutable semantic model the compiler core
// reads: resolved symbol locations and classified constant values for every
// declaration the providers reference. The model is assumed to be fully
// validated by upstream static analysis; this package performs no analysis of
// its own.
package semantic

import "github.com/chalin/angular2/internal/models"

// Value is a classified compile-time constant. The variant set is closed;
// the reviver dispatches exhaustively over it and anything it does not
// recognize is an OpaqueValue.
type Value interface {
	models.ConstantValue
}

// NullValue is the null constant.
type NullValue struct{}

// BoolValue is a boolean constant.
type BoolValue struct {
	Value bool
}

// IntValue is an integer constant.
type IntValue struct {
	Value int64
}

// FloatValue is a floating-point constant.
type FloatValue struct {
	Value float64
}

// StringValue is a string constant.
type StringValue struct {
	Value string
}

// ListValue is an ordered list constant.
type ListValue struct {
	Elements []Value
}

// MapEntry is one key/value pair of a MapValue.
type MapEntry struct {
	Key   Value
	Value Value
}

// MapValue is an ordered map constant.
type MapValue struct {
	Entries []MapEntry
}

// NamedValue is a named constructor argument of a revivable constant.
type NamedValue struct {
	Name  string
	Value Value
}

// ConstructorInvocation describes the const constructor fragment of a
// revivable constant. An empty Name selects the unnamed constructor.
type ConstructorInvocation struct {
	Name       string
	Positional []Value
	Named      []NamedValue
}

// RevivableValue is a constant that refers to a const constructor invocation
// or a const field. Symbol is the accessor path as seen from the defining
// unit; when the symbol is private, PublicAlias carries an externally
// reachable alias if one exists.
type RevivableValue struct {
	Symbol      string
	Location    *models.Location
	Private     bool
	PublicAlias string
	Constructor *ConstructorInvocation // nil for a bare field reference
}

// OpaqueValue is a constant shape the model could classify but the reviver
// cannot reconstruct.
type OpaqueValue struct {
	Description string
}

func (NullValue) ConstantKind() string      { return "null" }
func (BoolValue) ConstantKind() string      { return "bool" }
func (IntValue) ConstantKind() string       { return "int" }
func (FloatValue) ConstantKind() string     { return "float" }
func (StringValue) ConstantKind() string    { return "string" }
func (ListValue) ConstantKind() string      { return "list" }
func (MapValue) ConstantKind() string       { return "map" }
func (RevivableValue) ConstantKind() string { return "revivable" }
func (OpaqueValue) ConstantKind() string    { return "opaque" }

// TypeInfo is a resolved type declaration.
type TypeInfo struct {
	Symbol   string
	Location *models.Location
}

// FactoryInfo is a resolved top-level factory function.
type FactoryInfo struct {
	Symbol   string
	Location *models.Location
}

// Model is the lookup surface over the semantic information. It is immutable
// once built.
type Model struct {
	types     map[string]TypeInfo
	constants map[string]Value
	factories map[string]*FactoryInfo // a present nil entry is an explicit null factory
}

// NewModel creates an empty semantic model.
func NewModel() *Model {
	return &Model{
		types:     make(map[string]TypeInfo),
		constants: make(map[string]Value),
		factories: make(map[string]*FactoryInfo),
	}
}

// AddType registers a resolved type declaration.
func (m *Model) AddType(name string, info TypeInfo) *Model {
	m.types[name] = info
	return m
}

// AddConstant registers a classified constant value.
func (m *Model) AddConstant(name string, value Value) *Model {
	m.constants[name] = value
	return m
}

// AddFactory registers a resolved factory function.
func (m *Model) AddFactory(name string, info FactoryInfo) *Model {
	m.factories[name] = &info
	return m
}

// AddNullFactory registers a name that statically resolved to an explicit
// null where a callable was expected.
func (m *Model) AddNullFactory(name string) *Model {
	m.factories[name] = nil
	return m
}

// Type looks up a resolved type by name.
func (m *Model) Type(name string) (TypeInfo, bool) {
	info, ok := m.types[name]
	return info, ok
}

// Constant looks up a classified constant by name.
func (m *Model) Constant(name string) (Value, bool) {
	v, ok := m.constants[name]
	return v, ok
}

// Factory looks up a factory by name. The second result reports whether the
// name is defined at all; a defined name may still map to a nil FactoryInfo,
// which is the explicit-null-factory condition.
func (m *Model) Factory(name string) (*FactoryInfo, bool) {
	info, ok := m.factories[name]
	return info, ok
}
