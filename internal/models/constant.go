package models

// ConstantValue is a classified compile-time constant read from the semantic
// model. The concrete variants live in internal/semantic; this interface only
// exists so providers can carry a value without this package depending on the
// semantic model.
type ConstantValue interface {
	ConstantKind() string
}
