package compiler

// Generated-name conventions. Downstream tooling locates generated injectors
// by these exact forms; do not change them casually.
const (
	classNamePrefix   = "_Injector$"
	factoryNameSuffix = "$Injector"
)

// ClassName derives the generated injector class name from a declaration
// name.
func ClassName(declarationName string) string {
	return classNamePrefix + declarationName
}

// FactoryName derives the generated factory function name from a declaration
// name.
func FactoryName(declarationName string) string {
	return declarationName + factoryNameSuffix
}
