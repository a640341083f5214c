package models

// Reference names a symbol together with the import needed to reach it from
// the generated unit. An empty Import denotes a universally-available symbol
// that needs no import. Import is either a stable logical form
// ("pkg:path/under/lib"), a relative path ("../other/unit"), or a full asset
// URL when the target cannot be relativized.
type Reference struct {
	Symbol string
	Import string
}

// Expression is a backend-agnostic code expression. The compiler core only
// ever builds expressions; rendering them as source text is a backend
// concern. The variant set is closed: revived constants, token identity
// expressions and dependency lookup calls all share this one tree.
type Expression interface {
	isExpression()
}

// Null is the null literal.
type Null struct{}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Value float64
}

// StringLit is a string literal. Backends must render the value as a raw
// literal so embedded quotes and escape sequences survive re-emission.
type StringLit struct {
	Value string
}

// ListLit is an ordered list of expressions.
type ListLit struct {
	Elements []Expression
}

// MapEntry is one key/value pair of a MapLit.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// MapLit is an ordered map literal.
type MapLit struct {
	Entries []MapEntry
}

// Ref is a bare reference to a symbol (a field or top-level declaration).
type Ref struct {
	Reference
}

// NamedArg is a named constructor argument.
type NamedArg struct {
	Name  string
	Value Expression
}

// Invoke is a constructor invocation on a referenced type. An empty
// Constructor selects the unnamed constructor.
type Invoke struct {
	Target      Reference
	Constructor string
	Positional  []Expression
	Named       []NamedArg
}

// SelfRef is the generated injector's reference to itself.
type SelfRef struct{}

// LookupCall is an invocation of one of the target runtime's injector lookup
// operations. The first argument is always the token identity expression;
// optional variants carry a trailing Null default sentinel.
type LookupCall struct {
	Op   LookupOp
	Args []Expression
}

func (Null) isExpression()       {}
func (BoolLit) isExpression()    {}
func (IntLit) isExpression()     {}
func (FloatLit) isExpression()   {}
func (StringLit) isExpression()  {}
func (ListLit) isExpression()    {}
func (MapLit) isExpression()     {}
func (Ref) isExpression()        {}
func (Invoke) isExpression()     {}
func (SelfRef) isExpression()    {}
func (LookupCall) isExpression() {}

// LookupOp enumerates the runtime lookup operations a dependency can resolve
// to. The names mirror the target runtime API and are referenced, never
// interpreted, by this compiler.
type LookupOp int

const (
	LookupInject LookupOp = iota
	LookupInjectOptional
	LookupFromSelf
	LookupFromSelfOptional
	LookupFromAncestry
	LookupFromAncestryOptional
	LookupFromParent
	LookupFromParentOptional
)

// String returns the runtime method name for the operation.
func (op LookupOp) String() string {
	switch op {
	case LookupInject:
		return "inject"
	case LookupInjectOptional:
		return "injectOptional"
	case LookupFromSelf:
		return "injectFromSelf"
	case LookupFromSelfOptional:
		return "injectFromSelfOptional"
	case LookupFromAncestry:
		return "injectFromAncestry"
	case LookupFromAncestryOptional:
		return "injectFromAncestryOptional"
	case LookupFromParent:
		return "injectFromParent"
	case LookupFromParentOptional:
		return "injectFromParentOptional"
	default:
		return "unknown"
	}
}
