package generator

import (
	"fmt"
	"path"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/chalin/angular2/internal/errors"
	"github.com/chalin/angular2/internal/models"
	"github.com/chalin/angular2/internal/utils"
)

// DefaultRuntimeImport is the injector runtime package generated Go code
// links against when the configuration does not name one.
const DefaultRuntimeImport = "github.com/chalin/angular2/di"

// GoConfig configures the Go backend.
type GoConfig struct {
	// Package is the package name of the generated file.
	Package string
	// Module is the module path logical imports are resolved under.
	Module string
	// RuntimeImport is the injector runtime package. Empty selects
	// DefaultRuntimeImport.
	RuntimeImport string
}

// GoBackend renders the event sequence as a Go source file using jennifer.
// The contract names carry '$', which is not a legal Go identifier character,
// so both derived names are mapped through goName ('$' becomes '_').
type GoBackend struct {
	config      GoConfig
	className   string
	factoryName string
	bindings    []goBinding
}

type goBinding struct {
	Method string
	Token  jen.Code
	Create jen.Code
	Multi  bool
}

// NewGoBackend creates a single-use Go backend.
func NewGoBackend(config GoConfig) *GoBackend {
	if config.RuntimeImport == "" {
		config.RuntimeImport = DefaultRuntimeImport
	}
	if config.Package == "" {
		config.Package = "injectors"
	}
	return &GoBackend{config: config}
}

// VisitMeta implements compiler.InjectorVisitor
func (b *GoBackend) VisitMeta(className, factoryName string) {
	b.className = goName(className)
	b.factoryName = goName(factoryName)
}

// VisitProvideClass implements compiler.InjectorVisitor
func (b *GoBackend) VisitProvideClass(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, constructorName string, deps []models.Expression, multi bool) {
	target := resultType
	if constructorName != "" {
		target.Symbol = constructorName
	} else {
		target.Symbol = "New" + inflect.Camelize(resultType.Symbol)
	}
	create := jen.Add(b.ref(target)).Call(b.exprs(deps)...)
	b.add(index, token, tokenExpr, create, multi)
}

// VisitProvideExisting implements compiler.InjectorVisitor
func (b *GoBackend) VisitProvideExisting(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, redirect models.Expression, multi bool) {
	create := jen.Id("inj").Dot("Inject").Call(b.expr(redirect))
	b.add(index, token, tokenExpr, create, multi)
}

// VisitProvideFactory implements compiler.InjectorVisitor
func (b *GoBackend) VisitProvideFactory(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, factory models.Reference, deps []models.Expression, multi bool) {
	create := jen.Add(b.ref(factory)).Call(b.exprs(deps)...)
	b.add(index, token, tokenExpr, create, multi)
}

// VisitProvideValue implements compiler.InjectorVisitor
func (b *GoBackend) VisitProvideValue(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, value models.Expression, multi bool) {
	b.add(index, token, tokenExpr, b.expr(value), multi)
}

func (b *GoBackend) add(index int, token models.Token, tokenExpr models.Expression, create jen.Code, multi bool) {
	b.bindings = append(b.bindings, goBinding{
		Method: b.methodName(index, token),
		Token:  b.expr(tokenExpr),
		Create: create,
		Multi:  multi,
	})
}

// methodName derives the provision method for one binding. The index keeps
// methods unique when the same token is bound more than once.
func (b *GoBackend) methodName(index int, token models.Token) string {
	name := "Self"
	if token != nil {
		name = inflect.Camelize(goName(tokenHint(token)))
	}
	return fmt.Sprintf("provide%s%d", name, index)
}

func tokenHint(token models.Token) string {
	switch token := token.(type) {
	case *models.TypeToken:
		return token.Symbol
	case *models.OpaqueToken:
		if token.Identifier != "" {
			return token.Identifier
		}
		return token.ClassRef.Name
	default:
		return "Token"
	}
}

// Finish implements Backend
func (b *GoBackend) Finish() (*GeneratedFile, error) {
	if b.className == "" {
		return nil, errors.WrapGenerateError("go injector", fmt.Errorf("no meta event received"))
	}

	runtime := b.config.RuntimeImport
	f := jen.NewFile(b.config.Package)
	f.HeaderComment("Code generated by injectorgen. DO NOT EDIT.")

	f.Type().Id(b.className).Struct(
		jen.Qual(runtime, "Injector"),
	)

	for _, binding := range b.bindings {
		f.Func().Params(jen.Id("inj").Op("*").Id(b.className)).
			Id(binding.Method).Params().Any().Block(
			jen.Return(binding.Create),
		)
		f.Line()
	}

	f.Comment("InjectFromSelfOptional resolves a token against this injector's own")
	f.Comment("bindings, returning orElse when the token is not bound here.")
	f.Func().Params(jen.Id("inj").Op("*").Id(b.className)).
		Id("InjectFromSelfOptional").
		Params(jen.Id("token").Any(), jen.Id("orElse").Any()).Any().
		Block(b.dispatchBody()...)

	f.Func().Id(b.factoryName).
		Params(jen.Id("parent").Qual(runtime, "Injector")).
		Op("*").Id(b.className).
		Block(
			jen.Return(jen.Op("&").Id(b.className).Values(
				jen.Id("Injector").Op(":").Id("parent"),
			)),
		)

	name := strings.TrimSuffix(b.factoryName, "_Injector")
	filename := strings.ToLower(inflect.Underscore(name)) + "_injector.gen.go"

	content, err := utils.FormatGoCodeString(filename, f.GoString())
	if err != nil {
		return nil, errors.WrapGenerateError("go injector", err)
	}
	return &GeneratedFile{Name: filename, Content: content}, nil
}

func (b *GoBackend) dispatchBody() []jen.Code {
	body := make([]jen.Code, 0, len(b.bindings)+1)
	seen := make(map[string][]int)
	order := make([]string, 0, len(b.bindings))

	for i, binding := range b.bindings {
		key := fmt.Sprintf("%#v", binding.Token)
		if binding.Multi {
			if _, ok := seen[key]; !ok {
				order = append(order, key)
			}
			seen[key] = append(seen[key], i)
			continue
		}
		order = append(order, key)
		seen[key] = []int{i}
	}

	consumed := make(map[string]bool)
	for _, key := range order {
		if consumed[key] {
			continue
		}
		consumed[key] = true
		group := seen[key]
		first := b.bindings[group[0]]

		var result jen.Code
		if first.Multi {
			calls := make([]jen.Code, 0, len(group))
			for _, at := range group {
				calls = append(calls, jen.Id("inj").Dot(b.bindings[at].Method).Call())
			}
			result = jen.Index().Any().Values(calls...)
		} else {
			result = jen.Id("inj").Dot(first.Method).Call()
		}

		body = append(body, jen.If(jen.Id("token").Op("==").Add(first.Token)).Block(
			jen.Return(result),
		))
	}

	body = append(body, jen.Return(jen.Id("orElse")))
	return body
}

func (b *GoBackend) exprs(exprs []models.Expression) []jen.Code {
	codes := make([]jen.Code, 0, len(exprs))
	for _, expr := range exprs {
		codes = append(codes, b.expr(expr))
	}
	return codes
}

func (b *GoBackend) expr(expr models.Expression) jen.Code {
	switch expr := expr.(type) {
	case nil:
		return jen.Nil()
	case models.Null:
		return jen.Nil()
	case models.BoolLit:
		return jen.Lit(expr.Value)
	case models.IntLit:
		return jen.Lit(int(expr.Value))
	case models.FloatLit:
		return jen.Lit(expr.Value)
	case models.StringLit:
		return jen.Lit(expr.Value)
	case models.ListLit:
		return jen.Index().Any().Values(b.exprs(expr.Elements)...)
	case models.MapLit:
		entries := make([]jen.Code, 0, len(expr.Entries))
		for _, entry := range expr.Entries {
			entries = append(entries, jen.Add(b.expr(entry.Key)).Op(":").Add(b.expr(entry.Value)))
		}
		return jen.Map(jen.Any()).Any().Values(entries...)
	case models.Ref:
		return b.ref(expr.Reference)
	case models.Invoke:
		target := expr.Target
		if expr.Constructor != "" {
			target.Symbol = expr.Constructor
		} else {
			target.Symbol = "New" + inflect.Camelize(expr.Target.Symbol)
		}
		args := b.exprs(expr.Positional)
		for _, named := range expr.Named {
			args = append(args, b.expr(named.Value))
		}
		return jen.Add(b.ref(target)).Call(args...)
	case models.SelfRef:
		return jen.Id("inj")
	case models.LookupCall:
		return jen.Id("inj").Dot(inflect.Camelize(expr.Op.String())).Call(b.exprs(expr.Args)...)
	default:
		panic("generator: unknown expression variant")
	}
}

// ref renders a resolved reference as a (possibly qualified) identifier.
func (b *GoBackend) ref(ref models.Reference) jen.Code {
	name := inflect.Camelize(goName(ref.Symbol))
	if ref.Import == "" {
		return jen.Id(name)
	}
	return jen.Qual(b.importPath(ref.Import), name)
}

// importPath maps a resolved import onto a Go import path under the
// configured module. The file extension of the source unit is dropped since
// Go imports address directories, not files.
func (b *GoBackend) importPath(imp string) string {
	imp = strings.TrimSuffix(imp, path.Ext(imp))

	if strings.HasPrefix(imp, "asset:") {
		return path.Join(b.config.Module, strings.TrimPrefix(imp, "asset:"))
	}
	if pkg, rest, ok := strings.Cut(imp, ":"); ok {
		return path.Join(b.config.Module, pkg, rest)
	}
	return path.Join(b.config.Module, imp)
}

// goName rewrites a contract name into a legal Go identifier.
func goName(name string) string {
	return strings.ReplaceAll(name, "$", "_")
}
