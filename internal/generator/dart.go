package generator

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/chalin/angular2/internal/errors"
	"github.com/chalin/angular2/internal/models"
)

// DartBackend renders the event sequence as a Dart injector class plus
// factory function. The contract names are used verbatim; '$' is legal in the
// target language.
type DartBackend struct {
	className   string
	factoryName string
	imports     *dartImports
	bindings    []dartBinding
}

type dartBinding struct {
	Index  int
	Token  string // rendered token identity expression; "" for the self-binding
	Create string // rendered creation expression
	Multi  bool
}

// NewDartBackend creates a single-use Dart backend.
func NewDartBackend() *DartBackend {
	return &DartBackend{imports: newDartImports()}
}

// VisitMeta implements compiler.InjectorVisitor
func (b *DartBackend) VisitMeta(className, factoryName string) {
	b.className = className
	b.factoryName = factoryName
}

// VisitProvideClass implements compiler.InjectorVisitor
func (b *DartBackend) VisitProvideClass(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, constructorName string, deps []models.Expression, multi bool) {
	create := models.Invoke{Target: resultType, Constructor: constructorName}
	create.Positional = append(create.Positional, deps...)
	b.add(index, token, tokenExpr, create, multi)
}

// VisitProvideExisting implements compiler.InjectorVisitor
func (b *DartBackend) VisitProvideExisting(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, redirect models.Expression, multi bool) {
	create := models.LookupCall{Op: models.LookupInject, Args: []models.Expression{redirect}}
	b.add(index, token, tokenExpr, create, multi)
}

// VisitProvideFactory implements compiler.InjectorVisitor
func (b *DartBackend) VisitProvideFactory(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, factory models.Reference, deps []models.Expression, multi bool) {
	create := models.Invoke{Target: factory}
	create.Positional = append(create.Positional, deps...)
	b.add(index, token, tokenExpr, create, multi)
}

// VisitProvideValue implements compiler.InjectorVisitor
func (b *DartBackend) VisitProvideValue(index int, token models.Token, tokenExpr models.Expression, resultType models.Reference, value models.Expression, multi bool) {
	b.add(index, token, tokenExpr, value, multi)
}

func (b *DartBackend) add(index int, token models.Token, tokenExpr, create models.Expression, multi bool) {
	b.bindings = append(b.bindings, dartBinding{
		Index:  index,
		Token:  b.render(tokenExpr),
		Create: b.render(create),
		Multi:  multi,
	})
}

// dartDispatch is one arm of the token dispatch method. Multi bindings under
// the same token collapse into a single arm returning a list.
type dartDispatch struct {
	Token   string
	Getters []int
	Multi   bool
}

type dartView struct {
	ClassName    string
	FactoryName  string
	Imports      []dartImport
	InjectorType string
	Bindings     []dartBinding
	Dispatch     []dartDispatch
}

var dartTemplate = template.Must(template.New("injector").Parse(`// GENERATED CODE - DO NOT MODIFY BY HAND
{{range .Imports}}import '{{.URL}}' as {{.Prefix}};
{{end}}
class {{.ClassName}} extends {{.InjectorType}} {
  {{.ClassName}}._({{.InjectorType}} parent) : super(parent);
{{range .Bindings}}
  Object _get{{.Index}}() => {{.Create}};
{{end}}
  @override
  Object injectFromSelfOptional(Object token, [Object orElse]) {
{{range .Dispatch}}    if (identical(token, {{.Token}})) {
      return {{if .Multi}}[{{range $i, $g := .Getters}}{{if $i}}, {{end}}_get{{$g}}(){{end}}]{{else}}{{range .Getters}}_get{{.}}(){{end}}{{end}};
    }
{{end}}    return orElse;
  }
}

{{.InjectorType}} {{.FactoryName}}({{.InjectorType}} parent) => {{.ClassName}}._(parent);
`))

// Finish implements Backend
func (b *DartBackend) Finish() (*GeneratedFile, error) {
	if b.className == "" {
		return nil, errors.WrapGenerateError("dart injector", fmt.Errorf("no meta event received"))
	}

	view := dartView{
		ClassName:    b.className,
		FactoryName:  b.factoryName,
		InjectorType: b.injectorType(),
		Bindings:     b.bindings,
		Dispatch:     dispatchArms(b.bindings),
	}
	view.Imports = b.imports.ordered()

	var buf bytes.Buffer
	if err := dartTemplate.Execute(&buf, view); err != nil {
		return nil, errors.WrapGenerateError("dart injector", err)
	}

	return &GeneratedFile{
		Name:    strings.TrimSuffix(b.factoryName, "$Injector") + ".injector.dart",
		Content: buf.String(),
	}, nil
}

// injectorType returns the rendered reference to the runtime injector base
// type. The self-binding's create expression resolves against the same
// import, so the prefix is already stable by Finish time.
func (b *DartBackend) injectorType() string {
	return b.imports.prefixed(models.Reference{Symbol: "Injector", Import: "angular2:src/di/injector"})
}

func dispatchArms(bindings []dartBinding) []dartDispatch {
	arms := make([]dartDispatch, 0, len(bindings))
	byToken := make(map[string]int)

	for _, binding := range bindings {
		if binding.Multi {
			if at, ok := byToken[binding.Token]; ok {
				arms[at].Getters = append(arms[at].Getters, binding.Index)
				continue
			}
			byToken[binding.Token] = len(arms)
			arms = append(arms, dartDispatch{Token: binding.Token, Getters: []int{binding.Index}, Multi: true})
			continue
		}
		arms = append(arms, dartDispatch{Token: binding.Token, Getters: []int{binding.Index}})
	}
	return arms
}

// render produces Dart source for an expression, registering imports as it
// encounters referenced symbols.
func (b *DartBackend) render(expr models.Expression) string {
	switch expr := expr.(type) {
	case models.Null:
		return "null"
	case models.BoolLit:
		return strconv.FormatBool(expr.Value)
	case models.IntLit:
		return strconv.FormatInt(expr.Value, 10)
	case models.FloatLit:
		return strconv.FormatFloat(expr.Value, 'g', -1, 64)
	case models.StringLit:
		return dartStringLiteral(expr.Value)
	case models.ListLit:
		parts := make([]string, 0, len(expr.Elements))
		for _, el := range expr.Elements {
			parts = append(parts, b.render(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case models.MapLit:
		parts := make([]string, 0, len(expr.Entries))
		for _, entry := range expr.Entries {
			parts = append(parts, b.render(entry.Key)+": "+b.render(entry.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case models.Ref:
		return b.imports.prefixed(expr.Reference)
	case models.Invoke:
		target := b.imports.prefixed(expr.Target)
		if expr.Constructor != "" {
			target += "." + expr.Constructor
		}
		return target + "(" + b.renderArgs(expr.Positional, expr.Named) + ")"
	case models.SelfRef:
		return "this"
	case models.LookupCall:
		parts := make([]string, 0, len(expr.Args))
		for _, arg := range expr.Args {
			parts = append(parts, b.render(arg))
		}
		return expr.Op.String() + "(" + strings.Join(parts, ", ") + ")"
	default:
		panic("generator: unknown expression variant")
	}
}

func (b *DartBackend) renderArgs(positional []models.Expression, named []models.NamedArg) string {
	parts := make([]string, 0, len(positional)+len(named))
	for _, arg := range positional {
		parts = append(parts, b.render(arg))
	}
	for _, arg := range named {
		parts = append(parts, arg.Name+": "+b.render(arg.Value))
	}
	return strings.Join(parts, ", ")
}

// dartStringLiteral renders a raw string literal so embedded quotes and
// escape sequences survive re-emission as source text.
func dartStringLiteral(s string) string {
	switch {
	case strings.Contains(s, "\n"):
		return "r'''" + s + "'''"
	case !strings.Contains(s, "'"):
		return "r'" + s + "'"
	case !strings.Contains(s, `"`):
		return `r"` + s + `"`
	default:
		return "r'''" + s + "'''"
	}
}

// dartImports assigns stable prefixes to import URLs in first-use order.
type dartImports struct {
	prefixes map[string]string
	order    []dartImport
}

type dartImport struct {
	URL    string
	Prefix string
}

func newDartImports() *dartImports {
	return &dartImports{prefixes: make(map[string]string)}
}

func (t *dartImports) prefixed(ref models.Reference) string {
	if ref.Import == "" {
		return ref.Symbol
	}
	return t.prefix(importURL(ref.Import)) + "." + ref.Symbol
}

func (t *dartImports) prefix(url string) string {
	if prefix, ok := t.prefixes[url]; ok {
		return prefix
	}
	prefix := fmt.Sprintf("_i%d", len(t.order)+1)
	t.prefixes[url] = prefix
	t.order = append(t.order, dartImport{URL: url, Prefix: prefix})
	return prefix
}

func (t *dartImports) ordered() []dartImport {
	return t.order
}

// importURL maps a resolved import onto a Dart import URL. Relative and
// asset-rooted imports pass through unchanged; logical references become
// package URLs.
func importURL(imp string) string {
	if strings.HasPrefix(imp, "asset:") || strings.HasPrefix(imp, ".") || !strings.Contains(imp, ":") {
		return imp
	}
	pkg, path, _ := strings.Cut(imp, ":")
	return "package:" + pkg + "/" + path
}
