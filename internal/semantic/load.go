package semantic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chalin/angular2/internal/errors"
	"github.com/chalin/angular2/internal/models"
)

// The YAML fixture format lets the CLI run against a semantic model produced
// by an upstream analyzer without linking against it.

type modelSpec struct {
	Types     map[string]symbolSpec  `yaml:"types"`
	Constants map[string]valueSpec   `yaml:"constants"`
	Factories map[string]factorySpec `yaml:"factories"`
}

type symbolSpec struct {
	Symbol   string `yaml:"symbol"`
	Location string `yaml:"location"`
}

type factorySpec struct {
	Symbol   string `yaml:"symbol"`
	Location string `yaml:"location"`
	Null     bool   `yaml:"null"`
}

type valueSpec struct {
	Kind string `yaml:"kind"` // null, bool, int, float, string, list, map, revivable, opaque

	Bool   bool    `yaml:"bool"`
	Int    int64   `yaml:"int"`
	Float  float64 `yaml:"float"`
	String string  `yaml:"string"`

	Elements []valueSpec `yaml:"elements"`
	Entries  []entrySpec `yaml:"entries"`

	Symbol      string    `yaml:"symbol"`
	Location    string    `yaml:"location"`
	Private     bool      `yaml:"private"`
	PublicAlias string    `yaml:"public_alias"`
	Constructor *ctorSpec `yaml:"constructor"`

	Description string `yaml:"description"`
}

type entrySpec struct {
	Key   valueSpec `yaml:"key"`
	Value valueSpec `yaml:"value"`
}

type ctorSpec struct {
	Name       string      `yaml:"name"`
	Positional []valueSpec `yaml:"positional"`
	Named      []namedSpec `yaml:"named"`
}

type namedSpec struct {
	Name  string    `yaml:"name"`
	Value valueSpec `yaml:"value"`
}

// LoadModel reads a semantic model fixture from a YAML file.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	model, err := DecodeModel(data)
	if err != nil {
		return nil, errors.WrapConfigurationError("semantic model", "decode", err)
	}
	return model, nil
}

// DecodeModel decodes a semantic model fixture from YAML bytes.
func DecodeModel(data []byte) (*Model, error) {
	var spec modelSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	model := NewModel()
	for name, sym := range spec.Types {
		info, err := decodeSymbol(name, sym)
		if err != nil {
			return nil, err
		}
		model.AddType(name, TypeInfo(info))
	}
	for name, val := range spec.Constants {
		value, err := decodeValue(val)
		if err != nil {
			return nil, fmt.Errorf("constant %q: %w", name, err)
		}
		model.AddConstant(name, value)
	}
	for name, fac := range spec.Factories {
		if fac.Null {
			model.AddNullFactory(name)
			continue
		}
		info, err := decodeSymbol(name, symbolSpec{Symbol: fac.Symbol, Location: fac.Location})
		if err != nil {
			return nil, err
		}
		model.AddFactory(name, FactoryInfo(info))
	}
	return model, nil
}

type symbolInfo struct {
	Symbol   string
	Location *models.Location
}

func decodeSymbol(name string, spec symbolSpec) (symbolInfo, error) {
	symbol := spec.Symbol
	if symbol == "" {
		symbol = name
	}
	info := symbolInfo{Symbol: symbol}
	if spec.Location != "" {
		loc, err := models.ParseLocation(spec.Location)
		if err != nil {
			return info, fmt.Errorf("symbol %q: %w", name, err)
		}
		info.Location = loc
	}
	return info, nil
}

func decodeValue(spec valueSpec) (Value, error) {
	switch spec.Kind {
	case "null":
		return NullValue{}, nil
	case "bool":
		return BoolValue{Value: spec.Bool}, nil
	case "int":
		return IntValue{Value: spec.Int}, nil
	case "float":
		return FloatValue{Value: spec.Float}, nil
	case "string":
		return StringValue{Value: spec.String}, nil
	case "list":
		elements := make([]Value, 0, len(spec.Elements))
		for _, el := range spec.Elements {
			value, err := decodeValue(el)
			if err != nil {
				return nil, err
			}
			elements = append(elements, value)
		}
		return ListValue{Elements: elements}, nil
	case "map":
		entries := make([]MapEntry, 0, len(spec.Entries))
		for _, entry := range spec.Entries {
			key, err := decodeValue(entry.Key)
			if err != nil {
				return nil, err
			}
			value, err := decodeValue(entry.Value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, MapEntry{Key: key, Value: value})
		}
		return MapValue{Entries: entries}, nil
	case "revivable":
		return decodeRevivable(spec)
	case "opaque":
		return OpaqueValue{Description: spec.Description}, nil
	default:
		return nil, fmt.Errorf("unknown constant kind %q", spec.Kind)
	}
}

func decodeRevivable(spec valueSpec) (Value, error) {
	revivable := RevivableValue{
		Symbol:      spec.Symbol,
		Private:     spec.Private,
		PublicAlias: spec.PublicAlias,
	}
	if spec.Location != "" {
		loc, err := models.ParseLocation(spec.Location)
		if err != nil {
			return nil, err
		}
		revivable.Location = loc
	}
	if spec.Constructor != nil {
		ctor := &ConstructorInvocation{Name: spec.Constructor.Name}
		for _, arg := range spec.Constructor.Positional {
			value, err := decodeValue(arg)
			if err != nil {
				return nil, err
			}
			ctor.Positional = append(ctor.Positional, value)
		}
		for _, arg := range spec.Constructor.Named {
			value, err := decodeValue(arg.Value)
			if err != nil {
				return nil, err
			}
			ctor.Named = append(ctor.Named, NamedValue{Name: arg.Name, Value: value})
		}
		revivable.Constructor = ctor
	}
	return revivable, nil
}
