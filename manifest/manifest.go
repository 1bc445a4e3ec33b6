// Package manifest loads ModelDescriptors from YAML (or JSON) schema
// manifests, so drifting APIs can be described without recompiling:
//
//	model: Quote
//	fields:
//	  - name: id
//	    kind: number
//	    default: 0
//	  - name: author
//	    kind: string
//	    required: true
//	  - name: tags
//	    kind: array
//	    elem:
//	      kind: string
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	jsondrift "github.com/reoring/jsondrift"
)

type fileSpec struct {
	Model  string      `yaml:"model"`
	Fields []fieldSpec `yaml:"fields"`
}

type fieldSpec struct {
	Name     string      `yaml:"name"`
	Kind     string      `yaml:"kind"`
	Required bool        `yaml:"required"`
	Default  yaml.Node   `yaml:"default"`
	Elem     *typeSpec   `yaml:"elem"`
	Fields   []fieldSpec `yaml:"fields"`
}

type typeSpec struct {
	Kind   string      `yaml:"kind"`
	Elem   *typeSpec   `yaml:"elem"`
	Fields []fieldSpec `yaml:"fields"`
}

// Parse builds a descriptor from manifest bytes. YAML being a JSON superset,
// JSON manifests work unchanged.
func Parse(data []byte) (*jsondrift.ModelDescriptor, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if spec.Model == "" {
		return nil, fmt.Errorf("manifest: missing model name")
	}
	return buildModel(spec.Model, spec.Fields)
}

// Load builds a descriptor from a manifest stream.
func Load(r io.Reader) (*jsondrift.ModelDescriptor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return Parse(data)
}

// LoadFile builds a descriptor from a manifest file on disk.
func LoadFile(path string) (*jsondrift.ModelDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return Parse(data)
}

func buildModel(name string, specs []fieldSpec) (*jsondrift.ModelDescriptor, error) {
	fields := make([]jsondrift.FieldDescriptor, 0, len(specs))
	for _, fs := range specs {
		ft, err := buildFieldType(fs.Name, typeSpec{Kind: fs.Kind, Elem: fs.Elem, Fields: fs.Fields})
		if err != nil {
			return nil, err
		}
		fd := jsondrift.FieldDescriptor{Name: fs.Name, Type: ft, Required: fs.Required}
		if !fs.Default.IsZero() {
			dv, err := valueFromNode(&fs.Default)
			if err != nil {
				return nil, fmt.Errorf("manifest: field %q default: %w", fs.Name, err)
			}
			fd.Default = &dv
		}
		fields = append(fields, fd)
	}
	return jsondrift.NewModel(name, fields...)
}

func buildFieldType(fieldName string, ts typeSpec) (jsondrift.FieldType, error) {
	switch ts.Kind {
	case "null":
		return jsondrift.TypeOf(jsondrift.KindNull), nil
	case "bool":
		return jsondrift.TypeOf(jsondrift.KindBool), nil
	case "number":
		return jsondrift.TypeOf(jsondrift.KindNumber), nil
	case "string":
		return jsondrift.TypeOf(jsondrift.KindString), nil
	case "any":
		return jsondrift.TypeOf(jsondrift.KindAny), nil
	case "array":
		if ts.Elem == nil {
			return jsondrift.FieldType{}, fmt.Errorf("manifest: field %q: array needs elem", fieldName)
		}
		elem, err := buildFieldType(fieldName, *ts.Elem)
		if err != nil {
			return jsondrift.FieldType{}, err
		}
		return jsondrift.ArrayOf(elem), nil
	case "object":
		if len(ts.Fields) == 0 {
			return jsondrift.FieldType{}, fmt.Errorf("manifest: field %q: object needs fields", fieldName)
		}
		// the nested model borrows the field name
		nested, err := buildModel(fieldName, ts.Fields)
		if err != nil {
			return jsondrift.FieldType{}, err
		}
		return jsondrift.ObjectOf(nested), nil
	default:
		return jsondrift.FieldType{}, fmt.Errorf("manifest: field %q: unknown kind %q", fieldName, ts.Kind)
	}
}

// valueFromNode converts a YAML node into a Value, preserving mapping order.
func valueFromNode(n *yaml.Node) (jsondrift.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return valueFromNode(n.Alias)
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jsondrift.Null(), nil
		}
		return valueFromNode(n.Content[0])
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return jsondrift.Null(), nil
		case "!!bool":
			b, err := strconv.ParseBool(n.Value)
			if err != nil {
				return jsondrift.Value{}, err
			}
			return jsondrift.Bool(b), nil
		case "!!int", "!!float":
			return jsondrift.Number(json.Number(n.Value)), nil
		default:
			return jsondrift.String(n.Value), nil
		}
	case yaml.SequenceNode:
		items := make([]jsondrift.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := valueFromNode(c)
			if err != nil {
				return jsondrift.Value{}, err
			}
			items = append(items, v)
		}
		return jsondrift.Array(items...), nil
	case yaml.MappingNode:
		members := make([]jsondrift.Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := valueFromNode(n.Content[i+1])
			if err != nil {
				return jsondrift.Value{}, err
			}
			members = append(members, jsondrift.Field(n.Content[i].Value, v))
		}
		return jsondrift.Object(members...), nil
	default:
		return jsondrift.Value{}, fmt.Errorf("unsupported node kind %d", n.Kind)
	}
}
