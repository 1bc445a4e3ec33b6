package jsondrift

import "fmt"

// FieldType declares the expected shape of one field. Elem is set for array
// fields and Fields for nested object fields; both are nil otherwise.
type FieldType struct {
	Kind   Kind
	Elem   *FieldType
	Fields *ModelDescriptor
}

// FieldDescriptor declares one target field: its wire name, expected type,
// decode-time requiredness, and an optional default applied when the key is
// missing. Required is advisory metadata for callers; the engine itself never
// fails a document over it.
type FieldDescriptor struct {
	Name     string
	Type     FieldType
	Required bool
	Default  *Value
}

// ModelDescriptor is the declarative schema for one target type: an ordered
// set of field descriptors with unique names. It is runtime data, so one
// decode engine serves arbitrary models.
type ModelDescriptor struct {
	name   string
	fields []FieldDescriptor
	index  map[string]int
}

// NewModel builds a descriptor, rejecting duplicate or empty field names and
// malformed field types.
func NewModel(name string, fields ...FieldDescriptor) (*ModelDescriptor, error) {
	md := &ModelDescriptor{
		name:   name,
		fields: append([]FieldDescriptor(nil), fields...),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range md.fields {
		if f.Name == "" {
			return nil, fmt.Errorf("jsondrift: model %q: field %d has empty name", name, i)
		}
		if _, dup := md.index[f.Name]; dup {
			return nil, fmt.Errorf("jsondrift: model %q: duplicate field %q", name, f.Name)
		}
		if err := checkFieldType(f.Type); err != nil {
			return nil, fmt.Errorf("jsondrift: model %q, field %q: %w", name, f.Name, err)
		}
		md.index[f.Name] = i
	}
	return md, nil
}

// MustModel is NewModel that panics on error, for package-level descriptors.
func MustModel(name string, fields ...FieldDescriptor) *ModelDescriptor {
	md, err := NewModel(name, fields...)
	if err != nil {
		panic(err)
	}
	return md
}

func checkFieldType(t FieldType) error {
	switch t.Kind {
	case KindNull, KindBool, KindNumber, KindString, KindAny:
		return nil
	case KindArray:
		if t.Elem == nil {
			return fmt.Errorf("array type needs an element type")
		}
		return checkFieldType(*t.Elem)
	case KindObject:
		if t.Fields == nil {
			return fmt.Errorf("object type needs a nested descriptor")
		}
		return nil
	default:
		return fmt.Errorf("invalid kind %v", t.Kind)
	}
}

// Name returns the model's display name.
func (m *ModelDescriptor) Name() string { return m.name }

// Len returns the declared field count.
func (m *ModelDescriptor) Len() int { return len(m.fields) }

// Fields returns the declared descriptors in declaration order. The returned
// slice must not be modified.
func (m *ModelDescriptor) Fields() []FieldDescriptor { return m.fields }

// Lookup finds a field descriptor by name.
func (m *ModelDescriptor) Lookup(name string) (FieldDescriptor, bool) {
	if i, ok := m.index[name]; ok {
		return m.fields[i], true
	}
	return FieldDescriptor{}, false
}

// ---- FieldType shorthands ----

// TypeOf returns a scalar (or Any) field type.
func TypeOf(k Kind) FieldType { return FieldType{Kind: k} }

// ArrayOf returns an array field type with the given element type.
func ArrayOf(elem FieldType) FieldType { return FieldType{Kind: KindArray, Elem: &elem} }

// ObjectOf returns a nested object field type backed by the given descriptor.
func ObjectOf(md *ModelDescriptor) FieldType { return FieldType{Kind: KindObject, Fields: md} }
