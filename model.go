package jsondrift

import "encoding/json"

// FieldState classifies how a decoded slot was populated. A slot is Absent
// when its key was missing or its value did not match the declared kind.
type FieldState uint8

const (
	FieldAbsent FieldState = iota
	FieldPresent
	FieldDefaulted
)

func (s FieldState) String() string {
	switch s {
	case FieldPresent:
		return "present"
	case FieldDefaulted:
		return "defaulted"
	default:
		return "absent"
	}
}

// Decoded is one decoded slot: a field of a model or an element of an array.
// Value carries the matched raw value when the slot is not Absent; Model and
// Items carry the structured form for object and array slots respectively.
type Decoded struct {
	State FieldState
	Value Value
	Model *DecodedModel
	Items []Decoded
}

// Present reports whether the slot holds a value (matched or defaulted).
func (d Decoded) Present() bool { return d.State != FieldAbsent }

// DecodedField is one named slot of a DecodedModel.
type DecodedField struct {
	Name string
	Decoded
}

// DecodedModel is the best-effort result of one decode pass. It always holds
// exactly one slot per declared field; absence is explicit state, never a
// missing entry.
type DecodedModel struct {
	model  string
	fields []DecodedField
	index  map[string]int
}

// ModelName returns the descriptor name this model was decoded against.
func (m DecodedModel) ModelName() string { return m.model }

// Len returns the declared field count.
func (m DecodedModel) Len() int { return len(m.fields) }

// Fields returns the slots in descriptor declaration order. The returned
// slice must not be modified.
func (m DecodedModel) Fields() []DecodedField { return m.fields }

// Field looks up a slot by field name.
func (m DecodedModel) Field(name string) (DecodedField, bool) {
	if i, ok := m.index[name]; ok {
		return m.fields[i], true
	}
	return DecodedField{}, false
}

// Present reports whether the named field holds a value.
func (m DecodedModel) Present(name string) bool {
	f, ok := m.Field(name)
	return ok && f.Present()
}

// Text returns the string content of a present string field.
func (m DecodedModel) Text(name string) (string, bool) {
	f, ok := m.Field(name)
	if !ok || !f.Present() || f.Value.Kind() != KindString {
		return "", false
	}
	return f.Value.Text(), true
}

// Number returns the numeric literal of a present number field.
func (m DecodedModel) Number(name string) (json.Number, bool) {
	f, ok := m.Field(name)
	if !ok || !f.Present() || f.Value.Kind() != KindNumber {
		return "", false
	}
	return f.Value.Number(), true
}

// Int returns a present number field as int64; false when the field is absent
// or the literal has a fractional part.
func (m DecodedModel) Int(name string) (int64, bool) {
	n, ok := m.Number(name)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

// Float returns a present number field as float64.
func (m DecodedModel) Float(name string) (float64, bool) {
	n, ok := m.Number(name)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// Bool returns the content of a present bool field.
func (m DecodedModel) Bool(name string) (bool, bool) {
	f, ok := m.Field(name)
	if !ok || !f.Present() || f.Value.Kind() != KindBool {
		return false, false
	}
	return f.Value.Bool(), true
}

// Items returns the element slots of a present array field.
func (m DecodedModel) Items(name string) ([]Decoded, bool) {
	f, ok := m.Field(name)
	if !ok || !f.Present() {
		return nil, false
	}
	return f.Items, true
}

// Model returns the nested model of a present object field.
func (m DecodedModel) Model(name string) (*DecodedModel, bool) {
	f, ok := m.Field(name)
	if !ok || !f.Present() || f.Model == nil {
		return nil, false
	}
	return f.Model, true
}
