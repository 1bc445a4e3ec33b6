package jsondrift

import "github.com/reoring/jsondrift/i18n"

// Decode walks a Value tree against a ModelDescriptor and returns a
// best-effort model plus every field-level anomaly as a Diagnostic. It never
// fails the document: a missing or mistyped field degrades to an Absent slot,
// and fatality stays a caller policy.
//
// Diagnostics follow a stable order: declared fields in descriptor order
// (pre-order through nested models), then undeclared keys in input order.
// Decode keeps no state between calls and is safe for concurrent use.
func Decode(v Value, md *ModelDescriptor) (DecodedModel, Diagnostics) {
	out := emptyModel(md)
	if v.Kind() != KindObject {
		ds := Diagnostics{mismatch(Root(), KindObject, v)}
		return out, ds
	}
	return decodeObject(v, md, Root())
}

// emptyModel returns a closed-world model with every declared slot Absent.
func emptyModel(md *ModelDescriptor) DecodedModel {
	out := DecodedModel{
		model:  md.Name(),
		fields: make([]DecodedField, md.Len()),
		index:  make(map[string]int, md.Len()),
	}
	for i, f := range md.Fields() {
		out.fields[i] = DecodedField{Name: f.Name}
		out.index[f.Name] = i
	}
	return out
}

func decodeObject(v Value, md *ModelDescriptor, at Path) (DecodedModel, Diagnostics) {
	out := emptyModel(md)
	var ds Diagnostics
	for i, f := range md.Fields() {
		fp := at.Field(f.Name)
		val, exists := v.Get(f.Name)
		if !exists {
			if f.Default != nil {
				out.fields[i].Decoded = Decoded{State: FieldDefaulted, Value: *f.Default}
				continue
			}
			ds = AppendDiagnostics(ds, missing(fp, f))
			continue
		}
		slot, more := decodeSlot(val, f.Type, fp)
		out.fields[i].Decoded = slot
		ds = AppendDiagnostics(ds, more...)
	}
	for _, m := range v.Members() {
		if _, declared := md.Lookup(m.Key); declared {
			continue
		}
		ds = AppendDiagnostics(ds, Diagnostic{
			Path:     at.Field(m.Key).Pointer(),
			Code:     CodeUnexpectedKey,
			Message:  i18n.T(CodeUnexpectedKey, nil),
			Actual:   m.Value.Kind().String(),
			Severity: Warn,
		})
	}
	return out, ds
}

// decodeSlot decodes one value against one declared type; it is shared by
// object fields and array elements.
func decodeSlot(v Value, t FieldType, at Path) (Decoded, Diagnostics) {
	switch t.Kind {
	case KindAny:
		return Decoded{State: FieldPresent, Value: v}, nil
	case KindObject:
		if v.Kind() != KindObject {
			return Decoded{}, Diagnostics{mismatch(at, t.Kind, v)}
		}
		nested, ds := decodeObject(v, t.Fields, at)
		return Decoded{State: FieldPresent, Value: v, Model: &nested}, ds
	case KindArray:
		if v.Kind() != KindArray {
			return Decoded{}, Diagnostics{mismatch(at, t.Kind, v)}
		}
		items := make([]Decoded, v.Len())
		var ds Diagnostics
		for i := 0; i < v.Len(); i++ {
			slot, more := decodeSlot(v.Index(i), *t.Elem, at.Index(i))
			items[i] = slot
			ds = AppendDiagnostics(ds, more...)
		}
		return Decoded{State: FieldPresent, Value: v, Items: items}, ds
	default:
		if v.Kind() != t.Kind {
			return Decoded{}, Diagnostics{mismatch(at, t.Kind, v)}
		}
		return Decoded{State: FieldPresent, Value: v}, nil
	}
}

func missing(at Path, f FieldDescriptor) Diagnostic {
	d := Diagnostic{
		Path:     at.Pointer(),
		Code:     CodeMissing,
		Message:  i18n.T(CodeMissing, nil),
		Expected: f.Type.Kind.String(),
		Severity: Warn,
	}
	if f.Required {
		d.Params = map[string]any{"required": true}
	}
	return d
}

func mismatch(at Path, expected Kind, v Value) Diagnostic {
	return Diagnostic{
		Path:     at.Pointer(),
		Code:     CodeTypeMismatch,
		Message:  i18n.T(CodeTypeMismatch, map[string]string{"expected": expected.String(), "actual": v.Kind().String()}),
		Expected: expected.String(),
		Actual:   v.Kind().String(),
		Severity: Warn,
	}
}
