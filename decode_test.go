package jsondrift_test

import (
	"reflect"
	"testing"

	jsondrift "github.com/reoring/jsondrift"
)

func quoteModel(t *testing.T) *jsondrift.ModelDescriptor {
	t.Helper()
	md, err := jsondrift.NewModel("Quote",
		jsondrift.FieldDescriptor{Name: "id", Type: jsondrift.TypeOf(jsondrift.KindNumber)},
		jsondrift.FieldDescriptor{Name: "author", Type: jsondrift.TypeOf(jsondrift.KindString), Required: true},
		jsondrift.FieldDescriptor{Name: "quote", Type: jsondrift.TypeOf(jsondrift.KindString), Required: true},
	)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return md
}

func TestDecode_CleanDocument(t *testing.T) {
	md := quoteModel(t)
	v := jsondrift.Object(
		jsondrift.Field("id", jsondrift.Int(7)),
		jsondrift.Field("author", jsondrift.String("Rin Tin Tin")),
		jsondrift.Field("quote", jsondrift.String("Woof")),
	)
	m, ds := jsondrift.Decode(v, md)
	if ds.Count() != 0 {
		t.Fatalf("clean document produced diagnostics: %s", ds)
	}
	for _, f := range m.Fields() {
		if !f.Present() {
			t.Fatalf("field %s should be present", f.Name)
		}
	}
	if id, ok := m.Int("id"); !ok || id != 7 {
		t.Fatalf("Int(id) = %d, %v", id, ok)
	}
}

func TestDecode_MissingKey(t *testing.T) {
	md := quoteModel(t)
	v := jsondrift.Object(
		jsondrift.Field("author", jsondrift.String("Rin Tin Tin")),
		jsondrift.Field("quote", jsondrift.String("Woof")),
	)
	m, ds := jsondrift.Decode(v, md)
	if ds.Count() != 1 {
		t.Fatalf("want exactly one diagnostic, got %s", ds)
	}
	d := ds[0]
	if d.Code != jsondrift.CodeMissing || d.Path != "/id" || d.Expected != "number" {
		t.Fatalf("diagnostic = %+v", d)
	}
	f, _ := m.Field("id")
	if f.Present() {
		t.Fatalf("missing field must be Absent")
	}
	if a, ok := m.Text("author"); !ok || a != "Rin Tin Tin" {
		t.Fatalf("author should still decode, got %q, %v", a, ok)
	}
	if q, ok := m.Text("quote"); !ok || q != "Woof" {
		t.Fatalf("quote should still decode, got %q, %v", q, ok)
	}
}

func TestDecode_MissingRequiredStaysNonFatal(t *testing.T) {
	md := quoteModel(t)
	v := jsondrift.Object(jsondrift.Field("id", jsondrift.Int(1)))
	m, ds := jsondrift.Decode(v, md)
	if ds.Count() != 2 {
		t.Fatalf("want two missing diagnostics, got %s", ds)
	}
	for _, d := range ds {
		if d.Code != jsondrift.CodeMissing {
			t.Fatalf("diagnostic = %+v", d)
		}
		if d.Params["required"] != true {
			t.Fatalf("required fields should carry the required param: %+v", d)
		}
	}
	if m.Present("author") || m.Present("quote") {
		t.Fatalf("required-but-missing fields must still be Absent, never an error")
	}
}

func TestDecode_DefaultApplied(t *testing.T) {
	def := jsondrift.Int(0)
	md := jsondrift.MustModel("Quote",
		jsondrift.FieldDescriptor{Name: "id", Type: jsondrift.TypeOf(jsondrift.KindNumber), Default: &def},
		jsondrift.FieldDescriptor{Name: "author", Type: jsondrift.TypeOf(jsondrift.KindString)},
	)
	v := jsondrift.Object(jsondrift.Field("author", jsondrift.String("Lassie")))
	m, ds := jsondrift.Decode(v, md)
	if ds.Count() != 0 {
		t.Fatalf("default application should not produce diagnostics: %s", ds)
	}
	f, _ := m.Field("id")
	if f.State != jsondrift.FieldDefaulted {
		t.Fatalf("state = %v, want defaulted", f.State)
	}
	if id, ok := m.Int("id"); !ok || id != 0 {
		t.Fatalf("Int(id) = %d, %v", id, ok)
	}
}

func TestDecode_TypeMismatch(t *testing.T) {
	md := quoteModel(t)
	v := jsondrift.Object(
		jsondrift.Field("id", jsondrift.Int(1)),
		jsondrift.Field("author", jsondrift.String("Rin")),
		jsondrift.Field("quote", jsondrift.Int(42)),
	)
	m, ds := jsondrift.Decode(v, md)
	if ds.Count() != 1 {
		t.Fatalf("want exactly one diagnostic, got %s", ds)
	}
	d := ds[0]
	if d.Code != jsondrift.CodeTypeMismatch || d.Path != "/quote" {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Expected != "string" || d.Actual != "number" {
		t.Fatalf("expected/actual = %q/%q", d.Expected, d.Actual)
	}
	if m.Present("quote") {
		t.Fatalf("mismatched field must degrade to Absent")
	}
}

func TestDecode_NullIsAMismatchForScalars(t *testing.T) {
	md := quoteModel(t)
	v := jsondrift.Object(
		jsondrift.Field("id", jsondrift.Int(1)),
		jsondrift.Field("author", jsondrift.Null()),
		jsondrift.Field("quote", jsondrift.String("Woof")),
	)
	_, ds := jsondrift.Decode(v, md)
	if ds.Count() != 1 || ds[0].Actual != "null" {
		t.Fatalf("null value should mismatch with actual=null: %s", ds)
	}
}

func TestDecode_UnexpectedKey(t *testing.T) {
	md := quoteModel(t)
	v := jsondrift.Object(
		jsondrift.Field("id", jsondrift.Int(1)),
		jsondrift.Field("author", jsondrift.String("Rin")),
		jsondrift.Field("quote", jsondrift.String("Woof")),
		jsondrift.Field("lang", jsondrift.String("en")),
	)
	m, ds := jsondrift.Decode(v, md)
	if ds.Count() != 1 {
		t.Fatalf("want exactly one diagnostic, got %s", ds)
	}
	if ds[0].Code != jsondrift.CodeUnexpectedKey || ds[0].Path != "/lang" {
		t.Fatalf("diagnostic = %+v", ds[0])
	}
	for _, f := range m.Fields() {
		if !f.Present() {
			t.Fatalf("declared field %s should still decode", f.Name)
		}
	}
}

func TestDecode_NestedObjectPaths(t *testing.T) {
	author := jsondrift.MustModel("author",
		jsondrift.FieldDescriptor{Name: "name", Type: jsondrift.TypeOf(jsondrift.KindString), Required: true},
		jsondrift.FieldDescriptor{Name: "born", Type: jsondrift.TypeOf(jsondrift.KindNumber)},
	)
	md := jsondrift.MustModel("Quote",
		jsondrift.FieldDescriptor{Name: "author", Type: jsondrift.ObjectOf(author)},
		jsondrift.FieldDescriptor{Name: "quote", Type: jsondrift.TypeOf(jsondrift.KindString)},
	)
	v := jsondrift.Object(
		jsondrift.Field("author", jsondrift.Object(
			jsondrift.Field("born", jsondrift.String("1918")),
		)),
		jsondrift.Field("quote", jsondrift.String("Woof")),
	)
	m, ds := jsondrift.Decode(v, md)
	if ds.Count() != 2 {
		t.Fatalf("want two nested diagnostics, got %s", ds)
	}
	if ds[0].Code != jsondrift.CodeMissing || ds[0].Path != "/author/name" {
		t.Fatalf("first diagnostic = %+v", ds[0])
	}
	if ds[1].Code != jsondrift.CodeTypeMismatch || ds[1].Path != "/author/born" {
		t.Fatalf("second diagnostic = %+v", ds[1])
	}
	nested, ok := m.Model("author")
	if !ok {
		t.Fatalf("author object should decode to a nested model")
	}
	if nested.Len() != 2 || nested.Present("born") {
		t.Fatalf("nested model must stay closed-world with born Absent")
	}
}

func TestDecode_ArrayElementFailureKeepsSiblings(t *testing.T) {
	md := jsondrift.MustModel("TagList",
		jsondrift.FieldDescriptor{Name: "tags", Type: jsondrift.ArrayOf(jsondrift.TypeOf(jsondrift.KindString))},
	)
	v := jsondrift.Object(
		jsondrift.Field("tags", jsondrift.Array(
			jsondrift.String("dog"),
			jsondrift.Int(42),
			jsondrift.String("hero"),
		)),
	)
	m, ds := jsondrift.Decode(v, md)
	if ds.Count() != 1 {
		t.Fatalf("want a single element diagnostic, got %s", ds)
	}
	if ds[0].Path != "/tags/1" || ds[0].Code != jsondrift.CodeTypeMismatch {
		t.Fatalf("diagnostic = %+v", ds[0])
	}
	items, ok := m.Items("tags")
	if !ok || len(items) != 3 {
		t.Fatalf("all three slots must survive, got %d", len(items))
	}
	if !items[0].Present() || items[1].Present() || !items[2].Present() {
		t.Fatalf("element states wrong: %v %v %v", items[0].State, items[1].State, items[2].State)
	}
	if items[2].Value.Text() != "hero" {
		t.Fatalf("sibling after the bad element must keep its value")
	}
}

func TestDecode_ArrayKindMismatch(t *testing.T) {
	md := jsondrift.MustModel("TagList",
		jsondrift.FieldDescriptor{Name: "tags", Type: jsondrift.ArrayOf(jsondrift.TypeOf(jsondrift.KindString))},
	)
	v := jsondrift.Object(jsondrift.Field("tags", jsondrift.String("not-a-list")))
	m, ds := jsondrift.Decode(v, md)
	if ds.Count() != 1 || ds[0].Expected != "array" || ds[0].Actual != "string" {
		t.Fatalf("diagnostics = %s", ds)
	}
	if m.Present("tags") {
		t.Fatalf("mismatched array field must be Absent")
	}
}

func TestDecode_AnyFieldPassesThrough(t *testing.T) {
	md := jsondrift.MustModel("Envelope",
		jsondrift.FieldDescriptor{Name: "payload", Type: jsondrift.TypeOf(jsondrift.KindAny)},
	)
	raw := jsondrift.Array(jsondrift.Int(1), jsondrift.Null())
	m, ds := jsondrift.Decode(jsondrift.Object(jsondrift.Field("payload", raw)), md)
	if ds.Count() != 0 {
		t.Fatalf("any field should accept anything: %s", ds)
	}
	f, _ := m.Field("payload")
	if !jsondrift.Equal(f.Value, raw) {
		t.Fatalf("any field should keep the raw value")
	}
}

func TestDecode_RootNotObject(t *testing.T) {
	md := quoteModel(t)
	m, ds := jsondrift.Decode(jsondrift.Array(), md)
	if ds.Count() != 1 {
		t.Fatalf("want exactly one root diagnostic, got %s", ds)
	}
	if ds[0].Path != "/" || ds[0].Expected != "object" || ds[0].Actual != "array" {
		t.Fatalf("diagnostic = %+v", ds[0])
	}
	if m.Len() != md.Len() {
		t.Fatalf("model must stay closed-world: %d slots, want %d", m.Len(), md.Len())
	}
	for _, f := range m.Fields() {
		if f.Present() {
			t.Fatalf("no field can be present for a non-object root")
		}
	}
}

func TestDecode_Idempotent(t *testing.T) {
	md := quoteModel(t)
	v := jsondrift.Object(
		jsondrift.Field("author", jsondrift.String("Rin")),
		jsondrift.Field("quote", jsondrift.Int(42)),
		jsondrift.Field("extra", jsondrift.Bool(true)),
	)
	m1, ds1 := jsondrift.Decode(v, md)
	m2, ds2 := jsondrift.Decode(v, md)
	if !reflect.DeepEqual(ds1, ds2) {
		t.Fatalf("diagnostics differ between identical decodes:\n%v\n%v", ds1, ds2)
	}
	if !reflect.DeepEqual(m1, m2) {
		t.Fatalf("models differ between identical decodes")
	}
}

func TestDecode_DiagnosticOrderIsStable(t *testing.T) {
	md := quoteModel(t)
	// declared fields first (descriptor order), then extras in input order
	v := jsondrift.Object(
		jsondrift.Field("z_extra", jsondrift.Int(1)),
		jsondrift.Field("quote", jsondrift.Int(42)),
		jsondrift.Field("a_extra", jsondrift.Int(2)),
	)
	_, ds := jsondrift.Decode(v, md)
	codes := []string{}
	paths := []string{}
	for _, d := range ds {
		codes = append(codes, d.Code)
		paths = append(paths, d.Path)
	}
	wantPaths := []string{"/id", "/author", "/quote", "/z_extra", "/a_extra"}
	if !reflect.DeepEqual(paths, wantPaths) {
		t.Fatalf("paths = %v, want %v", paths, wantPaths)
	}
	wantCodes := []string{
		jsondrift.CodeMissing, jsondrift.CodeMissing, jsondrift.CodeTypeMismatch,
		jsondrift.CodeUnexpectedKey, jsondrift.CodeUnexpectedKey,
	}
	if !reflect.DeepEqual(codes, wantCodes) {
		t.Fatalf("codes = %v, want %v", codes, wantCodes)
	}
}

// Scenario from the Quote API: the backend stopped sending "id".
func TestDecode_QuoteWithoutID(t *testing.T) {
	md := quoteModel(t)
	v := jsondrift.Object(
		jsondrift.Field("author", jsondrift.String("Rin Tin Tin")),
		jsondrift.Field("quote", jsondrift.String("Woof")),
	)
	m, ds := jsondrift.Decode(v, md)
	if ds.Count() != 1 || ds[0].Code != jsondrift.CodeMissing || ds[0].Path != "/id" {
		t.Fatalf("diagnostics = %s", ds)
	}
	if m.Present("id") {
		t.Fatalf("id must be Absent")
	}
	author, _ := m.Text("author")
	quote, _ := m.Text("quote")
	if author != "Rin Tin Tin" || quote != "Woof" {
		t.Fatalf("decoded = %q, %q", author, quote)
	}
}
