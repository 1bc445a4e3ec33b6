package jsondrift_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	jsondrift "github.com/reoring/jsondrift"
)

type quoteView struct {
	Author string
	Quote  string
}

func quoteProjector() jsondrift.Projector[quoteView] {
	return jsondrift.Projector[quoteView]{
		Model: "Quote",
		Rules: []jsondrift.Rule{
			jsondrift.RequireString("author"),
			jsondrift.RequireString("quote"),
		},
		Build: func(m jsondrift.DecodedModel) quoteView {
			a, _ := m.Text("author")
			q, _ := m.Text("quote")
			return quoteView{Author: a, Quote: q}
		},
	}
}

func TestProject_Success(t *testing.T) {
	md := quoteModel(t)
	m, _ := jsondrift.Decode(jsondrift.Object(
		jsondrift.Field("id", jsondrift.Int(1)),
		jsondrift.Field("author", jsondrift.String("Rin Tin Tin")),
		jsondrift.Field("quote", jsondrift.String("Woof")),
	), md)
	v, err := quoteProjector().Project(m)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if v != (quoteView{Author: "Rin Tin Tin", Quote: "Woof"}) {
		t.Fatalf("view = %+v", v)
	}
}

func TestProject_RejectsEmptyAuthor(t *testing.T) {
	md := quoteModel(t)
	m, _ := jsondrift.Decode(jsondrift.Object(
		jsondrift.Field("author", jsondrift.String("   ")),
		jsondrift.Field("quote", jsondrift.String("Woof")),
	), md)
	_, err := quoteProjector().Project(m)
	r, ok := jsondrift.AsRejection(err)
	if !ok {
		t.Fatalf("want *Rejection, got %v", err)
	}
	if !reflect.DeepEqual(r.Reasons, []string{"author is empty"}) {
		t.Fatalf("reasons = %v", r.Reasons)
	}
}

func TestProject_AbsentAfterMismatch(t *testing.T) {
	md := quoteModel(t)
	// quote arrived as a number, so decode degraded it to Absent; the
	// projector then sees it as missing.
	m, _ := jsondrift.Decode(jsondrift.Object(
		jsondrift.Field("author", jsondrift.String("Rin")),
		jsondrift.Field("quote", jsondrift.Int(42)),
	), md)
	_, err := quoteProjector().Project(m)
	r, ok := jsondrift.AsRejection(err)
	if !ok {
		t.Fatalf("want *Rejection, got %v", err)
	}
	if !reflect.DeepEqual(r.Reasons, []string{"quote absent"}) {
		t.Fatalf("reasons = %v", r.Reasons)
	}
}

func TestProject_CollectsAllReasonsInOrder(t *testing.T) {
	md := quoteModel(t)
	m, _ := jsondrift.Decode(jsondrift.Object(), md)
	p := jsondrift.Projector[quoteView]{
		Model: "Quote",
		Rules: []jsondrift.Rule{
			jsondrift.RequireString("author"),
			jsondrift.RequireString("quote"),
			jsondrift.RequireNumber("id"),
		},
		Build: func(jsondrift.DecodedModel) quoteView { return quoteView{} },
	}
	_, err := p.Project(m)
	r, ok := jsondrift.AsRejection(err)
	if !ok {
		t.Fatalf("want *Rejection, got %v", err)
	}
	want := []string{"author absent", "quote absent", "id absent"}
	if !reflect.DeepEqual(r.Reasons, want) {
		t.Fatalf("reasons = %v, want %v", r.Reasons, want)
	}
	if !strings.Contains(r.Error(), "Quote rejected: author absent; quote absent; id absent") {
		t.Fatalf("Error() = %q", r.Error())
	}
}

func TestProject_NilCheckRuleIsSkipped(t *testing.T) {
	md := quoteModel(t)
	m, _ := jsondrift.Decode(jsondrift.Object(
		jsondrift.Field("author", jsondrift.String("Rin")),
		jsondrift.Field("quote", jsondrift.String("Woof")),
	), md)
	p := quoteProjector()
	p.Rules = append(p.Rules, jsondrift.Rule{Name: "noop"})
	if _, err := p.Project(m); err != nil {
		t.Fatalf("nil-check rule must not reject: %v", err)
	}
}

func TestProject_ModelNameFallsBackToDescriptor(t *testing.T) {
	md := quoteModel(t)
	m, _ := jsondrift.Decode(jsondrift.Object(), md)
	p := jsondrift.Projector[quoteView]{
		Rules: []jsondrift.Rule{jsondrift.RequirePresent("author")},
		Build: func(jsondrift.DecodedModel) quoteView { return quoteView{} },
	}
	_, err := p.Project(m)
	r, _ := jsondrift.AsRejection(err)
	if r == nil || r.Model != "Quote" {
		t.Fatalf("rejection = %+v", r)
	}
}

func TestAsRejection_WrappedError(t *testing.T) {
	inner := &jsondrift.Rejection{Model: "Quote", Reasons: []string{"quote absent"}}
	wrapped := fmt.Errorf("record 3: %w", inner)
	r, ok := jsondrift.AsRejection(wrapped)
	if !ok || r != inner {
		t.Fatalf("AsRejection(wrapped) = %v, %v", r, ok)
	}
	if _, ok := jsondrift.AsRejection(fmt.Errorf("plain")); ok {
		t.Fatalf("plain error must not match")
	}
}
