// Package dsl offers a fluent way to build ModelDescriptors in code.
// Descriptors stay plain runtime data; the builder only handles assembly
// ergonomics (chained fields, required marks, defaults).
package dsl

import (
	jsondrift "github.com/reoring/jsondrift"
)

type objectBuilder struct {
	name   string
	fields []jsondrift.FieldDescriptor
}

type fieldStep struct {
	b *objectBuilder
}

// Object creates a builder for a model descriptor with the given name.
func Object(name string) *objectBuilder {
	return &objectBuilder{name: name}
}

// Field appends a field with its declared type.
func (b *objectBuilder) Field(name string, t jsondrift.FieldType) *fieldStep {
	b.fields = append(b.fields, jsondrift.FieldDescriptor{Name: name, Type: t})
	return &fieldStep{b: b}
}

// Required marks the field as required-for-decode and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.fields[len(f.b.fields)-1].Required = true
	return f.b
}

// Optional keeps the field optional (the default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder { return f.b }

// Default sets the value applied when the key is missing from the input.
func (f *fieldStep) Default(v jsondrift.Value) *objectBuilder {
	f.b.fields[len(f.b.fields)-1].Default = &v
	return f.b
}

// Field continues the chain from a field step.
func (f *fieldStep) Field(name string, t jsondrift.FieldType) *fieldStep {
	return f.b.Field(name, t)
}

// Build assembles the descriptor, surfacing duplicate-name errors.
func (b *objectBuilder) Build() (*jsondrift.ModelDescriptor, error) {
	return jsondrift.NewModel(b.name, b.fields...)
}

// MustBuild is Build that panics on error, for package-level descriptors.
func (b *objectBuilder) MustBuild() *jsondrift.ModelDescriptor {
	return jsondrift.MustModel(b.name, b.fields...)
}

// Build assembles the descriptor from a field step.
func (f *fieldStep) Build() (*jsondrift.ModelDescriptor, error) { return f.b.Build() }

// MustBuild assembles the descriptor from a field step, panicking on error.
func (f *fieldStep) MustBuild() *jsondrift.ModelDescriptor { return f.b.MustBuild() }

// ---- field type shorthands ----

// String declares a string field type.
func String() jsondrift.FieldType { return jsondrift.TypeOf(jsondrift.KindString) }

// Number declares a number field type.
func Number() jsondrift.FieldType { return jsondrift.TypeOf(jsondrift.KindNumber) }

// Bool declares a bool field type.
func Bool() jsondrift.FieldType { return jsondrift.TypeOf(jsondrift.KindBool) }

// Any declares a passthrough field type that accepts any value.
func Any() jsondrift.FieldType { return jsondrift.TypeOf(jsondrift.KindAny) }

// Array declares an array field type with the given element type.
func Array(elem jsondrift.FieldType) jsondrift.FieldType { return jsondrift.ArrayOf(elem) }

// Nested declares an object field type backed by the given descriptor.
func Nested(md *jsondrift.ModelDescriptor) jsondrift.FieldType { return jsondrift.ObjectOf(md) }
