// Package jsondrift decodes loosely-typed, drifting JSON payloads into
// strongly-typed models without ever failing a document over a single field.
//
// It provides:
//
//   - A parser-agnostic Value tree (objects preserve key order) built from a
//     pluggable token Source
//   - A declarative ModelDescriptor walked by Decode, which degrades anomalous
//     fields to explicit Absent slots instead of raising
//   - A stable diagnostic model via Diagnostics (JSON Pointer, code,
//     expected/actual tags) so API-shape drift is visible without payload dumps
//   - A projection layer turning decoded models into validated view values,
//     rejecting with the complete set of unmet business rules
//
// Design policy:
//   - Keep only public APIs in the root package; put detailed implementations
//     under internal/.
//   - Place the builder DSL under dsl/, manifest loading under manifest/, and
//     the CLI under cmd/jsondrift.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v, diags, err := jsondrift.ParseBytes(data)
//	model, more := jsondrift.Decode(v, descriptor)
//	view, err := projector.Project(model)
package jsondrift
