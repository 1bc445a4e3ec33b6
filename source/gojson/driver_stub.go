//go:build !gojson

package gojson

import (
	"io"

	jsondrift "github.com/reoring/jsondrift"
	jsonsrc "github.com/reoring/jsondrift/source/json"
)

// Driver returns a stub driver when the gojson tag is not enabled.
// It delegates to the encoding/json-based source directly to avoid recursion.
func Driver() jsondrift.JSONDriver { return stub{} }

type stub struct{}

func (stub) NewReader(r io.Reader) jsondrift.Source {
	return jsondrift.SourceFromEngine(jsonsrc.NewReader(r))
}
func (stub) NewBytes(b []byte) jsondrift.Source {
	return jsondrift.SourceFromEngine(jsonsrc.NewBytes(b))
}
func (stub) Name() string { return "encoding/json (gojson stub)" }
