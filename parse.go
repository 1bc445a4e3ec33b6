package jsondrift

import (
	"encoding/json"
	"errors"
	"io"

	eng "github.com/reoring/jsondrift/internal/engine"
	"github.com/reoring/jsondrift/i18n"
)

// ParseValue consumes tokens from the Source and builds an immutable Value
// tree, enforcing the parse options (duplicate keys, depth, size) on the way.
// Enforcement findings in warn mode become Diagnostics; malformed input and
// error-mode findings return a non-nil error alongside the partial trail.
func ParseValue(src Source, opts ...ParseOpt) (Value, Diagnostics, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}

	var ds Diagnostics
	engSrc := engineTokenSource(src)
	if opt.Strictness.OnDuplicateKey != Ignore || opt.MaxDepth > 0 || opt.MaxBytes > 0 {
		engSrc = eng.WrapWithEnforcement(engSrc, eng.EnforceOptions{
			OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
			MaxDepth:    opt.MaxDepth,
			MaxBytes:    opt.MaxBytes,
			FailFast:    opt.FailFast,
			IssueSink: func(si eng.SimpleIssue) {
				ds = AppendDiagnostics(ds, Diagnostic{
					Path:     si.Path,
					Code:     si.Code,
					Message:  si.Message,
					Severity: Warn,
					Offset:   src.Location(),
				})
			},
		})
	}

	tok, err := engSrc.NextToken()
	if err != nil {
		return Value{}, ds, parseFailure(err, &ds)
	}
	v, err := buildValue(engSrc, tok)
	if err != nil {
		return Value{}, ds, parseFailure(err, &ds)
	}
	return v, ds, nil
}

// ParseBytes builds a Value from a JSON byte slice using the current driver.
func ParseBytes(b []byte, opts ...ParseOpt) (Value, Diagnostics, error) {
	return ParseValue(JSONBytes(b), opts...)
}

// ParseReader builds a Value by streaming JSON from r using the current driver.
func ParseReader(r io.Reader, opts ...ParseOpt) (Value, Diagnostics, error) {
	return ParseValue(JSONReader(r), opts...)
}

// DecodeBytes is the one-shot entry point: parse the document and decode it
// against the descriptor, merging parse-stage and decode-stage diagnostics.
func DecodeBytes(b []byte, md *ModelDescriptor, opts ...ParseOpt) (DecodedModel, Diagnostics, error) {
	v, ds, err := ParseBytes(b, opts...)
	if err != nil {
		return emptyModel(md), ds, err
	}
	m, more := Decode(v, md)
	return m, AppendDiagnostics(ds, more...), nil
}

// parseFailure converts an engine error into a diagnostic appended to the
// trail and a caller-facing error.
func parseFailure(err error, ds *Diagnostics) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		*ds = AppendDiagnostics(*ds, Diagnostic{
			Path:     ie.Path,
			Code:     ie.Code,
			Message:  ie.Message,
			Severity: Error,
		})
		return err
	}
	*ds = AppendDiagnostics(*ds, Diagnostic{
		Path:     "/",
		Code:     CodeParseError,
		Message:  i18n.T(CodeParseError, nil),
		Severity: Error,
	})
	return err
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

// ---- token stream -> Value ----

var errUnexpectedToken = errors.New("jsondrift: unexpected token in stream")

func buildValue(src eng.TokenSource, tok eng.Token) (Value, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		return buildObject(src)
	case eng.KindBeginArray:
		return buildArray(src)
	case eng.KindString:
		return String(tok.String), nil
	case eng.KindNumber:
		return Number(json.Number(tok.Number)), nil
	case eng.KindBool:
		return Bool(tok.Bool), nil
	case eng.KindNull:
		return Null(), nil
	default:
		return Value{}, errUnexpectedToken
	}
}

func buildObject(src eng.TokenSource) (Value, error) {
	var members []Member
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}
		if tok.Kind == eng.KindEndObject {
			return Object(members...), nil
		}
		if tok.Kind != eng.KindKey {
			return Value{}, errUnexpectedToken
		}
		key := tok.String
		vt, err := src.NextToken()
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}
		v, err := buildValue(src, vt)
		if err != nil {
			return Value{}, err
		}
		members = append(members, Field(key, v))
	}
}

func buildArray(src eng.TokenSource) (Value, error) {
	var items []Value
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}
		if tok.Kind == eng.KindEndArray {
			return Array(items...), nil
		}
		v, err := buildValue(src, tok)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
