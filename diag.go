package jsondrift

import (
	"fmt"
	"strings"
)

// Diagnostic codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissing       = "missing"
	CodeTypeMismatch  = "type_mismatch"
	CodeUnexpectedKey = "unexpected_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeMaxDepth      = "max_depth"
	CodeTruncated     = "truncated"
	CodeParseError    = "parse_error"
	// Projection pass (business semantics)
	CodeRuleViolation = "rule_violation"
)

// Severity expresses how much weight a diagnostic carries. Decode-time
// diagnostics are Warn; nothing the engine records is fatal on its own.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Ignore:
		return "ignore"
	case Error:
		return "error"
	default:
		return "warn"
	}
}

// MarshalText renders the severity for structured log output.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Diagnostic records a single field-level anomaly observed while decoding or
// parsing. It is data, not an error: the engine returns diagnostics alongside
// a best-effort model instead of aborting.
type Diagnostic struct {
	Path     string         `json:"path"` // JSON Pointer (for example: /items/2/name).
	Code     string         `json:"code"` // One of the codes listed above.
	Message  string         `json:"message,omitempty"`
	Expected string         `json:"expected,omitempty"` // Kind tag the descriptor declared.
	Actual   string         `json:"actual,omitempty"`   // Kind tag found in the input.
	Severity Severity       `json:"severity,omitempty"`
	Offset   int64          `json:"offset,omitempty"` // Byte offset in the input source (0 when unknown).
	Params   map[string]any `json:"params,omitempty"` // Structured parameters for i18n and observability.
}

// LogFields flattens the diagnostic for emission to an external logging sink.
func (d Diagnostic) LogFields() map[string]any {
	out := map[string]any{
		"path": d.Path,
		"code": d.Code,
	}
	if d.Message != "" {
		out["message"] = d.Message
	}
	if d.Expected != "" {
		out["expected"] = d.Expected
	}
	if d.Actual != "" {
		out["actual"] = d.Actual
	}
	for k, v := range d.Params {
		out[k] = v
	}
	return out
}

// Diagnostics is an ordered, append-only collection accumulated during one
// decode or parse pass.
type Diagnostics []Diagnostic

// Count returns the number of recorded diagnostics.
func (ds Diagnostics) Count() int { return len(ds) }

// HasAny reports whether any diagnostic with the given code was recorded.
func (ds Diagnostics) HasAny(code string) bool {
	for _, d := range ds {
		if d.Code == code {
			return true
		}
	}
	return false
}

// ByCode filters diagnostics sharing the given code, preserving order.
func (ds Diagnostics) ByCode(code string) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// WithPrefix filters diagnostics whose pointer path is the given pointer or
// lies beneath it, preserving order.
func (ds Diagnostics) WithPrefix(ptr string) Diagnostics {
	if ptr == "" || ptr == "/" {
		return append(Diagnostics(nil), ds...)
	}
	var out Diagnostics
	for _, d := range ds {
		if d.Path == ptr || strings.HasPrefix(d.Path, ptr+"/") {
			out = append(out, d)
		}
	}
	return out
}

// String summarizes the first few diagnostics.
func (ds Diagnostics) String() string {
	if len(ds) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(ds)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. type_mismatch at /path
		fmt.Fprintf(b, "%s at %s", ds[i].Code, ds[i].Path)
	}
	if n := len(ds); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendDiagnostics appends diagnostics to the destination, initializing the
// slice when needed.
func AppendDiagnostics(dst Diagnostics, more ...Diagnostic) Diagnostics {
	if dst == nil {
		dst = Diagnostics{}
	}
	return append(dst, more...)
}
