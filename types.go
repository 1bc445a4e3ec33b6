package jsondrift

// Strictness configures enforcement applied while building a Value.
type Strictness struct {
	OnDuplicateKey Severity // Warn records a diagnostic; Error fails the parse.
}

// ParseOpt bundles parsing options. Enforcement applies only at the parse
// boundary; Decode itself has no tunables.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	FailFast   bool
}
