package jsondrift

import (
	"errors"
	"fmt"
	"strings"
)

// Rejection reports that a fully-decoded model failed projection. It carries
// every unmet rule, in rule declaration order, so a caller sees the complete
// reason set instead of the first failure.
type Rejection struct {
	Model   string
	Reasons []string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s rejected: %s", r.Model, strings.Join(r.Reasons, "; "))
}

// AsRejection extracts a *Rejection from an error using errors.As internally.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// Rule checks one business rule against a decoded model and returns the unmet
// reasons, empty when satisfied. Rules must be pure.
type Rule struct {
	Name  string
	Check func(DecodedModel) []string
}

// Projector validates a decoded model against view-level rules and, when all
// pass, materializes the view value. Required-for-view is deliberately a
// separate notion from required-for-decode: decode stays permissive, the
// projector enforces business rules.
type Projector[T any] struct {
	Model string
	Rules []Rule
	Build func(DecodedModel) T
}

// Project evaluates every rule, collecting all unmet reasons before deciding.
// On success it returns Build(m); on failure a *Rejection. It performs no I/O
// and never mutates the input model.
func (p Projector[T]) Project(m DecodedModel) (T, error) {
	var reasons []string
	for _, r := range p.Rules {
		if r.Check == nil {
			continue
		}
		reasons = append(reasons, r.Check(m)...)
	}
	if len(reasons) > 0 {
		var zero T
		name := p.Model
		if name == "" {
			name = m.ModelName()
		}
		return zero, &Rejection{Model: name, Reasons: reasons}
	}
	return p.Build(m), nil
}

// ---- common rule helpers ----

// RequirePresent demands that the named field decoded to a value.
func RequirePresent(name string) Rule {
	return Rule{Name: name + " present", Check: func(m DecodedModel) []string {
		if !m.Present(name) {
			return []string{name + " absent"}
		}
		return nil
	}}
}

// RequireString demands a present string field that is non-empty after
// trimming whitespace.
func RequireString(name string) Rule {
	return Rule{Name: name + " non-empty", Check: func(m DecodedModel) []string {
		s, ok := m.Text(name)
		if !ok {
			return []string{name + " absent"}
		}
		if strings.TrimSpace(s) == "" {
			return []string{name + " is empty"}
		}
		return nil
	}}
}

// RequireNumber demands a present number field.
func RequireNumber(name string) Rule {
	return Rule{Name: name + " numeric", Check: func(m DecodedModel) []string {
		if _, ok := m.Number(name); !ok {
			return []string{name + " absent"}
		}
		return nil
	}}
}
