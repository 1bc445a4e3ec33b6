package jsondrift

// RecordReport attributes one batch record's decode diagnostics and eventual
// rejection to its input position.
type RecordReport struct {
	Index       int
	Diagnostics Diagnostics
	Rejection   *Rejection
}

// BatchResult carries the surviving view values in input order plus one
// report per input record, so observability never depends on which records
// succeeded.
type BatchResult[T any] struct {
	Values  []T
	Records []RecordReport
}

// Rejected returns the reports of records that failed projection.
func (r BatchResult[T]) Rejected() []RecordReport {
	var out []RecordReport
	for _, rec := range r.Records {
		if rec.Rejection != nil {
			out = append(out, rec)
		}
	}
	return out
}

// ProjectAll decodes and projects every document independently: one bad
// record never blocks the others. Successfully projected values are kept in
// input order; every record gets a report regardless of outcome.
func ProjectAll[T any](docs []Value, md *ModelDescriptor, p Projector[T]) BatchResult[T] {
	res := BatchResult[T]{Records: make([]RecordReport, len(docs))}
	for i, doc := range docs {
		m, ds := Decode(doc, md)
		rec := RecordReport{Index: i, Diagnostics: ds}
		v, err := p.Project(m)
		if err != nil {
			rec.Rejection, _ = AsRejection(err)
			res.Records[i] = rec
			continue
		}
		res.Values = append(res.Values, v)
		res.Records[i] = rec
	}
	return res
}
