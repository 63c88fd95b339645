package models

// ImportError records one failed record together with the raw ad that
// caused it. Ad is nil for run-level failures (missing or unparseable
// ads file).
type ImportError struct {
	Message string `json:"message"`
	Ad      *Ad    `json:"ad,omitempty"`
}

// ImportSummary is the result of one reconciliation run. Ambiguous counts
// records whose title matched more than one existing product; those are
// left untouched rather than updating an arbitrary row.
type ImportSummary struct {
	Imported  int           `json:"imported"`
	Updated   int           `json:"updated"`
	Skipped   int           `json:"skipped"`
	Ambiguous int           `json:"ambiguous"`
	Errors    []ImportError `json:"errors"`
}

// AddError appends a per-record error entry.
func (s *ImportSummary) AddError(message string, ad *Ad) {
	s.Errors = append(s.Errors, ImportError{Message: message, Ad: ad})
}
