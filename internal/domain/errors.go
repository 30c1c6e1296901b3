package domain

import "fmt"

// ValidationError reports malformed input that cannot be coerced at the
// ingestion boundary. It is the only fatal condition in the pipeline;
// everything else degrades to a documented default.
type ValidationError struct {
	Source string // file or record the value came from
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s in %s: %s", e.Field, e.Source, e.Reason)
}
