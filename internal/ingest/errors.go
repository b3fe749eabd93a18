package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoData marks a run whose sales input came back empty after ingestion.
// Fatal: the whole computation halts, there is no partial-result mode.
var ErrNoData = errors.New("no data rows after ingestion")

// SchemaError reports a required logical column that could not be resolved
// from a source's headers. It carries the full header list seen to aid
// diagnosis.
type SchemaError struct {
	Source string
	Field  string
	Header []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source %s: cannot resolve required column %q from headers [%s]",
		e.Source, e.Field, strings.Join(e.Header, ", "))
}

// TransportError reports a non-success retrieval or a non-tabular response
// (e.g. an HTML error page where CSV was expected) for a named source.
type TransportError struct {
	Source     string
	StatusCode int
	Reason     string
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("source %s: fetch failed with status %d: %s", e.Source, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("source %s: %s", e.Source, e.Reason)
}
