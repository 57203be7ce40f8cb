package mapping

import "fmt"

// ConfigurationError reports a mapping table that does not match what a
// component asked of it: a missing logical key, a key of the wrong
// shape, or a source column the dataset's rows do not carry. It always
// indicates the mapping config and the dataset version have drifted
// apart, never bad row data, so it is fatal and never retried.
type ConfigurationError struct {
	Dataset string
	Key     string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("mapping config for %q: key %q: %s", e.Dataset, e.Key, e.Reason)
}

// MalformedValueError reports a source value that failed to parse as
// the expected kind (number, integer, date). Fatal for the run; the
// message carries enough context to fix the mapping or the export
// without re-running with extra diagnostics.
type MalformedValueError struct {
	Dataset string
	Key     string
	Column  string
	Raw     string
	Kind    string
	Err     error
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("dataset %q: key %q (column %q): cannot parse %q as %s: %v",
		e.Dataset, e.Key, e.Column, e.Raw, e.Kind, e.Err)
}

func (e *MalformedValueError) Unwrap() error { return e.Err }
