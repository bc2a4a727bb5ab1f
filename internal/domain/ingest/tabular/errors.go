package tabular

import "fmt"

// ParseError reports a cell that failed required type coercion. It is fatal
// for the whole document: the pipeline never emits a partial record set.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %s: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a merged row that does not have the expected fixed
// column count after normalization. Fatal for the document.
type SchemaError struct {
	Row  int
	Got  int
	Want int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("row %d: expected %d columns after normalization, got %d", e.Row, e.Want, e.Got)
}
