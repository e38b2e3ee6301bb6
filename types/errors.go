package types

import (
	"errors"
	"fmt"
)

// DecodeError reports a JSON token that could not be classified into
// any Any variant. Path is a dotted path from the document root, e.g.
// "$.rows[2].balance".
type DecodeError struct {
	Path string
	Msg  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Path, e.Msg)
}

// IsDecode checks whether an error is a DecodeError and returns it.
func IsDecode(err error) (*DecodeError, bool) {
	var d *DecodeError
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// FormatError reports a malformed hex string. Pos is the byte offset
// of the offending character, or -1 when the length itself is odd.
type FormatError struct {
	Pos int
	Msg string
}

func (e *FormatError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("malformed hex: %s", e.Msg)
	}
	return fmt.Sprintf("malformed hex at offset %d: %s", e.Pos, e.Msg)
}

// IsFormat checks whether an error is a FormatError and returns it.
func IsFormat(err error) (*FormatError, bool) {
	var f *FormatError
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// SchemaError reports that the binary codec rejected a table row's
// bytes against the requested row shape: truncated input, an invalid
// discriminant, or trailing unconsumed bytes. Row is the index of the
// failing row within its page.
type SchemaError struct {
	Row int
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("row %d does not match the requested shape: %v", e.Row, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// IsSchema checks whether an error is a SchemaError and returns it.
func IsSchema(err error) (*SchemaError, bool) {
	var s *SchemaError
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}
