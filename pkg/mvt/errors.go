// pkg/mvt/errors.go - codec error types
package mvt

import "fmt"

// EmptyGeometryError is returned when the encoder is asked to encode a
// sub-geometry with zero coordinates.
type EmptyGeometryError struct {
	Kind string
}

func (e *EmptyGeometryError) Error() string {
	return fmt.Sprintf("mvt: empty geometry encountered encoding %s", e.Kind)
}

// DecodeError wraps a failure reconstructing a geometry from a command
// stream: truncation, an invalid command id, or a ring that could not be
// assembled.
type DecodeError struct {
	Reason string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("mvt: decode error: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("mvt: decode error: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func newDecodeError(reason string, cause error) *DecodeError {
	return &DecodeError{Reason: reason, Cause: cause}
}

// ParseError wraps a failure parsing tile protobuf bytes: malformed
// varints/fields, an odd tag count, or an out-of-range key/value index.
type ParseError struct {
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("mvt: parse error: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("mvt: parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func newParseError(reason string, cause error) *ParseError {
	return &ParseError{Reason: reason, Cause: cause}
}
