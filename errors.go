package apexJSON

import (
	"strconv"
)

// Distinguished decode failure messages. Exact wording is not part of the
// wire contract but is covered by tests.
const (
	msgUnexpectedEOF      = "Unexpected end of input"
	msgUnexpectedInput    = "Unexpected input"
	msgUnterminatedString = "Unterminated string"
	msgInvalidEscape      = "Invalid escape character"
	msgBadUnicodeEscape   = "\\u must be followed by 4 hex digits"
	msgMissingRequired    = "Missing required field(s)"
	msgUninitializedOpt   = "Cannot encode uninitialized optional"
)

// DecodeError is the error kind a codec raises on malformed input. It
// carries a human-readable message and the byte offset at which the problem
// was detected. Marshal also reports its one encode-side failure mode
// (encoding an uninitialized optional with nothing above it to omit the
// field from) as a *DecodeError with Offset 0, since there is no separate
// error type for a value, rather than input bytes, that can't be encoded.
type DecodeError struct {
	Msg    string
	Offset int64
}

func (e *DecodeError) Error() string {
	b := getBuilder()
	defer putBuilder(b)
	b.WriteString("json decode error at offset ")
	b.WriteString(strconv.FormatInt(e.Offset, 10))
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

// newDecodeError allocates a fresh error. Decode errors are not pooled: they
// are returned straight to the caller, who may hold onto them (wrap with
// errors.As, log them later) well past the decode call that produced them,
// so recycling the value would risk a caller observing a mutated error.
func newDecodeError(offset int64, msg string) *DecodeError {
	return &DecodeError{Offset: offset, Msg: msg}
}

// CodecTypeError is raised by a default scalar codec when the input holds a
// structurally well-formed JSON value of the wrong kind for the Go type
// bound to it (a JSON string where a number codec expected a number, for
// instance); distinguished from *DecodeError, which means the input was
// not well-formed JSON at all. Mirrors the teacher's UnmarshalTypeError.
type CodecTypeError struct {
	JSONKind string
	GoType   string
	Offset   int64
}

func (e *CodecTypeError) Error() string {
	return "json: cannot decode " + e.JSONKind + " into Go value of type " + e.GoType
}

func newCodecTypeError(offset int64, jsonKind, goType string) *CodecTypeError {
	return &CodecTypeError{JSONKind: jsonKind, GoType: goType, Offset: offset}
}
