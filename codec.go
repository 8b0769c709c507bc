package apexJSON

// Codec is the contract every codec in this library satisfies, parametric
// on the Go value type T. Composite codecs (Slice, Map, Nullable) hold their
// child as a Codec[T] interface value, so each call into the child goes
// through dynamic dispatch; the object codec stores its heterogeneous
// per-field codecs behind the fieldDescriptor interface (object.go).
type Codec[T any] interface {
	// Decode advances ctx past one JSON value and returns the decoded value.
	// On malformed input it returns a non-nil error and ctx's position is
	// left wherever the failure was detected.
	Decode(ctx *decodeContext) (T, error)

	// Encode appends the JSON encoding of v to buf.
	Encode(buf *Buffer, v T)

	// ShouldEncode reports whether v should be emitted at all. The object
	// codec uses this to suppress a field (key and value) entirely. Most
	// codecs always return true; optional-like wrappers return false for an
	// absent value.
	ShouldEncode(v T) bool
}

// Marshal encodes v with c and returns the compact JSON bytes. Its one
// failure mode is c.ShouldEncode(v) being false with nothing above it to
// suppress the field the way an enclosing object, slice, or map would: an
// uninitialized optional passed to Marshal directly has no key to omit it
// from, so Marshal reports it as an error instead of calling Encode.
func Marshal[T any](c Codec[T], v T) ([]byte, error) {
	if !c.ShouldEncode(v) {
		return nil, newDecodeError(0, msgUninitializedOpt)
	}
	buf := getBuffer(256)
	defer putBuffer(buf)
	c.Encode(buf, v)
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// Unmarshal decodes data with c. It fails if trailing non-whitespace bytes
// follow the decoded value.
func Unmarshal[T any](c Codec[T], data []byte) (T, error) {
	ctx := newDecodeContext(data)
	v, err := c.Decode(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	skipPastWhitespace(ctx)
	if ctx.pos != len(ctx.data) {
		var zero T
		return zero, ctx.fail(msgUnexpectedInput, 0)
	}
	return v, nil
}
