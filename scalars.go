package apexJSON

import (
	"strconv"
	"time"
	"unicode/utf16"
	"unicode/utf8"
)

// Scalar codecs and array/map/optional wrappers (the default-codec resolver
// is in default_codec.go). These are the library's "external collaborators" per the spec's
// scope note (out of core, but needed for the object codec to have anything
// to compose with), grounded on the teacher's escaping/number-formatting
// fast paths in marshal_unmarshal.go and helpers.go.

var escapeSeq = [256]string{
	'"':  `\"`,
	'\\': `\\`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\b': `\b`,
	'\f': `\f`,
}

func needsEscaping(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c == '"' || c == '\\' {
			return true
		}
	}
	return false
}

func writeEscapedString(buf *Buffer, s string) {
	if !needsEscaping(s) {
		buf.AppendString(s)
		return
	}
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if start < i {
			buf.AppendString(s[start:i])
		}
		if esc := escapeSeq[c]; esc != "" {
			buf.AppendString(esc)
		} else {
			buf.AppendString(`\u00`)
			buf.AppendByte(hex[c>>4])
			buf.AppendByte(hex[c&0xF])
		}
		start = i + 1
	}
	if start < len(s) {
		buf.AppendString(s[start:])
	}
}

const hex = "0123456789abcdef"

// decodeJSONString decodes a full JSON string into its Go value, including
// escape processing. Unlike advancePastString (scanner.go), which only
// advances past a string without interpreting it, this is what the string
// codec and object-key decoding use to get an actual value.
func decodeJSONString(ctx *decodeContext) (string, error) {
	if err := advancePast(ctx, '"'); err != nil {
		return "", err
	}
	start := ctx.pos
	for i := ctx.pos; i < len(ctx.data); i++ {
		switch ctx.data[i] {
		case '"':
			s := string(ctx.data[start:i])
			ctx.pos = i + 1
			return s, nil
		case '\\':
			return decodeJSONStringSlow(ctx, start)
		}
	}
	ctx.pos = len(ctx.data)
	return "", ctx.fail(msgUnterminatedString, 0)
}

// decodeJSONStringSlow handles a string containing at least one escape.
// ctx.pos is still at the first byte of content (== start).
func decodeJSONStringSlow(ctx *decodeContext, start int) (string, error) {
	ctx.pos = start
	b := getBuffer(32)
	defer putBuffer(b)

	for {
		c, err := next(ctx, msgUnterminatedString)
		if err != nil {
			return "", err
		}
		switch c {
		case '"':
			return string(b.Bytes()), nil
		case '\\':
			esc, err := next(ctx, msgUnterminatedString)
			if err != nil {
				return "", err
			}
			switch esc {
			case '"':
				b.AppendByte('"')
			case '\\':
				b.AppendByte('\\')
			case '/':
				b.AppendByte('/')
			case 'b':
				b.AppendByte('\b')
			case 'f':
				b.AppendByte('\f')
			case 'n':
				b.AppendByte('\n')
			case 'r':
				b.AppendByte('\r')
			case 't':
				b.AppendByte('\t')
			case 'u':
				r, err := decodeUnicodeEscape(ctx)
				if err != nil {
					return "", err
				}
				var tmp [utf8.UTFMax]byte
				n := utf8.EncodeRune(tmp[:], r)
				b.Append(tmp[:n])
			default:
				return "", ctx.fail(msgInvalidEscape, -1)
			}
		default:
			b.AppendByte(c)
		}
	}
}

// decodeUnicodeEscape decodes a \uXXXX escape, combining a following \uXXXX
// low surrogate if present. A lone surrogate is passed through as
// utf8.RuneError, the chosen policy for the open question the spec leaves
// to downstream string decoding.
func decodeUnicodeEscape(ctx *decodeContext) (rune, error) {
	r1, err := readHex4(ctx)
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(rune(r1)) {
		if ctx.remaining() >= 6 && ctx.data[ctx.pos] == '\\' && ctx.data[ctx.pos+1] == 'u' {
			save := ctx.pos
			ctx.pos += 2
			r2, err := readHex4(ctx)
			if err == nil {
				if dec := utf16.DecodeRune(rune(r1), rune(r2)); dec != utf8.RuneError {
					return dec, nil
				}
			}
			ctx.pos = save
		}
		return utf8.RuneError, nil
	}
	return rune(r1), nil
}

func readHex4(ctx *decodeContext) (uint32, error) {
	if ctx.remaining() < 4 {
		return 0, ctx.fail(msgBadUnicodeEscape, 0)
	}
	var v uint32
	for i := 0; i < 4; i++ {
		c := ctx.data[ctx.pos+i]
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint32(c-'A') + 10
		default:
			return 0, ctx.fail(msgBadUnicodeEscape, 0)
		}
		v = v<<4 | d
	}
	ctx.pos += 4
	return v, nil
}

// ### string ###

// jsonKindAt classifies the JSON value kind at the cursor from its leading
// byte, for CodecTypeError messages. Returns "" if the byte doesn't start
// any valid JSON value (in which case the caller should fall through to a
// plain parse, which will raise the right *DecodeError).
func jsonKindAt(ctx *decodeContext) string {
	switch b := peek(ctx); {
	case b == '"':
		return "string"
	case b == 't' || b == 'f':
		return "bool"
	case b == 'n':
		return "null"
	case b == '{':
		return "object"
	case b == '[':
		return "array"
	case b == '-' || (b >= '0' && b <= '9'):
		return "number"
	default:
		return ""
	}
}

type stringCodec struct{}

func (stringCodec) Decode(ctx *decodeContext) (string, error) {
	if kind := jsonKindAt(ctx); kind != "" && kind != "string" {
		return "", newCodecTypeError(ctx.offset(0), kind, "string")
	}
	return decodeJSONString(ctx)
}
func (stringCodec) Encode(buf *Buffer, v string) {
	buf.AppendByte('"')
	writeEscapedString(buf, v)
	buf.AppendByte('"')
}
func (stringCodec) ShouldEncode(string) bool { return true }

// String returns the canonical codec for Go string values.
func String() Codec[string] { return stringCodec{} }

// ### bool ###

type boolCodec struct{}

func (boolCodec) Decode(ctx *decodeContext) (bool, error) {
	switch peek(ctx) {
	case 't':
		return true, advancePastFour(ctx, "true")
	case 'f':
		if _, err := next(ctx, msgUnexpectedEOF); err != nil {
			return false, err
		}
		return false, advancePastFour(ctx, "alse")
	default:
		if kind := jsonKindAt(ctx); kind != "" {
			return false, newCodecTypeError(ctx.offset(0), kind, "bool")
		}
		return false, ctx.fail(msgUnexpectedInput, 0)
	}
}
func (boolCodec) Encode(buf *Buffer, v bool) {
	if v {
		buf.AppendString("true")
	} else {
		buf.AppendString("false")
	}
}
func (boolCodec) ShouldEncode(bool) bool { return true }

// Bool returns the canonical codec for Go bool values.
func Bool() Codec[bool] { return boolCodec{} }

// ### numbers ###

// Numeric is the set of Go types the generic Number codec supports. Exact
// types only (no ~underlying): the codec dispatches on T's dynamic type via
// a type switch, which only matches a named type's own identity, not types
// defined over the same underlying kind.
type Numeric interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

type numberCodec[T Numeric] struct{}

func (numberCodec[T]) Decode(ctx *decodeContext) (T, error) {
	var zero T
	if kind := jsonKindAt(ctx); kind != "" && kind != "number" {
		return zero, newCodecTypeError(ctx.offset(0), kind, numericGoTypeName(zero))
	}
	start := ctx.pos
	if err := skipNumber(ctx); err != nil {
		return zero, err
	}
	s := string(ctx.data[start:ctx.pos])
	return parseNumber[T](s, ctx, start)
}

func numericGoTypeName[T Numeric](zero T) string {
	switch any(zero).(type) {
	case int:
		return "int"
	case int8:
		return "int8"
	case int16:
		return "int16"
	case int32:
		return "int32"
	case int64:
		return "int64"
	case uint:
		return "uint"
	case uint8:
		return "uint8"
	case uint16:
		return "uint16"
	case uint32:
		return "uint32"
	case uint64:
		return "uint64"
	case float32:
		return "float32"
	case float64:
		return "float64"
	default:
		return "number"
	}
}

func parseNumber[T Numeric](s string, ctx *decodeContext, start int) (T, error) {
	var zero T
	switch any(zero).(type) {
	case float32:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return zero, ctx.fail(msgUnexpectedInput, start-ctx.pos)
		}
		return T(f), nil
	case float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return zero, ctx.fail(msgUnexpectedInput, start-ctx.pos)
		}
		return T(f), nil
	default:
		if isUnsigned(zero) {
			u, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				// Numbers with a fractional/exponent part are valid JSON but
				// not valid unsigned integers; fall back via float64.
				f, ferr := strconv.ParseFloat(s, 64)
				if ferr != nil || f < 0 {
					return zero, ctx.fail(msgUnexpectedInput, start-ctx.pos)
				}
				return T(uint64(f)), nil
			}
			return T(u), nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil {
				return zero, ctx.fail(msgUnexpectedInput, start-ctx.pos)
			}
			return T(int64(f)), nil
		}
		return T(i), nil
	}
}

func isUnsigned[T Numeric](zero T) bool {
	switch any(zero).(type) {
	case uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

func (numberCodec[T]) Encode(buf *Buffer, v T) {
	nb := getNumberBuf()
	defer putNumberBuf(nb)

	switch x := any(v).(type) {
	case float32:
		*nb = strconv.AppendFloat((*nb)[:0], float64(x), 'g', -1, 32)
	case float64:
		*nb = strconv.AppendFloat((*nb)[:0], x, 'g', -1, 64)
	default:
		if isUnsigned(v) {
			*nb = strconv.AppendUint((*nb)[:0], uint64ValueOf(v), 10)
		} else {
			*nb = strconv.AppendInt((*nb)[:0], int64ValueOf(v), 10)
		}
	}
	buf.Append(*nb)
}

func int64ValueOf[T Numeric](v T) int64 {
	switch x := any(v).(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	default:
		return 0
	}
}

func uint64ValueOf[T Numeric](v T) uint64 {
	switch x := any(v).(type) {
	case uint:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	default:
		return 0
	}
}

func (numberCodec[T]) ShouldEncode(T) bool { return true }

// Number returns the canonical codec for a numeric Go type. Instantiate it
// explicitly, e.g. Number[int]() or Number[float64]().
func Number[T Numeric]() Codec[T] { return numberCodec[T]{} }

// ### null-tolerant wrapper used internally by Nullable ###

func skipNull(ctx *decodeContext) error {
	return advancePastFour(ctx, "null")
}

// ### optional (smart-pointer) wrapper ###

type optionalCodec[T any] struct {
	inner Codec[T]
}

func (o optionalCodec[T]) Decode(ctx *decodeContext) (*T, error) {
	if peek(ctx) == 'n' {
		if err := skipNull(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	v, err := o.inner.Decode(ctx)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Encode requires v to be non-nil: callers (the object, slice, and map
// codecs, and Marshal) must check ShouldEncode first and skip the field or
// report a failure instead of calling Encode on an uninitialized optional.
func (o optionalCodec[T]) Encode(buf *Buffer, v *T) {
	if v == nil {
		panic(msgUninitializedOpt)
	}
	o.inner.Encode(buf, *v)
}

func (o optionalCodec[T]) ShouldEncode(v *T) bool {
	return v != nil && o.inner.ShouldEncode(*v)
}

// Nullable wraps inner as the codec for *T: a JSON null decodes to nil, and
// a nil value is suppressed entirely when the object codec encodes the
// field it backs. Named distinctly from the object codec's Optional field
// registration (object.go), which is a different axis: "may be absent from
// the schema" versus "this value's JSON type is nullable".
func Nullable[T any](inner Codec[T]) Codec[*T] { return optionalCodec[T]{inner: inner} }

// ### slice (array) codec ###

type sliceCodec[T any] struct {
	elem Codec[T]
}

func (s sliceCodec[T]) Decode(ctx *decodeContext) ([]T, error) {
	out := []T{}
	err := advancePastCommaSeparated(ctx, '[', ']', func() error {
		skipPastWhitespace(ctx)
		v, err := s.elem.Decode(ctx)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	return out, err
}

func (s sliceCodec[T]) Encode(buf *Buffer, v []T) {
	buf.AppendByte('[')
	for _, elem := range v {
		if !s.elem.ShouldEncode(elem) {
			continue
		}
		s.elem.Encode(buf, elem)
		buf.AppendByte(',')
	}
	buf.AppendOrReplace(',', ']')
}

func (s sliceCodec[T]) ShouldEncode([]T) bool { return true }

// Slice returns the codec for []T given the codec for T.
func Slice[T any](elem Codec[T]) Codec[[]T] { return sliceCodec[T]{elem: elem} }

// ### map (string-keyed) codec ###

type mapCodec[T any] struct {
	elem Codec[T]
}

func (m mapCodec[T]) Decode(ctx *decodeContext) (map[string]T, error) {
	out := make(map[string]T)
	err := advancePastCommaSeparated(ctx, '{', '}', func() error {
		key, err := decodeJSONString(ctx)
		if err != nil {
			return err
		}
		skipPastWhitespace(ctx)
		if err := advancePast(ctx, ':'); err != nil {
			return err
		}
		skipPastWhitespace(ctx)
		v, err := m.elem.Decode(ctx)
		if err != nil {
			return err
		}
		out[key] = v
		return nil
	})
	return out, err
}

func (m mapCodec[T]) Encode(buf *Buffer, v map[string]T) {
	buf.AppendByte('{')
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sortStrings(keys)
	for _, k := range keys {
		elem := v[k]
		if !m.elem.ShouldEncode(elem) {
			continue
		}
		buf.AppendByte('"')
		writeEscapedString(buf, k)
		buf.AppendString(`":`)
		m.elem.Encode(buf, elem)
		buf.AppendByte(',')
	}
	buf.AppendOrReplace(',', '}')
}

func (m mapCodec[T]) ShouldEncode(map[string]T) bool { return true }

// Map returns the codec for map[string]T given the codec for T. Keys are
// sorted on encode so re-encoding a decoded map is stable (the spec's
// re-encode-stability property), since Go map iteration order is randomized.
func Map[T any](elem Codec[T]) Codec[map[string]T] { return mapCodec[T]{elem: elem} }

// sortStrings avoids pulling in "sort" for a single call site's worth of
// use; insertion sort is fine since object/map field counts are small.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// ### time.Time (RFC 3339) ###

type timeCodec struct{}

func (timeCodec) Decode(ctx *decodeContext) (time.Time, error) {
	s, err := decodeJSONString(ctx)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ctx.fail(msgUnexpectedInput, -1)
	}
	return t, nil
}

func (timeCodec) Encode(buf *Buffer, v time.Time) {
	buf.AppendByte('"')
	buf.AppendString(v.Format(time.RFC3339))
	buf.AppendByte('"')
}

func (timeCodec) ShouldEncode(time.Time) bool { return true }

// Time returns the codec for time.Time, encoded as an RFC 3339 string,
// grounded on the teacher's time.Time handling in marshalValue.
func Time() Codec[time.Time] { return timeCodec{} }

// ### time.Duration (chrono duration analogue) ###

type durationCodec struct{}

func (durationCodec) Decode(ctx *decodeContext) (time.Duration, error) {
	n, err := Number[int64]().Decode(ctx)
	return time.Duration(n), err
}

func (durationCodec) Encode(buf *Buffer, v time.Duration) {
	Number[int64]().Encode(buf, int64(v))
}

func (durationCodec) ShouldEncode(time.Duration) bool { return true }

// Duration returns the codec for time.Duration, encoded as a JSON number of
// nanoseconds (the spec's "chrono durations" scalar).
func Duration() Codec[time.Duration] { return durationCodec{} }
