package apexJSON

// decodeContext is the decode-side cursor: an immutable byte range with a
// mutable position. It is created per decode call and never shared across
// goroutines. Adapted from the teacher's Parser, renamed to match the
// vocabulary of the codec this library implements (decode context / encode
// context rather than parser).
type decodeContext struct {
	data []byte
	pos  int
}

func newDecodeContext(data []byte) *decodeContext {
	return &decodeContext{data: data}
}

// remaining returns the number of unconsumed bytes.
func (c *decodeContext) remaining() int {
	return len(c.data) - c.pos
}

// offset returns the byte offset of position pos+d, for error reporting.
func (c *decodeContext) offset(d int) int64 {
	return int64(c.pos + d)
}

func (c *decodeContext) fail(msg string, d int) error {
	return newDecodeError(c.offset(d), msg)
}

// peek returns the byte at the cursor, or 0x00 at end of input. It never
// advances the cursor; a 0x00 result is not itself an error.
func peek(c *decodeContext) byte {
	if c.pos >= len(c.data) {
		return 0
	}
	return c.data[c.pos]
}

// next consumes one byte, failing with msg if the input is exhausted.
func next(c *decodeContext, msg string) (byte, error) {
	if c.pos >= len(c.data) {
		return 0, c.fail(msg, 0)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// skip advances n bytes, failing if fewer than n remain.
func skip(c *decodeContext, n int) error {
	if c.remaining() < n {
		return c.fail(msgUnexpectedEOF, 0)
	}
	c.pos += n
	return nil
}

// skipPastWhitespace advances past a run of {' ', '\t', '\n', '\r'}. It never
// fails and stops at end of input. Delegates to a pluggable fast path
// (fastpath.go) when one is registered.
func skipPastWhitespace(c *decodeContext) {
	if skipWhitespaceFast != nil {
		c.pos = skipWhitespaceFast(c.data, c.pos)
		return
	}
	for c.pos < len(c.data) {
		switch c.data[c.pos] {
		case ' ', '\t', '\n', '\r':
			c.pos++
		default:
			return
		}
	}
}

// advancePast consumes one byte, failing with "Unexpected input" at the
// offset of that byte if it does not equal ch.
func advancePast(c *decodeContext, ch byte) error {
	if c.pos >= len(c.data) {
		return c.fail(msgUnexpectedEOF, 0)
	}
	if c.data[c.pos] != ch {
		return c.fail(msgUnexpectedInput, 0)
	}
	c.pos++
	return nil
}

// advancePastFour requires 4 bytes remain and equal s[0..4], advancing past
// them. Used for matching literal tails ("true", "alse", "null").
func advancePastFour(c *decodeContext, s string) error {
	if c.remaining() < 4 {
		return c.fail(msgUnexpectedEOF, 0)
	}
	if c.data[c.pos] != s[0] || c.data[c.pos+1] != s[1] || c.data[c.pos+2] != s[2] || c.data[c.pos+3] != s[3] {
		return c.fail(msgUnexpectedInput, 0)
	}
	c.pos += 4
	return nil
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// advancePastStringEscape consumes the byte(s) after a backslash inside a
// JSON string, validating but not decoding them.
func advancePastStringEscape(c *decodeContext) error {
	b, err := next(c, msgUnterminatedString)
	if err != nil {
		return err
	}
	switch b {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return nil
	case 'u':
		if c.remaining() < 4 {
			return c.fail(msgBadUnicodeEscape, 0)
		}
		ok := isHexDigit(c.data[c.pos]) && isHexDigit(c.data[c.pos+1]) &&
			isHexDigit(c.data[c.pos+2]) && isHexDigit(c.data[c.pos+3])
		if !ok {
			return c.fail(msgBadUnicodeEscape, 0)
		}
		c.pos += 4
		return nil
	default:
		return c.fail(msgInvalidEscape, -1)
	}
}

// advancePastString consumes a full JSON string without producing its
// decoded value: expects '"', then bytes up to an unescaped '"', validating
// escapes along the way. Used by skip_value and by object-key skipping; the
// string codec (scalars.go) has its own decoding pass for when the value is
// actually needed.
func advancePastString(c *decodeContext) error {
	if err := advancePast(c, '"'); err != nil {
		return err
	}
	for {
		b, err := next(c, msgUnterminatedString)
		if err != nil {
			return err
		}
		switch b {
		case '"':
			return nil
		case '\\':
			if err := advancePastStringEscape(c); err != nil {
				return err
			}
		}
	}
}

// advancePastCommaSeparated drives the shared object/array grammar: consume
// intro, skip whitespace, and if the next byte isn't outro, call parse()
// once then repeatedly after each comma, until outro is reached; consume
// outro. parse must either advance the cursor past one element or return an
// error; this is a documented pre-condition, violating it would make this
// driver loop forever.
func advancePastCommaSeparated(c *decodeContext, intro, outro byte, parse func() error) error {
	if err := advancePast(c, intro); err != nil {
		return err
	}
	skipPastWhitespace(c)

	if peek(c) != outro {
		if err := parse(); err != nil {
			return err
		}
		skipPastWhitespace(c)

		for peek(c) != outro {
			if err := advancePast(c, ','); err != nil {
				return err
			}
			skipPastWhitespace(c)
			if err := parse(); err != nil {
				return err
			}
			skipPastWhitespace(c)
		}
	}

	c.pos++ // past outro; peek() already confirmed it's there
	return nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// skipNumber advances past a well-formed JSON number: optional sign,
// integer part, optional fractional part, optional exponent.
func skipNumber(c *decodeContext) error {
	start := c.pos
	if peek(c) == '-' {
		c.pos++
	}
	if !isDigit(peek(c)) {
		c.pos = start
		return c.fail(msgUnexpectedInput, 0)
	}
	for isDigit(peek(c)) {
		c.pos++
	}
	if peek(c) == '.' {
		c.pos++
		if !isDigit(peek(c)) {
			return c.fail(msgUnexpectedInput, 0)
		}
		for isDigit(peek(c)) {
			c.pos++
		}
	}
	if b := peek(c); b == 'e' || b == 'E' {
		c.pos++
		if b := peek(c); b == '+' || b == '-' {
			c.pos++
		}
		if !isDigit(peek(c)) {
			return c.fail(msgUnexpectedInput, 0)
		}
		for isDigit(peek(c)) {
			c.pos++
		}
	}
	return nil
}

// skipValue advances past any well-formed JSON value without producing it.
func skipValue(c *decodeContext) error {
	switch peek(c) {
	case '{':
		return advancePastCommaSeparated(c, '{', '}', func() error {
			if err := advancePastString(c); err != nil {
				return err
			}
			skipPastWhitespace(c)
			if err := advancePast(c, ':'); err != nil {
				return err
			}
			skipPastWhitespace(c)
			return skipValue(c)
		})
	case '[':
		return advancePastCommaSeparated(c, '[', ']', func() error {
			return skipValue(c)
		})
	case '"':
		return advancePastString(c)
	case 't':
		return advancePastFour(c, "true")
	case 'f':
		if _, err := next(c, msgUnexpectedEOF); err != nil {
			return err
		}
		return advancePastFour(c, "alse")
	case 'n':
		return advancePastFour(c, "null")
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return skipNumber(c)
	default:
		if c.pos >= len(c.data) {
			return c.fail(msgUnexpectedEOF, 0)
		}
		return c.fail(msgUnexpectedInput, 0)
	}
}
