package apexJSON

// Path-based extraction: find the raw JSON bytes for a dotted path of
// object keys and array indices without decoding into a Go type. This is
// opt-in helper surface, not part of the core codec/object/scanner layers;
// grounded on the teacher's Extract/GetObject/GetArray (apexJSON.go),
// reworked to scan with decodeContext instead of the reflection-era Parser,
// and cross-checked in extract_test.go against tidwall/gjson, which the
// teacher's own tests use as a differential oracle.

// Extract returns the raw JSON bytes for the value found by walking path
// through data, one key or array index per element. An array index is a
// path element consisting only of decimal digits. It returns ok=false if
// any step of the path does not exist or the bytes it scans on the way are
// malformed; input after the extracted value is not checked.
func Extract(data []byte, path ...string) ([]byte, bool) {
	ctx := newDecodeContext(data)
	skipPastWhitespace(ctx)

	for _, key := range path {
		if n, isIndex := parseIndex(key); isIndex {
			if !descendArray(ctx, n) {
				return nil, false
			}
			continue
		}
		if !descendObject(ctx, key) {
			return nil, false
		}
	}

	start := ctx.pos
	if err := skipValue(ctx); err != nil {
		return nil, false
	}
	return data[start:ctx.pos], true
}

func parseIndex(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// descendObject advances ctx to the start of the value for key within the
// object ctx is positioned at, or returns false if key is absent or ctx is
// not positioned at an object. Unlike advancePastCommaSeparated (the
// object/array driver the object and array codecs use), this stops as soon
// as it finds the target member instead of requiring every element to be
// fully consumed, so it cannot share that driver.
func descendObject(ctx *decodeContext, key string) bool {
	if err := advancePast(ctx, '{'); err != nil {
		return false
	}
	skipPastWhitespace(ctx)
	if peek(ctx) == '}' {
		return false
	}
	for {
		k, err := decodeJSONString(ctx)
		if err != nil {
			return false
		}
		skipPastWhitespace(ctx)
		if err := advancePast(ctx, ':'); err != nil {
			return false
		}
		skipPastWhitespace(ctx)
		if k == key {
			return true
		}
		if err := skipValue(ctx); err != nil {
			return false
		}
		skipPastWhitespace(ctx)
		switch peek(ctx) {
		case ',':
			ctx.pos++
			skipPastWhitespace(ctx)
		case '}':
			return false
		default:
			return false
		}
	}
}

// descendArray advances ctx to the start of element n of the array ctx is
// positioned at, or returns false if n is out of range or ctx is not
// positioned at an array.
func descendArray(ctx *decodeContext, n int) bool {
	if err := advancePast(ctx, '['); err != nil {
		return false
	}
	skipPastWhitespace(ctx)
	if peek(ctx) == ']' {
		return false
	}
	for i := 0; ; i++ {
		if i == n {
			return true
		}
		if err := skipValue(ctx); err != nil {
			return false
		}
		skipPastWhitespace(ctx)
		switch peek(ctx) {
		case ',':
			ctx.pos++
			skipPastWhitespace(ctx)
		case ']':
			return false
		default:
			return false
		}
	}
}
