package apexJSON

// Buffer is the encode context: a growable output buffer with the small
// append primitives every codec builds its encoding on. Adapted from the
// teacher's pooled Buffer type, trimmed to the append-only shape an encode
// context needs (the teacher's read-side offset tracking has no use here).
type Buffer struct {
	buf []byte
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	b.grow(1)
	b.buf = append(b.buf, c)
}

// Append appends the given bytes.
func (b *Buffer) Append(p []byte) {
	b.grow(len(p))
	b.buf = append(b.buf, p...)
}

// AppendString appends the given string without an intermediate []byte copy.
func (b *Buffer) AppendString(s string) {
	b.grow(len(s))
	b.buf = append(b.buf, s...)
}

// AppendOrReplace is the trailing-comma trick: if the last emitted byte
// equals old, it is overwritten with newB; otherwise newB is appended. This
// is what lets the object codec emit "k:v," per field and fix up the final
// separator into a closing brace in one pass.
func (b *Buffer) AppendOrReplace(old, newB byte) {
	if n := len(b.buf); n > 0 && b.buf[n-1] == old {
		b.buf[n-1] = newB
		return
	}
	b.AppendByte(newB)
}

// Bytes returns the buffer's contents. The slice is only valid until the
// next call that grows the buffer.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}

// grow pre-sizes the backing array so the next n-byte append does not
// reallocate, using the teacher's geometric growth strategy (double below
// 8KB, 50% growth beyond) rather than relying solely on append's default.
func (b *Buffer) grow(n int) {
	needed := len(b.buf) + n
	curCap := cap(b.buf)
	if needed <= curCap {
		return
	}

	var newCap int
	switch {
	case curCap == 0:
		newCap = 64
		for newCap < needed {
			newCap <<= 1
		}
	case curCap < 8192:
		newCap = curCap * 2
		if newCap < needed {
			newCap = needed
		}
	default:
		newCap = curCap + curCap/2
		if newCap < needed {
			newCap = needed
		}
	}

	newBuf := make([]byte, len(b.buf), newCap)
	copy(newBuf, b.buf)
	b.buf = newBuf
}
