package apexJSON

import (
	"strings"
	"sync"
)

// Pooling strategy adapted from the teacher's memory_management.go: tiered
// buffer pools by size class, plus pools for the small scratch values that
// would otherwise allocate on every decode/encode call.

var (
	tinyBuffers = sync.Pool{
		New: func() interface{} { return &Buffer{buf: make([]byte, 0, 64)} },
	}
	smallBuffers = sync.Pool{
		New: func() interface{} { return &Buffer{buf: make([]byte, 0, 256)} },
	}
	mediumBuffers = sync.Pool{
		New: func() interface{} { return &Buffer{buf: make([]byte, 0, 1024)} },
	}
	largeBuffers = sync.Pool{
		New: func() interface{} { return &Buffer{buf: make([]byte, 0, 4096)} },
	}

	builderPool = sync.Pool{
		New: func() interface{} { return &strings.Builder{} },
	}

	numberBufPool = sync.Pool{
		New: func() interface{} { b := make([]byte, 0, 24); return &b },
	}
)

func init() {
	warmupPools()
}

// warmupPools pre-populates the size tiers so the first real decode/encode
// of a process doesn't pay pool-miss allocation cost.
func warmupPools() {
	for i := 0; i < 32; i++ {
		tinyBuffers.Put(&Buffer{buf: make([]byte, 0, 64)})
		smallBuffers.Put(&Buffer{buf: make([]byte, 0, 256)})
		mediumBuffers.Put(&Buffer{buf: make([]byte, 0, 1024)})
	}
	for i := 0; i < 4; i++ {
		largeBuffers.Put(&Buffer{buf: make([]byte, 0, 4096)})
	}
}

// getBuffer returns a pooled Buffer from the size tier matching sizeHint.
// Only hints above 4096 are guaranteed at least that capacity; a buffer from
// a smaller tier may start below the hint and grows on append.
func getBuffer(sizeHint int) *Buffer {
	var buf *Buffer
	switch {
	case sizeHint <= 64:
		buf = tinyBuffers.Get().(*Buffer)
	case sizeHint <= 256:
		buf = smallBuffers.Get().(*Buffer)
	case sizeHint <= 4096:
		buf = mediumBuffers.Get().(*Buffer)
	default:
		buf = largeBuffers.Get().(*Buffer)
		if cap(buf.buf) < sizeHint {
			buf.buf = make([]byte, 0, sizeHint)
		}
	}
	buf.buf = buf.buf[:0]
	return buf
}

// putBuffer returns buf to the pool matching its capacity. Oversize buffers
// are dropped rather than pooled, so one pathological encode doesn't pin a
// huge backing array in the pool forever.
func putBuffer(buf *Buffer) {
	if buf == nil || cap(buf.buf) > 65536 {
		return
	}
	buf.Reset()
	switch {
	case cap(buf.buf) <= 64:
		tinyBuffers.Put(buf)
	case cap(buf.buf) <= 256:
		smallBuffers.Put(buf)
	case cap(buf.buf) <= 4096:
		mediumBuffers.Put(buf)
	default:
		largeBuffers.Put(buf)
	}
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	builderPool.Put(b)
}

func getNumberBuf() *[]byte {
	return numberBufPool.Get().(*[]byte)
}

func putNumberBuf(b *[]byte) {
	*b = (*b)[:0]
	numberBufPool.Put(b)
}
