package aligned

import (
	"fmt"
	"unsafe"
)

// DefaultAlignment is the boundary used by New.
const DefaultAlignment = 32

// Bytes is an owned, aligned byte buffer. The zero value is an empty buffer.
type Bytes struct {
	buf []byte
}

// New copies src into a buffer aligned to DefaultAlignment.
func New(src []byte) Bytes {
	return NewWithAlignment(src, DefaultAlignment)
}

// NewWithAlignment copies src into a buffer whose first byte sits at an
// address divisible by alignment. It panics if alignment is not a positive
// power of two.
func NewWithAlignment(src []byte, alignment int) Bytes {
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		panic(fmt.Sprintf("aligned: alignment %d is not a power of two", alignment))
	}
	if len(src) == 0 {
		return Bytes{}
	}

	// Over-allocate so the start can be shifted up by at most alignment-1 bytes.
	// The backing array stays alive through the returned slice.
	raw := make([]byte, len(src)+alignment)
	addr := uintptr(unsafe.Pointer(&raw[0])) //nolint:gosec // unsafe is required for memory alignment
	offset := int((uintptr(alignment) - (addr & uintptr(alignment-1))) & uintptr(alignment-1))

	buf := raw[offset : offset+len(src) : offset+len(src)]
	copy(buf, src)
	return Bytes{buf: buf}
}

// Bytes returns the buffer contents. The slice must not be modified.
func (b Bytes) Bytes() []byte {
	return b.buf
}

// Len returns the buffer length in bytes.
func (b Bytes) Len() int {
	return len(b.buf)
}

// Aligned reports whether the buffer start is divisible by n.
// An empty buffer is trivially aligned.
func (b Bytes) Aligned(n int) bool {
	if len(b.buf) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&b.buf[0]))%uintptr(n) == 0 //nolint:gosec // unsafe is required for memory alignment
}
