package sigscan

import (
	"fmt"
	"strings"

	"github.com/zhuweiyou/sigscan/internal/aligned"
)

// Pattern is a compiled byte signature ready for scanning.
//
// Data and Mask are equal-length aligned buffers padded with zero bytes up to
// a multiple of the padding boundary. Padding is always a wildcard; Len
// reports how many leading positions carry real match semantics.
type Pattern struct {
	data        aligned.Bytes
	mask        aligned.Bytes
	unpaddedLen int
}

// NewPattern assembles a Pattern from prepared buffers.
func NewPattern(data, mask aligned.Bytes, unpaddedLen int) (*Pattern, error) {
	if data.Len() != mask.Len() {
		return nil, fmt.Errorf("%w: data has %d bytes, mask has %d", ErrMismatchedBuffers, data.Len(), mask.Len())
	}
	if unpaddedLen < 0 || unpaddedLen > data.Len() {
		return nil, fmt.Errorf("%w: unpadded length %d outside buffer of %d bytes", ErrMismatchedBuffers, unpaddedLen, data.Len())
	}

	return &Pattern{
		data:        data,
		mask:        mask,
		unpaddedLen: unpaddedLen,
	}, nil
}

// Build pads a parsed pattern to Alignment and copies it into aligned buffers.
func Build(p ParsedPattern) *Pattern {
	pat, err := build(p, Alignment)
	if err != nil {
		// Alignment is a power of two and parsed lengths are bounded.
		panic(err)
	}
	return pat
}

// BuildWithAlignment is like Build but pads to boundary, which must be a
// positive power of two. The buffers are aligned to the same boundary.
func BuildWithAlignment(p ParsedPattern, boundary int) (*Pattern, error) {
	if boundary <= 0 || boundary&(boundary-1) != 0 {
		return nil, fmt.Errorf("%w: %d is not a power of two", ErrInvalidAlignment, boundary)
	}
	return build(p, boundary)
}

func build(p ParsedPattern, boundary int) (*Pattern, error) {
	if p.Len < 0 || p.Len > MaxPatternLen {
		return nil, fmt.Errorf("%w: length %d", ErrCapacityExceeded, p.Len)
	}

	size := PadTo(p.Len, boundary)
	data := make([]byte, size)
	mask := make([]byte, size)
	copy(data, p.Data[:p.Len])
	copy(mask, p.Mask[:p.Len])

	return NewPattern(
		aligned.NewWithAlignment(data, boundary),
		aligned.NewWithAlignment(mask, boundary),
		p.Len,
	)
}

// Compile parses text and builds a Pattern from it.
func Compile(text string) (*Pattern, error) {
	parsed, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Build(parsed), nil
}

// MustCompile is like Compile but panics if the text is too long.
func MustCompile(text string) *Pattern {
	return Build(MustParse(text))
}

// Data returns the padded pattern bytes. The slice must not be modified.
func (p *Pattern) Data() []byte {
	return p.data.Bytes()
}

// Mask returns the padded mask bytes. The slice must not be modified.
func (p *Pattern) Mask() []byte {
	return p.mask.Bytes()
}

// Len returns the unpadded pattern length.
func (p *Pattern) Len() int {
	return p.unpaddedLen
}

// PaddedLen returns the length of the data and mask buffers.
func (p *Pattern) PaddedLen() int {
	return p.data.Len()
}

// String renders the pattern in canonical IDA form, e.g. "A0 9E ?? 5C".
func (p *Pattern) String() string {
	data, mask := p.Data(), p.Mask()

	var builder strings.Builder
	for i := 0; i < p.unpaddedLen; i++ {
		if i > 0 {
			builder.WriteByte(' ')
		}
		if mask[i] == 0 {
			builder.WriteString("??")
		} else {
			fmt.Fprintf(&builder, "%02X", data[i])
		}
	}
	return builder.String()
}
