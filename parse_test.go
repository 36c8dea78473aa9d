package sigscan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		data []byte
		mask []byte
	}{
		{
			name: "mixed tokens",
			text: "a0 9e 87 00 ?? 5c",
			data: []byte{0xA0, 0x9E, 0x87, 0x00, 0x00, 0x5C},
			mask: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0xFF},
		},
		{
			name: "empty",
			text: "",
			data: []byte{},
			mask: []byte{},
		},
		{
			name: "only spaces",
			text: "    ",
			data: []byte{},
			mask: []byte{},
		},
		{
			name: "single wildcard",
			text: "?",
			data: []byte{0x00},
			mask: []byte{0x00},
		},
		{
			name: "double wildcard",
			text: "??",
			data: []byte{0x00},
			mask: []byte{0x00},
		},
		{
			name: "four wildcards without spaces",
			text: "????",
			data: []byte{0x00, 0x00},
			mask: []byte{0x00, 0x00},
		},
		{
			name: "three wildcards",
			text: "???",
			data: []byte{0x00, 0x00},
			mask: []byte{0x00, 0x00},
		},
		{
			name: "uppercase",
			text: "AF",
			data: []byte{0xAF},
			mask: []byte{0xFF},
		},
		{
			name: "no separators",
			text: "4889??5c",
			data: []byte{0x48, 0x89, 0x00, 0x5C},
			mask: []byte{0xFF, 0xFF, 0x00, 0xFF},
		},
		{
			name: "repeated spaces",
			text: "  48   8b  ",
			data: []byte{0x48, 0x8B},
			mask: []byte{0xFF, 0xFF},
		},
		{
			name: "odd trailing nibble",
			text: "48 8",
			data: []byte{0x48, 0x80},
			mask: []byte{0xFF, 0xFF},
		},
		{
			name: "single character pairs with following space",
			text: "a b",
			data: []byte{0xA0, 0xB0},
			mask: []byte{0xFF, 0xFF},
		},
		{
			name: "unknown characters map to zero",
			text: "x- .1",
			data: []byte{0x10, 0x01},
			mask: []byte{0xFF, 0xFF},
		},
		{
			name: "letters past f overflow the nibble",
			text: "zz",
			data: []byte{0x33},
			mask: []byte{0xFF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.text)
			require.NoError(t, err)

			data, mask := p.Bytes()
			assert.Equal(t, len(tt.data), p.Len)
			assert.Equal(t, tt.data, data)
			assert.Equal(t, tt.mask, mask)
		})
	}
}

func TestNibble(t *testing.T) {
	assert.Equal(t, byte(0x0), nibble('0'))
	assert.Equal(t, byte(0x9), nibble('9'))
	assert.Equal(t, byte(0xA), nibble('a'))
	assert.Equal(t, byte(0xF), nibble('F'))
	assert.Equal(t, byte(0x23), nibble('z'))
	assert.Equal(t, byte(0x0), nibble('?'))
	assert.Equal(t, byte(0x0), nibble(0))
}

func TestParseCaseInsensitive(t *testing.T) {
	upper, err := Parse("AF 9E C3")
	require.NoError(t, err)
	lower, err := Parse("af 9e c3")
	require.NoError(t, err)

	assert.Equal(t, upper, lower)
	assert.Equal(t, byte(0xAF), upper.Data[0])
}

func TestParseCapacity(t *testing.T) {
	full := strings.TrimSpace(strings.Repeat("90 ", MaxPatternLen))

	p, err := Parse(full)
	require.NoError(t, err)
	assert.Equal(t, MaxPatternLen, p.Len)

	// Separators after a full pattern emit nothing and are accepted.
	p, err = Parse(full + "   ")
	require.NoError(t, err)
	assert.Equal(t, MaxPatternLen, p.Len)

	for _, extra := range []string{" 90", " ?", " ??"} {
		p, err = Parse(full + extra)
		require.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, ParsedPattern{}, p, "no partial result on overflow")
	}
}

func TestMustParse(t *testing.T) {
	p := MustParse("a0 ?? 5c")
	assert.Equal(t, 3, p.Len)

	overflow := strings.Repeat("??", MaxPatternLen+1)
	assert.Panics(t, func() { MustParse(overflow) })
}

func TestMustParseDoesNotAllocate(t *testing.T) {
	text := strings.Repeat("48 8b ?? ", 80)

	var sink int
	allocs := testing.AllocsPerRun(100, func() {
		p := MustParse(text)
		sink += p.Len
	})

	assert.Zero(t, allocs)
	assert.NotZero(t, sink)
}

func TestParseTailIsZero(t *testing.T) {
	p := MustParse("ff ff ff")
	for i := p.Len; i < MaxPatternLen; i++ {
		require.Zero(t, p.Data[i])
		require.Zero(t, p.Mask[i])
	}
}
