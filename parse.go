package sigscan

import (
	"fmt"
	"strconv"
)

// MaxPatternLen is the largest number of bytes a single pattern may encode.
const MaxPatternLen = 256

// ParsedPattern is the fixed-capacity result of parsing pattern text.
//
// Only the first Len entries of Data and Mask are meaningful. Mask entries
// are 0xFF for a concrete byte and 0x00 for a wildcard. The fields are
// exported so a parsed pattern can be written out as a Go composite literal
// and built at runtime without re-parsing (see internal/codegen).
type ParsedPattern struct {
	Data [MaxPatternLen]byte
	Mask [MaxPatternLen]byte
	Len  int
}

// Bytes returns views of the meaningful prefix of Data and Mask.
func (p *ParsedPattern) Bytes() (data, mask []byte) {
	return p.Data[:p.Len], p.Mask[:p.Len]
}

// Parse scans IDA-style pattern text such as "a0 9e ?? 5c".
//
// Tokens are two-character hex pairs or a wildcard ("?" or "??", both one
// byte), separated by any number of spaces. Characters outside [0-9a-zA-Z]
// contribute zero to their nibble instead of failing. Text that would
// produce more than MaxPatternLen bytes returns an error wrapping
// ErrCapacityExceeded.
func Parse(text string) (ParsedPattern, error) {
	var p ParsedPattern
	if at := parseInto(&p, text); at >= 0 {
		return ParsedPattern{}, fmt.Errorf("%w: %d bytes at offset %d", ErrCapacityExceeded, MaxPatternLen, at)
	}
	return p, nil
}

// MustParse is like Parse but panics on overflow. It does not allocate and
// is meant for package-level variable initialisation.
func MustParse(text string) ParsedPattern {
	var p ParsedPattern
	if at := parseInto(&p, text); at >= 0 {
		panic("sigscan: pattern exceeds 256 bytes at offset " + strconv.Itoa(at))
	}
	return p
}

// parseInto fills p from text. It returns the text offset of the token that
// overflowed, or -1 on success. p is left partially written on overflow and
// must be discarded by the caller.
func parseInto(p *ParsedPattern, text string) int {
	n := 0
	for i := 0; i < len(text); {
		c := text[i]
		var next byte
		if i+1 < len(text) {
			next = text[i+1]
		}

		switch c {
		case ' ':
			i++
			continue
		case '?':
			if n >= MaxPatternLen {
				return i
			}
			p.Data[n] = 0x00
			p.Mask[n] = 0x00
			n++
			i++
			if next == '?' {
				i++
			}
		default:
			if n >= MaxPatternLen {
				return i
			}
			p.Data[n] = nibble(c)<<4 | nibble(next)
			p.Mask[n] = 0xFF
			n++
			i += 2
		}
	}
	p.Len = n
	return -1
}

// nibble maps a pattern character to its value. Letters map past 0xF
// (g=0x10 and so on) and are truncated by the caller's byte arithmetic;
// anything else maps to zero.
func nibble(c byte) byte {
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a' + 0xA
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 0xA
	case c >= '0' && c <= '9':
		return c - '0'
	default:
		return 0
	}
}
