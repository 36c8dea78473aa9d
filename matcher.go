package sigscan

import (
	"bytes"
	"encoding/binary"
)

// Scanner finds a compiled Pattern in byte slices.
//
// A Scanner is read-only after construction and may be shared between
// goroutines.
type Scanner struct {
	pattern    *Pattern
	ignoreCase bool
	folded     []byte // upper-cased pattern data, set when ignoreCase
	anchor     int    // index of the first concrete byte, -1 if none
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithIgnoreCase folds ASCII letters before comparing concrete bytes.
func WithIgnoreCase(ignore bool) ScannerOption {
	return func(s *Scanner) {
		s.ignoreCase = ignore
	}
}

// NewScanner creates a Scanner for p.
func NewScanner(p *Pattern, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		pattern: p,
		anchor:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}

	mask := p.Mask()
	for i := 0; i < p.Len(); i++ {
		if mask[i] != 0 {
			s.anchor = i
			break
		}
	}

	if s.ignoreCase {
		s.folded = make([]byte, p.Len())
		for i, b := range p.Data()[:p.Len()] {
			s.folded[i] = upper(b)
		}
	}

	return s
}

// Pattern returns the pattern being searched for.
func (s *Scanner) Pattern() *Pattern {
	return s.pattern
}

// Find returns the offset of the first match in haystack, or -1.
func (s *Scanner) Find(haystack []byte) int {
	return s.next(haystack, 0)
}

// FindAll returns the offsets of all matches in haystack, including
// overlapping ones.
func (s *Scanner) FindAll(haystack []byte) []int {
	var matches []int
	for pos := s.next(haystack, 0); pos >= 0; pos = s.next(haystack, pos+1) {
		matches = append(matches, pos)
	}
	return matches
}

// Matches reports whether the pattern matches at the start of window.
func (s *Scanner) Matches(window []byte) bool {
	n := s.pattern.Len()
	if n == 0 || len(window) < n {
		return false
	}
	return s.matchAt(window, 0)
}

func (s *Scanner) next(haystack []byte, from int) int {
	n := s.pattern.Len()
	if n == 0 {
		return -1
	}

	last := len(haystack) - n
	for i := from; i <= last; i++ {
		if s.anchor >= 0 && !s.ignoreCase {
			// Skip ahead to the next occurrence of the first concrete byte.
			j := bytes.IndexByte(haystack[i+s.anchor:last+s.anchor+1], s.pattern.Data()[s.anchor])
			if j < 0 {
				return -1
			}
			i += j
		}
		if s.matchAt(haystack, i) {
			return i
		}
	}
	return -1
}

func (s *Scanner) matchAt(haystack []byte, pos int) bool {
	if s.ignoreCase {
		return s.matchFolded(haystack[pos : pos+s.pattern.Len()])
	}
	if pos+s.pattern.PaddedLen() <= len(haystack) {
		return matchWords(haystack[pos:pos+s.pattern.PaddedLen()], s.pattern.Data(), s.pattern.Mask())
	}
	return matchBytes(haystack[pos:pos+s.pattern.Len()], s.pattern.Data(), s.pattern.Mask())
}

func (s *Scanner) matchFolded(window []byte) bool {
	mask := s.pattern.Mask()
	for i, b := range window {
		if mask[i] != 0 && upper(b) != s.folded[i] {
			return false
		}
	}
	return true
}

// matchWords compares a full padded window eight bytes at a time. Padding
// positions carry a zero mask and never mismatch.
func matchWords(window, data, mask []byte) bool {
	k := 0
	for ; k+8 <= len(data); k += 8 {
		w := binary.LittleEndian.Uint64(window[k:])
		d := binary.LittleEndian.Uint64(data[k:])
		m := binary.LittleEndian.Uint64(mask[k:])
		if (w^d)&m != 0 {
			return false
		}
	}
	return matchBytes(window[k:], data[k:], mask[k:])
}

func matchBytes(window, data, mask []byte) bool {
	for i, b := range window {
		if (b^data[i])&mask[i] != 0 {
			return false
		}
	}
	return true
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
