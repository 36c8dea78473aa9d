package sigscan

import (
	"fmt"
	"strings"
)

// Address represents a memory address
type Address uint64

// String returns the hexadecimal representation of the address
func (a Address) String() string {
	return fmt.Sprintf("0x%X", uint64(a))
}

// Match is one hit: where the pattern started and the Len() bytes found there.
type Match struct {
	Address Address
	Data    []byte
}

// Content returns the data as a UTF-8 string, dropping invalid UTF-8 sequences
func (m Match) Content() string {
	return strings.ToValidUTF8(string(m.Data), "")
}

// MatchHandler is called for each match. Returning false ends the scan
// without an error.
type MatchHandler func(match Match) bool

// ScanOptions controls a ProcessScanner.Scan call.
type ScanOptions struct {
	// Pattern is the compiled signature; its padding is never matched as content.
	Pattern *Pattern
	// IgnoreCase folds ASCII letters on concrete (non-wildcard) bytes.
	IgnoreCase bool
	// MinAddress is the first address scanned. Regions starting below it are clipped.
	MinAddress Address
	// MaxAddress bounds the scan: reads stop before this address.
	MaxAddress Address
	// Handler receives matches in ascending address order within each region.
	// A nil Handler accepts every match.
	Handler MatchHandler
}

// region is a readable span of a target's address space.
type region struct {
	base Address
	size uint64
}

// memoryReader is the platform-specific view of a process address space.
type memoryReader interface {
	// regions calls yield for each readable region intersecting [lo, hi)
	// until yield returns false or an error occurs.
	regions(lo, hi Address, yield func(region) bool) error
	// read fills buf from addr and returns the number of bytes read.
	read(addr Address, buf []byte) (int, error)
	close() error
}
