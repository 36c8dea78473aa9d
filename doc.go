// Package sigscan compiles IDA-style byte signatures and searches memory for
// them.
//
// Pattern text is a sequence of two-character hex bytes and wildcards:
//
//	p := sigscan.MustCompile("a0 9e 87 00 ?? 5c")
//	offset := sigscan.NewScanner(p).Find(buf)
//
// A compiled Pattern holds a data buffer and a mask buffer (0xFF for a
// concrete byte, 0x00 for a wildcard), both padded with wildcards to a
// multiple of Alignment and allocated on a 32-byte boundary.
//
// Parsing can happen ahead of time. MustParse does not allocate and is
// suitable for package-level variables, and "sigscan gen" writes parsed
// patterns out as Go literals. Build turns either result into a Pattern
// identical to the one Compile produces.
package sigscan
