// Package aligned provides owned byte buffers whose first element sits on a
// fixed address boundary.
//
// # Alignment
//
// Buffers default to 32-byte alignment so a scanner can load fixed-width
// chunks (AVX2 register width) without straddling the start boundary.
package aligned
