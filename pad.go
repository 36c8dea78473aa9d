package sigscan

// Alignment is the padding boundary expected by the chunked matcher.
const Alignment = 32

// PaddedLen rounds n up to the next multiple of Alignment.
//
//	PaddedLen(0)  = 0
//	PaddedLen(1)  = 32
//	PaddedLen(32) = 32
//	PaddedLen(33) = 64
func PaddedLen(n int) int {
	return PadTo(n, Alignment)
}

// PadTo rounds n up to the next multiple of boundary. It panics if boundary
// is not positive.
func PadTo(n, boundary int) int {
	if boundary <= 0 {
		panic("sigscan: padding boundary must be positive")
	}
	return (n + boundary - 1) / boundary * boundary
}
