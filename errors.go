package sigscan

import "errors"

var (
	// ErrCapacityExceeded is returned when pattern text needs more than
	// MaxPatternLen output bytes.
	ErrCapacityExceeded = errors.New("pattern exceeds maximum length")

	// ErrEmptyPattern is returned when a scan is requested with no pattern.
	ErrEmptyPattern = errors.New("empty pattern")

	// ErrMismatchedBuffers is returned by NewPattern when the data and mask
	// buffers disagree in length or are shorter than the unpadded length.
	ErrMismatchedBuffers = errors.New("mismatched pattern buffers")

	// ErrInvalidAlignment is returned for a padding boundary that is not a
	// positive power of two.
	ErrInvalidAlignment = errors.New("invalid alignment")

	// ErrProcessNotFound is returned when no running process matches a name.
	ErrProcessNotFound = errors.New("process not found")

	// ErrUnsupportedPlatform is returned by process access on platforms
	// without a memory reader.
	ErrUnsupportedPlatform = errors.New("process scanning not supported on this platform")
)
