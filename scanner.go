package sigscan

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ProcessScanner scans the memory of a single process.
type ProcessScanner struct {
	pid    uint32
	mem    memoryReader
	logger *log.Logger
}

// ProcessOption configures a ProcessScanner.
type ProcessOption func(*ProcessScanner)

// WithLogger sets the logger used for per-region diagnostics.
func WithLogger(logger *log.Logger) ProcessOption {
	return func(s *ProcessScanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// OpenProcess opens the process with the given ID for memory reads.
func OpenProcess(pid uint32, opts ...ProcessOption) (*ProcessScanner, error) {
	s := &ProcessScanner{
		pid:    pid,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	mem, err := openMemory(pid)
	if err != nil {
		return nil, fmt.Errorf("failed to open process %d: %w", pid, err)
	}
	s.mem = mem
	s.logger = s.logger.With("pid", pid)

	return s, nil
}

// Close releases the process handle
func (s *ProcessScanner) Close() error {
	if s.mem == nil {
		return nil
	}
	err := s.mem.close()
	s.mem = nil
	return err
}

// PID returns the process ID that this scanner is attached to
func (s *ProcessScanner) PID() uint32 {
	return s.pid
}

// Scan scans the process memory for the specified pattern
func (s *ProcessScanner) Scan(ctx context.Context, opts ScanOptions) error {
	if opts.Pattern == nil || opts.Pattern.Len() == 0 {
		return fmt.Errorf("invalid pattern: %w", ErrEmptyPattern)
	}
	if opts.Handler == nil {
		opts.Handler = func(Match) bool { return true }
	}

	matcher := NewScanner(opts.Pattern, WithIgnoreCase(opts.IgnoreCase))

	var scanErr error
	err := s.mem.regions(opts.MinAddress, opts.MaxAddress, func(r region) bool {
		if err := ctx.Err(); err != nil {
			scanErr = err
			return false
		}

		stop, err := s.scanRegion(ctx, r, opts.MaxAddress, matcher, opts.Handler)
		if err != nil {
			scanErr = err
			return false
		}
		return !stop
	})
	if scanErr != nil {
		return scanErr
	}
	if err != nil {
		return fmt.Errorf("failed to enumerate memory regions: %w", err)
	}

	return nil
}

// scanRegion scans a specific memory region for matches. It reports whether
// the handler asked to stop.
func (s *ProcessScanner) scanRegion(ctx context.Context, r region, maxAddress Address,
	matcher *Scanner, handler MatchHandler) (bool, error) {

	// Calculate read bounds
	readEnd := uint64(r.base) + r.size
	if readEnd > uint64(maxAddress) {
		readEnd = uint64(maxAddress)
	}
	if readEnd <= uint64(r.base) {
		return false, nil
	}

	buffer := make([]byte, readEnd-uint64(r.base))
	n, err := s.mem.read(r.base, buffer)
	if err != nil || n == 0 {
		s.logger.Debug("region unreadable", "base", r.base, "size", len(buffer), "err", err)
		return false, nil
	}

	// Trim buffer to actual bytes read
	buffer = buffer[:n]

	matches := matcher.FindAll(buffer)
	if len(matches) > 0 {
		s.logger.Debug("region matched", "base", r.base, "size", n, "matches", len(matches))
	}

	patternLen := matcher.Pattern().Len()
	for _, offset := range matches {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		matchedData := make([]byte, patternLen)
		copy(matchedData, buffer[offset:offset+patternLen])

		match := Match{
			Address: r.base + Address(offset),
			Data:    matchedData,
		}

		// Call handler and stop if requested
		if !handler(match) {
			return true, nil
		}
	}

	return false, nil
}
