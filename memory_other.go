//go:build !windows && !linux

package sigscan

import "fmt"

func openMemory(uint32) (memoryReader, error) {
	return nil, ErrUnsupportedPlatform
}

// FindProcessesByName is not available on this platform.
func FindProcessesByName(name string) ([]uint32, error) {
	return nil, fmt.Errorf("%w: cannot look up %s", ErrUnsupportedPlatform, name)
}
