package sigscan

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FindProcessesByName finds all processes whose command name or executable
// base name equals name, ignoring case.
func FindProcessesByName(name string) ([]uint32, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate processes: %w", err)
	}

	var pids []uint32
	for _, entry := range entries {
		pid, err := strconv.ParseUint(entry.Name(), 10, 32)
		if err != nil || !entry.IsDir() {
			continue
		}

		if processMatches(filepath.Join("/proc", entry.Name()), name) {
			pids = append(pids, uint32(pid))
		}
	}

	if len(pids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrProcessNotFound, name)
	}

	return pids, nil
}

// processMatches compares name against comm, which the kernel truncates to
// 15 bytes, and then against the executable link.
func processMatches(dir, name string) bool {
	if comm, err := os.ReadFile(filepath.Join(dir, "comm")); err == nil {
		if strings.EqualFold(strings.TrimSpace(string(comm)), name) {
			return true
		}
	}
	if exe, err := os.Readlink(filepath.Join(dir, "exe")); err == nil {
		return strings.EqualFold(filepath.Base(exe), name)
	}
	return false
}
