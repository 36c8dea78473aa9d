package sigscan

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

type linuxMemory struct {
	pid int
}

func openMemory(pid uint32) (memoryReader, error) {
	if _, err := os.Stat(fmt.Sprintf("/proc/%d/maps", pid)); err != nil {
		return nil, err
	}
	return &linuxMemory{pid: int(pid)}, nil
}

func (m *linuxMemory) regions(lo, hi Address, yield func(region) bool) error {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", m.pid))
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		start, end, readable, ok := parseMapsLine(sc.Text())
		if !ok || !readable {
			continue
		}

		start = max(start, uint64(lo))
		end = min(end, uint64(hi))
		if start >= end {
			continue
		}

		if !yield(region{base: Address(start), size: end - start}) {
			return nil
		}
	}

	return sc.Err()
}

// parseMapsLine parses "start-end perms offset dev inode [path]".
func parseMapsLine(line string) (start, end uint64, readable, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, false, false
	}

	lo, hi, found := strings.Cut(fields[0], "-")
	if !found {
		return 0, 0, false, false
	}

	start, err := strconv.ParseUint(lo, 16, 64)
	if err != nil {
		return 0, 0, false, false
	}
	end, err = strconv.ParseUint(hi, 16, 64)
	if err != nil {
		return 0, 0, false, false
	}

	return start, end, strings.HasPrefix(fields[1], "r"), true
}

func (m *linuxMemory) read(addr Address, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	local := []unix.Iovec{{Base: &buf[0]}}
	local[0].SetLen(len(buf))
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(buf)}}

	return unix.ProcessVMReadv(m.pid, local, remote, 0)
}

func (m *linuxMemory) close() error {
	return nil
}
