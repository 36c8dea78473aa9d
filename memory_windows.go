package sigscan

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

type windowsMemory struct {
	handle windows.Handle
}

func openMemory(pid uint32) (memoryReader, error) {
	handle, err := windows.OpenProcess(
		windows.PROCESS_VM_READ|windows.PROCESS_QUERY_INFORMATION,
		false,
		pid,
	)
	if err != nil {
		return nil, err
	}
	return &windowsMemory{handle: handle}, nil
}

func (m *windowsMemory) regions(lo, hi Address, yield func(region) bool) error {
	var mbi windows.MemoryBasicInformation
	address := uint64(lo)

	for address < uint64(hi) {
		// VirtualQueryEx fails once the address passes the top of user space.
		if err := windows.VirtualQueryEx(m.handle, uintptr(address), &mbi, unsafe.Sizeof(mbi)); err != nil {
			return nil
		}

		baseAddr := uint64(mbi.BaseAddress)
		regionSize := uint64(mbi.RegionSize)

		if isReadableRegion(&mbi) {
			// The first region may start below lo.
			start := max(baseAddr, uint64(lo))
			if !yield(region{base: Address(start), size: baseAddr + regionSize - start}) {
				return nil
			}
		}

		address = baseAddr + regionSize
		if regionSize == 0 {
			address++
		}
	}

	return nil
}

// isReadableRegion checks if a memory region is committed and readable
func isReadableRegion(mbi *windows.MemoryBasicInformation) bool {
	isReadable := mbi.Protect&(windows.PAGE_READONLY|windows.PAGE_READWRITE|
		windows.PAGE_EXECUTE_READ|windows.PAGE_EXECUTE_READWRITE) != 0
	isGuarded := mbi.Protect&windows.PAGE_GUARD != 0
	isCommitted := mbi.State == windows.MEM_COMMIT

	return isReadable && !isGuarded && isCommitted
}

func (m *windowsMemory) read(addr Address, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	var bytesRead uintptr
	err := windows.ReadProcessMemory(m.handle, uintptr(addr), &buf[0], uintptr(len(buf)), &bytesRead)
	if err != nil && bytesRead == 0 {
		return 0, err
	}
	// ERROR_PARTIAL_COPY still yields a usable prefix.
	return int(bytesRead), nil
}

func (m *windowsMemory) close() error {
	if m.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(m.handle)
	m.handle = 0
	return err
}
