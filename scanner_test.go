package sigscan

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMemory serves regions from in-process byte slices.
type fakeMemory struct {
	blocks  map[Address][]byte
	order   []Address
	failAt  Address
	closed  bool
	listErr error
}

func (m *fakeMemory) regions(lo, hi Address, yield func(region) bool) error {
	for _, base := range m.order {
		end := base + Address(len(m.blocks[base]))
		if end <= lo || base >= hi {
			continue
		}
		if !yield(region{base: base, size: uint64(len(m.blocks[base]))}) {
			return nil
		}
	}
	return m.listErr
}

func (m *fakeMemory) read(addr Address, buf []byte) (int, error) {
	if addr == m.failAt {
		return 0, errors.New("access denied")
	}
	return copy(buf, m.blocks[addr]), nil
}

func (m *fakeMemory) close() error {
	m.closed = true
	return nil
}

func newFakeScanner(mem *fakeMemory) *ProcessScanner {
	return &ProcessScanner{pid: 42, mem: mem, logger: log.New(io.Discard)}
}

func testMemory() *fakeMemory {
	return &fakeMemory{
		blocks: map[Address][]byte{
			0x1000: []byte("....WeChat....wechat"),
			0x2000: []byte("nothing here"),
			0x3000: []byte("WeChat"),
		},
		order: []Address{0x1000, 0x2000, 0x3000},
	}
}

func TestProcessScannerScan(t *testing.T) {
	s := newFakeScanner(testMemory())

	var got []Match
	err := s.Scan(context.Background(), ScanOptions{
		Pattern:    MustCompile(StringToPattern("wechat", 0)),
		IgnoreCase: true,
		MaxAddress: 0x7FFFFFFFFFFF,
		Handler: func(m Match) bool {
			got = append(got, m)
			return true
		},
	})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, Address(0x1004), got[0].Address)
	assert.Equal(t, "WeChat", got[0].Content())
	assert.Equal(t, Address(0x100E), got[1].Address)
	assert.Equal(t, "wechat", got[1].Content())
	assert.Equal(t, "0x3000", got[2].Address.String())
}

func TestProcessScannerStopsWhenHandlerDeclines(t *testing.T) {
	s := newFakeScanner(testMemory())

	calls := 0
	err := s.Scan(context.Background(), ScanOptions{
		Pattern:    MustCompile(StringToPattern("WeChat", 0)),
		MaxAddress: 0x7FFFFFFFFFFF,
		Handler: func(Match) bool {
			calls++
			return false
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestProcessScannerBounds(t *testing.T) {
	s := newFakeScanner(testMemory())

	var addrs []Address
	err := s.Scan(context.Background(), ScanOptions{
		Pattern:    MustCompile(StringToPattern("WeChat", 0)),
		MinAddress: 0x2000,
		MaxAddress: 0x4000,
		Handler: func(m Match) bool {
			addrs = append(addrs, m.Address)
			return true
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []Address{0x3000}, addrs)

	// A maximum inside a region truncates the read.
	addrs = nil
	err = s.Scan(context.Background(), ScanOptions{
		Pattern:    MustCompile(StringToPattern("WeChat", 0)),
		MaxAddress: 0x1008,
		Handler: func(m Match) bool {
			addrs = append(addrs, m.Address)
			return true
		},
	})
	require.NoError(t, err)
	assert.Empty(t, addrs)
}

func TestProcessScannerSkipsUnreadableRegions(t *testing.T) {
	mem := testMemory()
	mem.failAt = 0x1000
	s := newFakeScanner(mem)

	var addrs []Address
	err := s.Scan(context.Background(), ScanOptions{
		Pattern:    MustCompile(StringToPattern("WeChat", 0)),
		MaxAddress: 0x7FFFFFFFFFFF,
		Handler: func(m Match) bool {
			addrs = append(addrs, m.Address)
			return true
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []Address{0x3000}, addrs)
}

func TestProcessScannerErrors(t *testing.T) {
	s := newFakeScanner(testMemory())

	err := s.Scan(context.Background(), ScanOptions{MaxAddress: 0x7FFFFFFFFFFF})
	assert.ErrorIs(t, err, ErrEmptyPattern)

	err = s.Scan(context.Background(), ScanOptions{Pattern: MustCompile(""), MaxAddress: 0x7FFFFFFFFFFF})
	assert.ErrorIs(t, err, ErrEmptyPattern)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Scan(ctx, ScanOptions{Pattern: MustCompile("57"), MaxAddress: 0x7FFFFFFFFFFF})
	assert.ErrorIs(t, err, context.Canceled)

	mem := testMemory()
	mem.listErr = errors.New("maps unavailable")
	err = newFakeScanner(mem).Scan(context.Background(), ScanOptions{Pattern: MustCompile("57"), MaxAddress: 0x7FFFFFFFFFFF})
	assert.ErrorContains(t, err, "maps unavailable")
}

func TestProcessScannerClose(t *testing.T) {
	mem := testMemory()
	s := newFakeScanner(mem)

	assert.Equal(t, uint32(42), s.PID())
	require.NoError(t, s.Close())
	assert.True(t, mem.closed)
	assert.NoError(t, s.Close())
}

func TestProcessScannerMaxAddressIsExclusive(t *testing.T) {
	s := newFakeScanner(testMemory())
	pattern := MustCompile(StringToPattern("WeChat", 0))

	count := func(maxAddr Address) int {
		n := 0
		err := s.Scan(context.Background(), ScanOptions{
			Pattern:    pattern,
			MinAddress: 0x3000,
			MaxAddress: maxAddr,
			Handler: func(Match) bool {
				n++
				return true
			},
		})
		require.NoError(t, err)
		return n
	}

	// "WeChat" occupies [0x3000, 0x3006).
	assert.Equal(t, 1, count(0x3006))
	assert.Equal(t, 0, count(0x3005))
}

func TestProcessScannerNilHandler(t *testing.T) {
	s := newFakeScanner(testMemory())
	err := s.Scan(context.Background(), ScanOptions{
		Pattern:    MustCompile("57 65"),
		MaxAddress: 0x7FFFFFFFFFFF,
	})
	assert.NoError(t, err)
}
