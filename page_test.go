package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSize(t *testing.T) {
	assert := assert.New(t)

	ps := PageSize()
	assert.NotZero(ps)
	assert.Zero(ps&(ps-1), "page size %d is not a power of two", ps)
	assert.Equal(ps, PageSize())
}

func TestFloorCeil(t *testing.T) {
	assert := assert.New(t)
	ps := PageSize()

	assert.Equal(uintptr(0), Floor(0))
	assert.Equal(uintptr(0), Floor(1))
	assert.Equal(uintptr(0), Floor(ps-1))
	assert.Equal(ps, Floor(ps))
	assert.Equal(ps, Floor(ps+1))

	assert.Equal(uintptr(0), Ceil(0))
	assert.Equal(ps, Ceil(1))
	assert.Equal(ps, Ceil(ps))
	assert.Equal(2*ps, Ceil(ps+1))
}

func TestFloorCeil_Properties(t *testing.T) {
	ps := PageSize()

	for _, addr := range []uintptr{0, 1, 7, ps - 1, ps, ps + 1, 3*ps - 5, 0x7fff1234, ^uintptr(0) - 2*ps} {
		f, c := Floor(addr), Ceil(addr)
		assert.Zero(t, f%ps, "Floor(%#x)", addr)
		assert.Zero(t, c%ps, "Ceil(%#x)", addr)
		assert.LessOrEqual(t, f, addr)
		assert.GreaterOrEqual(t, c, addr)
		assert.Less(t, addr-f, ps)
		assert.Less(t, c-addr, ps)
	}
}

func TestCeil_TopOfAddressSpace(t *testing.T) {
	top := ^uintptr(0)
	assert.Equal(t, Floor(top), Ceil(top))
	assert.Equal(t, Floor(top-1), Ceil(top-1))
}

func TestRoundToPageBoundaries(t *testing.T) {
	ps := PageSize()

	tests := []struct {
		name       string
		addr, size uintptr
		base, len  uintptr
	}{
		{"first byte", 0x10000, 1, 0x10000, ps},
		{"whole page", 0x10000, ps, 0x10000, ps},
		{"one past a page", 0x10000, ps + 1, 0x10000, 2 * ps},
		{"unaligned start", 0x10000 + 1, ps, 0x10000, 2 * ps},
		{"last byte of a page", 0x10000 + ps - 1, 1, 0x10000, ps},
		{"straddles pages", 0x10000 + ps - 1, 2, 0x10000, 2 * ps},
		{"saturates", 0x10000 + 1, ^uintptr(0), 0x10000, Floor(^uintptr(0))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			base, size, err := roundToPageBoundaries(tc.addr, tc.size)
			require.NoError(t, err)
			assert.Equal(tc.base, base)
			assert.Equal(tc.len, size)
		})
	}
}

func TestRoundToPageBoundaries_ZeroSize(t *testing.T) {
	_, _, err := roundToPageBoundaries(0x10000, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	var ipe *InvalidParameterError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, "size", ipe.Param)
}

func TestSaturatingAdd(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint8(3), saturatingAdd[uint8](1, 2))
	assert.Equal(uint8(255), saturatingAdd[uint8](200, 100))
	assert.Equal(^uintptr(0), saturatingAdd(^uintptr(0), 1))
}

func TestAlignUp(t *testing.T) {
	assert := assert.New(t)

	v, ok := alignUp[uint8](17, 16)
	assert.True(ok)
	assert.Equal(uint8(32), v)

	_, ok = alignUp[uint8](250, 16)
	assert.False(ok)

	assert.Equal(uint8(16), alignDown[uint8](31, 16))
}
