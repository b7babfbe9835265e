//go:build darwin || freebsd || linux || openbsd || solaris || windows

package region

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectionAt(t *testing.T, ptr unsafe.Pointer) Protection {
	t.Helper()

	r, err := Query(uintptr(ptr))
	require.NoError(t, err)
	return r.Protection()
}

func TestProtect(t *testing.T) {
	a := allocPages(t, 1, ReadWrite)

	require.NoError(t, Protect(a.Ptr(), 1, Read))
	assert.Equal(t, Read, protectionAt(t, a.Ptr()))

	require.NoError(t, Protect(unsafe.Add(a.Ptr(), PageSize()-1), 1, None))
	assert.Equal(t, None, protectionAt(t, a.Ptr()))
}

func TestProtect_SpansPages(t *testing.T) {
	a := allocPages(t, 3, ReadWrite)

	// Two bytes straddling the boundary between the first two pages.
	require.NoError(t, Protect(unsafe.Add(a.Ptr(), PageSize()-1), 2, Read))

	assert.Equal(t, Read, protectionAt(t, page(a, 0)))
	assert.Equal(t, Read, protectionAt(t, page(a, 1)))
	assert.Equal(t, ReadWrite, protectionAt(t, page(a, 2)))
}

func TestProtect_ZeroSize(t *testing.T) {
	a := allocPages(t, 1, ReadWrite)

	assert.ErrorIs(t, Protect(a.Ptr(), 0, Read), ErrInvalidParameter)
	_, err := ProtectWithHandle(a.Ptr(), 0, Read)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestProtect_Unmapped(t *testing.T) {
	a, err := Alloc(PageSize(), ReadWrite)
	require.NoError(t, err)
	ptr := a.Ptr()
	require.NoError(t, a.Free())

	err = Protect(ptr, PageSize(), Read)
	var sce *SystemCallError
	assert.ErrorAs(t, err, &sce)

	_, err = ProtectWithHandle(ptr, PageSize(), Read)
	assert.Error(t, err)
}

func TestProtectWithHandle(t *testing.T) {
	a := allocPages(t, 1, ReadWrite)
	buf := unsafe.Slice((*byte)(a.Ptr()), a.Len())
	buf[0] = 42

	guard, err := ProtectWithHandle(a.Ptr(), 1, Read)
	require.NoError(t, err)
	assert.Equal(t, Read, protectionAt(t, a.Ptr()))
	assert.Equal(t, byte(42), buf[0])

	guard.Release()
	assert.Equal(t, ReadWrite, protectionAt(t, a.Ptr()))
	buf[0] = 43

	guard.Release()
	assert.Equal(t, ReadWrite, protectionAt(t, a.Ptr()))
}

func TestProtectWithHandle_TrimsSnapshot(t *testing.T) {
	ps := PageSize()
	a := allocPages(t, 3, ReadWrite)
	require.NoError(t, Protect(page(a, 1), ps, Read))

	guard, err := ProtectWithHandle(unsafe.Add(a.Ptr(), 1), ps, None)
	require.NoError(t, err)

	regions := guard.Regions()
	require.Len(t, regions, 2)
	assert.Equal(t, a.Addr(), regions[0].Base())
	assert.Equal(t, ps, regions[0].Len())
	assert.Equal(t, ReadWrite, regions[0].Protection())
	assert.Equal(t, a.Addr()+ps, regions[1].Base())
	assert.Equal(t, ps, regions[1].Len())
	assert.Equal(t, Read, regions[1].Protection())

	assert.Equal(t, None, protectionAt(t, page(a, 0)))
	assert.Equal(t, None, protectionAt(t, page(a, 1)))
	assert.Equal(t, ReadWrite, protectionAt(t, page(a, 2)))

	guard.Release()
	assert.Equal(t, ReadWrite, protectionAt(t, page(a, 0)))
	assert.Equal(t, Read, protectionAt(t, page(a, 1)))
	assert.Equal(t, ReadWrite, protectionAt(t, page(a, 2)))
}

func TestProtectWithHandle_TrimsMiddleOfRegion(t *testing.T) {
	ps := PageSize()
	a := allocPages(t, 5, ReadWrite)
	require.NoError(t, Protect(page(a, 1), 3*ps, Read))

	guard, err := ProtectWithHandle(unsafe.Add(page(a, 2), 10), 5, None)
	require.NoError(t, err)

	regions := guard.Regions()
	require.Len(t, regions, 1)
	assert.Equal(t, uintptr(page(a, 2)), regions[0].Base())
	assert.Equal(t, ps, regions[0].Len())
	assert.Equal(t, Read, regions[0].Protection())

	assert.Equal(t, Read, protectionAt(t, page(a, 1)))
	assert.Equal(t, None, protectionAt(t, page(a, 2)))
	assert.Equal(t, Read, protectionAt(t, page(a, 3)))

	guard.Release()

	want := []Protection{ReadWrite, Read, Read, Read, ReadWrite}
	for i, p := range want {
		assert.Equal(t, p, protectionAt(t, page(a, i)), "page %d", i)
	}
}

func TestProtectGuard_RegionsIsACopy(t *testing.T) {
	a := allocPages(t, 1, ReadWrite)

	guard, err := ProtectWithHandle(a.Ptr(), 1, Read)
	require.NoError(t, err)
	defer guard.Release()

	regions := guard.Regions()
	regions[0] = Region{}
	assert.Equal(t, a.Addr(), guard.Regions()[0].Base())
}

func TestWithProtection(t *testing.T) {
	a := allocPages(t, 1, ReadWrite)
	failure := errors.New("failure")

	err := WithProtection(a.Ptr(), 1, Read, func() error {
		assert.Equal(t, Read, protectionAt(t, a.Ptr()))
		return failure
	})
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, ReadWrite, protectionAt(t, a.Ptr()))

	assert.Panics(t, func() {
		WithProtection(a.Ptr(), 1, None, func() error {
			panic("oops")
		})
	})
	assert.Equal(t, ReadWrite, protectionAt(t, a.Ptr()))
}
