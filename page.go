package region

import (
	"sync"

	"golang.org/x/exp/constraints"
)

var (
	pageSizeOnce sync.Once
	pageSize     uintptr
)

// PageSize returns the operating system's page size. The value is queried
// once and cached for the lifetime of the process.
func PageSize() uintptr {
	pageSizeOnce.Do(func() {
		pageSize = osPageSize()
	})
	return pageSize
}

// Floor rounds an address down to its closest page boundary.
func Floor(addr uintptr) uintptr {
	return alignDown(addr, PageSize())
}

// Ceil rounds an address up to its closest page boundary. Addresses within
// one page of the top of the address space cannot be rounded up and are
// rounded down instead.
func Ceil(addr uintptr) uintptr {
	up, ok := alignUp(addr, PageSize())
	if !ok {
		return Floor(addr)
	}
	return up
}

// roundToPageBoundaries validates an address-size pair and widens it to
// whole pages. The size covers the full footprint: the offset of addr into
// its first page plus size, rounded up.
func roundToPageBoundaries(addr, size uintptr) (uintptr, uintptr, error) {
	if size == 0 {
		return 0, 0, invalidParameter("size")
	}

	size = saturatingAdd(addr%PageSize(), size)
	return Floor(addr), Ceil(size), nil
}

func alignDown[U constraints.Unsigned](v, align U) U {
	return v &^ (align - 1)
}

// alignUp reports false if rounding up would wrap around.
func alignUp[U constraints.Unsigned](v, align U) (U, bool) {
	sum := v + align - 1
	if sum < v {
		return 0, false
	}
	return sum &^ (align - 1), true
}

func saturatingAdd[U constraints.Unsigned](a, b U) U {
	if sum := a + b; sum >= a {
		return sum
	}
	return ^U(0)
}
