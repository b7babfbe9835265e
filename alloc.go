package region

import (
	"sync"
	"unsafe"
)

// Allocation is anonymous memory mapped by Alloc or AllocAt. It does not
// expose the memory as a slice since it may have been created with None.
type Allocation struct {
	base, size uintptr

	once    sync.Once
	freeErr error
}

// Alloc maps at least size bytes with protection p. The size is rounded up
// to the page size.
func Alloc(size uintptr, p Protection) (*Allocation, error) {
	if size == 0 {
		return nil, invalidParameter("size")
	}
	size = Ceil(size)

	base, err := osAlloc(0, size, p)
	if err != nil {
		return nil, err
	}
	return &Allocation{base: base, size: size}, nil
}

// AllocAt maps the pages overlapping [ptr, ptr+size) with protection p.
//
// The allocation is not guaranteed to reside at ptr on every OS. Linux and
// FreeBSD fail rather than replace an existing mapping; other Unix systems
// treat ptr as a hint; Windows rounds addresses outside reserved memory
// down to the allocation granularity.
func AllocAt(ptr unsafe.Pointer, size uintptr, p Protection) (*Allocation, error) {
	base, size, err := roundToPageBoundaries(uintptr(ptr), size)
	if err != nil {
		return nil, err
	}

	addr, err := osAlloc(base, size, p)
	if err != nil {
		return nil, err
	}
	return &Allocation{base: addr, size: size}, nil
}

// Addr returns the page-aligned base address.
func (a *Allocation) Addr() uintptr {
	return a.base
}

// Ptr returns the base address as a pointer.
func (a *Allocation) Ptr() unsafe.Pointer {
	return unsafe.Pointer(a.base)
}

// Len returns the size of the allocation, a multiple of the page size.
func (a *Allocation) Len() uintptr {
	return a.size
}

// Range returns the half-open range [start, end) of the allocation.
func (a *Allocation) Range() (start, end uintptr) {
	return a.base, a.base + a.size
}

// Free unmaps the memory. Subsequent calls return the result of the first.
func (a *Allocation) Free() error {
	a.once.Do(func() {
		a.freeErr = osFree(a.base, a.size)
	})
	return a.freeErr
}
