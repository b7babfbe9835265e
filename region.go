package region

import "fmt"

// Region describes a mapped range of virtual memory: one or more
// consecutive pages with the same properties, as reported by the OS.
//
// A Region may be empty (OpenBSD reports null-sized entries). Its range
// never wraps around the address space.
type Region struct {
	base       uintptr
	size       uintptr
	protection Protection
	guarded    bool
	shared     bool
	reserved   bool
}

// Base returns the region's base address, aligned to the page size.
func (r Region) Base() uintptr {
	return r.base
}

// Len returns the size of the region in bytes, a multiple of the page size.
func (r Region) Len() uintptr {
	return r.size
}

// End returns the address one past the last byte of the region.
func (r Region) End() uintptr {
	return saturatingAdd(r.base, r.size)
}

// Range returns the half-open range [start, end) spanned by the region.
func (r Region) Range() (start, end uintptr) {
	return r.base, r.End()
}

// Contains reports whether addr lies within the region.
func (r Region) Contains(addr uintptr) bool {
	return addr >= r.base && addr < r.End()
}

// IsEmpty reports whether the region has a size of zero.
func (r Region) IsEmpty() bool {
	return r.size == 0
}

// Protection returns the region's access rights.
func (r Region) Protection() Protection {
	return r.protection
}

// IsCommitted reports whether the region is backed by memory. This is
// always true except for MEM_RESERVE regions on Windows, which are
// reported with no access rights.
func (r Region) IsCommitted() bool {
	return !r.reserved
}

func (r Region) IsReadable() bool {
	return r.protection.Has(Read)
}

func (r Region) IsWritable() bool {
	return r.protection.Has(Write)
}

func (r Region) IsExecutable() bool {
	return r.protection.Has(Execute)
}

// IsGuarded reports whether the OS faults on the first access to the
// region (e.g. PAGE_GUARD on Windows).
func (r Region) IsGuarded() bool {
	return r.guarded
}

// IsShared reports whether the region's pages are shared with other
// processes.
func (r Region) IsShared() bool {
	return r.shared
}

func (r Region) String() string {
	flags := ""
	if r.shared {
		flags += " shared"
	}
	if r.guarded {
		flags += " guarded"
	}
	if r.reserved {
		flags += " reserved"
	}
	return fmt.Sprintf("%#x-%#x %s%s", r.base, r.End(), r.protection, flags)
}

// overlaps reports whether the region intersects [lower, upper).
func (r Region) overlaps(lower, upper uintptr) bool {
	return r.End() > lower && r.base < upper
}

// trim shrinks the region to its intersection with [lower, upper).
func (r Region) trim(lower, upper uintptr) Region {
	if r.base < lower {
		r.size -= lower - r.base
		r.base = lower
	}
	if end := r.End(); end > upper {
		r.size -= end - upper
	}
	return r
}
