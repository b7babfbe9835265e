package region

import (
	"slices"
	"sync"
	"unsafe"
)

// Protect changes the protection of every page overlapping
// [ptr, ptr+size). The address is rounded down and the end rounded up to
// page boundaries. The previous protection is not preserved; use
// ProtectWithHandle to restore it later.
//
// The range must be mapped memory the caller is allowed to alter.
// Protect can make constants writable or data executable.
func Protect(ptr unsafe.Pointer, size uintptr, p Protection) error {
	base, size, err := roundToPageBoundaries(uintptr(ptr), size)
	if err != nil {
		return err
	}
	return osProtect(base, size, p)
}

// ProtectWithHandle changes the protection of every page overlapping
// [ptr, ptr+size) until the returned guard is released.
//
// The current protection of the range is recorded before the change.
// Regions extending outside the page-aligned range are trimmed to it, so
// releasing the guard never touches pages outside the range, even when
// the range covers only part of a region.
//
// It queries the memory map and is slower than Protect.
func ProtectWithHandle(ptr unsafe.Pointer, size uintptr, p Protection) (*ProtectGuard, error) {
	lower, size, err := roundToPageBoundaries(uintptr(ptr), size)
	if err != nil {
		return nil, err
	}
	upper := saturatingAdd(lower, size)

	q, err := newQueryIter(lower, size)
	if err != nil {
		return nil, err
	}
	regions, err := q.Collect()
	if err != nil {
		return nil, err
	}

	if err := osProtect(lower, size, p); err != nil {
		return nil, err
	}

	for i := range regions {
		regions[i] = regions[i].trim(lower, upper)
	}
	return &ProtectGuard{regions: regions}, nil
}

// ProtectGuard restores the protection recorded by ProtectWithHandle.
type ProtectGuard struct {
	regions []Region
	once    sync.Once
}

// Regions returns the recorded regions, trimmed to the protected range.
func (g *ProtectGuard) Regions() []Region {
	return slices.Clone(g.regions)
}

// Release restores the recorded protection, one region at a time in
// ascending order. Only the first call has an effect.
//
// A failure cannot be acted on, so it is logged at debug level rather than
// returned.
func (g *ProtectGuard) Release() {
	g.once.Do(func() {
		for _, r := range g.regions {
			if r.IsEmpty() {
				continue
			}
			if err := osProtect(r.base, r.size, r.protection); err != nil {
				logger().Debug("region: restoring protection", "region", r.String(), "error", err)
			}
		}
	})
}

// WithProtection runs fn while [ptr, ptr+size) has protection p. The
// previous protection is restored when fn returns or panics.
func WithProtection(ptr unsafe.Pointer, size uintptr, p Protection, fn func() error) error {
	guard, err := ProtectWithHandle(ptr, size, p)
	if err != nil {
		return err
	}
	defer guard.Release()

	return fn()
}
