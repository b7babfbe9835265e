package region

import (
	"sync"
	"unsafe"
)

// Lock pins the pages overlapping [ptr, ptr+size) to RAM until the returned
// guard is released. The pages stay resident except in special cases such
// as hibernation or memory starvation.
func Lock(ptr unsafe.Pointer, size uintptr) (*LockGuard, error) {
	base, size, err := roundToPageBoundaries(uintptr(ptr), size)
	if err != nil {
		return nil, err
	}

	if err := osLock(base, size); err != nil {
		return nil, err
	}
	return &LockGuard{base: base, size: size}, nil
}

// Unlock unpins the pages overlapping [ptr, ptr+size). It is meant for
// callers that track locked pages themselves; otherwise release the
// LockGuard returned by Lock.
func Unlock(ptr unsafe.Pointer, size uintptr) error {
	base, size, err := roundToPageBoundaries(uintptr(ptr), size)
	if err != nil {
		return err
	}
	return osUnlock(base, size)
}

// LockGuard unlocks the pages pinned by Lock.
type LockGuard struct {
	base, size uintptr
	once       sync.Once
}

// Release unpins the pages. Only the first call has an effect; a failure
// is logged at debug level.
func (g *LockGuard) Release() {
	g.once.Do(func() {
		if err := osUnlock(g.base, g.size); err != nil {
			logger().Debug("region: unlocking pages", "base", g.base, "size", g.size, "error", err)
		}
	})
}

// WithLock runs fn while the pages overlapping [ptr, ptr+size) are pinned
// to RAM.
func WithLock(ptr unsafe.Pointer, size uintptr, fn func() error) error {
	guard, err := Lock(ptr, size)
	if err != nil {
		return err
	}
	defer guard.Release()

	return fn()
}
