//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !solaris && !windows

package region

import "os"

func osPageSize() uintptr {
	return uintptr(os.Getpagesize())
}

func osAddressSpace() (uintptr, uintptr) {
	return 0, ^uintptr(0)
}

func newRegionSource(lower, upper uintptr) (regionSource, error) {
	return nil, ErrUnsupported
}

func osProtect(addr, size uintptr, p Protection) error {
	p.mustBeValid()
	return ErrUnsupported
}

func osLock(addr, size uintptr) error {
	return ErrUnsupported
}

func osUnlock(addr, size uintptr) error {
	return ErrUnsupported
}

func osAlloc(addr, size uintptr, p Protection) (uintptr, error) {
	return 0, ErrUnsupported
}

func osFree(addr, size uintptr) error {
	return ErrUnsupported
}
