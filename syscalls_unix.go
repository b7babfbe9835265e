//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package region

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

var unixProtections = []nativeFlag{
	{unix.PROT_READ, Read},
	{unix.PROT_WRITE, Write},
	{unix.PROT_EXEC, Execute},
}

func osPageSize() uintptr {
	return uintptr(unix.Getpagesize())
}

func osAddressSpace() (uintptr, uintptr) {
	return 0, ^uintptr(0)
}

func protectionToNative(p Protection) int {
	p.mustBeValid()

	prot := unix.PROT_NONE
	for _, f := range unixProtections {
		if p.Has(f.prot) {
			prot |= f.native
		}
	}
	return prot
}

// pages converts a page-aligned range to the byte slice the x/sys wrappers
// expect. The memory is never touched.
func pages(addr, size uintptr) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}

func osProtect(addr, size uintptr, p Protection) error {
	return systemCall("mprotect", unix.Mprotect(pages(addr, size), protectionToNative(p)))
}

func osLock(addr, size uintptr) error {
	return systemCall("mlock", unix.Mlock(pages(addr, size)))
}

func osUnlock(addr, size uintptr) error {
	return systemCall("munlock", unix.Munlock(pages(addr, size)))
}

// osAlloc maps anonymous private memory. A non-zero addr is requested
// without replacing existing mappings where the OS supports that, and is
// only a hint elsewhere.
func osAlloc(addr, size uintptr, p Protection) (uintptr, error) {
	flags := unix.MAP_PRIVATE | unix.MAP_ANON
	if addr != 0 {
		flags |= _MAP_FIXED_NOREPLACE
	}

	ptr, err := unix.MmapPtr(-1, 0, unsafe.Pointer(addr), size, protectionToNative(p), flags)
	if err != nil {
		return 0, systemCall("mmap", err)
	}
	return uintptr(ptr), nil
}

func osFree(addr, size uintptr) error {
	return systemCall("munmap", unix.MunmapPtr(unsafe.Pointer(addr), size))
}
