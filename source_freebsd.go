//go:build freebsd

package region

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// From <sys/sysctl.h>.
const (
	_KERN_PROC       = 14
	_KERN_PROC_VMMAP = 32
)

// newRegionSource fetches the whole map with the kern.proc.vmmap sysctl,
// the same request kinfo_getvmmap(3) makes.
func newRegionSource(lower, upper uintptr) (regionSource, error) {
	mib := []int32{unix.CTL_KERN, _KERN_PROC, _KERN_PROC_VMMAP, int32(os.Getpid())}

	buf, err := readSnapshot(
		func() (int, error) {
			return sysctl(mib, nil)
		},
		func(buf []byte) (int, error) {
			n, err := sysctl(mib, buf)
			if err == unix.ENOMEM {
				return 0, errShortBuffer
			}
			return n, err
		},
	)
	if err != nil {
		return nil, systemCall("sysctl kern.proc.vmmap", err)
	}
	return &kinfoSource{buf: buf}, nil
}

// sysctl calls __sysctl(2). With an empty buf it returns the size the
// kernel currently needs.
func sysctl(mib []int32, buf []byte) (int, error) {
	var old unsafe.Pointer
	if len(buf) > 0 {
		old = unsafe.Pointer(&buf[0])
	}
	n := uintptr(len(buf))

	_, _, errno := unix.Syscall6(unix.SYS___SYSCTL,
		uintptr(unsafe.Pointer(&mib[0])), uintptr(len(mib)),
		uintptr(old), uintptr(unsafe.Pointer(&n)), 0, 0)
	if errno != 0 {
		return 0, errno
	}
	return int(n), nil
}
