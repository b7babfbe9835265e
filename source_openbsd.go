//go:build openbsd

package region

/*
#include <sys/types.h>
#include <sys/sysctl.h>
#include <unistd.h>
*/
import "C"

import (
	"os"
	"unsafe"
)

// sysctlSource asks for one kinfo_vmentry at a time. Requesting the whole
// map at once is unreliable: after the first call in a process' lifetime
// the kernel returns an empty buffer.
type sysctlSource struct {
	mib  [3]C.int
	walk *vmentryWalk
}

func newRegionSource(lower, upper uintptr) (regionSource, error) {
	var entry C.struct_kinfo_vmentry
	layout := vmentryLayout{
		word:       int(unsafe.Sizeof(entry.kve_start)),
		start:      int(unsafe.Offsetof(entry.kve_start)),
		end:        int(unsafe.Offsetof(entry.kve_end)),
		etype:      int(unsafe.Offsetof(entry.kve_etype)),
		protection: int(unsafe.Offsetof(entry.kve_protection)),
		size:       int(unsafe.Sizeof(entry)),
	}

	return &sysctlSource{
		mib:  [3]C.int{C.CTL_KERN, C.KERN_PROC_VMMAP, C.int(os.Getpid())},
		walk: newVMEntryWalk(layout),
	}, nil
}

func (s *sysctlSource) next() (Region, bool, error) {
	if s.walk.done {
		return Region{}, false, nil
	}

	n := C.size_t(len(s.walk.entry))
	ret, err := C.sysctl(&s.mib[0], C.u_int(len(s.mib)), unsafe.Pointer(&s.walk.entry[0]), &n, nil, 0)
	if ret == -1 {
		s.walk.done = true
		return Region{}, false, systemCall("sysctl KERN_PROC_VMMAP", err)
	}
	return s.walk.step(int(n))
}
