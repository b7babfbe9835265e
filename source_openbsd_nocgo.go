//go:build openbsd && !cgo

package region

// KERN_PROC_VMMAP is read through libc's sysctl(2), which needs a C
// compiler. Install one and build with CGO_ENABLED=1.
func newRegionSource(lower, upper uintptr) (regionSource, error) {
	openbsd_requires_cgo_for_kern_proc_vmmap()
	return nil, ErrUnsupported
}
