//go:build darwin && !cgo

package region

// The VM map of a Darwin task is only reachable through Mach calls, which
// need a C compiler. Install one and build with CGO_ENABLED=1.
func newRegionSource(lower, upper uintptr) (regionSource, error) {
	darwin_requires_cgo_for_mach_vm_region()
	return nil, ErrUnsupported
}
