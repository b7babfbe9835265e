//go:build solaris

package region

import "os"

func newRegionSource(lower, upper uintptr) (regionSource, error) {
	// A single read keeps the snapshot consistent.
	buf, err := os.ReadFile("/proc/self/map")
	if err != nil {
		return nil, systemCall("read /proc/self/map", err)
	}

	source, err := newPrmapSource(buf)
	if err != nil {
		return nil, err
	}
	return source, nil
}
