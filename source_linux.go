//go:build linux

package region

import "os"

func newRegionSource(lower, upper uintptr) (regionSource, error) {
	// Read the whole file up front rather than scanning it, so the regions
	// come from a single snapshot.
	maps, err := os.ReadFile("/proc/self/maps")
	if err != nil {
		return nil, systemCall("read /proc/self/maps", err)
	}
	return &procfsSource{maps: string(maps)}, nil
}
