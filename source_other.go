//go:build dragonfly || netbsd

package region

func newRegionSource(lower, upper uintptr) (regionSource, error) {
	return nil, ErrUnsupported
}
