package region

import (
	"encoding/binary"
	"fmt"
)

// /proc/$pid/map on illumos and Solaris is an array of prmap_t, see
// proc(4). The layout is a stable interface; these are the LP64 offsets.
const (
	prmapOffsetVaddr  = 0
	prmapOffsetSize   = 8
	prmapOffsetMflags = 88
	prmapSize         = 104

	maExec   = 0x1
	maWrite  = 0x2
	maRead   = 0x4
	maShared = 0x8
)

var prmapProtections = []nativeFlag{
	{maRead, Read},
	{maWrite, Write},
	{maExec, Execute},
}

type prmapSource struct {
	buf []byte
}

// newPrmapSource validates a complete read of /proc/self/map.
func newPrmapSource(buf []byte) (*prmapSource, error) {
	if len(buf)%prmapSize != 0 {
		return nil, &ProcfsInputError{
			Reason: fmt.Sprintf("file size %d is not a multiple of prmap_t size (%d)", len(buf), prmapSize),
		}
	}
	return &prmapSource{buf: buf}, nil
}

func (s *prmapSource) next() (Region, bool, error) {
	if len(s.buf) == 0 {
		return Region{}, false, nil
	}

	r := decodePrmap(s.buf[:prmapSize])
	s.buf = s.buf[prmapSize:]
	return r, true, nil
}

func decodePrmap(entry []byte) Region {
	order := binary.NativeEndian
	flags := int32(order.Uint32(entry[prmapOffsetMflags:]))

	return Region{
		base:       uintptr(order.Uint64(entry[prmapOffsetVaddr:])),
		size:       uintptr(order.Uint64(entry[prmapOffsetSize:])),
		protection: protectionFromFlags(int(flags), prmapProtections),
		shared:     flags&maShared != 0,
	}
}
