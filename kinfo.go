package region

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// FreeBSD struct kinfo_vmentry, from <sys/user.h>. Only the leading fields
// are read; each record states its own size in kve_structsize, so fields
// added by newer kernels are skipped.
const (
	kinfoOffsetStructSize = 0
	kinfoOffsetType       = 4
	kinfoOffsetStart      = 8
	kinfoOffsetEnd        = 16
	kinfoOffsetFlags      = 44
	kinfoOffsetProtection = 56
	kinfoMinSize          = 60

	kvmeTypeDefault = 1
	kvmeTypeSwap    = 3
	kvmeTypeGuard   = 9

	kvmeFlagCOW = 0x1

	kvmeProtRead  = 0x1
	kvmeProtWrite = 0x2
	kvmeProtExec  = 0x4
)

var kinfoProtections = []nativeFlag{
	{kvmeProtRead, Read},
	{kvmeProtWrite, Write},
	{kvmeProtExec, Execute},
}

// errShortBuffer is returned by a snapshot read when the table grew past
// the buffer.
var errShortBuffer = errors.New("buffer too small for snapshot")

// snapshotAttempts bounds the retries of readSnapshot.
const snapshotAttempts = 8

// readSnapshot reads a kernel table that may grow between asking for its
// size and reading it, including through allocations made by this
// function. The buffer gets a third of headroom, as kinfo_getvmmap(3)
// does, and the read is retried with a fresh size if it still falls short.
func readSnapshot(size func() (int, error), read func(buf []byte) (int, error)) ([]byte, error) {
	for range snapshotAttempts {
		n, err := size()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}

		buf := make([]byte, n*4/3)
		n, err = read(buf)
		if errors.Is(err, errShortBuffer) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return buf[:n], nil
	}
	return nil, errShortBuffer
}

// kinfoSource walks the packed kinfo_vmentry records returned by the
// kern.proc.vmmap sysctl.
type kinfoSource struct {
	buf []byte
}

func (s *kinfoSource) next() (Region, bool, error) {
	if len(s.buf) == 0 {
		return Region{}, false, nil
	}

	r, n, err := decodeKinfoVMEntry(s.buf)
	if err != nil {
		s.buf = nil
		return Region{}, false, err
	}
	s.buf = s.buf[n:]
	return r, true, nil
}

// decodeKinfoVMEntry decodes the record at the start of buf and returns it
// along with the record's size.
func decodeKinfoVMEntry(buf []byte) (Region, int, error) {
	if len(buf) < kinfoMinSize {
		return Region{}, 0, &ProcfsInputError{
			Reason: fmt.Sprintf("kinfo_vmentry truncated to %d bytes", len(buf)),
		}
	}

	order := binary.NativeEndian
	size := int(int32(order.Uint32(buf[kinfoOffsetStructSize:])))
	if size < kinfoMinSize || size > len(buf) {
		return Region{}, 0, &ProcfsInputError{
			Reason: fmt.Sprintf("kinfo_vmentry claims %d bytes with %d available", size, len(buf)),
		}
	}

	start := order.Uint64(buf[kinfoOffsetStart:])
	end := order.Uint64(buf[kinfoOffsetEnd:])
	if end < start {
		return Region{}, 0, &ProcfsInputError{
			Reason: fmt.Sprintf("kinfo_vmentry range %#x-%#x is inverted", start, end),
		}
	}

	kind := int32(order.Uint32(buf[kinfoOffsetType:]))
	flags := int32(order.Uint32(buf[kinfoOffsetFlags:]))
	prot := int32(order.Uint32(buf[kinfoOffsetProtection:]))

	anonymous := kind == kvmeTypeDefault || kind == kvmeTypeSwap
	return Region{
		base:       uintptr(start),
		size:       uintptr(end - start),
		protection: protectionFromFlags(int(prot), kinfoProtections),
		guarded:    kind == kvmeTypeGuard,
		shared:     flags&kvmeFlagCOW == 0 && !anonymous && kind != kvmeTypeGuard,
	}, size, nil
}
