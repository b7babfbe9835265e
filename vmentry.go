package region

import (
	"encoding/binary"
	"fmt"
)

// vmentryLayout locates the fields of OpenBSD's struct kinfo_vmentry from
// <sys/sysctl.h>. kve_start and kve_end are u_long, so their width and the
// offsets that follow depend on the ABI.
type vmentryLayout struct {
	word       int
	start      int
	end        int
	etype      int
	protection int
	size       int
}

// LP64 layout of struct kinfo_vmentry.
var vmentryLayout64 = vmentryLayout{
	word:       8,
	start:      0,
	end:        8,
	etype:      52,
	protection: 56,
	size:       80,
}

const (
	kveProtRead  = 1
	kveProtWrite = 2
	kveProtExec  = 4

	kveEtCopyOnWrite = 4
)

var vmentryProtections = []nativeFlag{
	{kveProtRead, Read},
	{kveProtWrite, Write},
	{kveProtExec, Execute},
}

func (l vmentryLayout) word64(buf []byte, off int) uint64 {
	if l.word == 4 {
		return uint64(binary.NativeEndian.Uint32(buf[off:]))
	}
	return binary.NativeEndian.Uint64(buf[off:])
}

func (l vmentryLayout) putWord(buf []byte, off int, v uint64) {
	if l.word == 4 {
		binary.NativeEndian.PutUint32(buf[off:], uint32(v))
		return
	}
	binary.NativeEndian.PutUint64(buf[off:], v)
}

// decodeVMEntry decodes one kinfo_vmentry. It also returns kve_end, which
// the sysctl walk uses to detect the last entry.
func decodeVMEntry(buf []byte, l vmentryLayout) (Region, uint64, error) {
	if len(buf) < l.size {
		return Region{}, 0, &ProcfsInputError{
			Reason: fmt.Sprintf("kinfo_vmentry truncated to %d of %d bytes", len(buf), l.size),
		}
	}

	start := l.word64(buf, l.start)
	end := l.word64(buf, l.end)
	if end < start {
		return Region{}, 0, &ProcfsInputError{
			Reason: fmt.Sprintf("kinfo_vmentry range %#x-%#x is inverted", start, end),
		}
	}

	etype := int32(binary.NativeEndian.Uint32(buf[l.etype:]))
	prot := int32(binary.NativeEndian.Uint32(buf[l.protection:]))

	return Region{
		base:       uintptr(start),
		size:       uintptr(end - start),
		protection: protectionFromFlags(int(prot), vmentryProtections),
		shared:     etype&kveEtCopyOnWrite == 0,
	}, end, nil
}

// vmentryWalk holds the state of OpenBSD's one-entry-at-a-time walk. The
// kernel returns the first entry whose base is at or after kve_start, so
// bumping kve_start by one yields the following entry. The walk ends when
// the same kve_end comes back twice.
type vmentryWalk struct {
	layout   vmentryLayout
	entry    []byte
	previous uint64
	started  bool
	done     bool
}

func newVMEntryWalk(l vmentryLayout) *vmentryWalk {
	return &vmentryWalk{layout: l, entry: make([]byte, l.size)}
}

// step decodes the entry the kernel just wrote (n bytes) and prepares the
// buffer for the next request.
func (w *vmentryWalk) step(n int) (Region, bool, error) {
	if w.done {
		return Region{}, false, nil
	}
	if n == 0 {
		w.done = true
		return Region{}, false, nil
	}

	r, end, err := decodeVMEntry(w.entry[:n], w.layout)
	if err != nil {
		w.done = true
		return Region{}, false, err
	}
	if w.started && end == w.previous {
		w.done = true
		return Region{}, false, nil
	}

	w.started = true
	w.previous = end
	w.layout.putWord(w.entry, w.layout.start, uint64(r.base)+1)
	return r, true, nil
}
