package region

import "fmt"

// Memory constants from winnt.h.
const (
	pageNoAccess         = 0x01
	pageReadOnly         = 0x02
	pageReadWrite        = 0x04
	pageWriteCopy        = 0x08
	pageExecute          = 0x10
	pageExecuteRead      = 0x20
	pageExecuteReadWrite = 0x40
	pageExecuteWriteCopy = 0x80
	pageGuard            = 0x100

	memCommit  = 0x1000
	memReserve = 0x2000
	memFree    = 0x10000
	memPrivate = 0x20000
)

// protectionFromWindows decodes a PAGE_* value. Modifiers such as
// PAGE_GUARD, PAGE_NOCACHE and PAGE_WRITECOMBINE live above the low byte
// and are ignored.
func protectionFromWindows(native uint32) Protection {
	switch native & 0xff {
	case pageExecute:
		return Execute
	case pageExecuteRead:
		return ReadExecute
	case pageExecuteReadWrite, pageExecuteWriteCopy:
		return ReadWriteExecute
	case pageReadOnly:
		return Read
	case pageReadWrite, pageWriteCopy:
		return ReadWrite
	default:
		return None
	}
}

// protectionToWindows encodes p as a PAGE_* value. Windows has no
// write-only pages, so Write is widened to include Read.
func protectionToWindows(p Protection) uint32 {
	p.mustBeValid()
	switch p {
	case None:
		return pageNoAccess
	case Read:
		return pageReadOnly
	case Execute:
		return pageExecute
	case ReadExecute:
		return pageExecuteRead
	case ReadWrite, Write:
		return pageReadWrite
	case ReadWriteExecute, WriteExecute:
		return pageExecuteReadWrite
	}
	panic(fmt.Sprintf("region: unrepresentable protection %v", p))
}

// regionFromMemoryInfo converts the fields of a MEMORY_BASIC_INFORMATION.
// Free memory is not a region.
func regionFromMemoryInfo(base, size uintptr, state, protect, typ uint32) (Region, bool) {
	if state != memCommit && state != memReserve {
		return Region{}, false
	}

	r := Region{
		base:     base,
		size:     size,
		reserved: state == memReserve,
		shared:   typ != memPrivate,
	}

	// The protection of reserved memory is undefined.
	if !r.reserved {
		r.protection = protectionFromWindows(protect)
		r.guarded = protect&pageGuard != 0
	}
	return r, true
}
