package region

import "fmt"

// Protection is a set of access rights for a page or region.
//
// Not every combination is available everywhere: macOS requires executable
// pages to be readable, OpenBSD enforces W^X, and no OS has write-only
// pages. Combinations without a native equivalent are widened to the
// closest superset, so a later Query may report more rights than were
// requested.
type Protection uint

const (
	// No access allowed at all.
	None Protection = 0
	// Read access.
	Read Protection = 1 << 0
	// Write access; this alone is not supported by most OSs.
	Write Protection = 1 << 1
	// Execute access; this may be disallowed by DEP or W^X policies.
	Execute Protection = 1 << 2

	ReadExecute      = Read | Execute
	ReadWrite        = Read | Write
	ReadWriteExecute = Read | Write | Execute
	WriteExecute     = Write | Execute
)

const protectionMask = ReadWriteExecute

// Has reports whether every flag in other is set in p.
func (p Protection) Has(other Protection) bool {
	return p&other == other
}

// String formats p like the permission column of /proc/self/maps, e.g.
// "r-x".
func (p Protection) String() string {
	buf := []byte("---")
	if p.Has(Read) {
		buf[0] = 'r'
	}
	if p.Has(Write) {
		buf[1] = 'w'
	}
	if p.Has(Execute) {
		buf[2] = 'x'
	}
	return string(buf)
}

// mustBeValid panics on bits outside Read|Write|Execute. Such a value can
// only come from a programming mistake.
func (p Protection) mustBeValid() {
	if p&^protectionMask != 0 {
		panic(fmt.Sprintf("region: invalid protection %#x", uint(p)))
	}
}

// nativeFlag pairs an OS protection bit with its Protection counterpart.
type nativeFlag struct {
	native int
	prot   Protection
}

// protectionFromFlags decodes an OS bitmask whose read, write and execute
// bits are independent. Other bits are ignored.
func protectionFromFlags(native int, table []nativeFlag) Protection {
	p := None
	for _, f := range table {
		if native&f.native == f.native {
			p |= f.prot
		}
	}
	return p
}
