package region

import "unsafe"

// FlushInstructionCache makes instructions written to [ptr, ptr+size)
// visible to the CPU's instruction fetch. Call it after writing code into
// memory and before executing it. It does nothing for a zero size.
//
// x86 keeps its caches coherent, so this is a no-op there except on
// Windows, which always asks the kernel.
func FlushInstructionCache(ptr unsafe.Pointer, size uintptr) {
	if size == 0 {
		return
	}
	flushInstructionCache(uintptr(ptr), size)
}
