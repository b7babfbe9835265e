//go:build arm64 && !windows

package region

import "unsafe"

/*
static void flush_icache(char *start, char *end) {
	__builtin___clear_cache(start, end);
}
*/
import "C"

func flushInstructionCache(addr, size uintptr) {
	start := unsafe.Pointer(addr)
	end := unsafe.Add(start, size)
	C.flush_icache((*C.char)(start), (*C.char)(end))
}
