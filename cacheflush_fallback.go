//go:build !arm64 && !windows

package region

// amd64 and 386 keep the instruction cache coherent with data writes.
// TODO: riscv64 needs a fence.i, which has no cgo-free equivalent here.
func flushInstructionCache(addr, size uintptr) {}
