// Query and manipulate the virtual memory of the current process
//
// Given an address, Query reports the region (base, size, protection,
// guard and share status) that encloses it. QueryRange walks every mapped
// region overlapping a range. Protect and ProtectWithHandle change page
// protection, the latter restoring exactly what was there before when the
// guard is released. Lock pins pages to RAM.
//
// Everything operates on pages. Addresses are rounded down to the closest
// page boundary and sizes are rounded up so the whole footprint of
// [address, address+size) is covered.
//
// The memory map of a process can change at any time: other goroutines,
// cgo code or the Go runtime itself may map, unmap or re-protect pages
// between two calls, or in the middle of an enumeration. A Region is only
// a snapshot. Callers that need a consistent picture must stop every
// other mutator themselves.
//
// Backends:
//   - Linux and Android parse /proc/self/maps
//   - Windows uses VirtualQuery
//   - macOS and iOS use mach_vm_region_recurse (requires cgo)
//   - FreeBSD reads the kern.proc.vmmap sysctl
//   - OpenBSD walks sysctl(KERN_PROC_VMMAP) one entry at a time (requires cgo)
//   - illumos and Solaris read /proc/self/map
//
// Functions that change memory take an unsafe.Pointer. Passing a range that
// is not valid, mapped memory the caller is allowed to alter is undefined
// behavior this package cannot detect.
package region
