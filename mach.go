package region

// Values from <mach/vm_prot.h>, <mach/vm_region.h> and
// <mach/vm_statistics.h>.
const (
	vmProtRead    = 0x1
	vmProtWrite   = 0x2
	vmProtExecute = 0x4

	smShared        = 4
	smTrueShared    = 5
	smSharedAliased = 7

	vmMemoryGuard = 31

	kernSuccess        = 0
	kernInvalidAddress = 1
)

var machProtections = []nativeFlag{
	{vmProtRead, Read},
	{vmProtWrite, Write},
	{vmProtExecute, Execute},
}

// machRegion converts the result of mach_vm_region_recurse.
func machRegion(address, size uint64, protection int32, shareMode uint8, userTag uint32) Region {
	var shared bool
	switch shareMode {
	case smShared, smTrueShared, smSharedAliased:
		shared = true
	}

	// The kernel may report a region extending past the top of the
	// address space.
	if address+size < address {
		size = -address
	}

	return Region{
		base:       uintptr(address),
		size:       uintptr(size),
		protection: protectionFromFlags(int(protection), machProtections),
		guarded:    userTag == vmMemoryGuard,
		shared:     shared,
	}
}
