//go:build darwin

package region

/*
#include <mach/mach.h>

static kern_return_t region_next(vm_address_t *address, vm_size_t *size, natural_t *depth,
		int *protection, unsigned char *share_mode, unsigned int *user_tag, int *is_submap) {
	vm_region_submap_info_data_64_t info;
	mach_msg_type_number_t count = VM_REGION_SUBMAP_INFO_COUNT_64;
	kern_return_t kr = vm_region_recurse_64(mach_task_self(), address, size, depth,
		(vm_region_recurse_info_t)&info, &count);
	if (kr == KERN_SUCCESS) {
		*protection = info.protection;
		*share_mode = info.share_mode;
		*user_tag = info.user_tag;
		*is_submap = info.is_submap;
	}
	return kr;
}
*/
import "C"

// machSource walks the task's VM map. The kernel returns the first region
// at or after the requested address, which is not necessarily the one
// enclosing it.
type machSource struct {
	address uint64
	depth   uint32
}

func newRegionSource(lower, upper uintptr) (regionSource, error) {
	return &machSource{address: uint64(lower)}, nil
}

func (s *machSource) next() (Region, bool, error) {
	for {
		var (
			address   = C.vm_address_t(s.address)
			depth     = C.natural_t(s.depth)
			size      C.vm_size_t
			prot      C.int
			shareMode C.uchar
			userTag   C.uint
			isSubmap  C.int
		)

		kr := C.region_next(&address, &size, &depth, &prot, &shareMode, &userTag, &isSubmap)
		switch int32(kr) {
		case kernSuccess:
		case kernInvalidAddress:
			// End of the address space.
			return Region{}, false, nil
		default:
			return Region{}, false, &MachCallError{Op: "vm_region_recurse_64", Code: int32(kr)}
		}

		s.address = uint64(address)
		s.depth = uint32(depth)
		if isSubmap != 0 {
			s.depth++
			continue
		}

		r := machRegion(uint64(address), uint64(size), int32(prot), uint8(shareMode), uint32(userTag))
		if r.End() <= uintptr(s.address) {
			// An empty region would stall the walk.
			s.address = ^uint64(0)
		} else {
			s.address = uint64(r.End())
		}
		return r, true, nil
	}
}
