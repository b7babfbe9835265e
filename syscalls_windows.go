//go:build windows

package region

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procGetSystemInfo         = modkernel32.NewProc("GetSystemInfo")
	procFlushInstructionCache = modkernel32.NewProc("FlushInstructionCache")
)

// systemInfo mirrors SYSTEM_INFO.
//
// https://learn.microsoft.com/en-us/windows/win32/api/sysinfoapi/ns-sysinfoapi-system_info
type systemInfo struct {
	processorArchitecture     uint16
	_                         uint16
	pageSize                  uint32
	minimumApplicationAddress uintptr
	maximumApplicationAddress uintptr
	activeProcessorMask       uintptr
	numberOfProcessors        uint32
	processorType             uint32
	allocationGranularity     uint32
	processorLevel            uint16
	processorRevision         uint16
}

var (
	sysInfoOnce sync.Once
	sysInfo     systemInfo
)

func getSystemInfo() *systemInfo {
	sysInfoOnce.Do(func() {
		// GetSystemInfo cannot fail.
		procGetSystemInfo.Call(uintptr(unsafe.Pointer(&sysInfo)))
	})
	return &sysInfo
}

func osPageSize() uintptr {
	return uintptr(getSystemInfo().pageSize)
}

// osAddressSpace converts the inclusive maximum application address into an
// exclusive bound.
func osAddressSpace() (uintptr, uintptr) {
	info := getSystemInfo()
	return info.minimumApplicationAddress, saturatingAdd(info.maximumApplicationAddress, 1)
}

func osProtect(addr, size uintptr, p Protection) error {
	var oldFlags uint32
	return systemCall("VirtualProtect", windows.VirtualProtect(addr, size, protectionToWindows(p), &oldFlags))
}

func osLock(addr, size uintptr) error {
	return systemCall("VirtualLock", windows.VirtualLock(addr, size))
}

func osUnlock(addr, size uintptr) error {
	return systemCall("VirtualUnlock", windows.VirtualUnlock(addr, size))
}

// osAlloc reserves and commits memory. Allocations outside already
// reserved memory are aligned to the allocation granularity (usually
// 64KiB), so a non-zero addr may be rounded down.
func osAlloc(addr, size uintptr, p Protection) (uintptr, error) {
	base, err := windows.VirtualAlloc(addr, size, windows.MEM_COMMIT|windows.MEM_RESERVE, protectionToWindows(p))
	if err != nil {
		return 0, systemCall("VirtualAlloc", err)
	}
	return base, nil
}

func osFree(addr, size uintptr) error {
	return systemCall("VirtualFree", windows.VirtualFree(addr, 0, windows.MEM_RELEASE))
}

// flushInstructionCache asks the kernel to flush on every architecture.
// Failure is not actionable and is only logged.
func flushInstructionCache(addr, size uintptr) {
	r, _, err := procFlushInstructionCache.Call(uintptr(windows.CurrentProcess()), addr, size)
	if r == 0 {
		logger().Debug("region: flushing instruction cache", "error", systemCall("FlushInstructionCache", err))
	}
}

// virtualQuerySource steps through the address space with VirtualQuery,
// which describes the run of pages starting at the queried page.
type virtualQuerySource struct {
	address uintptr
	upper   uintptr
}

func newRegionSource(lower, upper uintptr) (regionSource, error) {
	return &virtualQuerySource{address: lower, upper: upper}, nil
}

func (s *virtualQuerySource) next() (Region, bool, error) {
	for s.address < s.upper {
		var info windows.MemoryBasicInformation
		err := windows.VirtualQuery(s.address, &info, unsafe.Sizeof(info))
		if err != nil {
			return Region{}, false, systemCall("VirtualQuery", err)
		}

		next := saturatingAdd(info.BaseAddress, info.RegionSize)
		if next <= s.address {
			next = s.upper
		}
		s.address = next

		r, ok := regionFromMemoryInfo(info.BaseAddress, info.RegionSize, info.State, info.Protect, info.Type)
		if ok {
			return r, true, nil
		}
	}
	return Region{}, false, nil
}
