//go:build darwin || dragonfly || netbsd || openbsd || solaris

package region

// Darwin, DragonFly, NetBSD, OpenBSD and illumos don't have an equivalent to
// MAP_FIXED_NOREPLACE. MAP_FIXED would replace existing mappings, so AllocAt
// passes the address as a hint and trusts the OS to honor it when it can.
//
// https://developer.apple.com/library/archive/documentation/System/Conceptual/ManPages_iPhoneOS/man2/mmap.2.html
// https://man.netbsd.org/mmap.2
// https://man.openbsd.org/mmap.2
const _MAP_FIXED_NOREPLACE = 0
