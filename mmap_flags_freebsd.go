//go:build freebsd

package region

import "golang.org/x/sys/unix"

// MAP_FIXED with MAP_EXCL fails instead of replacing an existing mapping,
// like MAP_FIXED_NOREPLACE on Linux.
//
// https://man.freebsd.org/cgi/man.cgi?mmap(2)
const _MAP_FIXED_NOREPLACE = unix.MAP_FIXED | unix.MAP_EXCL
