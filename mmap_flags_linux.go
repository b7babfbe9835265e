//go:build linux

package region

import "golang.org/x/sys/unix"

// Kernels older than 4.17 ignore the flag and treat the address as a hint.
const _MAP_FIXED_NOREPLACE = unix.MAP_FIXED_NOREPLACE
