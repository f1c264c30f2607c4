//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package lthreads

import "golang.org/x/sys/unix"

// monotonicNow reads CLOCK_MONOTONIC directly via clock_gettime.
func monotonicNow() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0
	}
	return ts.Sec*1e9 + ts.Nsec
}
