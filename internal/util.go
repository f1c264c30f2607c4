package internal

import "encoding/binary"

func IsPowerOfTwo(n int) bool {
	if n <= 0 {
		return false
	}
	return n&(n-1) == 0
}

// byteOrder is the order eventfd and timerfd counters are read and
// written in; both are plain 8-byte kernel-native integers, so the
// host's native byte order is used.
var byteOrder = binary.NativeEndian
