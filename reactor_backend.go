package lthreads

import "github.com/hbreactor/lthreads/internal"

// fromInternalKind maps a backend-agnostic internal.Kind to the
// EventKind delivered to coroutines. Kept out of the platform-specific
// backend files (reactor_epoll.go, reactor_kqueue.go) since every
// backend needs it identically.
func fromInternalKind(k internal.Kind) EventKind {
	switch k {
	case internal.Error:
		return Error
	case internal.Hangup:
		return Hangup
	default:
		return Read
	}
}
