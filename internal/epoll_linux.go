//go:build linux

// Package internal holds the platform-specific readiness primitives the
// root package's backends (reactor_epoll.go, reactor_kqueue.go,
// reactor_pollscan.go) drive. It knows nothing about coroutines or
// subscriptions; it only turns kernel readiness notifications into
// (fd, EventKind)-shaped reports.
package internal

import (
	"os"

	"golang.org/x/sys/unix"
)

// Epoll wraps a single epoll instance registered for level-triggered
// readability, error and hangup notification. It has no concept of
// write-readiness or a wakeup eventfd of its own, since lthreads.Reactor
// drives all wakeups through Monitor/RemoveSocket rather than a
// cross-goroutine post queue.
type Epoll struct {
	fd     int
	events []unix.EpollEvent
}

// NewEpoll creates an epoll instance sized for up to maxEvents ready
// descriptors per Wait call.
func NewEpoll(maxEvents int) (*Epoll, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, os.NewSyscallError("epoll_create1", err)
	}
	if maxEvents <= 0 {
		maxEvents = 256
	}
	return &Epoll{fd: fd, events: make([]unix.EpollEvent, maxEvents)}, nil
}

const epollInterest = unix.EPOLLIN | unix.EPOLLRDHUP | unix.EPOLLPRI | unix.EPOLLERR | unix.EPOLLHUP

// Add registers fd for read, priority, error and hangup notification.
func (e *Epoll) Add(fd int) error {
	ev := unix.EpollEvent{Events: epollInterest, Fd: int32(fd)}
	if err := unix.EpollCtl(e.fd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return os.NewSyscallError("epoll_ctl(add)", err)
	}
	return nil
}

// Remove deregisters fd. Removing a descriptor that was never added, or
// that the kernel already dropped (e.g. it was closed), is not an
// error: ENOENT and EBADF are both treated as success.
func (e *Epoll) Remove(fd int) error {
	err := unix.EpollCtl(e.fd, unix.EPOLL_CTL_DEL, fd, nil)
	if err != nil && err != unix.ENOENT && err != unix.EBADF {
		return os.NewSyscallError("epoll_ctl(del)", err)
	}
	return nil
}

// Wait blocks up to timeoutMs (negative blocks indefinitely) and
// appends every ready descriptor's report to dst, returning the
// extended slice.
func (e *Epoll) Wait(timeoutMs int, dst []Report) ([]Report, error) {
	n, err := unix.EpollWait(e.fd, e.events, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return dst, nil
		}
		return dst, os.NewSyscallError("epoll_wait", err)
	}

	for i := 0; i < n; i++ {
		ev := e.events[i]
		fd := int(ev.Fd)
		// Independent checks, not mutually exclusive: the kernel can
		// set EPOLLERR alongside EPOLLIN in the same events word, and
		// each bit that fires reports its own event.
		if ev.Events&unix.EPOLLERR != 0 {
			dst = append(dst, Report{Fd: fd, Kind: Error})
		}
		if ev.Events&(unix.EPOLLHUP|unix.EPOLLRDHUP) != 0 {
			dst = append(dst, Report{Fd: fd, Kind: Hangup})
		}
		if ev.Events&(unix.EPOLLIN|unix.EPOLLPRI) != 0 {
			dst = append(dst, Report{Fd: fd, Kind: Read})
		}
	}
	return dst, nil
}

// Close releases the epoll instance's own descriptor.
func (e *Epoll) Close() error {
	return unix.Close(e.fd)
}
