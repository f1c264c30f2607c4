//go:build linux

package internal

import (
	"os"

	"golang.org/x/sys/unix"
)

// EventFd wraps a Linux eventfd(2) counter: a single descriptor that
// one or several coroutines can Monitor, used by epoll_reactor_test.go. It carries no dispatch machinery of its own, since
// that is the Reactor's job, not the descriptor wrapper's.
type EventFd struct {
	fd int
}

func NewEventFd(nonBlocking bool) (*EventFd, error) {
	flags := 0
	if nonBlocking {
		flags = unix.EFD_NONBLOCK
	}
	fd, err := unix.Eventfd(0, flags|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, os.NewSyscallError("eventfd2", err)
	}
	return &EventFd{fd: fd}, nil
}

func (e *EventFd) Fd() int { return e.fd }

func (e *EventFd) Add(n uint64) error {
	var buf [8]byte
	byteOrder.PutUint64(buf[:], n)
	_, err := unix.Write(e.fd, buf[:])
	return err
}

// Drain reads and discards the current counter value, as is required
// after every readiness notification on an eventfd (it stays readable
// until drained).
func (e *EventFd) Drain() (uint64, error) {
	var buf [8]byte
	n, err := unix.Read(e.fd, buf[:])
	if err != nil {
		return 0, err
	}
	if n < 8 {
		return 0, nil
	}
	return byteOrder.Uint64(buf[:]), nil
}

func (e *EventFd) Close() error {
	return unix.Close(e.fd)
}
