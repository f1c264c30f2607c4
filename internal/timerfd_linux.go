//go:build linux

package internal

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// TimerFd wraps a Linux timerfd(2), used by epoll_reactor_test.go's
// periodic wake-up test as an ordinary descriptor: the reactor doesn't know it's a
// timer, only that it becomes readable on schedule. The caller monitors
// the returned Fd through the normal Reactor.Monitor path rather than a
// dedicated Timer.Set/Unset API.
type TimerFd struct {
	fd int
}

// NewTimerFd creates a timer that fires once after initial, then every
// interval thereafter. interval of zero makes it one-shot.
func NewTimerFd(initial, interval time.Duration) (*TimerFd, error) {
	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_NONBLOCK|unix.TFD_CLOEXEC)
	if err != nil {
		return nil, os.NewSyscallError("timerfd_create", err)
	}

	spec := unix.ItimerSpec{
		Value:    unix.NsecToTimespec(initial.Nanoseconds()),
		Interval: unix.NsecToTimespec(interval.Nanoseconds()),
	}
	if err := unix.TimerfdSettime(fd, 0, &spec, nil); err != nil {
		unix.Close(fd)
		return nil, os.NewSyscallError("timerfd_settime", err)
	}

	return &TimerFd{fd: fd}, nil
}

func (t *TimerFd) Fd() int { return t.fd }

// Drain reads and discards the expiration count, required after every
// readiness notification just as with EventFd.
func (t *TimerFd) Drain() (uint64, error) {
	var buf [8]byte
	n, err := unix.Read(t.fd, buf[:])
	if err != nil {
		return 0, err
	}
	if n < 8 {
		return 0, nil
	}
	return byteOrder.Uint64(buf[:]), nil
}

func (t *TimerFd) Close() error {
	return unix.Close(t.fd)
}
