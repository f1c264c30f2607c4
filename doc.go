// Package lthreads implements a single-threaded, event-driven runtime in
// which application logic runs as stackful coroutines ("light threads")
// that cooperatively yield while waiting for readiness on file
// descriptors.
//
// A Reactor multiplexes readiness over many descriptors, keeps a
// bidirectional subscription relation between descriptors and
// coroutines, and resumes the correct coroutines when readiness occurs.
// Two backends are provided: a kernel-registered, level-triggered
// multiplexer (epoll on Linux, kqueue on BSD/Darwin) and a portable
// array-scan multiplexer built on poll(2).
//
// Everything in this package is meant to run on a single goroutine.
// There is no locking in the reactor itself; mutual exclusion comes from
// never calling into it from more than one goroutine at a time.
package lthreads
