package metrics

import "github.com/hbreactor/lthreads"

// RateCounter is a sliding-window event counter: Count reports how
// many events were added within the last window, at bucket-sized
// resolution.
//
// For example, with a 1s window and 100ms buckets, adding one event
// every 100ms for ten steps reports a count of 10; one further step
// without a new add reports 9; advancing the clock by 10s reports 0.
type RateCounter struct {
	bucketWidth lthreads.Time
	buckets     []uint64

	lastIndex int64
	current   int
	total     uint64
}

// NewRateCounter constructs a counter over window, split into
// bucketWidth-sized slots. window must be an exact multiple of
// bucketWidth.
func NewRateCounter(window, bucketWidth lthreads.Time) *RateCounter {
	n := int64(window) / int64(bucketWidth)
	if n < 1 {
		n = 1
	}
	return &RateCounter{
		bucketWidth: bucketWidth,
		buckets:     make([]uint64, n),
		lastIndex:   -1,
	}
}

// Add records n events in the current bucket, as of the last time
// Advance was called.
func (r *RateCounter) Add(n uint64) {
	r.buckets[r.current] += n
	r.total += n
}

// Advance moves the counter's notion of "now" to t, expiring every
// bucket whose window has fully elapsed since the last Advance.
func (r *RateCounter) Advance(t lthreads.Time) {
	index := int64(t) / int64(r.bucketWidth)
	if index == r.lastIndex {
		return
	}

	if r.lastIndex < 0 || index > r.lastIndex+int64(len(r.buckets)) {
		for i := range r.buckets {
			r.buckets[i] = 0
		}
		r.total = 0
	} else {
		for j := r.lastIndex + 1; j <= index; j++ {
			idx := int(j % int64(len(r.buckets)))
			r.total -= r.buckets[idx]
			r.buckets[idx] = 0
		}
	}

	r.lastIndex = index
	r.current = int(index % int64(len(r.buckets)))
}

// Count returns the number of events recorded within the current
// window.
func (r *RateCounter) Count() uint64 { return r.total }
