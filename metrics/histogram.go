// Package metrics provides sampling collaborators that live outside the
// reactor core: a bounded-range histogram and a sliding-window event
// rate counter.
package metrics

import (
	"math"
	"sync"

	hdr "github.com/HdrHistogram/hdrhistogram-go"
)

// fixedPointScale converts the float64 domain values are sampled in
// into the int64 domain hdrhistogram-go operates on, giving six
// decimal digits of sub-unit precision.
const fixedPointScale = 1e6

// Stats reports aggregate results over everything Add has ever
// recorded (or since the last Reset).
type Stats struct {
	Samples uint64
	Median  float64
	Average float64
}

// Histogram is a fixed-range histogram over float64 samples. Values
// outside [min, max] are clamped rather than rejected, and min == max
// degrades to a plain counter instead of dividing by zero, so it never
// writes outside its declared bins regardless of what Add is called
// with, including a degenerate min==max range or an infinite input.
type Histogram struct {
	mu sync.Mutex

	minimum, maximum float64
	degenerate       bool

	hist       *hdr.Histogram
	lo, hi     int64

	sum, sumSquares float64
	count           uint64
}

// NewHistogram constructs a histogram over [min, max]. Reversed bounds
// are swapped rather than rejected.
func NewHistogram(min, max float64) *Histogram {
	if min > max {
		min, max = max, min
	}

	h := &Histogram{minimum: min, maximum: max}
	if min == max {
		h.degenerate = true
		return h
	}

	h.lo = int64(1)
	h.hi = int64((max-min)*fixedPointScale) + 1
	if h.hi <= h.lo {
		h.hi = h.lo + 1
	}
	h.hist = hdr.New(h.lo, h.hi, 3)
	return h
}

// clamp folds value into [minimum, maximum], mapping NaN to the
// midpoint and ±Inf to the corresponding bound -- the histogram never
// receives a value it would refuse to bin.
func (h *Histogram) clamp(value float64) float64 {
	if math.IsNaN(value) {
		return (h.minimum + h.maximum) / 2
	}
	if value < h.minimum {
		return h.minimum
	}
	if value > h.maximum {
		return h.maximum
	}
	return value
}

// Add records a single sample.
func (h *Histogram) Add(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	value = h.clamp(value)
	h.sum += value
	h.sumSquares += value * value
	h.count++

	if h.degenerate {
		return
	}

	scaled := int64((value-h.minimum)*fixedPointScale) + 1
	// RecordValue only fails when scaled falls outside the histogram's
	// tracked range, which clamp above already prevents; the error is
	// intentionally discarded rather than surfaced, matching
	// Histogram.h's add(), which never fails.
	_ = h.hist.RecordValue(scaled)
}

// Summary returns the aggregate Stats over every recorded sample.
func (h *Histogram) Summary() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		return Stats{}
	}

	stats := Stats{
		Samples: h.count,
		Average: h.sum / float64(h.count),
	}

	if h.degenerate {
		stats.Median = h.minimum
		return stats
	}

	median := h.hist.ValueAtQuantile(50)
	stats.Median = float64(median-1)/fixedPointScale + h.minimum
	return stats
}

// Reset clears every recorded sample.
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sum, h.sumSquares, h.count = 0, 0, 0
	if h.hist != nil {
		h.hist = hdr.New(h.lo, h.hi, 3)
	}
}
