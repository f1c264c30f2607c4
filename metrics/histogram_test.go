package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistogramSummary(t *testing.T) {
	assert := assert.New(t)

	h := NewHistogram(0, 100)
	for _, v := range []float64{10, 20, 30, 40, 50} {
		h.Add(v)
	}

	stats := h.Summary()
	assert.EqualValues(5, stats.Samples)
	assert.InDelta(30, stats.Average, 0.001)
}

func TestHistogramEmptySummaryIsZero(t *testing.T) {
	assert := assert.New(t)

	h := NewHistogram(0, 10)
	assert.Equal(Stats{}, h.Summary())
}

// TestHistogramNeverWritesOutsideBins asserts the histogram-bounds
// property: values outside [min, max], a degenerate min == max range,
// and ±Inf/NaN input must never panic or escape the histogram's
// declared bounds.
func TestHistogramNeverWritesOutsideBins(t *testing.T) {
	assert := assert.New(t)

	h := NewHistogram(0, 10)
	assert.NotPanics(func() {
		h.Add(-1000)
		h.Add(1000)
		h.Add(math.Inf(1))
		h.Add(math.Inf(-1))
		h.Add(math.NaN())
	})
	stats := h.Summary()
	assert.EqualValues(5, stats.Samples)
	assert.GreaterOrEqual(stats.Average, 0.0)
	assert.LessOrEqual(stats.Average, 10.0)
}

func TestHistogramDegenerateRange(t *testing.T) {
	assert := assert.New(t)

	h := NewHistogram(5, 5)
	assert.NotPanics(func() {
		h.Add(5)
		h.Add(100)
		h.Add(math.Inf(1))
	})
	stats := h.Summary()
	assert.EqualValues(3, stats.Samples)
	assert.Equal(5.0, stats.Median)
	assert.Equal(5.0, stats.Average)
}

func TestHistogramReset(t *testing.T) {
	assert := assert.New(t)

	h := NewHistogram(0, 10)
	h.Add(5)
	h.Reset()
	assert.Equal(Stats{}, h.Summary())
}
