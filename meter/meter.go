// Package meter measures the output levels and spectrum of a stereo stream.
//
// The Monitor is fed from the audio callback (see driver.Config.Tap)
// and read from the game tick.
package meter

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"
	"sync/atomic"

	"github.com/ktye/fft"
)

type Monitor struct {
	mu sync.Mutex

	// history is a ring of the last mono samples.
	history []float32
	pos     int

	peakLeft  float32
	peakRight float32

	// dropped counts the buffers that were skipped because
	// the reader was holding the lock.
	dropped atomic.Int64

	fft    fft.FFT
	window []float64
	work   []complex128
}

// New creates a monitor with a spectrum of size/2 bins.
// The size must be a power of two.
func New(size int) (*Monitor, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("spectrum size %d is not a power of two", size)
	}
	f, err := fft.New(size)
	if err != nil {
		return nil, fmt.Errorf("create fft: %w", err)
	}
	window := make([]float64, size)
	for i := range window {
		window[i] = (1 - math.Cos(2*math.Pi*float64(i)/float64(size))) / 2
	}
	return &Monitor{
		history: make([]float32, size),
		fft:     f,
		window:  window,
		work:    make([]complex128, size),
	}, nil
}

// Tap records an interleaved stereo buffer.
// It never blocks: if the monitor is busy, the buffer is skipped.
func (m *Monitor) Tap(buf []float32) {
	if !m.mu.TryLock() {
		m.dropped.Add(1)
		return
	}
	defer m.mu.Unlock()

	for i := 0; i+1 < len(buf); i += 2 {
		l := buf[i]
		r := buf[i+1]
		m.peakLeft = max(m.peakLeft, abs(l))
		m.peakRight = max(m.peakRight, abs(r))
		m.history[m.pos] = (l + r) / 2
		m.pos++
		if m.pos == len(m.history) {
			m.pos = 0
		}
	}
}

// Levels returns the peak levels since the previous Levels call.
func (m *Monitor) Levels() (left, right float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	left, right = m.peakLeft, m.peakRight
	m.peakLeft = 0
	m.peakRight = 0
	return left, right
}

// Dropped reports the number of skipped buffers.
func (m *Monitor) Dropped() int { return int(m.dropped.Load()) }

// Spectrum writes the magnitudes of the recent history into dst
// and returns it. A nil or short dst is reallocated.
func (m *Monitor) Spectrum(dst []float64) []float64 {
	n := len(m.history)

	m.mu.Lock()
	for i := 0; i < n; i++ {
		sample := m.history[(m.pos+i)%n]
		m.work[i] = complex(float64(sample)*m.window[i], 0)
	}
	m.mu.Unlock()

	out := m.fft.Transform(m.work)
	if cap(dst) < n/2 {
		dst = make([]float64, n/2)
	}
	dst = dst[:n/2]
	for i := range dst {
		dst[i] = cmplx.Abs(out[i]) / float64(n/2)
	}
	return dst
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
