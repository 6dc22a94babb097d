package meter

import (
	"math"
	"testing"

	"github.com/quasilyte/musmix/internal/test"
)

func TestNewSize(t *testing.T) {
	_, err := New(100)
	test.ExpectFailure(t, err)
	_, err = New(0)
	test.ExpectFailure(t, err)
	_, err = New(64)
	test.ExpectSuccess(t, err)
}

func TestLevels(t *testing.T) {
	m, err := New(16)
	if err != nil {
		t.Fatal(err)
	}
	m.Tap([]float32{0.1, -0.2, 0.5, 0.3, -0.25, -0.75})
	left, right := m.Levels()
	test.ExpectEquality(t, left, 0.5)
	test.ExpectEquality(t, right, 0.75)

	left, right = m.Levels()
	test.ExpectEquality(t, left, 0)
	test.ExpectEquality(t, right, 0)
}

func TestTapSkipsWhenBusy(t *testing.T) {
	m, err := New(16)
	if err != nil {
		t.Fatal(err)
	}
	m.mu.Lock()
	m.Tap([]float32{1, 1})
	m.mu.Unlock()
	test.ExpectEquality(t, m.Dropped(), 1)
	left, _ := m.Levels()
	test.ExpectEquality(t, left, 0)
}

func TestSpectrumPeak(t *testing.T) {
	const size = 256
	const bin = 16
	m, err := New(size)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 2*size)
	for i := 0; i < size; i++ {
		v := float32(math.Sin(2 * math.Pi * bin * float64(i) / size))
		buf[2*i] = v
		buf[2*i+1] = v
	}
	m.Tap(buf)

	spectrum := m.Spectrum(nil)
	test.ExpectEquality(t, len(spectrum), size/2)
	best := 0
	for i, v := range spectrum {
		if v > spectrum[best] {
			best = i
		}
	}
	test.ExpectEquality(t, best, bin)
	// A Hann window halves the amplitude of a pure tone.
	test.ExpectApproximate(t, spectrum[bin], 0.5, 0.01)
}
