package driver

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/quasilyte/musmix"
	"github.com/quasilyte/musmix/internal/test"
)

// rampMixer writes an increasing frame counter into both channels;
// the right channel is negated.
type rampMixer struct {
	frame int
	calls []int
}

func (m *rampMixer) Mix(buf []float32) {
	m.calls = append(m.calls, len(buf)/2)
	for i := 0; i < len(buf); i += 2 {
		buf[i] = float32(m.frame)
		buf[i+1] = -float32(m.frame)
		m.frame++
	}
}

func decodeSample(p []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(p))
}

func TestCallback(t *testing.T) {
	m := &rampMixer{}
	var tapped []int
	a := NewAdapter(m, Config{
		Tap: func(buf []float32) { tapped = append(tapped, len(buf)) },
	})

	a.Callback(nil)
	a.Callback(make([]float32, 1))
	test.ExpectEquality(t, len(m.calls), 0)

	a.Callback(make([]float32, 9))
	test.ExpectEquality(t, m.calls[0], 4)
	test.ExpectEquality(t, tapped[0], 8)

	test.ExpectPanic(t, func() { a.Callback(make([]float32, 2*(musmix.MaxFrames+1))) })

	stats := a.Stats()
	test.ExpectEquality(t, stats.Callbacks, uint64(1))
	test.ExpectEquality(t, stats.Frames, uint64(4))
}

func TestConfig(t *testing.T) {
	a := NewAdapter(&rampMixer{}, Config{})
	test.ExpectEquality(t, a.SampleRate(), 44100)
	test.ExpectEquality(t, a.config.FramesPerBuffer, 1024)

	test.ExpectPanic(t, func() {
		NewAdapter(&rampMixer{}, Config{FramesPerBuffer: musmix.MaxFrames + 1})
	})
}

func TestUpdate(t *testing.T) {
	calls := 0
	a := NewAdapter(&rampMixer{}, Config{Upkeep: func() { calls++ }})
	a.Update()
	a.Update()
	test.ExpectEquality(t, calls, 2)

	// A missing hook is fine.
	NewAdapter(&rampMixer{}, Config{}).Update()
}

func TestReaderLargeRead(t *testing.T) {
	m := &rampMixer{}
	r := NewReader(NewAdapter(m, Config{}))

	frames := musmix.MaxFrames + 100
	p := make([]byte, frames*bytesPerFrame)
	n, err := r.Read(p)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, len(p))
	test.ExpectEquality(t, len(m.calls), 2)
	test.ExpectEquality(t, m.calls[0], musmix.MaxFrames)
	test.ExpectEquality(t, m.calls[1], 100)

	for _, frame := range []int{0, 1, musmix.MaxFrames, frames - 1} {
		offset := frame * bytesPerFrame
		test.ExpectEquality(t, decodeSample(p[offset:]), float32(frame))
		test.ExpectEquality(t, decodeSample(p[offset+4:]), -float32(frame))
	}
}

func TestReaderPartialFrames(t *testing.T) {
	r := NewReader(NewAdapter(&rampMixer{}, Config{}))

	var stream []byte
	for _, size := range []int{3, 5, 1, 10, 7, 6} {
		p := make([]byte, size)
		n, err := r.Read(p)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, n, size)
		stream = append(stream, p...)
	}

	// 32 bytes are 4 complete frames.
	test.ExpectEquality(t, len(stream), 4*bytesPerFrame)
	for frame := 0; frame < 4; frame++ {
		offset := frame * bytesPerFrame
		test.ExpectEquality(t, decodeSample(stream[offset:]), float32(frame))
		test.ExpectEquality(t, decodeSample(stream[offset+4:]), -float32(frame))
	}
}

func TestBeepStreamer(t *testing.T) {
	m := &rampMixer{}
	s := NewBeepStreamer(NewAdapter(m, Config{}))

	samples := make([][2]float64, musmix.MaxFrames*2+1)
	n, ok := s.Stream(samples)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, n, len(samples))
	test.ExpectSuccess(t, s.Err())
	test.ExpectEquality(t, len(m.calls), 3)
	test.ExpectEquality(t, samples[len(samples)-1][0], float64(len(samples)-1))
	test.ExpectEquality(t, samples[len(samples)-1][1], -float64(len(samples)-1))
}

func TestSleepMs(t *testing.T) {
	test.ExpectPanic(t, func() { SleepMs(10) })
}
