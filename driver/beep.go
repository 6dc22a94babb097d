package driver

import (
	"fmt"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/quasilyte/musmix"
)

// BeepStreamer is a beep.Streamer that never ends.
// Start plays it through the beep speaker.
type BeepStreamer struct {
	adapter *Adapter
	buf     []float32
}

var _ beep.Streamer = (*BeepStreamer)(nil)

func NewBeepStreamer(a *Adapter) *BeepStreamer {
	return &BeepStreamer{
		adapter: a,
		buf:     make([]float32, 2*musmix.MaxFrames),
	}
}

func (s *BeepStreamer) Stream(samples [][2]float64) (int, bool) {
	total := len(samples)
	for len(samples) > 0 {
		n := min(len(samples), musmix.MaxFrames)
		buf := s.buf[:2*n]
		s.adapter.Callback(buf)
		for i := range samples[:n] {
			samples[i][0] = float64(buf[2*i])
			samples[i][1] = float64(buf[2*i+1])
		}
		samples = samples[n:]
	}
	return total, true
}

func (s *BeepStreamer) Err() error { return nil }

func (s *BeepStreamer) Start() error {
	sr := beep.SampleRate(s.adapter.config.SampleRate)
	if err := speaker.Init(sr, sr.N(s.adapter.config.BufferSize)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s)
	return nil
}

func (s *BeepStreamer) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}
