package driver

import (
	"encoding/binary"
	"math"

	"github.com/quasilyte/musmix"
)

const bytesPerFrame = 2 * 4

// Reader exposes the adapter as a float32 little-endian stereo stream.
//
// Reads of any size are served: large reads are split into several
// callbacks, a partial frame is kept for the next Read.
type Reader struct {
	adapter *Adapter

	samples []float32

	// A rendered frame that was only partially read.
	pending    [bytesPerFrame]byte
	pendingLen int
}

func NewReader(a *Adapter) *Reader {
	return &Reader{
		adapter: a,
		samples: make([]float32, 2*musmix.MaxFrames),
	}
}

func (r *Reader) Read(p []byte) (int, error) {
	n := 0

	if r.pendingLen > 0 {
		copied := copy(p, r.pending[bytesPerFrame-r.pendingLen:])
		r.pendingLen -= copied
		n += copied
		p = p[copied:]
	}

	for len(p) >= bytesPerFrame {
		frames := min(len(p)/bytesPerFrame, musmix.MaxFrames)
		samples := r.render(frames)
		for i, v := range samples {
			binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
		}
		written := frames * bytesPerFrame
		n += written
		p = p[written:]
	}

	if len(p) > 0 {
		samples := r.render(1)
		binary.LittleEndian.PutUint32(r.pending[0:], math.Float32bits(samples[0]))
		binary.LittleEndian.PutUint32(r.pending[4:], math.Float32bits(samples[1]))
		copied := copy(p, r.pending[:])
		r.pendingLen = bytesPerFrame - copied
		n += copied
	}

	return n, nil
}

func (r *Reader) render(frames int) []float32 {
	samples := r.samples[:frames*2]
	r.adapter.Callback(samples)
	return samples
}
