// Package driver connects a frame mixer (like musmix.Engine) to the host
// audio APIs.
//
// The host pulls audio through a fixed-size callback; the Adapter forwards
// it to the mixer. Byte-stream backends (oto, Ebitengine) read float32
// samples through a Reader; beep and PortAudio get their native shapes.
package driver

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/quasilyte/musmix"
)

// Mixer produces interleaved stereo frames.
type Mixer interface {
	Mix(buf []float32)
}

// Player is a started host output.
type Player interface {
	Start() error
	Close() error
}

type Config struct {
	// SampleRate is the device rate; it must match the mixer rate.
	// A zero value will assume a sample rate of 44100.
	SampleRate int

	// BufferSize is the host buffering latency.
	// A zero value will use 50ms.
	BufferSize time.Duration

	// FramesPerBuffer is the callback size for the backends that let us pick it.
	// A zero value will use 1024. It can't exceed musmix.MaxFrames.
	FramesPerBuffer int

	// Tap receives every mixed buffer.
	// It's called from the audio callback, so it must not block.
	Tap func(buf []float32)

	// Upkeep is called by Adapter.Update.
	Upkeep func()
}

func applyConfigDefaults(config *Config) {
	if config.SampleRate == 0 {
		config.SampleRate = 44100
	}
	if config.BufferSize == 0 {
		config.BufferSize = 50 * time.Millisecond
	}
	if config.FramesPerBuffer == 0 {
		config.FramesPerBuffer = 1024
	}
}

// Stats are the audio callback counters.
type Stats struct {
	Callbacks uint64
	Frames    uint64
}

// Adapter serves the host audio callback.
type Adapter struct {
	mixer  Mixer
	config Config

	callbacks atomic.Uint64
	frames    atomic.Uint64
}

func NewAdapter(m Mixer, config Config) *Adapter {
	applyConfigDefaults(&config)
	if config.FramesPerBuffer > musmix.MaxFrames {
		panic(fmt.Sprintf("driver: %d frames per buffer exceed the %d frames limit", config.FramesPerBuffer, musmix.MaxFrames))
	}
	return &Adapter{mixer: m, config: config}
}

func (a *Adapter) SampleRate() int { return a.config.SampleRate }

// Callback fills an interleaved stereo buffer.
// An empty buffer is a no-op; more than musmix.MaxFrames frames is a fault.
func (a *Adapter) Callback(buf []float32) {
	numFrames := len(buf) / 2
	if numFrames == 0 {
		return
	}
	if numFrames > musmix.MaxFrames {
		panic(fmt.Sprintf("driver: %d frames exceed the %d frames limit", numFrames, musmix.MaxFrames))
	}
	buf = buf[:numFrames*2]
	a.mixer.Mix(buf)
	if a.config.Tap != nil {
		a.config.Tap(buf)
	}
	a.callbacks.Add(1)
	a.frames.Add(uint64(numFrames))
}

// Update is the periodic non-audio upkeep, it's called from the game tick.
func (a *Adapter) Update() {
	if a.config.Upkeep != nil {
		a.config.Upkeep()
	}
}

func (a *Adapter) Stats() Stats {
	return Stats{
		Callbacks: a.callbacks.Load(),
		Frames:    a.frames.Load(),
	}
}

// SleepMs always panics.
//
// The audio is pulled by the host callback; a blocking sleep
// in the game loop would only starve it.
func SleepMs(ms int) {
	panic(fmt.Sprintf("driver: SleepMs(%d) is not supported", ms))
}
