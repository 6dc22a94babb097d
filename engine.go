// Package musmix implements a real-time game audio engine: a fixed set of
// 8-bit sound effect channels resampled into a stereo float mix, plus a MUS
// score sequencer that drives a synthesizer on top of that mix.
//
// The Engine has two kinds of entry points:
//
//   - Control methods (StartEffect, PlaySong, ...) are called from the game tick context.
//   - Mix is called from the audio callback context.
//
// The control methods never touch the audio state directly,
// they enqueue commands that are applied at the top of the next Mix call.
package musmix

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/quasilyte/musmix/musfile"
)

// MaxFrames is the largest number of stereo frames a single Mix call can process.
const MaxFrames = 4096

// ErrNoSong is returned when a song data can't be registered.
var ErrNoSong = errors.New("no song data")

// Config configures the engine.
//
// These settings can't be changed after the engine is created.
type Config struct {
	// SampleRate is the audio device output rate.
	// A zero value will assume a sample rate of 44100.
	SampleRate int

	// Synthesizer renders the music.
	// A nil value disables the music, but the music
	// control methods still work.
	Synthesizer Synthesizer

	// DefaultEffect is an effect name that is used in place of the missing ones.
	// A zero value will use "pistol".
	DefaultEffect string

	// MusicVolume is an initial music volume in [0, 127].
	// A zero value will use 100; use SetMusicVolume to mute the music.
	MusicVolume int

	// Logger receives the control side diagnostics.
	// The audio callback never logs.
	// A nil value discards the logs.
	Logger *log.Logger
}

// MusicState describes the music playback state as seen by the control side.
type MusicState int

const (
	// MusicIdle means that there is no song registered.
	MusicIdle MusicState = iota

	// MusicStopped means that a song is registered, but it's not playing.
	MusicStopped

	// MusicPlaying means that the song is being rendered (and looped).
	MusicPlaying

	// MusicPaused means that the song is suspended at its current position.
	MusicPaused
)

func (s MusicState) String() string {
	switch s {
	case MusicIdle:
		return "idle"
	case MusicStopped:
		return "stopped"
	case MusicPlaying:
		return "playing"
	case MusicPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Engine owns the effect channels, the resampling state and the music state.
type Engine struct {
	config Config
	logger *log.Logger

	// ctl serializes the control side.
	// It's never taken by the audio callback.
	ctl sync.Mutex

	queue commandQueue

	// Control side state.
	catalog    effectCatalog
	song       *musfile.Score
	musicState MusicState

	// Audio side state.
	pool  channelPool
	mixer sfxMixer
	music musicPlayer
	cmd   command
}

// NewEngine allocates an engine with all of its fixed-size state.
func NewEngine(config Config) *Engine {
	applyConfigDefaults(&config)
	if config.SampleRate < 0 {
		panic(fmt.Sprintf("musmix: sample rate %d is out of range", config.SampleRate))
	}

	e := &Engine{
		config: config,
		logger: config.Logger,
	}
	e.mixer.resampler = newResampler(config.SampleRate, EffectSampleRate)
	e.music.synth = config.Synthesizer
	e.music.reset = true
	e.music.volume = musicGain(config.MusicVolume)
	return e
}

func applyConfigDefaults(config *Config) {
	if config.SampleRate == 0 {
		config.SampleRate = 44100
	}
	if config.DefaultEffect == "" {
		config.DefaultEffect = "pistol"
	}
	if config.MusicVolume == 0 {
		config.MusicVolume = 100
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard, "", 0)
	}
}

// SampleRate reports the output sample rate.
func (e *Engine) SampleRate() int { return e.config.SampleRate }

// Mix is the audio callback entry point.
//
// It applies the pending control commands, writes the effects mix
// into buf and then adds the music on top of it.
// buf is an interleaved stereo buffer of len(buf)/2 frames.
//
// Mix never blocks and it does not allocate.
func (e *Engine) Mix(buf []float32) {
	numFrames := len(buf) / 2
	if numFrames == 0 {
		return
	}
	if numFrames > MaxFrames {
		panic(fmt.Sprintf("musmix: %d frames exceed the %d frames limit", numFrames, MaxFrames))
	}
	buf = buf[:numFrames*2]

	e.drainCommands()
	e.mixer.mix(&e.pool, buf)
	e.music.render(buf)
}

func (e *Engine) drainCommands() {
	c := &e.cmd
	for e.queue.pop(c) {
		switch c.kind {
		case cmdStartEffect:
			e.pool.start(c)
		case cmdStopEffect:
			e.pool.stop(c.slot, c.handle)
		case cmdUpdateEffect:
			e.pool.update(c)
		case cmdPlaySong:
			e.music.play(c.seq)
		case cmdStopSong:
			e.music.stop()
		case cmdPauseSong:
			e.music.paused = true
		case cmdResumeSong:
			e.music.paused = false
		case cmdSetMusicVolume:
			e.music.volume = c.volume
		}
	}
	*c = command{}
}

func (e *Engine) push(c command) {
	if !e.queue.push(c) {
		panic("musmix: command queue overflow (is the audio callback running?)")
	}
}

// CacheEffects resolves the PCM data of every effect.
//
// Effects with a Link share the data with the linked effect.
// Missing effects are replaced by the default effect;
// effects that still can't be loaded play as silence.
func (e *Engine) CacheEffects(archive Archive, effects []EffectInfo) {
	e.ctl.Lock()
	defer e.ctl.Unlock()

	e.catalog.cacheEffects(archive, effects, e.config.DefaultEffect, e.logger.Printf)
}

// EffectLength reports the effect length in samples.
// Failed effects have a zero length.
func (e *Engine) EffectLength(id EffectID) int {
	e.ctl.Lock()
	defer e.ctl.Unlock()

	e.checkEffect(id)
	return e.catalog.length(id)
}

func (e *Engine) checkEffect(id EffectID) {
	if id < 0 || int(id) >= e.catalog.size() {
		panic(fmt.Sprintf("musmix: effect id %d is out of range", id))
	}
}

func checkSlot(slot int) {
	if slot < 0 || slot >= NumChannels {
		panic(fmt.Sprintf("musmix: slot %d is out of range", slot))
	}
}

// StartEffect starts the effect in the given slot, replacing
// whatever was playing there.
//
// The volume is in [0, 127]; the separation is in [0, 255], 128 is centered.
func (e *Engine) StartEffect(id EffectID, slot, volume, separation int) Handle {
	checkSlot(slot)
	left, right := stereoGains(volume, separation)

	e.ctl.Lock()
	defer e.ctl.Unlock()

	e.checkEffect(id)
	h := e.pool.nextHandle()
	e.pool.published[slot].Store(uint32(h))
	e.push(command{
		kind:    cmdStartEffect,
		slot:    slot,
		handle:  h,
		effect:  id,
		samples: e.catalog.samples(id),
		left:    left,
		right:   right,
	})
	return h
}

// StopEffect stops the effect playback. It's a no-op for unknown handles.
func (e *Engine) StopEffect(h Handle) {
	if h == InvalidHandle {
		return
	}

	e.ctl.Lock()
	defer e.ctl.Unlock()

	for slot := range e.pool.published {
		if e.pool.published[slot].CompareAndSwap(uint32(h), uint32(InvalidHandle)) {
			e.push(command{kind: cmdStopEffect, slot: slot, handle: h})
		}
	}
}

// IsPlaying reports whether the handle is bound to any slot.
func (e *Engine) IsPlaying(h Handle) bool {
	return e.pool.isPlaying(h)
}

// UpdateEffectParams changes the volume and separation of a playing effect.
func (e *Engine) UpdateEffectParams(h Handle, volume, separation int) {
	if h == InvalidHandle {
		return
	}
	left, right := stereoGains(volume, separation)

	e.ctl.Lock()
	defer e.ctl.Unlock()

	for slot := range e.pool.published {
		if e.pool.published[slot].Load() == uint32(h) {
			e.push(command{kind: cmdUpdateEffect, slot: slot, handle: h, left: left, right: right})
		}
	}
}

// RegisterSong parses the MUS data and makes it the current song.
// A song that is already playing continues to play until PlaySong is called.
func (e *Engine) RegisterSong(data []byte) error {
	if len(data) == 0 {
		return ErrNoSong
	}
	score, err := musfile.ParseFromBytes(data)
	if err != nil {
		return fmt.Errorf("register song: %w", err)
	}

	e.ctl.Lock()
	defer e.ctl.Unlock()

	e.song = score
	if e.musicState == MusicIdle {
		e.musicState = MusicStopped
	}
	e.logger.Printf("song registered: %d score bytes, %d instruments", len(score.Data), len(score.Instruments))
	return nil
}

// UnregisterSong forgets the current song data.
// A song that is already playing is stopped.
func (e *Engine) UnregisterSong() {
	e.ctl.Lock()
	defer e.ctl.Unlock()

	if e.musicState == MusicPlaying || e.musicState == MusicPaused {
		e.push(command{kind: cmdStopSong})
	}
	e.song = nil
	e.musicState = MusicIdle
}

// PlaySong starts the registered song from the beginning.
// The song is looped until StopSong is called.
func (e *Engine) PlaySong() {
	e.ctl.Lock()
	defer e.ctl.Unlock()

	if e.song == nil {
		panic("musmix: PlaySong called without a registered song")
	}
	e.push(command{kind: cmdPlaySong, seq: newSequencer(e.song, e.config.SampleRate)})
	e.musicState = MusicPlaying
	e.logger.Printf("song started")
}

// StopSong stops the playing song.
func (e *Engine) StopSong() {
	e.ctl.Lock()
	defer e.ctl.Unlock()

	if e.musicState != MusicPlaying && e.musicState != MusicPaused {
		panic("musmix: StopSong called while no song is playing")
	}
	e.push(command{kind: cmdStopSong})
	e.musicState = MusicStopped
	e.logger.Printf("song stopped")
}

// PauseMusic suspends the music rendering; the effects keep playing.
func (e *Engine) PauseMusic() {
	e.ctl.Lock()
	defer e.ctl.Unlock()

	if e.musicState != MusicPlaying {
		return
	}
	e.push(command{kind: cmdPauseSong})
	e.musicState = MusicPaused
}

// ResumeMusic continues the paused music from where it was.
func (e *Engine) ResumeMusic() {
	e.ctl.Lock()
	defer e.ctl.Unlock()

	if e.musicState != MusicPaused {
		return
	}
	e.push(command{kind: cmdResumeSong})
	e.musicState = MusicPlaying
}

// SetMusicVolume sets the music volume, v is clamped in [0, 127].
func (e *Engine) SetMusicVolume(v int) {
	e.ctl.Lock()
	defer e.ctl.Unlock()

	e.push(command{kind: cmdSetMusicVolume, volume: musicGain(v)})
}

// MusicIsPlaying reports whether the song is playing (paused songs count too).
func (e *Engine) MusicIsPlaying() bool {
	s := e.MusicState()
	return s == MusicPlaying || s == MusicPaused
}

// MusicState reports the music state as seen by the control side.
// The audio callback may apply the last change a bit later.
func (e *Engine) MusicState() MusicState {
	e.ctl.Lock()
	defer e.ctl.Unlock()
	return e.musicState
}

func musicGain(v int) float32 {
	return float32(clamp(v, 0, 127)) / 127.0
}
