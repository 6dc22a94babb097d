// Package sf2synth implements musmix.Synthesizer on top of a SoundFont
// synthesizer (go-meltysynth).
package sf2synth

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/quasilyte/musmix"
	"github.com/sinshu/go-meltysynth/meltysynth"
)

// ErrNoSoundFont is returned when the SoundFont data is empty.
var ErrNoSoundFont = errors.New("no soundfont data")

type Config struct {
	// SampleRate must match the engine output rate.
	// A zero value will assume a sample rate of 44100.
	SampleRate int

	// MaxPolyphony limits the number of simultaneous voices.
	// A zero value will use 64.
	MaxPolyphony int

	// Reverb enables the reverb and chorus effects.
	// They're expensive, so they're disabled by default.
	Reverb bool
}

func applyConfigDefaults(config *Config) {
	if config.SampleRate == 0 {
		config.SampleRate = 44100
	}
	if config.MaxPolyphony == 0 {
		config.MaxPolyphony = 64
	}
}

// Synthesizer adapts a meltysynth synthesizer to the musmix interface.
//
// Channel 15 (the MUS percussion channel) is mapped to MIDI channel 9
// and vice versa, everything else is passed as is.
type Synthesizer struct {
	synth midiSynth

	// Render scratch buffers, sized for the largest engine callback.
	left  []float32
	right []float32
}

var _ musmix.Synthesizer = (*Synthesizer)(nil)

// midiSynth is the subset of the meltysynth API the adapter needs.
type midiSynth interface {
	NoteOn(channel, key, velocity int32)
	NoteOff(channel, key int32)
	NoteOffAllChannel(channel int32, immediate bool)
	ProcessMidiMessage(channel, command, data1, data2 int32)
	Reset()
	Render(left, right []float32)
	SetMasterVolume(v float32)
}

type meltysynthBackend struct {
	*meltysynth.Synthesizer
}

func (b meltysynthBackend) SetMasterVolume(v float32) {
	b.MasterVolume = v
}

// Load reads a SoundFont (.sf2) and creates a synthesizer for it.
func Load(r io.Reader, config Config) (*Synthesizer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read soundfont: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoSoundFont
	}
	sf, err := meltysynth.NewSoundFont(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse soundfont: %w", err)
	}
	return New(sf, config)
}

// New creates a synthesizer for the already parsed SoundFont.
// A single SoundFont can be shared between several synthesizers.
func New(sf *meltysynth.SoundFont, config Config) (*Synthesizer, error) {
	applyConfigDefaults(&config)

	settings := meltysynth.NewSynthesizerSettings(int32(config.SampleRate))
	settings.MaximumPolyphony = int32(config.MaxPolyphony)
	settings.EnableReverbAndChorus = config.Reverb
	synth, err := meltysynth.NewSynthesizer(sf, settings)
	if err != nil {
		return nil, fmt.Errorf("create synthesizer: %w", err)
	}

	return newSynthesizer(meltysynthBackend{synth}), nil
}

func newSynthesizer(backend midiSynth) *Synthesizer {
	return &Synthesizer{
		synth: backend,
		left:  make([]float32, musmix.MaxFrames),
		right: make([]float32, musmix.MaxFrames),
	}
}

func (s *Synthesizer) NoteOn(channel, note int, velocity float32) {
	s.synth.NoteOn(midiChannel(channel), int32(note), midiVelocity(velocity))
}

func (s *Synthesizer) NoteOff(channel, note int) {
	s.synth.NoteOff(midiChannel(channel), int32(note))
}

func (s *Synthesizer) NoteOffAll(channel int) {
	s.synth.NoteOffAllChannel(midiChannel(channel), false)
}

func (s *Synthesizer) SoundsOffAll(channel int) {
	s.synth.NoteOffAllChannel(midiChannel(channel), true)
}

func (s *Synthesizer) SetPitchWheel(channel, value int) {
	lsb, msb := pitchWheelBytes(value)
	s.synth.ProcessMidiMessage(midiChannel(channel), midiPitchBend, lsb, msb)
}

func (s *Synthesizer) MIDIControl(channel, controller, value int) {
	s.synth.ProcessMidiMessage(midiChannel(channel), midiControlChange, int32(controller), int32(value))
}

// SetPreset selects a program. The drum kit is implied by the percussion
// channel, so the bank is not sent for the percussion presets.
func (s *Synthesizer) SetPreset(channel, preset, bank int, percussion bool) {
	ch := midiChannel(channel)
	if !percussion {
		s.synth.ProcessMidiMessage(ch, midiControlChange, midiBankSelect, int32(bank))
	}
	s.synth.ProcessMidiMessage(ch, midiProgramChange, int32(preset), 0)
}

func (s *Synthesizer) SetBank(channel, bank int) {
	s.synth.ProcessMidiMessage(midiChannel(channel), midiControlChange, midiBankSelect, int32(bank))
}

func (s *Synthesizer) Reset() {
	s.synth.Reset()
}

func (s *Synthesizer) SetVolume(v float32) {
	s.synth.SetMasterVolume(v)
}

// Render adds len(dst)/2 stereo frames to dst.
func (s *Synthesizer) Render(dst []float32) {
	frames := len(dst) / 2
	for frames > 0 {
		n := min(frames, len(s.left))
		left := s.left[:n]
		right := s.right[:n]
		s.synth.Render(left, right)
		for i := 0; i < n; i++ {
			dst[2*i] += left[i]
			dst[2*i+1] += right[i]
		}
		dst = dst[2*n:]
		frames -= n
	}
}
