package musmix

// Synthesizer is a polyphonic note-level sound generator driven by the
// music sequencer (for example, a SoundFont synthesizer, see sf2synth package).
//
// All methods are called from the audio callback context.
// Implementations must not block and should not allocate.
type Synthesizer interface {
	// NoteOn starts a note. The velocity is normalized to [0, 1].
	NoteOn(channel, note int, velocity float32)

	NoteOff(channel, note int)

	// NoteOffAll releases all notes of the channel (they can fade out).
	NoteOffAll(channel int)

	// SoundsOffAll silences the channel immediately.
	SoundsOffAll(channel int)

	// SetPitchWheel applies a 14-bit MIDI pitch wheel value (8192 is neutral).
	SetPitchWheel(channel, value int)

	// MIDIControl applies a MIDI control change message.
	MIDIControl(channel, controller, value int)

	// SetPreset selects the channel preset.
	// The percussion flag requests a drum kit preset.
	SetPreset(channel, preset, bank int, percussion bool)

	SetBank(channel, bank int)

	// Reset returns all channels to their initial state.
	Reset()

	// SetVolume sets the global output gain.
	SetVolume(v float32)

	// Render generates len(dst)/2 stereo frames and adds them to dst.
	// The dst layout is interleaved: left, right, left, right...
	Render(dst []float32)
}
