package sf2synth

import (
	"math"
)

// MIDI status bytes (without the channel nibble).
const (
	midiControlChange = 0xb0
	midiProgramChange = 0xc0
	midiPitchBend     = 0xe0
)

const midiBankSelect = 0

const (
	musPercussionChannel  = 15
	midiPercussionChannel = 9
)

// midiChannel swaps the MUS and MIDI percussion channels.
func midiChannel(ch int) int32 {
	switch ch {
	case musPercussionChannel:
		return midiPercussionChannel
	case midiPercussionChannel:
		return musPercussionChannel
	default:
		return int32(ch)
	}
}

// midiVelocity converts a [0, 1] velocity into a 0-127 MIDI velocity.
func midiVelocity(v float32) int32 {
	vel := int32(math.Round(float64(v) * 127))
	if vel < 0 {
		return 0
	}
	if vel > 127 {
		return 127
	}
	return vel
}

// pitchWheelBytes splits a 14-bit pitch wheel value into two 7-bit data bytes.
func pitchWheelBytes(value int) (lsb, msb int32) {
	if value < 0 {
		value = 0
	}
	if value > 0x3fff {
		value = 0x3fff
	}
	return int32(value & 0x7f), int32(value >> 7)
}
