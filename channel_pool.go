package musmix

import (
	"sync/atomic"
)

// NumChannels is a number of simultaneous sound effect slots.
const NumChannels = 8

// Handle references a specific effect playback started by StartEffect.
type Handle uint16

// InvalidHandle is never returned by StartEffect.
const InvalidHandle Handle = 0

// soundChannel is a single effect playback slot.
//
// The channel state is owned by the audio callback.
// The control side only talks to it through the command queue.
type soundChannel struct {
	// samples is the effect 8-bit unsigned PCM data,
	// pos is a read cursor inside it.
	samples []byte
	pos     int

	effect EffectID
	handle Handle

	leftGain  int
	rightGain int
}

func (ch *soundChannel) isActive() bool {
	return ch.samples != nil && ch.pos < len(ch.samples)
}

func (ch *soundChannel) reset() {
	*ch = soundChannel{}
}

// channelPool is a fixed array of effect slots plus a published
// handle per slot.
//
// The published handles are written by both sides with atomics:
// the control side publishes a new handle when an effect is started
// and clears it when an effect is stopped; the audio side clears
// it when a sound reaches its end.
// This makes IsPlaying answer without waiting for the next audio callback.
type channelPool struct {
	channels  [NumChannels]soundChannel
	published [NumChannels]atomic.Uint32

	lastHandle Handle
}

// nextHandle mints a new handle; it wraps around skipping the InvalidHandle.
func (p *channelPool) nextHandle() Handle {
	p.lastHandle++
	if p.lastHandle == InvalidHandle {
		p.lastHandle = 1
	}
	return p.lastHandle
}

func (p *channelPool) isPlaying(h Handle) bool {
	if h == InvalidHandle {
		return false
	}
	for i := range p.published {
		if p.published[i].Load() == uint32(h) {
			return true
		}
	}
	return false
}

// start binds the slot to a new playback.
// This is an audio side operation.
func (p *channelPool) start(c *command) {
	ch := &p.channels[c.slot]
	*ch = soundChannel{
		samples:   c.samples,
		effect:    c.effect,
		handle:    c.handle,
		leftGain:  c.left,
		rightGain: c.right,
	}
	if !ch.isActive() {
		// A failed (empty) effect finishes right away.
		p.finish(c.slot)
	}
}

// stop clears the slot if it still plays the given handle.
// This is an audio side operation.
func (p *channelPool) stop(slot int, h Handle) {
	ch := &p.channels[slot]
	if ch.handle == h {
		ch.reset()
	}
}

func (p *channelPool) update(c *command) {
	ch := &p.channels[c.slot]
	if ch.handle == c.handle && ch.isActive() {
		ch.leftGain = c.left
		ch.rightGain = c.right
	}
}

// finish handles a natural sound completion.
// The published handle is only cleared if a newer sound wasn't
// started in this slot already.
func (p *channelPool) finish(slot int) {
	ch := &p.channels[slot]
	p.published[slot].CompareAndSwap(uint32(ch.handle), uint32(InvalidHandle))
	ch.reset()
}
