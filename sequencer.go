package musmix

import (
	"github.com/quasilyte/musmix/musfile"
)

// MUS scores are timed with 140 Hz ticks.
const musTicksPerSecond = 140

// defaultNoteVolume is used by play-note events that don't carry
// an explicit volume before any volume was set on that channel.
const defaultNoteVolume = 127

// sequencer decodes a MUS score into a typed event stream.
//
// A sequencer is created on the control side (see Engine.PlaySong)
// and then owned by the audio callback.
type sequencer struct {
	score  *musfile.Score
	reader musfile.Reader

	sampleRate    int
	tickRemainder int

	// pendingFrames is a delay of the last decoded event.
	// It's reported as eventRenderSamples on the next pull.
	pendingFrames int

	// Play-note events without a volume reuse the last channel volume.
	volumes [16]uint8

	released bool

	raw musfile.Event
}

func newSequencer(score *musfile.Score, sampleRate int) *sequencer {
	s := &sequencer{
		score:      score,
		sampleRate: sampleRate,
	}
	s.reader.Reset(score)
	s.resetVolumes()
	return s
}

func (s *sequencer) resetVolumes() {
	for i := range s.volumes {
		s.volumes[i] = defaultNoteVolume
	}
}

// restart moves the sequencer back to the beginning of the score.
// The tick remainder is kept to preserve the long-term timing.
func (s *sequencer) restart() {
	s.reader.Rewind()
	s.pendingFrames = 0
	s.resetVolumes()
}

// release marks the instance as torn down.
// A released sequencer must never be pulled again.
func (s *sequencer) release() {
	s.released = true
	s.score = nil
}

func (s *sequencer) next(e *seqEvent) {
	if s.released {
		panic("musmix: pulling events from a released sequencer")
	}

	if s.pendingFrames != 0 {
		*e = seqEvent{kind: eventRenderSamples, data1: s.pendingFrames}
		s.pendingFrames = 0
		return
	}

	raw := &s.raw
	s.reader.Next(raw)

	*e = seqEvent{channel: int(raw.Channel)}
	switch raw.Kind {
	case musfile.EventReleaseNote:
		e.kind = eventNoteOff
		e.data1 = int(raw.Data1)

	case musfile.EventPlayNote:
		e.kind = eventNoteOn
		e.data1 = int(raw.Data1)
		if raw.HasVolume {
			s.volumes[raw.Channel] = raw.Data2
		}
		e.data2 = int(s.volumes[raw.Channel])

	case musfile.EventPitchBend:
		e.kind = eventPitchBend
		e.data1 = int(raw.Data1)

	case musfile.EventSystem:
		e.kind = eventSystem
		e.data1 = int(raw.Data1)

	case musfile.EventController:
		e.kind = eventController
		e.data1 = int(raw.Data1)
		e.data2 = int(raw.Data2)

	case musfile.EventEndOfMeasure, musfile.EventUnused:
		e.kind = eventEndOfMeasure

	case musfile.EventFinish:
		e.kind = eventFinish
		return
	}

	if raw.Delay != 0 {
		s.pendingFrames = ticksToFrames(raw.Delay, s.sampleRate, &s.tickRemainder)
	}
}
