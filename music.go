package musmix

import (
	"github.com/quasilyte/musmix/internal/musdb"
)

// musicPlayer is the audio side of the music playback state.
type musicPlayer struct {
	synth Synthesizer

	// seq is a live sequencer instance; nil means "not playing".
	seq *sequencer

	volume float32
	paused bool

	// reset is set whenever a song starts or stops;
	// the synthesizer channels are reset on the next render.
	reset bool

	// leftover is a number of frames that were requested by the last
	// render-samples event, but didn't fit the previous callback buffer.
	leftover int

	ev seqEvent
}

func (m *musicPlayer) play(seq *sequencer) {
	if m.seq != nil {
		m.seq.release()
	}
	m.seq = seq
	m.leftover = 0
	m.reset = true
	m.paused = false
}

func (m *musicPlayer) stop() {
	if m.seq != nil {
		m.seq.release()
		m.seq = nil
	}
	m.leftover = 0
	m.reset = true
	m.paused = false
}

// renderSynth adds count frames of the synthesizer output to buf
// and returns the rest of the buffer.
func (m *musicPlayer) renderSynth(buf []float32, count int) []float32 {
	m.synth.Render(buf[:count*2])
	return buf[count*2:]
}

// render adds the music to the buffer that already holds the effects mix.
func (m *musicPlayer) render(buf []float32) {
	if m.seq == nil || m.synth == nil || m.paused {
		return
	}

	if m.reset {
		m.synth.Reset()
		m.reset = false
	}
	m.synth.SetVolume(m.volume)

	remaining := len(buf) / 2
	out := buf
	leftover := 0

	if m.leftover > 0 {
		count := m.leftover
		if count > remaining {
			leftover = count - remaining
			count = remaining
		}
		out = m.renderSynth(out, count)
		remaining -= count
	}
	if leftover > 0 {
		m.leftover = leftover
		return
	}

	// restartsWithoutRender guards the callback against a score
	// that has no delays at all: it would loop forever otherwise.
	restartsWithoutRender := 0

	for remaining > 0 {
		ev := &m.ev
		m.seq.next(ev)

		switch ev.kind {
		case eventNoteOff:
			m.synth.NoteOff(ev.channel, ev.data1)

		case eventNoteOn:
			note, velocity := ev.noteOnData()
			m.synth.NoteOn(ev.channel, note, velocity)

		case eventPitchBend:
			m.synth.SetPitchWheel(ev.channel, ev.pitchWheelData())

		case eventSystem:
			m.systemEvent(ev)

		case eventController:
			m.controllerEvent(ev)

		case eventEndOfMeasure:
			// Structural marker, nothing to do.

		case eventFinish:
			restartsWithoutRender++
			if restartsWithoutRender > 1 {
				out = m.renderSynth(out, remaining)
				remaining = 0
				break
			}
			m.seq.restart()

		case eventRenderSamples:
			restartsWithoutRender = 0
			count := ev.renderData()
			if count > remaining {
				leftover = count - remaining
				count = remaining
			}
			out = m.renderSynth(out, count)
			remaining -= count
		}
	}

	m.leftover = leftover
}

func (m *musicPlayer) systemEvent(ev *seqEvent) {
	action := musdb.ConvertSystemEvent(uint8(ev.data1))
	switch action.Op {
	case musdb.OpAllSoundsOff:
		m.synth.SoundsOffAll(ev.channel)
	case musdb.OpAllNotesOff:
		m.synth.NoteOffAll(ev.channel)
	case musdb.OpResetAllControllers:
		m.synth.MIDIControl(ev.channel, int(action.Controller), 0)
	}
}

func (m *musicPlayer) controllerEvent(ev *seqEvent) {
	controller, value := ev.controllerData()
	action := musdb.ConvertController(controller)
	switch action.Op {
	case musdb.OpChangeInstrument:
		if ev.channel == musdb.PercussionChannel {
			m.synth.SetPreset(musdb.PercussionChannel, 0, 1, true)
		} else {
			m.synth.SetPreset(ev.channel, value, 0, false)
		}
	case musdb.OpBankSelect:
		m.synth.SetBank(ev.channel, value)
	case musdb.OpControlChange:
		m.synth.MIDIControl(ev.channel, int(action.Controller), value)
	}
}
