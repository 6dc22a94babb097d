package musmix

// seqEventKind is a typed sequencer event tag.
//
// The sequencer turns raw MUS events into this stream;
// the score delays become eventRenderSamples entries.
type seqEventKind uint8

const (
	// eventUnknown is a sentinel value.
	// The music player should never receive an event of this kind.
	eventUnknown seqEventKind = iota

	eventNoteOff
	eventNoteOn
	eventPitchBend
	eventSystem
	eventController
	eventEndOfMeasure

	// eventFinish marks the end of the score.
	// The score is looped, so the player restarts the sequencer.
	eventFinish

	// eventRenderSamples asks the player to render N frames
	// before pulling the next event.
	eventRenderSamples
)

type seqEvent struct {
	kind    seqEventKind
	channel int

	data1 int
	data2 int
}

// noteOnData returns the event data if e.kind=eventNoteOn.
// The return values are: note, velocity in [0, 1].
func (e *seqEvent) noteOnData() (note int, velocity float32) {
	return e.data1, float32(e.data2) / 127.0
}

// pitchWheelData returns a 14-bit MIDI pitch wheel value if e.kind=eventPitchBend.
// The MUS bend amount (0-255, 128 is neutral) is scaled to 0-16320.
func (e *seqEvent) pitchWheelData() int {
	return (e.data1-128)*64 + 8192
}

// controllerData returns the event data if e.kind=eventController.
// The return values are: MUS controller number, value.
func (e *seqEvent) controllerData() (controller uint8, value int) {
	return uint8(e.data1), e.data2
}

// renderData returns a number of frames to render if e.kind=eventRenderSamples.
func (e *seqEvent) renderData() int {
	return e.data1
}
