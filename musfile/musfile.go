package musfile

import (
	"fmt"
	"io"
)

// Score is a parsed MUS lump.
// The event data is not decoded here, use a Reader to walk it.
type Score struct {
	NumPrimaryChannels   int
	NumSecondaryChannels int

	// Instruments lists the patches used by the score.
	// Values 135-181 are percussion instruments.
	Instruments []uint16

	// ScoreStart is an offset of the event data inside the parsed lump.
	ScoreStart int

	// Data holds the event bytes (exactly the declared score length).
	Data []byte
}

// EventKind is a MUS event type encoded in bits 4-6 of the event descriptor.
type EventKind uint8

const (
	EventReleaseNote EventKind = iota
	EventPlayNote
	EventPitchBend
	EventSystem
	EventController
	EventEndOfMeasure
	EventFinish
	EventUnused
)

func (k EventKind) String() string {
	switch k {
	case EventReleaseNote:
		return "release note"
	case EventPlayNote:
		return "play note"
	case EventPitchBend:
		return "pitch bend"
	case EventSystem:
		return "system event"
	case EventController:
		return "controller"
	case EventEndOfMeasure:
		return "end of measure"
	case EventFinish:
		return "finish"
	default:
		return "unused"
	}
}

// Event is a single raw MUS event.
//
// The meaning of Data1 and Data2 depends on the kind:
//
//	EventReleaseNote: Data1=note
//	EventPlayNote:    Data1=note, Data2=volume (only if HasVolume)
//	EventPitchBend:   Data1=bend amount (0-255, 128 is neutral)
//	EventSystem:      Data1=system event number
//	EventController:  Data1=controller number, Data2=value
type Event struct {
	Kind    EventKind
	Channel uint8

	Data1 uint8
	Data2 uint8

	HasVolume bool

	// Delay is a number of 140 Hz ticks to wait before the next event.
	Delay uint32
}

// Parse reads the MUS lump data and decodes its header.
//
// A non-nil error is usually a *ParseError object.
func Parse(r io.Reader) (*Score, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	return ParseFromBytes(data)
}

// ParseFromBytes is like Parse, but it works with the data that is already in memory.
// The returned score references the data slice, it's not copied.
func ParseFromBytes(data []byte) (*Score, error) {
	p := &parser{data: data}
	return p.Parse()
}
