package musfile

import (
	"encoding/binary"
)

// Writer encodes events into a MUS lump.
//
// It's mostly useful for tools and tests that need to synthesize scores.
type Writer struct {
	NumPrimaryChannels   int
	NumSecondaryChannels int
	Instruments          []uint16

	events []byte
}

// Write appends the encoded event.
// A non-zero Delay sets the "last event" flag and appends the delay bytes.
func (w *Writer) Write(e Event) {
	desc := byte(e.Kind&0b111)<<4 | (e.Channel & 0x0f)
	if e.Delay != 0 {
		desc |= 0x80
	}
	w.events = append(w.events, desc)

	switch e.Kind {
	case EventReleaseNote, EventSystem:
		w.events = append(w.events, e.Data1&0x7f)
	case EventPitchBend:
		w.events = append(w.events, e.Data1)
	case EventPlayNote:
		if e.HasVolume {
			w.events = append(w.events, e.Data1|0x80, e.Data2&0x7f)
		} else {
			w.events = append(w.events, e.Data1&0x7f)
		}
	case EventController:
		w.events = append(w.events, e.Data1&0x7f, e.Data2&0x7f)
	case EventUnused:
		w.events = append(w.events, 0)
	}

	if e.Delay != 0 {
		w.events = appendDelay(w.events, e.Delay)
	}
}

// Bytes returns the complete lump: header, instrument list and events.
func (w *Writer) Bytes() []byte {
	scoreStart := headerSize + 2*len(w.Instruments)
	data := make([]byte, scoreStart, scoreStart+len(w.events))
	copy(data, magic)
	binary.LittleEndian.PutUint16(data[4:], uint16(len(w.events)))
	binary.LittleEndian.PutUint16(data[6:], uint16(scoreStart))
	binary.LittleEndian.PutUint16(data[8:], uint16(w.NumPrimaryChannels))
	binary.LittleEndian.PutUint16(data[10:], uint16(w.NumSecondaryChannels))
	binary.LittleEndian.PutUint16(data[12:], uint16(len(w.Instruments)))
	for i, inst := range w.Instruments {
		binary.LittleEndian.PutUint16(data[headerSize+2*i:], inst)
	}
	return append(data, w.events...)
}

func appendDelay(dst []byte, delay uint32) []byte {
	var buf [5]byte
	i := len(buf) - 1
	buf[i] = byte(delay & 0x7f)
	delay >>= 7
	for delay != 0 {
		i--
		buf[i] = byte(delay&0x7f) | 0x80
		delay >>= 7
	}
	return append(dst, buf[i:]...)
}
