package musfile

// Reader decodes the score events one by one.
//
// It never allocates, so it's safe to use it from the audio callback.
// A truncated score behaves like a score that has a finish event
// at the point of truncation.
type Reader struct {
	data   []byte
	offset int
}

// NewReader returns a reader positioned at the first score event.
func NewReader(s *Score) *Reader {
	r := &Reader{}
	r.Reset(s)
	return r
}

// Reset binds the reader to another score and rewinds it.
func (r *Reader) Reset(s *Score) {
	r.data = s.Data
	r.offset = 0
}

// Rewind moves the reader back to the first event.
func (r *Reader) Rewind() {
	r.offset = 0
}

// Offset reports the reader position inside the score data.
func (r *Reader) Offset() int {
	return r.offset
}

func (r *Reader) readByte() (byte, bool) {
	if r.offset >= len(r.data) {
		return 0, false
	}
	b := r.data[r.offset]
	r.offset++
	return b, true
}

// Next decodes the next event into e.
func (r *Reader) Next(e *Event) {
	*e = Event{Kind: EventFinish}

	desc, ok := r.readByte()
	if !ok {
		return
	}
	kind := EventKind((desc >> 4) & 0b111)
	e.Channel = desc & 0x0f

	switch kind {
	case EventReleaseNote, EventPitchBend, EventSystem:
		b, ok := r.readByte()
		if !ok {
			return
		}
		e.Data1 = b
		if kind != EventPitchBend {
			e.Data1 &= 0x7f
		}

	case EventPlayNote:
		b, ok := r.readByte()
		if !ok {
			return
		}
		e.Data1 = b & 0x7f
		if b&0x80 != 0 {
			vol, ok := r.readByte()
			if !ok {
				return
			}
			e.Data2 = vol & 0x7f
			e.HasVolume = true
		}

	case EventController:
		num, ok := r.readByte()
		if !ok {
			return
		}
		value, ok := r.readByte()
		if !ok {
			return
		}
		e.Data1 = num & 0x7f
		e.Data2 = value & 0x7f

	case EventUnused:
		// The event payload is a single byte that is never interpreted.
		if _, ok := r.readByte(); !ok {
			return
		}
	}

	e.Kind = kind

	if desc&0x80 != 0 {
		e.Delay = r.readDelay()
	}
}

func (r *Reader) readDelay() uint32 {
	var delay uint32
	for {
		b, ok := r.readByte()
		if !ok {
			return delay
		}
		delay = (delay << 7) | uint32(b&0x7f)
		if b&0x80 == 0 {
			return delay
		}
	}
}
