package musfile

import (
	"bytes"
	"errors"
	"testing"

	"github.com/quasilyte/musmix/internal/test"
)

func TestParseHeader(t *testing.T) {
	w := Writer{
		NumPrimaryChannels: 3,
		Instruments:        []uint16{30, 135},
	}
	w.Write(Event{Kind: EventPlayNote, Channel: 1, Data1: 60, Data2: 100, HasVolume: true, Delay: 7})
	w.Write(Event{Kind: EventFinish})

	score, err := Parse(bytes.NewReader(w.Bytes()))
	if !test.ExpectSuccess(t, err) {
		return
	}
	test.ExpectEquality(t, score.NumPrimaryChannels, 3)
	test.ExpectEquality(t, len(score.Instruments), 2)
	test.ExpectEquality(t, score.Instruments[1], uint16(135))
	test.ExpectEquality(t, score.ScoreStart, headerSize+4)
	test.ExpectEquality(t, len(score.Data), 5)
}

func TestParseErrors(t *testing.T) {
	valid := func() []byte {
		var w Writer
		w.Write(Event{Kind: EventFinish})
		return w.Bytes()
	}

	tests := []struct {
		name   string
		data   func() []byte
		offset int
	}{
		{
			name:   "bad magic",
			data:   func() []byte { d := valid(); d[0] = 'X'; return d },
			offset: 4,
		},
		{
			name:   "short header",
			data:   func() []byte { return valid()[:9] },
			offset: 8,
		},
		{
			name: "score past the end",
			data: func() []byte {
				d := valid()
				d[4] = 200
				return d
			},
			offset: headerSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFromBytes(tt.data())
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected a *ParseError, got %v", err)
			}
			test.ExpectEquality(t, parseErr.Offset, tt.offset)
		})
	}
}

func TestParseAllowsTrailingBytes(t *testing.T) {
	var w Writer
	w.Write(Event{Kind: EventFinish})
	data := append(w.Bytes(), 0, 0, 0, 0)
	score, err := ParseFromBytes(data)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(score.Data), 1)
}

func TestReaderRoundTrip(t *testing.T) {
	events := []Event{
		{Kind: EventController, Channel: 0, Data1: 0, Data2: 30},
		{Kind: EventPlayNote, Channel: 0, Data1: 60, Data2: 90, HasVolume: true},
		{Kind: EventPlayNote, Channel: 15, Data1: 35, Delay: 70},
		{Kind: EventPitchBend, Channel: 0, Data1: 200},
		{Kind: EventSystem, Channel: 2, Data1: 11, Delay: 300000},
		{Kind: EventReleaseNote, Channel: 0, Data1: 60},
		{Kind: EventEndOfMeasure, Channel: 0, Delay: 1},
		{Kind: EventFinish},
	}

	var w Writer
	for _, e := range events {
		w.Write(e)
	}
	score, err := ParseFromBytes(w.Bytes())
	if !test.ExpectSuccess(t, err) {
		return
	}

	r := NewReader(score)
	for i := 0; i < 2; i++ {
		for _, want := range events {
			var have Event
			r.Next(&have)
			test.ExpectEquality(t, have, want)
		}
		r.Rewind()
	}
}

func TestReaderTruncated(t *testing.T) {
	var w Writer
	w.Write(Event{Kind: EventController, Data1: 3, Data2: 100, Delay: 1})
	data := w.Bytes()

	score, err := ParseFromBytes(data)
	if !test.ExpectSuccess(t, err) {
		return
	}
	// Cut the controller value and the delay.
	score.Data = score.Data[:2]

	r := NewReader(score)
	var e Event
	r.Next(&e)
	test.ExpectEquality(t, e.Kind, EventFinish)
	r.Next(&e)
	test.ExpectEquality(t, e.Kind, EventFinish)
	test.ExpectEquality(t, r.Offset(), 2)
}

func TestDelayEncoding(t *testing.T) {
	for _, delay := range []uint32{1, 127, 128, 16383, 16384, 1 << 21} {
		var w Writer
		w.Write(Event{Kind: EventEndOfMeasure, Delay: delay})
		score, err := ParseFromBytes(w.Bytes())
		if !test.ExpectSuccess(t, err) {
			continue
		}
		var e Event
		NewReader(score).Next(&e)
		test.ExpectEquality(t, e.Delay, delay)
	}
}
