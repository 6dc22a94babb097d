package wadfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/quasilyte/musmix/internal/test"
)

func TestParseArchive(t *testing.T) {
	w := Writer{Kind: KindPWAD}
	w.Add("dspistol", []byte{1, 2, 3})
	w.Add("D_E1M1", []byte("MUS\x1a"))
	w.Add("empty", nil)
	w.Add("DSPISTOL", []byte{4, 5})

	archive, err := Parse(bytes.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	test.ExpectEquality(t, archive.Kind, KindPWAD)
	test.ExpectEquality(t, archive.NumLumps(), 4)
	test.ExpectEquality(t, archive.Lumps[0].Name, "DSPISTOL")
	test.ExpectEquality(t, archive.Lumps[2].Name, "EMPTY")
	test.ExpectEquality(t, len(archive.Lumps[2].Data), 0)

	data, ok := archive.LumpByName("DsPistol")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, string(data), "\x04\x05")

	data, ok = archive.LumpByName("d_e1m1")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, string(data), "MUS\x1a")

	_, ok = archive.LumpByName("dsshotgn")
	test.ExpectFailure(t, ok)
}

func TestLongLumpName(t *testing.T) {
	w := Writer{Kind: KindIWAD}
	w.Add("verylongname", []byte{1})
	archive, err := ParseFromBytes(w.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	test.ExpectEquality(t, archive.Kind, KindIWAD)
	test.ExpectEquality(t, archive.Lumps[0].Name, "VERYLONG")
}

func TestParseErrors(t *testing.T) {
	valid := func() []byte {
		w := Writer{Kind: KindIWAD}
		w.Add("a", []byte{1, 2, 3, 4})
		return w.Bytes()
	}

	tests := []struct {
		name   string
		data   func() []byte
		offset int
		text   string
	}{
		{
			name:   "magic",
			data:   func() []byte { return []byte("JUNKxxxxxxxx") },
			offset: 0,
			text:   "unexpected magic",
		},
		{
			name:   "truncated header",
			data:   func() []byte { return []byte("IWAD\x01\x00") },
			offset: 4,
			text:   "unexpected EOF while reading number of lumps",
		},
		{
			name: "negative count",
			data: func() []byte {
				data := valid()
				binary.LittleEndian.PutUint32(data[4:], 0xffffffff)
				return data
			},
			offset: 4,
			text:   "negative number of lumps",
		},
		{
			name: "directory out of bounds",
			data: func() []byte {
				data := valid()
				binary.LittleEndian.PutUint32(data[4:], 100)
				return data
			},
			offset: 12,
			text:   "exceeds the archive size",
		},
		{
			name: "lump out of bounds",
			data: func() []byte {
				data := valid()
				binary.LittleEndian.PutUint32(data[len(data)-12:], 1000)
				return data
			},
			offset: 16,
			text:   `lump[0]: "A" data`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFromBytes(tc.data())
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected a ParseError, got %v", err)
			}
			test.ExpectEquality(t, parseErr.Offset, tc.offset)
			if !strings.Contains(parseErr.Message, tc.text) {
				t.Fatalf("error %q doesn't contain %q", parseErr.Message, tc.text)
			}
		})
	}
}
