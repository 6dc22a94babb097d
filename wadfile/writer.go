package wadfile

import (
	"encoding/binary"
	"strings"
)

// Writer builds a WAD archive in memory.
type Writer struct {
	Kind Kind

	lumps []Lump
}

// Add appends a lump; names longer than 8 characters are truncated.
func (w *Writer) Add(name string, data []byte) {
	name = strings.ToUpper(name)
	if len(name) > lumpNameBytes {
		name = name[:lumpNameBytes]
	}
	w.lumps = append(w.lumps, Lump{Name: name, Data: data})
}

// Bytes returns the encoded archive: header, lump data, directory.
func (w *Writer) Bytes() []byte {
	dataSize := 0
	for _, l := range w.lumps {
		dataSize += len(l.Data)
	}
	dirOffset := headerSize + dataSize

	out := make([]byte, headerSize, dirOffset+len(w.lumps)*dirEntrySize)
	copy(out, w.Kind.String())
	binary.LittleEndian.PutUint32(out[4:], uint32(len(w.lumps)))
	binary.LittleEndian.PutUint32(out[8:], uint32(dirOffset))
	for _, l := range w.lumps {
		out = append(out, l.Data...)
	}

	filepos := headerSize
	var entry [dirEntrySize]byte
	for _, l := range w.lumps {
		entry = [dirEntrySize]byte{}
		binary.LittleEndian.PutUint32(entry[0:], uint32(filepos))
		binary.LittleEndian.PutUint32(entry[4:], uint32(len(l.Data)))
		copy(entry[8:], l.Name)
		out = append(out, entry[:]...)
		filepos += len(l.Data)
	}
	return out
}
