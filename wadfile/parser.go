package wadfile

import (
	"encoding/binary"
	"fmt"
)

const (
	headerSize    = 12
	dirEntrySize  = 16
	lumpNameBytes = 8
)

type parser struct {
	data   []byte
	offset int

	archive Archive

	// The current directory entry, for error messages.
	entry int
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	msg := fmt.Sprintf(format, args...)
	if p.entry >= 0 {
		msg = fmt.Sprintf("lump[%d]: %s", p.entry, msg)
	}
	return &ParseError{Message: msg, Offset: p.offset}
}

func (p *parser) read(l int, what string) []byte {
	if len(p.data)-p.offset < l {
		panic(p.errorf("unexpected EOF while reading %s", what))
	}
	b := p.data[p.offset : p.offset+l]
	p.offset += l
	return b
}

func (p *parser) readInt32(what string) int {
	v := int32(binary.LittleEndian.Uint32(p.read(4, what)))
	if v < 0 {
		p.offset -= 4
		panic(p.errorf("negative %s: %d", what, v))
	}
	return int(v)
}

func (p *parser) Parse() (archive *Archive, err error) {
	defer func() {
		rv := recover()
		if rv == nil {
			return
		}
		if parseErr, ok := rv.(*ParseError); ok {
			archive = nil
			err = parseErr
			return
		}
		panic(rv)
	}()

	p.entry = -1
	p.parseArchive()
	p.archive.index()
	return &p.archive, nil
}

func (p *parser) parseArchive() {
	switch id := string(p.read(4, "magic")); id {
	case "IWAD":
		p.archive.Kind = KindIWAD
	case "PWAD":
		p.archive.Kind = KindPWAD
	default:
		p.offset = 0
		panic(p.errorf("unexpected magic: %q", id))
	}

	numLumps := p.readInt32("number of lumps")
	dirOffset := p.readInt32("directory offset")
	if dirOffset+numLumps*dirEntrySize > len(p.data) {
		panic(p.errorf("directory of %d lumps at %d exceeds the archive size %d", numLumps, dirOffset, len(p.data)))
	}

	p.offset = dirOffset
	p.archive.Lumps = make([]Lump, numLumps)
	for i := range p.archive.Lumps {
		p.entry = i
		entryOffset := p.offset
		filepos := p.readInt32("lump offset")
		size := p.readInt32("lump size")
		name := lumpName(p.read(lumpNameBytes, "lump name"))
		if filepos+size > len(p.data) {
			p.offset = entryOffset
			panic(p.errorf("%q data [%d, %d) is out of bounds", name, filepos, filepos+size))
		}
		p.archive.Lumps[i] = Lump{
			Name: name,
			Data: p.data[filepos : filepos+size : filepos+size],
		}
	}
}
