package musfile

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const headerSize = 16

var magic = []byte{'M', 'U', 'S', 0x1a}

type parser struct {
	// Data holds the MUS lump bytes.
	data []byte

	// Offset is our current position inside the data.
	offset int

	score Score

	// These fields below are needed for better error reporting.
	stage      string
	stageIndex int
}

func (p *parser) startStage(name string) {
	p.stage = name
	p.stageIndex = -1
}

func (p *parser) formatStage() string {
	if p.stageIndex < 0 {
		return p.stage
	}
	var b strings.Builder
	b.Grow(len(p.stage) + 8)
	b.WriteString(p.stage)
	fmt.Fprintf(&b, "[%d]", p.stageIndex)
	return b.String()
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{
		Stage:   p.formatStage(),
		Message: fmt.Sprintf(format, args...),
		Offset:  p.offset,
	}
}

func (p *parser) dataBytesRemaining() int {
	return len(p.data) - p.offset
}

func (p *parser) read(l int, what string) []byte {
	if p.dataBytesRemaining() < l {
		panic(p.errorf("unexpected EOF while reading %s", what))
	}
	b := p.data[p.offset : p.offset+l]
	p.offset += l
	return b
}

func (p *parser) readWord(what string) uint16 {
	if p.dataBytesRemaining() < 2 {
		panic(p.errorf("unexpected EOF while reading %s", what))
	}
	v := binary.LittleEndian.Uint16(p.data[p.offset:])
	p.offset += 2
	return v
}

func (p *parser) Parse() (score *Score, err error) {
	defer func() {
		rv := recover()
		if rv != nil {
			if panicErr, ok := rv.(*ParseError); ok {
				score = nil
				err = panicErr
			} else {
				panic(rv)
			}
		}
	}()

	p.parseScore()

	return &p.score, nil
}

func (p *parser) parseScore() {
	p.startStage("header")
	if id := p.read(len(magic), "magic"); string(id) != string(magic) {
		panic(p.errorf("unexpected magic: %q", id))
	}

	scoreLength := int(p.readWord("score length"))
	scoreStart := int(p.readWord("score start"))
	p.score.NumPrimaryChannels = int(p.readWord("number of primary channels"))
	p.score.NumSecondaryChannels = int(p.readWord("number of secondary channels"))
	numInstruments := int(p.readWord("number of instruments"))
	p.readWord("reserved")

	if p.score.NumPrimaryChannels > 15 {
		panic(p.errorf("too many primary channels: %d", p.score.NumPrimaryChannels))
	}
	if scoreStart < headerSize+numInstruments*2 {
		panic(p.errorf("score start %d overlaps the instrument list", scoreStart))
	}

	p.startStage("instrument")
	p.score.Instruments = make([]uint16, numInstruments)
	for i := range p.score.Instruments {
		p.stageIndex = i
		p.score.Instruments[i] = p.readWord("instrument patch")
	}

	p.startStage("score")
	if scoreStart+scoreLength > len(p.data) {
		p.offset = scoreStart
		panic(p.errorf("declared score length %d exceeds the lump size %d", scoreLength, len(p.data)))
	}
	p.offset = scoreStart
	p.score.ScoreStart = scoreStart
	p.score.Data = p.read(scoreLength, "score data")
}
