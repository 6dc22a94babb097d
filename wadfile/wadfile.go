// Package wadfile reads WAD archives: a flat directory of named lumps.
//
// Both IWAD (main game data) and PWAD (patch) archives are supported.
package wadfile

import (
	"fmt"
	"io"
	"strings"
)

// Kind is an archive kind, as stored in its header.
type Kind int

const (
	KindIWAD Kind = iota
	KindPWAD
)

func (k Kind) String() string {
	if k == KindIWAD {
		return "IWAD"
	}
	return "PWAD"
}

// Lump is a single named archive entry.
type Lump struct {
	// Name is an upper-case lump name, up to 8 characters.
	Name string

	// Data references the archive bytes, it's not copied.
	Data []byte
}

type Archive struct {
	Kind Kind

	// Lumps are stored in the directory order.
	Lumps []Lump

	byName map[string]int
}

// LumpByName finds a lump by its case-insensitive name.
// When several lumps share the name, the last one wins
// (this is how patch archives override the main data).
func (a *Archive) LumpByName(name string) ([]byte, bool) {
	i, ok := a.byName[strings.ToUpper(name)]
	if !ok {
		return nil, false
	}
	return a.Lumps[i].Data, true
}

// NumLumps reports the directory size.
func (a *Archive) NumLumps() int { return len(a.Lumps) }

func (a *Archive) index() {
	a.byName = make(map[string]int, len(a.Lumps))
	for i, l := range a.Lumps {
		a.byName[l.Name] = i
	}
}

// Parse reads the whole archive and decodes its directory.
//
// A non-nil error is usually a *ParseError object.
func Parse(r io.Reader) (*Archive, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	return ParseFromBytes(data)
}

// ParseFromBytes is like Parse, but it works with the data that is already in memory.
// The lumps reference the data slice.
func ParseFromBytes(data []byte) (*Archive, error) {
	p := &parser{data: data}
	return p.Parse()
}
