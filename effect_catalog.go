package musmix

import (
	"strings"
)

// EffectID is an index inside the effect list passed to CacheEffects.
type EffectID int

// EffectInfo describes a single sound effect of the game.
type EffectInfo struct {
	// Name is an effect name without the "ds" lump prefix, like "pistol".
	Name string

	// Link is an index of another effect that this effect shares the data with.
	// A negative value means that this effect owns its data.
	Link int
}

// Archive is an asset provider that can look up lumps by their names.
// See wadfile.Archive for an implementation.
type Archive interface {
	LumpByName(name string) ([]byte, bool)
}

// effectHeaderSize is a size of the DMX sound lump header
// (format, sample rate, number of samples) that precedes the PCM data.
const effectHeaderSize = 8

type assetState uint8

const (
	assetLoading assetState = iota
	assetValid
	assetFailed
)

// effectEntry either owns its sample buffer or
// references another entry (link is a non-negative index then).
type effectEntry struct {
	state assetState
	own   []byte
	link  int
}

type effectCatalog struct {
	entries []effectEntry
}

func (c *effectCatalog) size() int { return len(c.entries) }

// samples resolves the PCM data of the effect.
// Failed effects resolve to an empty slice, they play as silence.
func (c *effectCatalog) samples(id EffectID) []byte {
	e := &c.entries[id]
	if e.link >= 0 {
		e = &c.entries[e.link]
	}
	if e.state != assetValid {
		return nil
	}
	return e.own
}

func (c *effectCatalog) length(id EffectID) int {
	return len(c.samples(id))
}

// cacheEffects resolves every effect in the list.
// The warn callback is called for every effect that had to degrade.
func (c *effectCatalog) cacheEffects(archive Archive, effects []EffectInfo, defaultEffect string, warn func(format string, args ...any)) {
	c.entries = make([]effectEntry, len(effects))
	for i := range c.entries {
		c.entries[i].link = -1
	}

	for i, info := range effects {
		e := &c.entries[i]

		if info.Link >= 0 {
			if info.Link >= i {
				panic("musmix: effect links to an effect that is not cached yet")
			}
			target := info.Link
			if c.entries[target].link >= 0 {
				// Links always point to the owning entry.
				target = c.entries[target].link
			}
			e.link = target
			e.state = c.entries[target].state
			continue
		}

		e.state = assetLoading
		data, ok := lookupEffectLump(archive, info.Name)
		if !ok {
			warn("effect %q is missing, using %q instead", info.Name, defaultEffect)
			data, ok = lookupEffectLump(archive, defaultEffect)
		}
		if !ok || len(data) <= effectHeaderSize {
			warn("effect %q can't be loaded, it will play as silence", info.Name)
			e.state = assetFailed
			continue
		}

		e.own = data[effectHeaderSize:]
		e.state = assetValid
	}
}

func lookupEffectLump(archive Archive, name string) ([]byte, bool) {
	if archive == nil {
		return nil, false
	}
	return archive.LumpByName("ds" + strings.ToLower(name))
}
