package driver

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// EbitenPlayer plays the adapter output through the Ebitengine audio context.
// It's the backend to use from an Ebitengine game.
type EbitenPlayer struct {
	player *audio.Player
}

func NewEbitenPlayer(a *Adapter) (*EbitenPlayer, error) {
	// There can be only one audio context.
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(a.config.SampleRate)
	}
	if ctx.SampleRate() != a.config.SampleRate {
		return nil, fmt.Errorf("audio context sample rate is %d, expected %d", ctx.SampleRate(), a.config.SampleRate)
	}

	player, err := ctx.NewPlayerF32(NewReader(a))
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}
	player.SetBufferSize(a.config.BufferSize)
	return &EbitenPlayer{player: player}, nil
}

func (p *EbitenPlayer) Start() error {
	p.player.Play()
	return nil
}

func (p *EbitenPlayer) Close() error {
	return p.player.Close()
}
