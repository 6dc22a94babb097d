package driver

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer plays the adapter output through an oto context.
//
// Only one oto context can exist per process, this includes
// the one that is created by the Ebitengine audio package.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player

	mutex   sync.Mutex
	started bool
}

func NewOtoPlayer(a *Adapter) (*OtoPlayer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   a.config.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   a.config.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("create oto context: %w", err)
	}
	<-ready

	return &OtoPlayer{
		ctx:    ctx,
		player: ctx.NewPlayer(NewReader(a)),
	}, nil
}

func (p *OtoPlayer) Start() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started {
		p.player.Play()
		p.started = true
	}
	return p.player.Err()
}

func (p *OtoPlayer) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.started = false
	return p.player.Close()
}
