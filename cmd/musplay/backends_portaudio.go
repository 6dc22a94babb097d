//go:build portaudio

package main

import (
	"github.com/quasilyte/musmix/driver"
)

func init() {
	backends["portaudio"] = func(a *driver.Adapter) (driver.Player, error) {
		p, err := driver.NewPortAudioStream(a)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}
