package main

import (
	"sort"

	"github.com/quasilyte/musmix/driver"
)

var backends = map[string]func(a *driver.Adapter) (driver.Player, error){
	"oto": func(a *driver.Adapter) (driver.Player, error) {
		p, err := driver.NewOtoPlayer(a)
		if err != nil {
			return nil, err
		}
		return p, nil
	},
	"ebiten": func(a *driver.Adapter) (driver.Player, error) {
		p, err := driver.NewEbitenPlayer(a)
		if err != nil {
			return nil, err
		}
		return p, nil
	},
	"beep": func(a *driver.Adapter) (driver.Player, error) {
		return driver.NewBeepStreamer(a), nil
	},
}

func backendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
