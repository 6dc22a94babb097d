package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/quasilyte/musmix"
	"github.com/quasilyte/musmix/driver"
	"github.com/quasilyte/musmix/meter"
	"github.com/quasilyte/musmix/sf2synth"
	"github.com/quasilyte/musmix/wadfile"
	"golang.org/x/term"
)

// This CLI tool plays a WAD song and lets you trigger the sound effects
// from the keyboard, the way a game would do it.

const ticksPerSecond = 35

func main() {
	wadPath := flag.String("wad", "", "path to the IWAD or PWAD file")
	sf2Path := flag.String("sf2", "", "path to the SoundFont used for music; no music if empty")
	songName := flag.String("song", "D_E1M1", "music lump name")
	backend := flag.String("backend", "oto", "audio backend: "+strings.Join(backendNames(), ", "))
	sampleRate := flag.Int("rate", 44100, "output sample rate")
	musicVolume := flag.Int("volume", 100, "music volume in [0, 127]")
	verbose := flag.Bool("v", false, "print the engine diagnostics")
	flag.Usage = func() {
		fmt.Printf("usage: go run ./cmd/musplay -wad doom1.wad -sf2 gm.sf2\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *wadPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	var logger *log.Logger
	if *verbose {
		logger = log.New(os.Stderr, "musplay: ", 0)
	}

	wadData, err := os.ReadFile(*wadPath)
	if err != nil {
		panic(fmt.Errorf("read WAD file: %w", err))
	}
	archive, err := wadfile.ParseFromBytes(wadData)
	if err != nil {
		panic(fmt.Errorf("parse WAD file: %w", err))
	}

	config := musmix.Config{
		SampleRate:  *sampleRate,
		MusicVolume: *musicVolume,
		Logger:      logger,
	}
	if *sf2Path != "" {
		synth, err := loadSynthesizer(*sf2Path, *sampleRate)
		if err != nil {
			panic(err)
		}
		config.Synthesizer = synth
	}
	engine := musmix.NewEngine(config)
	engine.CacheEffects(archive, effectList)

	monitor, err := meter.New(1024)
	if err != nil {
		panic(err)
	}
	s := newSession(engine, monitor, driver.Config{SampleRate: *sampleRate}, *musicVolume, os.Stdout)

	newPlayer, ok := backends[*backend]
	if !ok {
		panic(fmt.Sprintf("unknown backend %q", *backend))
	}
	player, err := newPlayer(s.adapter)
	if err != nil {
		panic(fmt.Errorf("create %s player: %w", *backend, err))
	}
	defer player.Close()

	if songData, ok := archive.LumpByName(*songName); ok {
		if err := engine.RegisterSong(songData); err != nil {
			panic(err)
		}
		engine.PlaySong()
	} else {
		fmt.Fprintf(os.Stderr, "song %q not found, playing effects only\n", *songName)
	}

	if err := player.Start(); err != nil {
		panic(fmt.Errorf("start %s player: %w", *backend, err))
	}

	keys, restore := readKeys()
	defer restore()

	s.run(keys)
	fmt.Print("\r\n")
}

func loadSynthesizer(path string, sampleRate int) (*sf2synth.Synthesizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open SoundFont: %w", err)
	}
	defer f.Close()
	return sf2synth.Load(f, sf2synth.Config{SampleRate: sampleRate})
}

// readKeys switches the terminal into raw mode and streams the pressed keys.
// Without a terminal, the keys are read as is (e.g. from a pipe).
func readKeys() (<-chan byte, func()) {
	fd := int(os.Stdin.Fd())
	restore := func() {}
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			panic(fmt.Errorf("set raw mode: %w", err))
		}
		restore = func() { _ = term.Restore(fd, oldState) }
	}

	keys := make(chan byte, 16)
	go func() {
		defer close(keys)
		var buf [1]byte
		for {
			if _, err := io.ReadFull(os.Stdin, buf[:]); err != nil {
				return
			}
			keys <- buf[0]
		}
	}()
	return keys, restore
}

type session struct {
	engine  *musmix.Engine
	adapter *driver.Adapter
	monitor *meter.Monitor
	styles  styles
	out     io.Writer

	volume   int
	nextSlot int
	lastKey  string
	tick     int
	spectrum []float64
}

// newSession binds the session to the adapter update loop:
// the status line is redrawn from the adapter upkeep hook.
func newSession(engine *musmix.Engine, monitor *meter.Monitor, config driver.Config, volume int, out io.Writer) *session {
	s := &session{
		engine:  engine,
		monitor: monitor,
		styles:  newStyles(),
		out:     out,
		volume:  volume,
	}
	config.Tap = monitor.Tap
	config.Upkeep = s.upkeep
	s.adapter = driver.NewAdapter(engine, config)
	return s
}

func (s *session) upkeep() {
	s.tick++
	if s.tick%5 == 0 {
		s.drawStatus()
	}
}

func (s *session) run(keys <-chan byte) {
	ticker := time.NewTicker(time.Second / ticksPerSecond)
	defer ticker.Stop()

	for {
		select {
		case k, ok := <-keys:
			if !ok || !s.handleKey(k) {
				return
			}
		case <-ticker.C:
			s.adapter.Update()
		}
	}
}

// handleKey returns false when it's time to quit.
func (s *session) handleKey(k byte) bool {
	switch {
	case k == 'q' || k == 3: // 3 is Ctrl+C in raw mode
		return false

	case k >= '1' && k <= '9':
		id := musmix.EffectID(k - '1')
		if s.engine.EffectLength(id) == 0 {
			s.lastKey = fmt.Sprintf("%s is silent", effectList[id].Name)
			break
		}
		s.engine.StartEffect(id, s.nextSlot, 127, 128)
		s.nextSlot = (s.nextSlot + 1) % musmix.NumChannels
		s.lastKey = effectList[id].Name

	case k == 'm':
		switch s.engine.MusicState() {
		case musmix.MusicPlaying, musmix.MusicPaused:
			s.engine.StopSong()
		case musmix.MusicStopped:
			s.engine.PlaySong()
		}

	case k == 'p':
		if s.engine.MusicState() == musmix.MusicPaused {
			s.engine.ResumeMusic()
		} else {
			s.engine.PauseMusic()
		}

	case k == '+' || k == '=':
		s.volume = min(s.volume+8, 127)
		s.engine.SetMusicVolume(s.volume)

	case k == '-':
		s.volume = max(s.volume-8, 0)
		s.engine.SetMusicVolume(s.volume)
	}

	return true
}

func (s *session) drawStatus() {
	left, right := s.monitor.Levels()
	s.spectrum = s.monitor.Spectrum(s.spectrum)
	stats := s.adapter.Stats()

	var b strings.Builder
	b.WriteString("\r\x1b[K")
	b.WriteString(s.styles.label.Render("music"))
	b.WriteByte(' ')
	b.WriteString(s.styles.state.Render(fmt.Sprintf("%-7s", s.engine.MusicState())))
	fmt.Fprintf(&b, " vol %3d ", s.volume)
	b.WriteString(s.styles.meter.Render(levelBar(left)))
	b.WriteByte('|')
	b.WriteString(s.styles.meter.Render(levelBar(right)))
	b.WriteByte(' ')
	b.WriteString(s.styles.spectrum.Render(spectrumBar(s.spectrum, 16)))
	fmt.Fprintf(&b, " %ds", stats.Frames/uint64(s.engine.SampleRate()))
	if s.lastKey != "" {
		b.WriteByte(' ')
		b.WriteString(s.styles.effect.Render(s.lastKey))
	}
	fmt.Fprint(s.out, b.String())
}
