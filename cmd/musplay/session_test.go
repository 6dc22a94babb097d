package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/quasilyte/musmix"
	"github.com/quasilyte/musmix/driver"
	"github.com/quasilyte/musmix/internal/test"
	"github.com/quasilyte/musmix/meter"
)

func TestSessionUpkeep(t *testing.T) {
	monitor, err := meter.New(1024)
	if err != nil {
		t.Fatal(err)
	}
	engine := musmix.NewEngine(musmix.Config{})
	var out bytes.Buffer
	s := newSession(engine, monitor, driver.Config{}, 100, &out)

	for i := 0; i < 4; i++ {
		s.adapter.Update()
	}
	test.ExpectEquality(t, out.Len(), 0)

	s.adapter.Update()
	test.ExpectEquality(t, s.tick, 5)
	if !strings.Contains(out.String(), "music") {
		t.Fatalf("status line %q has no music state", out.String())
	}

	// The adapter feeds the monitor.
	s.adapter.Callback(make([]float32, 64))
	test.ExpectEquality(t, s.adapter.Stats().Frames, uint64(32))
}
