package main

import (
	"testing"
	"unicode/utf8"

	"github.com/quasilyte/musmix/internal/test"
)

func TestLevelBar(t *testing.T) {
	test.ExpectEquality(t, levelBar(0), "............")
	test.ExpectEquality(t, levelBar(1), "############")
	test.ExpectEquality(t, levelBar(2), "############")
	test.ExpectEquality(t, levelBar(0.5), "######......")
}

func TestSpectrumBar(t *testing.T) {
	test.ExpectEquality(t, spectrumBar(nil, 4), "    ")

	bins := make([]float64, 64)
	bins[0] = 1
	bar := spectrumBar(bins, 16)
	test.ExpectEquality(t, utf8.RuneCountInString(bar), 16)
	test.ExpectEquality(t, bar[0], byte('#'))
	test.ExpectEquality(t, bar[1], byte(' '))
}

func TestEffectLinks(t *testing.T) {
	for i, e := range effectList {
		if e.Link >= i {
			t.Fatalf("%s links to a later effect", e.Name)
		}
	}
}
