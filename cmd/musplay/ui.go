package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	label    lipgloss.Style
	state    lipgloss.Style
	meter    lipgloss.Style
	spectrum lipgloss.Style
	effect   lipgloss.Style
}

func newStyles() styles {
	return styles{
		label:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(4)),
		state:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		meter:    lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(2)),
		spectrum: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)),
		effect:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(5)),
	}
}

const levelWidth = 12

func levelBar(level float32) string {
	n := int(math.Round(float64(min(level, 1)) * levelWidth))
	return strings.Repeat("#", n) + strings.Repeat(".", levelWidth-n)
}

var spectrumRunes = []rune(" .:-=+*#")

// spectrumBar folds the bins into width columns.
func spectrumBar(bins []float64, width int) string {
	if len(bins) == 0 {
		return strings.Repeat(" ", width)
	}
	per := max(len(bins)/width, 1)
	var b strings.Builder
	for col := 0; col < width; col++ {
		peak := 0.0
		for i := col * per; i < (col+1)*per && i < len(bins); i++ {
			peak = max(peak, bins[i])
		}
		// Map [-48dB, 0dB] to the rune ramp.
		db := 20 * math.Log10(peak+1e-9)
		level := int((db + 48) / 48 * float64(len(spectrumRunes)-1))
		level = max(0, min(level, len(spectrumRunes)-1))
		b.WriteRune(spectrumRunes[level])
	}
	return b.String()
}
