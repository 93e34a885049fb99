// tui_frontend.go - Terminal control surface forwarding values to the facade

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8af"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
)

// tuiControl is one adjustable row. Every adjustment is a facade setter
// call; the TUI holds no audio state of its own beyond display copies.
type tuiControl struct {
	name  string
	value float64
	min   float64
	max   float64
	step  float64
	apply func(m *SoundManager, v float64)
}

type tuiModel struct {
	manager  *SoundManager
	controls []tuiControl
	cursor   int
	playing  bool
	chords   bool
	quitting bool
}

func newTuiModel(manager *SoundManager, cfg EngineConfig) tuiModel {
	return tuiModel{
		manager: manager,
		controls: []tuiControl{
			{"hue", 0, 0, 360, 5, func(m *SoundManager, v float64) { m.ChangeHue(v) }},
			{"saturation", 100, 0, 100, 5, func(m *SoundManager, v float64) { m.ChangeSaturation(v) }},
			{"lightness", 50, 0, 100, 5, func(m *SoundManager, v float64) { m.ChangeLightness(v) }},
			{"volume", cfg.DefaultVolume * 100, 0, 100, 5, func(m *SoundManager, v float64) { m.ChangeVolume(int(v)) }},
			{"reverb", 0, 0, 100, 5, func(m *SoundManager, v float64) { m.ChangeReverbIntensity(int(v)) }},
			{"lfo depth", cfg.DefaultLFOIntensity * 100, 0, 100, 5, func(m *SoundManager, v float64) { m.ChangeLFOIntensity(int(v)) }},
			{"lfo rate", cfg.DefaultLFOFrequency, 1, 30, 1, func(m *SoundManager, v float64) { m.ChangeLFOFrequency(int(v)) }},
			{"chord len", cfg.DefaultChordDuration, 0.25, 10, 0.25, func(m *SoundManager, v float64) { m.ChangeChordDuration(v) }},
		},
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.controls)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "h", "left":
		c := &m.controls[m.cursor]
		c.value -= c.step
		if c.value < c.min {
			// Hue wraps; everything else saturates.
			if c.name == "hue" {
				c.value += 360
			} else {
				c.value = c.min
			}
		}
		c.apply(m.manager, c.value)

	case "l", "right":
		c := &m.controls[m.cursor]
		c.value += c.step
		if c.value > c.max {
			if c.name == "hue" {
				c.value -= 360
			} else {
				c.value = c.max
			}
		}
		c.apply(m.manager, c.value)

	case " ":
		if m.playing {
			m.manager.Pause()
		} else {
			m.manager.Play()
		}
		m.playing = !m.playing

	case "c":
		m.chords = !m.chords
		m.manager.ChangeChordProgression(m.chords)
	}

	return m, nil
}

func (m tuiModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(activeStyle.Render("chromasynth"))
	b.WriteString("\n\n")

	for i, c := range m.controls {
		marker := "  "
		style := dimStyle
		if i == m.cursor {
			marker = "> "
			style = activeStyle
		}
		frac := (c.value - c.min) / (c.max - c.min)
		filled := int(frac * 20)
		bar := barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", 20-filled))
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", marker, style.Render(fmt.Sprintf("%-10s", c.name)), bar, style.Render(fmt.Sprintf("%6.2f", c.value))))
	}

	state := "stopped"
	if m.playing {
		state = "playing"
	}
	chords := "off"
	if m.chords {
		chords = "on"
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("[%s] chords: %s  t=%.1fs", state, chords, m.manager.Engine().CurrentTime())))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("space play/pause · c chords · h/l adjust · j/k select · q quit"))
	b.WriteString("\n")
	return b.String()
}

// RunTUI blocks until the user quits.
func RunTUI(manager *SoundManager, cfg EngineConfig) error {
	_, err := tea.NewProgram(newTuiModel(manager, cfg)).Run()
	return err
}
