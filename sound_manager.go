// sound_manager.go - Facade owning the engine, graph, mapper and scheduler

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

import (
	"log"
	"sync"
)

// SoundManager is the single entry point the UI layer talks to. It owns the
// engine and the scheduler, remembers every parameter it has been told so
// setters are safe before the first Play, and translates UI-scale values to
// the internal domains. All mutation goes through its setters; callers need
// no locking of their own, and concurrent debounced callbacks resolve
// last-write-wins because every automation write carries an absolute
// timestamp.
type SoundManager struct {
	engine    *Engine
	scheduler *ChordScheduler

	mu sync.Mutex
	// Last-told external inputs, UI scale.
	hue        float64
	saturation float64
	lightness  float64
	// Mix parameters, internal scale.
	volume         float64
	reverbWet      float64 // intensity actually applied to the reverb path
	reverbStored   float64 // intensity the UI asked for, applied once the IR lands
	lfoIntensity   float64
	lfoFrequency   float64
	chordsEnabled  bool
	waveTableURLs  [2]string
	impulseURL     string
	assetsFetched  bool
	impulseApplied bool
}

func NewSoundManager(cfg EngineConfig) (*SoundManager, error) {
	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	m := &SoundManager{
		engine:       engine,
		volume:       cfg.DefaultVolume,
		lfoIntensity: cfg.DefaultLFOIntensity,
		lfoFrequency: cfg.DefaultLFOFrequency,
		saturation:   100,
		lightness:    50,
	}
	m.scheduler = NewChordScheduler(engine, cfg.DefaultChordDuration)
	return m, nil
}

// SetAssetURLs configures the optional periodic-wave and impulse-response
// fetches kicked off on the first Play. Empty strings skip the fetch.
func (m *SoundManager) SetAssetURLs(squareWaveURL, sawtoothWaveURL, impulseURL string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waveTableURLs = [2]string{squareWaveURL, sawtoothWaveURL}
	m.impulseURL = impulseURL
}

// Engine exposes the engine for front-ends that need the clock.
func (m *SoundManager) Engine() *Engine { return m.engine }

// Play builds the graph on the first call and resumes rendering on every
// call. Idempotent: the topology is constructed at most once. If chord mode
// is enabled the scheduler is (re)started.
func (m *SoundManager) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()

	first := m.engine.Graph() == nil
	g := m.engine.BuildGraph()
	if first {
		m.applyColorLocked(g)
		g.Master.Set(m.volume)
		g.LFO.Freq.Set(m.lfoFrequency)
		g.LFO.SetIntensity(m.lfoIntensity)
		g.Reverb.SetIntensity(m.reverbWet)
	}
	m.engine.Resume()

	if !m.assetsFetched {
		m.assetsFetched = true
		m.startAssetLoadsLocked(g)
	}
	if m.chordsEnabled {
		m.scheduler.Enable()
	}
}

// Pause suspends rendering. The graph and all scheduled automation stay
// intact; resuming simply picks the clock back up.
func (m *SoundManager) Pause() {
	m.engine.Suspend()
}

// Close tears the output device down.
func (m *SoundManager) Close() {
	m.scheduler.Disable()
	m.engine.Close()
}

// ChangeHue updates the waveform weight decomposition on every voice.
// Degrees, wrapping.
func (m *SoundManager) ChangeHue(hue float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hue = hue
	if g := m.engine.Graph(); g != nil {
		applyHue(g, hue)
	}
}

// ChangeSaturation updates the chord-voice gains. 0-100.
func (m *SoundManager) ChangeSaturation(saturation float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saturation = saturation
	if g := m.engine.Graph(); g != nil {
		applySaturation(g, saturation)
	}
}

// ChangeLightness updates the shared base frequency. 0-100.
func (m *SoundManager) ChangeLightness(lightness float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lightness = lightness
	if g := m.engine.Graph(); g != nil {
		applyLightness(g, lightness)
	}
}

// ChangeVolume takes the UI scale 0-100.
func (m *SoundManager) ChangeVolume(volume int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = scaleClamp(float64(volume), 0, 100, 0, 1)
	if g := m.engine.Graph(); g != nil {
		g.Master.Set(m.volume)
	}
}

// ChangeReverbIntensity takes the UI scale 0-100. Held at zero until the
// impulse response has loaded so an empty convolver cannot eat the signal.
func (m *SoundManager) ChangeReverbIntensity(intensity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reverbStored = scaleClamp(float64(intensity), 0, 100, 0, 1)
	if m.impulseApplied {
		m.reverbWet = m.reverbStored
	}
	if g := m.engine.Graph(); g != nil {
		g.Reverb.SetIntensity(m.reverbWet)
	}
}

// ChangeLFOIntensity takes the UI scale 0-100.
func (m *SoundManager) ChangeLFOIntensity(intensity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lfoIntensity = scaleClamp(float64(intensity), 0, 100, 0, 1)
	if g := m.engine.Graph(); g != nil {
		g.LFO.SetIntensity(m.lfoIntensity)
	}
}

// ChangeLFOFrequency takes integer Hertz, clamped to 1-30.
func (m *SoundManager) ChangeLFOFrequency(hz int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lfoFrequency = scaleClamp(float64(hz), 1, 30, 1, 30)
	if g := m.engine.Graph(); g != nil {
		g.LFO.Freq.Set(m.lfoFrequency)
	}
}

// ChangeChordProgression transitions the scheduler state machine.
func (m *SoundManager) ChangeChordProgression(enabled bool) {
	m.mu.Lock()
	m.chordsEnabled = enabled
	playing := m.engine.Graph() != nil && !m.engine.Suspended()
	m.mu.Unlock()

	if enabled && playing {
		m.scheduler.Enable()
	} else if !enabled {
		m.scheduler.Disable()
	}
}

// ChangeChordDuration takes seconds, clamped to 0.25-10; affects only
// future chords.
func (m *SoundManager) ChangeChordDuration(seconds float64) {
	m.scheduler.SetChordDuration(seconds)
}

// Scheduler exposes the scheduler for tests and front-ends.
func (m *SoundManager) Scheduler() *ChordScheduler { return m.scheduler }

// Snapshot returns the last-told inputs for display.
func (m *SoundManager) Snapshot() (hue, saturation, lightness, volume float64, chords bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hue, m.saturation, m.lightness, m.volume, m.chordsEnabled
}

func (m *SoundManager) applyColorLocked(g *SignalGraph) {
	applyHue(g, m.hue)
	applySaturation(g, m.saturation)
	applyLightness(g, m.lightness)
}

// startAssetLoadsLocked kicks off the fire-and-forget fetches. Completion
// callbacks apply to the live graph whenever they land; failures log and
// leave the raw-oscillator timbre and a silent reverb send in place.
func (m *SoundManager) startAssetLoadsLocked(g *SignalGraph) {
	chains := make([]*WaveformChain, 0, NUM_VOICES)
	for _, v := range g.Voices {
		chains = append(chains, v.Chain)
	}

	if url := m.waveTableURLs[0]; url != "" {
		go loadPeriodicWave(url, func(table []float32) {
			for _, c := range chains {
				c.square.SetTable(table)
			}
		})
	}
	if url := m.waveTableURLs[1]; url != "" {
		go loadPeriodicWave(url, func(table []float32) {
			for _, c := range chains {
				c.sawtooth.SetTable(table)
			}
		})
	}
	if url := m.impulseURL; url != "" {
		go loadImpulseResponse(url, m.applyImpulseResponse)
	} else {
		// No fetch configured: fall back to the generated response so
		// the reverb control still does something.
		go m.applyImpulseResponse(GenerateImpulseResponse(0.18, 2.5, 1))
	}
}

// applyImpulseResponse installs the response and re-applies the wet/dry
// split now that the wet path produces signal.
func (m *SoundManager) applyImpulseResponse(ir []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := m.engine.Graph()
	if g == nil {
		return
	}
	g.Reverb.Convolver.SetImpulseResponse(ir)
	m.impulseApplied = true
	m.reverbWet = m.reverbStored
	g.Reverb.SetIntensity(m.reverbWet)
	log.Printf("[audio] impulse response applied (%d samples)", len(ir))
}

// applyHue writes the same three weights to every voice so all four share
// one timbre.
func applyHue(g *SignalGraph, hue float64) {
	w := hueToWeights(hue)
	for _, v := range g.Voices {
		v.Chain.SquareGain.Set(w.Square)
		v.Chain.SawtoothGain.Set(w.Sawtooth)
		v.Chain.SineGain.Set(w.Sine)
	}
}

// applySaturation writes the chord-voice gain; the root voice's gain stays
// pinned at 1.
func applySaturation(g *SignalGraph, saturation float64) {
	gain := saturationToVoiceGain(saturation)
	for i, v := range g.Voices {
		if i == VOICE_ROOT {
			continue
		}
		v.Gain.Set(gain)
	}
}

// applyLightness writes the shared base frequency; detune stays a separate
// additive layer on top.
func applyLightness(g *SignalGraph, lightness float64) {
	freq := lightnessToFrequency(lightness)
	for _, v := range g.Voices {
		v.Chain.Freq.Set(freq)
	}
}
