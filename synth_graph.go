// synth_graph.go - Fixed signal topology: chains, voices, modulation and reverb paths

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

import "math"

// Voice roles, in build order. Root is never detuned by default and its
// output gain is pinned at 1; the other three carry the chord intervals.
const (
	VOICE_ROOT = iota
	VOICE_THIRD
	VOICE_FIFTH
	VOICE_SEVENTH
	NUM_VOICES
)

// Default chord-free intervals in semitones: a major triad with the
// seventh voice parked at unison until a seventh chord is scheduled.
var defaultVoiceIntervals = [NUM_VOICES]int{0, 4, 7, 0}

const (
	VOICE_MIX_LEVEL     = 0.25 // 1/4 for 4 voices
	DEFAULT_ROOT_FREQ   = 440.0
	GATE_DECAY_FRACTION = 0.25 // tail of each chord spent decaying the gate
	CHORD_REST_FRACTION = 0.10 // silence between chords
	GATE_DECAY_TAU_DIV  = 4.0  // time constants fitted inside the decay window
)

// equalPowerCrossfade maps an intensity in [0,1] to wet/dry gains on a
// quarter-turn sine curve, so the perceived level stays constant across the
// blend. Intensity 0 is fully dry, 1 fully wet.
func equalPowerCrossfade(intensity float64) (wet, dry float64) {
	intensity = scaleClamp(intensity, 0, 1, 0, 1)
	wet = math.Sin(intensity * math.Pi / 2)
	dry = math.Cos(intensity * math.Pi / 2)
	return wet, dry
}

// WaveformChain is three co-located generators sharing a base frequency and
// detune, each through its own gain stage, merged to one signal. The three
// gains carry the hue decomposition.
type WaveformChain struct {
	square   oscState
	sawtooth oscState
	sine     oscState

	SquareGain   *Param
	SawtoothGain *Param
	SineGain     *Param
	Freq         *Param // base frequency, Hz
	Detune       *Param // additive offset, cents
}

func newWaveformChain() *WaveformChain {
	return &WaveformChain{
		square:       oscState{shape: WAVE_SQUARE},
		sawtooth:     oscState{shape: WAVE_SAWTOOTH},
		sine:         oscState{shape: WAVE_SINE},
		SquareGain:   NewParam(1),
		SawtoothGain: NewParam(0),
		SineGain:     NewParam(0),
		Freq:         NewParam(DEFAULT_ROOT_FREQ),
		Detune:       NewParam(0),
	}
}

func (c *WaveformChain) renderSample(t float64) float32 {
	freq := c.Freq.Step(t) * centsRatio(c.Detune.Step(t))
	s := c.square.step(freq) * float32(c.SquareGain.Step(t))
	s += c.sawtooth.step(freq) * float32(c.SawtoothGain.Step(t))
	s += c.sine.step(freq) * float32(c.SineGain.Step(t))
	return s
}

// FrequencyVoice wraps one chain with a chain-level output gain and a fixed
// role interval. Voices are created once per graph and live until teardown;
// pause only suspends rendering.
type FrequencyVoice struct {
	Chain    *WaveformChain
	Interval int // semitones from root in chord-free operation
	Gain     *Param
}

func newFrequencyVoice(interval int) *FrequencyVoice {
	v := &FrequencyVoice{
		Chain:    newWaveformChain(),
		Interval: interval,
		Gain:     NewParam(1),
	}
	v.Chain.Detune.Set(float64(interval * 100))
	return v
}

func (v *FrequencyVoice) renderSample(t float64) float32 {
	return v.Chain.renderSample(t) * float32(v.Gain.Step(t))
}

// LFOPath amplitude-modulates its input with a low-frequency sine
// crossfaded against a constant signal. At zero intensity the input passes
// unchanged; at full intensity the amplitude swings over the whole LFO
// cycle.
type LFOPath struct {
	lfo     oscState
	Freq    *Param
	WetGain *Param
	DryGain *Param
}

func newLFOPath(freq, intensity float64) *LFOPath {
	p := &LFOPath{
		lfo:     oscState{shape: WAVE_SINE},
		Freq:    NewParam(freq),
		WetGain: NewParam(0),
		DryGain: NewParam(1),
	}
	p.SetIntensity(intensity)
	return p
}

// SetIntensity reapplies the wet/dry split for a new intensity.
func (p *LFOPath) SetIntensity(intensity float64) {
	wet, dry := equalPowerCrossfade(intensity)
	p.WetGain.Set(wet)
	p.DryGain.Set(dry)
}

func (p *LFOPath) renderSample(t float64, in float32) float32 {
	// Unipolar LFO so full intensity gates between silent and unity
	// rather than ring-modulating.
	lfo := 0.5 + 0.5*float64(p.lfo.step(p.Freq.Step(t)))
	mod := p.DryGain.Step(t) + p.WetGain.Step(t)*lfo
	return in * float32(mod)
}

// ReverbPath crossfades the convolver output against the unprocessed
// signal.
type ReverbPath struct {
	Convolver *Convolver
	WetGain   *Param
	DryGain   *Param
}

func newReverbPath(intensity float64) *ReverbPath {
	p := &ReverbPath{
		Convolver: &Convolver{},
		WetGain:   NewParam(0),
		DryGain:   NewParam(1),
	}
	p.SetIntensity(intensity)
	return p
}

func (p *ReverbPath) SetIntensity(intensity float64) {
	wet, dry := equalPowerCrossfade(intensity)
	p.WetGain.Set(wet)
	p.DryGain.Set(dry)
}

func (p *ReverbPath) renderSample(t float64, in float32) float32 {
	wet := p.Convolver.step(in)
	return in*float32(p.DryGain.Step(t)) + wet*float32(p.WetGain.Step(t))
}

// SignalGraph is the full fixed topology, built exactly once per playback
// session: four voices -> merge -> gate -> LFO path -> reverb path ->
// master volume.
type SignalGraph struct {
	Voices [NUM_VOICES]*FrequencyVoice
	Gate   *Param
	LFO    *LFOPath
	Reverb *ReverbPath
	Master *Param
}

func newSignalGraph(cfg EngineConfig) *SignalGraph {
	g := &SignalGraph{
		Gate:   NewParam(1),
		LFO:    newLFOPath(cfg.DefaultLFOFrequency, cfg.DefaultLFOIntensity),
		Reverb: newReverbPath(0), // impulse response has not loaded yet
		Master: NewParam(cfg.DefaultVolume),
	}
	for i := range g.Voices {
		g.Voices[i] = newFrequencyVoice(defaultVoiceIntervals[i])
	}
	return g
}

func (g *SignalGraph) renderSample(t float64) float32 {
	var s float32
	for _, v := range g.Voices {
		s += v.renderSample(t) * VOICE_MIX_LEVEL
	}
	s *= float32(g.Gate.Step(t))
	s = g.LFO.renderSample(t, s)
	s = g.Reverb.renderSample(t, s)
	s *= float32(g.Master.Step(t))

	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return s
}
