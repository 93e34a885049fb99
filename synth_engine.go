// synth_engine.go - Render clock, engine lifecycle and output backend selection

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

import (
	"fmt"
	"sync"
	"sync/atomic"
)

const SAMPLE_RATE = 44100

// Output backends, selected the same way for every build: the oto backend
// is the default device path, ALSA talks to the PCM layer directly, and the
// headless backend renders nothing so tests can drive the clock by hand.
const (
	AUDIO_BACKEND_OTO = iota
	AUDIO_BACKEND_ALSA
	AUDIO_BACKEND_HEADLESS
)

// AudioOutput is the backend contract. Backends pull samples from the
// engine; Start/Stop control the device stream, Close releases it.
type AudioOutput interface {
	Start()
	Stop()
	Close()
	IsStarted() bool
}

func NewAudioOutput(backend int, engine *Engine) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		return NewOtoPlayer(engine, SAMPLE_RATE)
	case AUDIO_BACKEND_ALSA:
		return NewALSAPlayer(engine)
	case AUDIO_BACKEND_HEADLESS:
		return NewHeadlessPlayer(engine), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %d", backend)
	}
}

// EngineConfig carries the tunables the graph is built with.
type EngineConfig struct {
	Backend              int
	DefaultVolume        float64
	DefaultLFOFrequency  float64
	DefaultLFOIntensity  float64
	LookaheadSeconds     float64
	DefaultChordDuration float64
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Backend:              AUDIO_BACKEND_OTO,
		DefaultVolume:        0.1,
		DefaultLFOFrequency:  5,
		DefaultLFOIntensity:  0.5,
		LookaheadSeconds:     0.25,
		DefaultChordDuration: 2,
	}
}

// Engine owns the graph and the monotonic audio clock. The clock is the
// count of samples rendered; it does not advance while rendering is
// suspended, so automation timestamped against it stays consistent across
// pause/resume. The render thread only ever reads the graph pointer
// atomically — graph construction happens before the pointer is published.
type Engine struct {
	cfg       EngineConfig
	graph     atomic.Pointer[SignalGraph]
	samplePos atomic.Int64
	suspended atomic.Bool

	mu     sync.Mutex
	output AudioOutput
}

func NewEngine(cfg EngineConfig) (*Engine, error) {
	e := &Engine{cfg: cfg}
	e.suspended.Store(true)
	output, err := NewAudioOutput(cfg.Backend, e)
	if err != nil {
		return nil, fmt.Errorf("audio output: %w", err)
	}
	e.output = output
	return e, nil
}

// Graph returns the live graph, or nil before the first BuildGraph.
func (e *Engine) Graph() *SignalGraph {
	return e.graph.Load()
}

// BuildGraph constructs the fixed topology exactly once, synchronously.
// A second call is a no-op returning the existing graph, so a repeated
// play gesture cannot duplicate oscillators.
func (e *Engine) BuildGraph() *SignalGraph {
	e.mu.Lock()
	defer e.mu.Unlock()
	if g := e.graph.Load(); g != nil {
		return g
	}
	g := newSignalGraph(e.cfg)
	e.graph.Store(g)
	e.output.Start()
	return g
}

// CurrentTime reports the audio clock in seconds.
func (e *Engine) CurrentTime() float64 {
	return float64(e.samplePos.Load()) / SAMPLE_RATE
}

// Resume lets the render thread advance the clock and produce audio.
func (e *Engine) Resume() {
	e.suspended.Store(false)
}

// Suspend freezes the clock and silences output without touching the graph
// or any scheduled automation.
func (e *Engine) Suspend() {
	e.suspended.Store(true)
}

func (e *Engine) Suspended() bool {
	return e.suspended.Load()
}

// Close stops and releases the output device.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.output.Stop()
	e.output.Close()
}

// ReadSample renders the next output sample. Called only from the render
// thread (or from tests driving the clock by hand).
func (e *Engine) ReadSample() float32 {
	g := e.graph.Load()
	if g == nil || e.suspended.Load() {
		return 0
	}
	pos := e.samplePos.Add(1) - 1
	return g.renderSample(float64(pos) / SAMPLE_RATE)
}

// RenderInto fills a block of samples; the backends' pull loops and the
// tests share this path.
func (e *Engine) RenderInto(buf []float32) {
	for i := range buf {
		buf[i] = e.ReadSample()
	}
}
