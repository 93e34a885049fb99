// synth_reverb.go - Convolution unit for the reverb path

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

import (
	"math"
	"math/rand"
	"sync"
)

// Impulse responses longer than this are truncated. Direct-form FIR keeps
// the render loop allocation-free; ~185ms of tail is enough for the
// generated response and keeps the per-sample cost bounded.
const MAX_IR_SAMPLES = 8192

// Convolver convolves the input with a mono impulse response. It starts
// empty and silent; an impulse response can land at any time (asset fetch
// completing, or the generated fallback) and is applied between samples.
type Convolver struct {
	mu      sync.Mutex
	ir      []float32
	history []float32
	pos     int
}

// SetImpulseResponse installs a new impulse response, truncating to
// MAX_IR_SAMPLES and resetting the delay history.
func (c *Convolver) SetImpulseResponse(ir []float32) {
	if len(ir) > MAX_IR_SAMPLES {
		ir = ir[:MAX_IR_SAMPLES]
	}
	c.mu.Lock()
	c.ir = ir
	c.history = make([]float32, len(ir))
	c.pos = 0
	c.mu.Unlock()
}

// Loaded reports whether an impulse response has been applied.
func (c *Convolver) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ir) > 0
}

// step feeds one input sample and returns the wet sample. With no impulse
// response loaded the unit is silent, which leaves the reverb path
// contributing nothing until the asset lands.
func (c *Convolver) step(in float32) float32 {
	c.mu.Lock()
	ir := c.ir
	if len(ir) == 0 {
		c.mu.Unlock()
		return 0
	}
	c.history[c.pos] = in
	var acc float32
	idx := c.pos
	for _, tap := range ir {
		acc += tap * c.history[idx]
		idx--
		if idx < 0 {
			idx = len(c.history) - 1
		}
	}
	c.pos++
	if c.pos >= len(c.history) {
		c.pos = 0
	}
	c.mu.Unlock()
	return acc
}

// GenerateImpulseResponse builds a decaying-noise impulse response, the
// fallback character used when no response has been fetched. Deterministic
// for a given seed so golden tests stay stable.
func GenerateImpulseResponse(seconds, decay float64, seed int64) []float32 {
	length := int(seconds * SAMPLE_RATE)
	if length > MAX_IR_SAMPLES {
		length = MAX_IR_SAMPLES
	}
	if length < 1 {
		length = 1
	}
	rng := rand.New(rand.NewSource(seed))
	ir := make([]float32, length)
	for i := range ir {
		noise := rng.Float64()*2 - 1
		progress := float64(i) / float64(length)
		envelope := math.Pow(1-progress, decay)
		ir[i] = float32(noise * envelope * 0.5)
	}
	return ir
}
