// synth_osc.go - Waveform generators and periodic-wave tables

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

import (
	"math"
	"sync"
)

// Waveform shapes. Custom is an additive table compiled from fetched
// harmonic coefficients; until one lands the analytic shape is used.
const (
	WAVE_SQUARE = iota
	WAVE_SAWTOOTH
	WAVE_SINE
)

const WAVETABLE_SIZE = 2048

// PeriodicWave holds harmonic coefficient arrays in the layout the fetch
// endpoint serves: real[k]/imag[k] are the cosine/sine amplitudes of the
// k-th harmonic. Index 0 (DC) is ignored.
type PeriodicWave struct {
	Real []float64 `json:"real"`
	Imag []float64 `json:"imag"`
}

// Compile renders the coefficients into one normalized single-cycle table.
func (pw *PeriodicWave) Compile() []float32 {
	table := make([]float32, WAVETABLE_SIZE)
	n := len(pw.Real)
	if len(pw.Imag) < n {
		n = len(pw.Imag)
	}
	var peak float64
	for i := range table {
		phase := 2 * math.Pi * float64(i) / WAVETABLE_SIZE
		var s float64
		for k := 1; k < n; k++ {
			s += pw.Real[k]*math.Cos(float64(k)*phase) + pw.Imag[k]*math.Sin(float64(k)*phase)
		}
		table[i] = float32(s)
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak > 0 {
		scale := float32(1 / peak)
		for i := range table {
			table[i] *= scale
		}
	}
	return table
}

// oscState is one free-running generator. Generators are never stopped once
// the graph exists; audibility is controlled entirely by gain stages so a
// note can restart without clicks.
type oscState struct {
	shape int
	phase float64 // 0..1 cycle position

	tableMu sync.Mutex
	table   []float32 // replaces the analytic shape when non-nil
}

// SetTable swaps in a compiled periodic-wave table. Safe to call while the
// render thread is running; the swap lands between samples.
func (o *oscState) SetTable(table []float32) {
	o.tableMu.Lock()
	o.table = table
	o.tableMu.Unlock()
}

// step advances one sample at the given frequency and returns the raw
// waveform value in [-1, 1].
func (o *oscState) step(freq float64) float32 {
	o.tableMu.Lock()
	table := o.table
	o.tableMu.Unlock()

	var raw float32
	switch {
	case table != nil:
		pos := o.phase * WAVETABLE_SIZE
		i := int(pos)
		frac := float32(pos - float64(i))
		a := table[i%WAVETABLE_SIZE]
		b := table[(i+1)%WAVETABLE_SIZE]
		raw = a + (b-a)*frac
	case o.shape == WAVE_SQUARE:
		if o.phase < 0.5 {
			raw = 1
		} else {
			raw = -1
		}
	case o.shape == WAVE_SAWTOOTH:
		raw = float32(2*o.phase - 1)
	default: // WAVE_SINE
		raw = float32(math.Sin(2 * math.Pi * o.phase))
	}

	o.phase += freq / SAMPLE_RATE
	if o.phase >= 1 {
		o.phase -= math.Floor(o.phase)
	}
	return raw
}

// centsRatio converts a detune in cents to a frequency multiplier.
func centsRatio(cents float64) float64 {
	if cents == 0 {
		return 1
	}
	return math.Pow(2, cents/1200)
}
