// color_map.go - Pure mappings from hue/saturation/lightness to synth parameters

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

import "math"

// Lightness maps to a semitone offset in this range around A440.
const (
	LIGHTNESS_SEMITONE_MIN = -25.0
	LIGHTNESS_SEMITONE_MAX = 25.0
	CONCERT_A_HZ           = 440.0
)

// scaleClamp linearly remaps value from [inMin, inMax] to [outMin, outMax],
// clamping the input to its domain first so out-of-range inputs saturate
// rather than extrapolate.
func scaleClamp(value, inMin, inMax, outMin, outMax float64) float64 {
	if value < inMin {
		value = inMin
	}
	if value > inMax {
		value = inMax
	}
	return outMin + (value-inMin)*(outMax-outMin)/(inMax-inMin)
}

// WaveformWeights is the hue decomposition written to every chain's three
// gain stages. Weights are each in [0,1]; they need not sum to 1.
type WaveformWeights struct {
	Square   float64
	Sawtooth float64
	Sine     float64
}

// hueToWeights treats hue like an additive color wheel with pure channels
// at 0 (square), 120 (sawtooth) and 240 (sine) degrees. Within each
// 120-degree sector the channel being left fades 1 -> 0 while the channel
// being entered fades 0 -> 1, so hues at exact 60-degree midpoints give two
// adjacent channels 0.5 each.
func hueToWeights(hue float64) WaveformWeights {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}

	sector := int(hue / 120)
	base := float64(sector) * 120
	leaving := scaleClamp(hue, base, base+120, 1, 0)
	entering := scaleClamp(hue, base, base+120, 0, 1)

	switch sector {
	case 0:
		return WaveformWeights{Square: leaving, Sawtooth: entering}
	case 1:
		return WaveformWeights{Sawtooth: leaving, Sine: entering}
	default:
		return WaveformWeights{Sine: leaving, Square: entering}
	}
}

// lightnessToFrequency maps lightness 0-100 to a base frequency in Hz via a
// semitone offset from concert A.
func lightnessToFrequency(lightness float64) float64 {
	semitones := scaleClamp(lightness, 0, 100, LIGHTNESS_SEMITONE_MIN, LIGHTNESS_SEMITONE_MAX)
	return CONCERT_A_HZ * math.Pow(2, semitones/12)
}

// saturationToVoiceGain maps saturation 0-100 to the output gain written to
// the third, fifth and seventh voices. The root voice is never touched by
// this path.
func saturationToVoiceGain(saturation float64) float64 {
	return scaleClamp(saturation, 0, 100, 0, 1)
}
