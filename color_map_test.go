// color_map_test.go - Properties of the color-to-parameter mappings

package main

import (
	"math"
	"testing"
)

func TestHueToWeights_PureChannels(t *testing.T) {
	cases := []struct {
		hue               float64
		square, saw, sine float64
		desc              string
	}{
		{0, 1, 0, 0, "pure square at 0 degrees"},
		{120, 0, 1, 0, "pure sawtooth at 120 degrees"},
		{240, 0, 0, 1, "pure sine at 240 degrees"},
		{360, 1, 0, 0, "wraps back to square"},
		{60, 0.5, 0.5, 0, "square/sawtooth boundary"},
		{180, 0, 0.5, 0.5, "sawtooth/sine boundary"},
		{300, 0.5, 0, 0.5, "sine/square boundary"},
		{-120, 0, 0, 1, "negative hue wraps"},
	}

	for _, tc := range cases {
		w := hueToWeights(tc.hue)
		if math.Abs(w.Square-tc.square) > 1e-9 ||
			math.Abs(w.Sawtooth-tc.saw) > 1e-9 ||
			math.Abs(w.Sine-tc.sine) > 1e-9 {
			t.Errorf("%s: hue %v gave %+v, want square=%v saw=%v sine=%v",
				tc.desc, tc.hue, w, tc.square, tc.saw, tc.sine)
		}
	}
}

func TestHueToWeights_AllInRange(t *testing.T) {
	for h := 0.0; h < 360; h += 0.5 {
		w := hueToWeights(h)
		for _, v := range []float64{w.Square, w.Sawtooth, w.Sine} {
			if v < 0 || v > 1 {
				t.Fatalf("hue %v produced weight %v outside [0,1]", h, v)
			}
		}
	}
}

func TestLightnessToFrequency_Bounds(t *testing.T) {
	lowWant := CONCERT_A_HZ * math.Pow(2, LIGHTNESS_SEMITONE_MIN/12)
	highWant := CONCERT_A_HZ * math.Pow(2, LIGHTNESS_SEMITONE_MAX/12)

	if got := lightnessToFrequency(0); math.Abs(got-lowWant) > 1e-9 {
		t.Errorf("lightness 0: got %v Hz, want %v", got, lowWant)
	}
	if got := lightnessToFrequency(100); math.Abs(got-highWant) > 1e-9 {
		t.Errorf("lightness 100: got %v Hz, want %v", got, highWant)
	}

	// Out-of-range inputs saturate at the same bounds.
	if got := lightnessToFrequency(-40); math.Abs(got-lowWant) > 1e-9 {
		t.Errorf("lightness -40 should clamp to %v, got %v", lowWant, got)
	}
	if got := lightnessToFrequency(900); math.Abs(got-highWant) > 1e-9 {
		t.Errorf("lightness 900 should clamp to %v, got %v", highWant, got)
	}
}

func TestLightnessToFrequency_Monotonic(t *testing.T) {
	prev := lightnessToFrequency(0)
	for l := 1.0; l <= 100; l++ {
		f := lightnessToFrequency(l)
		if f < prev {
			t.Fatalf("frequency decreased from %v to %v at lightness %v", prev, f, l)
		}
		prev = f
	}
}

func TestLightnessToFrequency_MidpointIsConcertA(t *testing.T) {
	if got := lightnessToFrequency(50); math.Abs(got-CONCERT_A_HZ) > 1e-9 {
		t.Errorf("lightness 50: got %v Hz, want %v", got, CONCERT_A_HZ)
	}
}

func TestSaturationToVoiceGain(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0}, {50, 0.5}, {100, 1}, {-10, 0}, {250, 1},
	}
	for _, tc := range cases {
		if got := saturationToVoiceGain(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("saturation %v: got %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestScaleClamp(t *testing.T) {
	if got := scaleClamp(40, 0, 100, -25, 25); got != -5 {
		t.Errorf("scale(40,[0,100],[-25,25]) = %v, want -5", got)
	}
	if got := scaleClamp(-1, 0, 1, 0, 10); got != 0 {
		t.Errorf("below-domain input should saturate to 0, got %v", got)
	}
	if got := scaleClamp(2, 0, 1, 0, 10); got != 10 {
		t.Errorf("above-domain input should saturate to 10, got %v", got)
	}
}
