// synth_param_test.go - Automation event evaluation

package main

import (
	"math"
	"testing"
)

// stepUntil advances the param one sample at a time up to time t and
// returns the final value.
func stepUntil(p *Param, from, to float64) float64 {
	v := p.Value()
	for t := from; t <= to; t += 1.0 / SAMPLE_RATE {
		v = p.Step(t)
	}
	return v
}

func TestParam_SetValueAt(t *testing.T) {
	p := NewParam(0)
	p.SetValueAt(0.01, 5)

	if v := p.Step(0.005); v != 0 {
		t.Errorf("value before event time: got %v, want 0", v)
	}
	if v := p.Step(0.01); v != 5 {
		t.Errorf("value at event time: got %v, want 5", v)
	}
}

func TestParam_LinearRamp(t *testing.T) {
	p := NewParam(0)
	p.RampTo(0.01, 1)

	mid := p.Step(0.005)
	if math.Abs(mid-0.5) > 0.01 {
		t.Errorf("ramp midpoint: got %v, want ~0.5", mid)
	}
	end := p.Step(0.01)
	if end != 1 {
		t.Errorf("ramp end: got %v, want 1", end)
	}

	// A second ramp anchors at the first ramp's end point.
	p.RampTo(0.02, 3)
	mid = p.Step(0.015)
	if math.Abs(mid-2) > 0.01 {
		t.Errorf("second ramp midpoint: got %v, want ~2", mid)
	}
}

func TestParam_ExponentialTarget(t *testing.T) {
	p := NewParam(1)
	tau := 0.005
	p.TargetAt(0, 0, tau)

	// After five time constants the approach is within 1% of target.
	v := stepUntil(p, 0, 5*tau)
	if v > 0.011 {
		t.Errorf("after 5 tau: got %v, want < 0.011", v)
	}
	if v <= 0 {
		t.Errorf("exponential approach should never cross its target, got %v", v)
	}
}

func TestParam_TargetTerminatedBySetValue(t *testing.T) {
	p := NewParam(1)
	p.TargetAt(0, 0, 0.01)
	p.SetValueAt(0.005, 1)

	v := stepUntil(p, 0, 0.006)
	if v != 1 {
		t.Errorf("set-value after target should snap back to 1, got %v", v)
	}
}

func TestParam_CancelAfter(t *testing.T) {
	p := NewParam(0)
	p.SetValueAt(0.01, 1)
	p.SetValueAt(0.02, 2)
	p.SetValueAt(0.03, 3)

	p.CancelAfter(0.015)

	v := stepUntil(p, 0, 0.05)
	if v != 1 {
		t.Errorf("events after cancel point should not fire: got %v, want 1", v)
	}
}

func TestParam_OutOfOrderInsertion(t *testing.T) {
	p := NewParam(0)
	p.SetValueAt(0.03, 3)
	p.SetValueAt(0.01, 1)
	p.SetValueAt(0.02, 2)

	if v := p.Step(0.015); v != 1 {
		t.Errorf("at 15ms: got %v, want 1", v)
	}
	if v := p.Step(0.035); v != 3 {
		t.Errorf("at 35ms: got %v, want 3", v)
	}
}

func TestParam_SetBypassesTimeline(t *testing.T) {
	p := NewParam(0)
	p.Set(7)
	if v := p.Value(); v != 7 {
		t.Errorf("immediate set: got %v, want 7", v)
	}
}
