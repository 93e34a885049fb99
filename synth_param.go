// synth_param.go - Timestamped parameter automation for the signal graph

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

import (
	"math"
	"sync"
)

// Automation event kinds. A param carries a sorted list of future events;
// the render thread consumes them in timestamp order.
const (
	EVENT_SET_VALUE = iota
	EVENT_LINEAR_RAMP
	EVENT_EXP_TARGET
)

type paramEvent struct {
	kind  int
	time  float64 // audio-clock timestamp, seconds
	value float64 // target value (or approach target for EVENT_EXP_TARGET)
	coef  float64 // per-sample decay coefficient, EVENT_EXP_TARGET only
}

// Param is a single automatable scalar: every gain, frequency, detune and
// the note gate in the graph is one of these. Writers (UI callbacks, the
// chord scheduler, asset-load callbacks) schedule absolute-timestamped
// events under the mutex; the render thread calls Step once per sample with
// a non-decreasing clock. Last write wins for overlapping events.
type Param struct {
	mu sync.Mutex

	value      float64
	events     []paramEvent
	anchorTime float64 // time of the most recent consumed event or Set
	anchorVal  float64 // value at anchorTime, ramp start point
}

func NewParam(initial float64) *Param {
	return &Param{value: initial, anchorVal: initial}
}

// Set applies a value immediately, outside the event timeline.
func (p *Param) Set(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = v
	p.anchorVal = v
}

// Value reports the most recently evaluated value.
func (p *Param) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// SetValueAt schedules an instantaneous change at time t.
func (p *Param) SetValueAt(t, v float64) {
	p.insert(paramEvent{kind: EVENT_SET_VALUE, time: t, value: v})
}

// RampTo schedules a linear ramp ending at time t with value v. The ramp
// starts from the previous event's end point, or from the current value if
// the timeline is empty.
func (p *Param) RampTo(t, v float64) {
	p.insert(paramEvent{kind: EVENT_LINEAR_RAMP, time: t, value: v})
}

// TargetAt schedules an exponential approach toward v starting at time t
// with time constant tau. The approach runs until the next event's
// timestamp is reached.
func (p *Param) TargetAt(t, v, tau float64) {
	if tau <= 0 {
		tau = 1.0 / SAMPLE_RATE
	}
	coef := math.Exp(-1.0 / (tau * SAMPLE_RATE))
	p.insert(paramEvent{kind: EVENT_EXP_TARGET, time: t, value: v, coef: coef})
}

// CancelAfter drops every event timestamped strictly after t. Events at or
// before t still fire; the current value is left untouched.
func (p *Param) CancelAfter(t float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.events[:0]
	for _, ev := range p.events {
		if ev.time <= t {
			kept = append(kept, ev)
		}
	}
	p.events = kept
}

func (p *Param) insert(ev paramEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := len(p.events)
	for i > 0 && p.events[i-1].time > ev.time {
		i--
	}
	p.events = append(p.events, paramEvent{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = ev
}

// Step advances the param to audio-clock time t and returns its value.
// Called exactly once per sample by the param's owning node.
func (p *Param) Step(t float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.events) > 0 {
		ev := p.events[0]
		switch ev.kind {
		case EVENT_SET_VALUE:
			if t < ev.time {
				return p.value
			}
			p.value = ev.value
			p.consume(ev)

		case EVENT_LINEAR_RAMP:
			if t >= ev.time {
				p.value = ev.value
				p.consume(ev)
				continue
			}
			if ev.time > p.anchorTime && t > p.anchorTime {
				frac := (t - p.anchorTime) / (ev.time - p.anchorTime)
				p.value = p.anchorVal + (ev.value-p.anchorVal)*frac
			}
			return p.value

		case EVENT_EXP_TARGET:
			if t < ev.time {
				return p.value
			}
			// Approach ends once a later event comes due.
			if len(p.events) > 1 && t >= p.events[1].time {
				p.consume(ev)
				continue
			}
			p.value = ev.value + (p.value-ev.value)*ev.coef
			return p.value
		}
	}
	return p.value
}

// consume pops the head event and moves the ramp anchor to its end point.
func (p *Param) consume(ev paramEvent) {
	p.events = p.events[1:]
	p.anchorTime = ev.time
	p.anchorVal = p.value
}
