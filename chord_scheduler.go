// chord_scheduler.go - Lookahead chord scheduling on the audio clock

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

import (
	"math/rand"
	"sync"
	"time"
)

// Scheduler states. Armed means enabled but nothing written yet; scheduled
// means at least one progression's automation is in flight.
const (
	SCHED_DISABLED = iota
	SCHED_ARMED
	SCHED_SCHEDULED
)

// Progressions with this many chords or fewer are played twice end-to-end.
const MIN_PROGRESSION_CHORDS = 3

// ChordScheduler writes future detune and gate automation onto the four
// voices. Scheduling decisions run on a coarse wall-clock ticker whose
// period equals the lookahead window; every parameter change it produces is
// timestamped on the audio clock, so ticker jitter never reaches the audio
// timing. It owns the voices' Detune params and the gate exclusively — the
// color mapper only ever touches gains and base frequency, so the two
// writers cannot fight.
type ChordScheduler struct {
	engine *Engine
	rng    *rand.Rand

	mu            sync.Mutex
	state         int
	nextEndTime   float64 // audio-clock timestamp the current schedule runs to
	chordDuration float64
	stop          chan struct{}
}

func NewChordScheduler(engine *Engine, chordDuration float64) *ChordScheduler {
	return &ChordScheduler{
		engine:        engine,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		state:         SCHED_DISABLED,
		chordDuration: chordDuration,
	}
}

// Enable arms the scheduler and starts the lookahead ticker. Idempotent.
func (cs *ChordScheduler) Enable() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.state != SCHED_DISABLED {
		return
	}
	cs.state = SCHED_ARMED
	cs.nextEndTime = cs.engine.CurrentTime()
	cs.stop = make(chan struct{})
	go cs.loop(cs.stop)
}

// Disable stops scheduling and immediately cancels everything already in
// flight: pending detune automation goes away, the gate snaps back to open,
// and every voice returns to its chord-free interval. Without the
// cancellation a scheduled chord could still fire after disable.
func (cs *ChordScheduler) Disable() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.state == SCHED_DISABLED {
		return
	}
	cs.state = SCHED_DISABLED
	if cs.stop != nil {
		close(cs.stop)
		cs.stop = nil
	}
	cs.resetVoices()
}

// Enabled reports whether the scheduler is armed or scheduled.
func (cs *ChordScheduler) Enabled() bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.state != SCHED_DISABLED
}

// SetChordDuration applies to chords scheduled after the call, never
// retroactively. Clamped to 0.25-10 seconds.
func (cs *ChordScheduler) SetChordDuration(seconds float64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.chordDuration = scaleClamp(seconds, 0.25, 10, 0.25, 10)
}

// NextEndTime exposes the schedule horizon; monotonically non-decreasing
// while enabled.
func (cs *ChordScheduler) NextEndTime() float64 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.nextEndTime
}

func (cs *ChordScheduler) loop(stop chan struct{}) {
	lookahead := cs.engine.cfg.LookaheadSeconds
	ticker := time.NewTicker(time.Duration(lookahead * float64(time.Second)))
	defer ticker.Stop()
	cs.Pass()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			cs.Pass()
		}
	}
}

// Pass is one lookahead check. Split out from the ticker loop so tests can
// drive the scheduler deterministically.
func (cs *ChordScheduler) Pass() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	// The ticker can fire after Disable won the race; the reset in
	// Disable already ran, so just refuse to schedule stale chords.
	if cs.state == SCHED_DISABLED {
		cs.resetVoices()
		return
	}

	g := cs.engine.Graph()
	if g == nil {
		return
	}

	now := cs.engine.CurrentTime()
	lookahead := cs.engine.cfg.LookaheadSeconds
	if cs.nextEndTime-lookahead > now {
		return
	}

	prog := progressionTable[cs.rng.Intn(len(progressionTable))]
	if len(prog) <= MIN_PROGRESSION_CHORDS {
		doubled := make([]string, 0, len(prog)*2)
		doubled = append(doubled, prog...)
		doubled = append(doubled, prog...)
		prog = doubled
	}

	t := cs.nextEndTime
	if now > t {
		t = now
	}

	duration := cs.chordDuration
	decay := duration * GATE_DECAY_FRACTION
	rest := duration * CHORD_REST_FRACTION

	for _, name := range prog {
		chord, ok := chordTable[name]
		if !ok {
			continue
		}
		// Re-open the gate at the chord start. The ramp anchors at the
		// zero pinned after the previous chord's decay, so the attack
		// spreads across the rest window instead of stepping.
		g.Gate.RampTo(t, 1)
		for i, v := range g.Voices {
			cents := float64((chord.RootSemitones + chord.Intervals[i]) * 100)
			v.Chain.Detune.SetValueAt(t, cents)
		}
		t += duration
		// Exponential approach, not an instant cut, to avoid clicks;
		// pinned to zero at the end of the decay window so the tail
		// cannot leak under the next onset.
		g.Gate.TargetAt(t, 0, decay/GATE_DECAY_TAU_DIV)
		g.Gate.SetValueAt(t+decay, 0)
		t += decay + rest
	}

	t += duration / 2
	cs.nextEndTime = t
	cs.state = SCHED_SCHEDULED
}

// resetVoices cancels pending detune/gate automation after "now", snaps the
// gate open and restores the default chord-free intervals. Caller holds the
// mutex.
func (cs *ChordScheduler) resetVoices() {
	g := cs.engine.Graph()
	if g == nil {
		return
	}
	now := cs.engine.CurrentTime()
	// A set-value at "now" lands behind any still-active gate decay and
	// terminates it on the next rendered sample.
	g.Gate.CancelAfter(now)
	g.Gate.SetValueAt(now, 1)
	for i, v := range g.Voices {
		v.Chain.Detune.CancelAfter(now)
		v.Chain.Detune.SetValueAt(now, float64(defaultVoiceIntervals[i]*100))
	}
	cs.nextEndTime = now
}
