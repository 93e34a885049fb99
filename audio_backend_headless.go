// audio_backend_headless.go - No-device backend; tests drive the clock by hand

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

type HeadlessPlayer struct {
	engine  *Engine
	started bool
}

func NewHeadlessPlayer(engine *Engine) *HeadlessPlayer {
	return &HeadlessPlayer{engine: engine}
}

func (hp *HeadlessPlayer) Start() {
	hp.started = true
}

func (hp *HeadlessPlayer) Stop() {
	hp.started = false
}

func (hp *HeadlessPlayer) Close() {
	hp.started = false
}

func (hp *HeadlessPlayer) IsStarted() bool {
	return hp.started
}
