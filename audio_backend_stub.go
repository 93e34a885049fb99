//go:build headless

// audio_backend_stub.go - Device backend stubs for headless builds

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

func NewOtoPlayer(engine *Engine, sampleRate int) (AudioOutput, error) {
	return NewHeadlessPlayer(engine), nil
}

func NewALSAPlayer(engine *Engine) (AudioOutput, error) {
	return NewHeadlessPlayer(engine), nil
}
