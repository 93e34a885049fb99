// main.go - Main entry point for the chromasynth color-driven synthesizer

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	var (
		backendName = flag.String("backend", "oto", "audio backend: oto, alsa, headless")
		scriptPath  = flag.String("script", "", "lua color script driving hue/saturation/lightness")
		squareURL   = flag.String("square-wave-url", "", "URL of the square periodic-wave coefficient table")
		sawURL      = flag.String("sawtooth-wave-url", "", "URL of the sawtooth periodic-wave coefficient table")
		irURL       = flag.String("ir-url", "", "URL of the reverb impulse-response WAV")
		volume      = flag.Int("volume", 10, "initial volume, 0-100")
		chords      = flag.Bool("chords", false, "start with chord progressions enabled")
		noTUI       = flag.Bool("no-tui", false, "run without the terminal control surface")
	)
	flag.Parse()

	cfg := DefaultEngineConfig()
	switch *backendName {
	case "oto":
		cfg.Backend = AUDIO_BACKEND_OTO
	case "alsa":
		cfg.Backend = AUDIO_BACKEND_ALSA
	case "headless":
		cfg.Backend = AUDIO_BACKEND_HEADLESS
	default:
		fmt.Fprintf(os.Stderr, "unknown backend %q\n", *backendName)
		os.Exit(1)
	}

	manager, err := NewSoundManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize sound: %v\n", err)
		os.Exit(1)
	}
	defer manager.Close()

	manager.SetAssetURLs(*squareURL, *sawURL, *irURL)
	manager.ChangeVolume(*volume)
	manager.ChangeChordProgression(*chords)

	if *scriptPath != "" {
		script := NewColorScript(manager, *scriptPath)
		if err := script.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "color script: %v\n", err)
			os.Exit(1)
		}
		defer script.Stop()
	}

	if *noTUI {
		manager.Play()
		log.Printf("[audio] playing; ctrl+c to quit")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return
	}

	if err := RunTUI(manager, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
}
