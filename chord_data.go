// chord_data.go - Static chord and progression lookup tables

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

// ChordDefinition places a chord inside the current key: RootSemitones is
// the scale degree offset applied to every voice, Intervals holds the
// per-voice offsets for root, third, fifth and seventh. A voice the chord
// does not use carries 0 so it lands on the chord root with no audible
// offset.
type ChordDefinition struct {
	RootSemitones int
	Intervals     [NUM_VOICES]int
}

// chordTable is keyed by roman-numeral chord names in a major key.
// Loaded once at process start; never mutated.
var chordTable = map[string]ChordDefinition{
	"I":      {RootSemitones: 0, Intervals: [NUM_VOICES]int{0, 4, 7, 0}},
	"Imaj7":  {RootSemitones: 0, Intervals: [NUM_VOICES]int{0, 4, 7, 11}},
	"ii":     {RootSemitones: 2, Intervals: [NUM_VOICES]int{0, 3, 7, 0}},
	"ii7":    {RootSemitones: 2, Intervals: [NUM_VOICES]int{0, 3, 7, 10}},
	"iii":    {RootSemitones: 4, Intervals: [NUM_VOICES]int{0, 3, 7, 0}},
	"IV":     {RootSemitones: 5, Intervals: [NUM_VOICES]int{0, 4, 7, 0}},
	"IVmaj7": {RootSemitones: 5, Intervals: [NUM_VOICES]int{0, 4, 7, 11}},
	"V":      {RootSemitones: 7, Intervals: [NUM_VOICES]int{0, 4, 7, 0}},
	"V7":     {RootSemitones: 7, Intervals: [NUM_VOICES]int{0, 4, 7, 10}},
	"vi":     {RootSemitones: 9, Intervals: [NUM_VOICES]int{0, 3, 7, 0}},
	"vi7":    {RootSemitones: 9, Intervals: [NUM_VOICES]int{0, 3, 7, 10}},
}

// progressionTable is the pool the scheduler draws from uniformly at
// random. Entries shorter than four chords get doubled at schedule time so
// a pass never produces an overly short loop.
var progressionTable = [][]string{
	{"I", "V", "vi", "IV"},
	{"I", "vi", "IV", "V"},
	{"vi", "IV", "I", "V"},
	{"I", "IV", "vi", "V"},
	{"ii7", "V7", "I"},
	{"I", "iii", "vi", "IVmaj7"},
	{"I", "V", "vi", "iii", "IV", "I", "IV", "V"},
	{"vi7", "ii7", "V7", "Imaj7"},
}
