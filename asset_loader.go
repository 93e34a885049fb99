// asset_loader.go - Fire-and-forget fetch of wave tables and impulse responses

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"time"
)

var assetClient = &http.Client{Timeout: 15 * time.Second}

// loadPeriodicWave fetches a JSON {"real": [...], "imag": [...]} harmonic
// table, compiles it and hands the result to apply. Runs in its own
// goroutine; any failure is logged and dropped so the analytic oscillator
// shapes stay in use.
func loadPeriodicWave(url string, apply func(table []float32)) {
	body, err := fetchAsset(url)
	if err != nil {
		log.Printf("[audio] periodic wave %s: %v", url, err)
		return
	}
	var pw PeriodicWave
	if err := json.Unmarshal(body, &pw); err != nil {
		log.Printf("[audio] periodic wave %s: decode: %v", url, err)
		return
	}
	if len(pw.Real) < 2 || len(pw.Imag) < 2 {
		log.Printf("[audio] periodic wave %s: too few coefficients", url)
		return
	}
	apply(pw.Compile())
}

// loadImpulseResponse fetches a WAV impulse response and hands the decoded
// mono buffer to apply. Failure leaves the reverb send silent for the
// lifetime of the process; there is no retry.
func loadImpulseResponse(url string, apply func(ir []float32)) {
	body, err := fetchAsset(url)
	if err != nil {
		log.Printf("[audio] impulse response %s: %v", url, err)
		return
	}
	ir, err := decodeWAV(body)
	if err != nil {
		log.Printf("[audio] impulse response %s: decode: %v", url, err)
		return
	}
	apply(ir)
}

func fetchAsset(url string) ([]byte, error) {
	resp, err := assetClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// decodeWAV walks the RIFF chunks of a WAV file and returns the first
// channel as float32. PCM16 and IEEE float32 formats are accepted; sample
// rate is taken as-is (impulse responses are short enough that a rate
// mismatch only shifts the tail color).
func decodeWAV(data []byte) ([]float32, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	var (
		format      uint16
		channels    uint16
		bitsPer     uint16
		haveFmt     bool
		sampleBytes []byte
	)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		offset += 8
		if offset+size > len(data) {
			size = len(data) - offset
		}
		chunk := data[offset : offset+size]

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("fmt chunk truncated")
			}
			format = binary.LittleEndian.Uint16(chunk[0:2])
			channels = binary.LittleEndian.Uint16(chunk[2:4])
			bitsPer = binary.LittleEndian.Uint16(chunk[14:16])
			haveFmt = true
		case "data":
			sampleBytes = chunk
		}

		offset += size
		if size%2 == 1 {
			offset++ // chunks are word-aligned
		}
	}

	if !haveFmt || sampleBytes == nil {
		return nil, fmt.Errorf("missing fmt or data chunk")
	}
	if channels == 0 {
		return nil, fmt.Errorf("zero channels")
	}

	switch {
	case format == 1 && bitsPer == 16:
		frame := int(channels) * 2
		n := len(sampleBytes) / frame
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			raw := int16(binary.LittleEndian.Uint16(sampleBytes[i*frame : i*frame+2]))
			out[i] = float32(raw) / 32768
		}
		return out, nil
	case format == 3 && bitsPer == 32:
		frame := int(channels) * 4
		n := len(sampleBytes) / frame
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			bits := binary.LittleEndian.Uint32(sampleBytes[i*frame : i*frame+4])
			out[i] = math.Float32frombits(bits)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported WAV format %d/%d-bit", format, bitsPer)
	}
}
