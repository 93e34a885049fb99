// asset_loader_test.go - WAV decoding, periodic-wave compilation and fetch paths

package main

import (
	"encoding/binary"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

// buildWAV assembles a minimal RIFF/WAVE file around the given data payload.
func buildWAV(format, channels, bits uint16, payload []byte) []byte {
	fmtChunk := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtChunk[0:2], format)
	binary.LittleEndian.PutUint16(fmtChunk[2:4], channels)
	binary.LittleEndian.PutUint32(fmtChunk[4:8], SAMPLE_RATE)
	blockAlign := channels * bits / 8
	binary.LittleEndian.PutUint32(fmtChunk[8:12], SAMPLE_RATE*uint32(blockAlign))
	binary.LittleEndian.PutUint16(fmtChunk[12:14], blockAlign)
	binary.LittleEndian.PutUint16(fmtChunk[14:16], bits)

	var out []byte
	out = append(out, "RIFF"...)
	out = append(out, 0, 0, 0, 0) // size patched below
	out = append(out, "WAVE"...)
	out = append(out, "fmt "...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(fmtChunk)))
	out = append(out, fmtChunk...)
	out = append(out, "data"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, payload...)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out
}

func TestDecodeWAV_PCM16(t *testing.T) {
	// Two channels; the decoder keeps only the first.
	payload := make([]byte, 0, 16)
	for _, frame := range [][2]int16{{32767, 0}, {-32768, 0}, {0, 12345}, {16384, 0}} {
		payload = binary.LittleEndian.AppendUint16(payload, uint16(frame[0]))
		payload = binary.LittleEndian.AppendUint16(payload, uint16(frame[1]))
	}

	got, err := decodeWAV(buildWAV(1, 2, 16, payload))
	if err != nil {
		t.Fatalf("decodeWAV: %v", err)
	}
	want := []float32{32767.0 / 32768, -1, 0, 0.5}
	if len(got) != len(want) {
		t.Fatalf("sample count: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecodeWAV_Float32(t *testing.T) {
	samples := []float32{0.25, -0.75, 1}
	payload := make([]byte, 0, len(samples)*4)
	for _, s := range samples {
		payload = binary.LittleEndian.AppendUint32(payload, math.Float32bits(s))
	}

	got, err := decodeWAV(buildWAV(3, 1, 32, payload))
	if err != nil {
		t.Fatalf("decodeWAV: %v", err)
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample %d: got %v, want %v", i, got[i], samples[i])
		}
	}
}

func TestDecodeWAV_Rejections(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not riff", []byte("OggS....body....")},
		{"missing data chunk", buildWAV(1, 1, 16, nil)[:28]},
		{"unsupported format", buildWAV(7, 1, 16, []byte{0, 0})},
		{"24-bit pcm", buildWAV(1, 1, 24, []byte{0, 0, 0})},
	}
	for _, tc := range cases {
		if _, err := decodeWAV(tc.data); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestDecodeWAV_SkipsUnknownChunks(t *testing.T) {
	payload := binary.LittleEndian.AppendUint16(nil, uint16(16384))
	wav := buildWAV(1, 1, 16, payload)

	// Splice an odd-sized LIST chunk between WAVE and fmt to exercise the
	// word-alignment walk.
	extra := append([]byte("LIST"), 5, 0, 0, 0)
	extra = append(extra, 'a', 'b', 'c', 'd', 'e', 0)
	spliced := append([]byte{}, wav[:12]...)
	spliced = append(spliced, extra...)
	spliced = append(spliced, wav[12:]...)
	binary.LittleEndian.PutUint32(spliced[4:8], uint32(len(spliced)-8))

	got, err := decodeWAV(spliced)
	if err != nil {
		t.Fatalf("decodeWAV with LIST chunk: %v", err)
	}
	if len(got) != 1 || got[0] != 0.5 {
		t.Errorf("got %v, want [0.5]", got)
	}
}

func TestPeriodicWave_CompileSine(t *testing.T) {
	pw := PeriodicWave{Real: []float64{0, 0}, Imag: []float64{0, 1}}
	table := pw.Compile()

	if len(table) != WAVETABLE_SIZE {
		t.Fatalf("table size: got %d, want %d", len(table), WAVETABLE_SIZE)
	}
	if got := table[WAVETABLE_SIZE/4]; math.Abs(float64(got)-1) > 1e-6 {
		t.Errorf("quarter-cycle value: got %v, want 1", got)
	}
	if got := table[0]; math.Abs(float64(got)) > 1e-6 {
		t.Errorf("cycle start: got %v, want 0", got)
	}
}

func TestPeriodicWave_CompileNormalizes(t *testing.T) {
	pw := PeriodicWave{
		Real: []float64{0, 10, 3, 0.5},
		Imag: []float64{0, 2, 8, 1},
	}
	var peak float64
	for _, s := range pw.Compile() {
		if a := math.Abs(float64(s)); a > peak {
			peak = a
		}
	}
	if math.Abs(peak-1) > 1e-6 {
		t.Errorf("normalized peak: got %v, want 1", peak)
	}
}

func TestLoadPeriodicWave(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"real":[0,0],"imag":[0,1]}`))
	}))
	defer srv.Close()

	var got []float32
	loadPeriodicWave(srv.URL, func(table []float32) { got = table })
	if len(got) != WAVETABLE_SIZE {
		t.Fatalf("apply callback not reached or wrong table size: %d", len(got))
	}
}

func TestLoadPeriodicWave_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/error":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/garbage":
			w.Write([]byte("not json"))
		case "/short":
			w.Write([]byte(`{"real":[0],"imag":[0]}`))
		}
	}))
	defer srv.Close()

	for _, path := range []string{"/error", "/garbage", "/short"} {
		called := false
		loadPeriodicWave(srv.URL+path, func([]float32) { called = true })
		if called {
			t.Errorf("%s: apply ran despite the failure", path)
		}
	}
}

func TestLoadImpulseResponse(t *testing.T) {
	payload := binary.LittleEndian.AppendUint16(nil, uint16(32767))
	wav := buildWAV(1, 1, 16, payload)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(wav)
	}))
	defer srv.Close()

	var got []float32
	loadImpulseResponse(srv.URL, func(ir []float32) { got = ir })
	if len(got) != 1 {
		t.Fatalf("apply callback not reached, got %d samples", len(got))
	}
}

func TestGenerateImpulseResponse(t *testing.T) {
	ir := GenerateImpulseResponse(0.1, 3, 7)
	if len(ir) != int(0.1*SAMPLE_RATE) {
		t.Fatalf("length: got %d, want %d", len(ir), int(0.1*SAMPLE_RATE))
	}
	if same := GenerateImpulseResponse(0.1, 3, 7); same[10] != ir[10] {
		t.Error("same seed should reproduce the same response")
	}

	// The envelope decays: the last tenth must be much quieter than the
	// first tenth.
	head, tail := peak(ir[:len(ir)/10]), peak(ir[len(ir)-len(ir)/10:])
	if tail >= head {
		t.Errorf("no decay: head peak %v, tail peak %v", head, tail)
	}
}
