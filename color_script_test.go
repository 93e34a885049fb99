// color_script_test.go - Lua color driver lifecycle

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "color.lua")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestColorScript_DrivesManager(t *testing.T) {
	m := newTestManager(t)
	path := writeScript(t, `
function color(t)
    return 123, 45, 67
end
`)

	s := NewColorScript(m, path)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for {
		hue, sat, light, _, _ := m.Snapshot()
		if hue == 123 && sat == 45 && light == 67 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("script values never reached the manager: h=%v s=%v l=%v", hue, sat, light)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestColorScript_StopTwice(t *testing.T) {
	m := newTestManager(t)
	path := writeScript(t, `function color(t) return 0, 0, 0 end`)

	s := NewColorScript(m, path)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
	s.Stop() // repeated shutdown must not panic
}

func TestColorScript_StopWithoutStart(t *testing.T) {
	m := newTestManager(t)
	s := NewColorScript(m, "does-not-matter.lua")
	s.Stop()
	s.Stop()
}

func TestColorScript_MissingFile(t *testing.T) {
	m := newTestManager(t)
	s := NewColorScript(m, filepath.Join(t.TempDir(), "absent.lua"))
	if err := s.Start(); err == nil {
		t.Fatal("expected an error for a missing script")
	}
}

func TestColorScript_NoColorFunction(t *testing.T) {
	m := newTestManager(t)
	path := writeScript(t, `x = 1`)

	s := NewColorScript(m, path)
	// A script without color(t) is logged and ignored, not an error.
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
}
