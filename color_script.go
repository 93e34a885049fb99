// color_script.go - Lua-scripted color source standing in for the visual layer

/*
chromasynth - a color-driven synthesizer

License: GPLv3 or later
*/

package main

import (
	"log"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const COLOR_SCRIPT_TICK = 33 * time.Millisecond

// ColorScript drives the manager's hue/saturation/lightness setters from a
// user script, the way the out-of-scope visual layer would. The script
// defines
//
//	function color(t) return hue, saturation, lightness end
//
// and is polled on a coarse ticker with the elapsed wall-clock seconds. A
// script error stops the driver with a log line; audio is never affected.
type ColorScript struct {
	manager  *SoundManager
	path     string
	stop     chan struct{}
	stopOnce sync.Once
}

func NewColorScript(manager *SoundManager, path string) *ColorScript {
	return &ColorScript{manager: manager, path: path, stop: make(chan struct{})}
}

func (s *ColorScript) Start() error {
	L := lua.NewState()
	if err := L.DoFile(s.path); err != nil {
		L.Close()
		return err
	}
	if L.GetGlobal("color").Type() != lua.LTFunction {
		L.Close()
		log.Printf("[color] %s defines no color(t) function", s.path)
		return nil
	}
	go s.run(L)
	return nil
}

// Stop is safe to call more than once; deferred cleanup and an explicit
// shutdown path can both reach it.
func (s *ColorScript) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *ColorScript) run(L *lua.LState) {
	defer L.Close()
	start := time.Now()
	ticker := time.NewTicker(COLOR_SCRIPT_TICK)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}

		t := time.Since(start).Seconds()
		err := L.CallByParam(lua.P{
			Fn:      L.GetGlobal("color"),
			NRet:    3,
			Protect: true,
		}, lua.LNumber(t))
		if err != nil {
			log.Printf("[color] script error, stopping driver: %v", err)
			return
		}

		l := L.Get(-1)
		sat := L.Get(-2)
		h := L.Get(-3)
		L.Pop(3)

		if hn, ok := h.(lua.LNumber); ok {
			s.manager.ChangeHue(float64(hn))
		}
		if sn, ok := sat.(lua.LNumber); ok {
			s.manager.ChangeSaturation(float64(sn))
		}
		if ln, ok := l.(lua.LNumber); ok {
			s.manager.ChangeLightness(float64(ln))
		}
	}
}
