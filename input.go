package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

// KeyMap maps the left of a modern keyboard to the CHIP-8 keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var KeyMap = map[sdl.Scancode]byte{
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_V: 0xF,
}

// ProcessEvents drains pending SDL events, forwarding keypad keys to the
// VM. Returns false once the user asked to quit.
func (e *Emulator) ProcessEvents() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if !e.processKey(ev) {
				return false
			}
		}
	}

	return true
}

func (e *Emulator) processKey(ev *sdl.KeyboardEvent) bool {
	code := ev.Keysym.Scancode

	if key, ok := KeyMap[code]; ok {
		if ev.Repeat == 0 {
			_ = e.VM.SetKey(key, ev.Type == sdl.KEYDOWN)
		}
		return true
	}

	// everything else only reacts to presses
	if ev.Type != sdl.KEYDOWN {
		return true
	}

	switch code {
	case sdl.SCANCODE_ESCAPE:
		return false
	case sdl.SCANCODE_BACKSPACE:
		// holding control during reset will reboot paused
		e.Reset(ev.Keysym.Mod&uint16(sdl.KMOD_CTRL) != 0)
	case sdl.SCANCODE_F3:
		e.LoadDialog()
	case sdl.SCANCODE_H, sdl.SCANCODE_F1:
		e.DebugHelp()
	case sdl.SCANCODE_LEFTBRACKET:
		e.ChangeSpeed(-1)
	case sdl.SCANCODE_RIGHTBRACKET:
		e.ChangeSpeed(1)
	case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
		e.Paused = !e.Paused
		e.DebugPause()
	case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
		if e.Paused {
			e.StepInstruction()
		}
	case sdl.SCANCODE_F7, sdl.SCANCODE_F11:
		if e.Paused {
			e.Step()
			e.DebugRegisters()
		}
	case sdl.SCANCODE_F8:
		if e.Paused {
			e.DebugRegisters()
			e.DebugMemory()
		}
	case sdl.SCANCODE_F9:
		e.DebugAssembly()
	}

	return true
}
