package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

// historySize is how many executed instructions are kept in debug mode.
const historySize = 64

// Emulator owns the virtual machine and the SDL resources presenting it.
type Emulator struct {
	// VM is the CHIP-8 virtual machine being run.
	VM *chip8.VM

	// Paused is true if emulation is paused (single stepping).
	Paused bool

	// File is the path of the loaded ROM.
	File string

	window   *sdl.Window
	renderer *sdl.Renderer
	audio    *Tone

	logger  *log.Logger
	history *History
	vmOpts  []chip8.Option
}

// Open initializes SDL and creates the window, renderer and audio device.
func (e *Emulator) Open(title string, scale int) error {
	var err error

	if scale < 1 {
		scale = 1
	}

	if err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing sdl: %w", err)
	}

	w := int32(chip8.ScreenWidth * scale)
	h := int32(chip8.ScreenHeight * scale)

	if e.window, e.renderer, err = sdl.CreateWindowAndRenderer(w, h, uint32(sdl.WINDOW_SHOWN)); err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}

	e.window.SetTitle("CHIP-8 - " + title)

	if err = InitScreen(e.renderer); err != nil {
		e.Close()
		return err
	}

	// audio is optional, run silently without it
	if e.audio, err = InitAudio(); err != nil {
		e.logger.Warn("Audio unavailable", log.Err(err))
	}

	return nil
}

// Close releases all SDL resources.
func (e *Emulator) Close() {
	e.audio.Close()

	if e.renderer != nil {
		_ = e.renderer.Destroy()
	}
	if e.window != nil {
		_ = e.window.Destroy()
	}

	sdl.Quit()
}

// Run loops until the window is closed, the user quits or ctx is cancelled.
// The VM is stepped once per 60 Hz tick and events are drained between ticks.
func (e *Emulator) Run(ctx context.Context) {
	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	for e.ProcessEvents() {
		select {
		case <-ctx.Done():
			e.logger.Info("Operation cancelled")
			return
		case <-video.C:
			if !e.Paused {
				e.Step()
			}
			e.Refresh()
		}
	}
}

// Step advances the VM by one tick and handles the faults it reports.
func (e *Emulator) Step() {
	if err := e.VM.Step(); err != nil && chip8.IsFatal(err) {
		e.Halt(err)
	}
}

// Halt pauses emulation after a fatal fault and reports it.
func (e *Emulator) Halt(err error) {
	e.Paused = true

	e.logger.Error("Emulation halted", log.Err(err))
	e.DebugHistory()
	e.DebugRegisters()

	dialog.Message("%s\n\nPress Backspace to reboot.", err).Title("CHIP-8").Error()
}

// Refresh presents the current frame and updates the tone.
func (e *Emulator) Refresh() {
	display := e.VM.Display()
	if err := RefreshScreen(e.renderer, &display); err != nil {
		e.logger.Error("Rendering failed", log.Err(err))
	}

	e.audio.Update(e.VM.SoundActive() && !e.Paused)
}

// Load replaces the running program with a ROM file.
func (e *Emulator) Load(file string) {
	vm, err := chip8.LoadFile(file, e.vmOpts...)
	if err != nil {
		e.logger.Error("Loading rom failed", log.String("file", file), log.Err(err))
		dialog.Message("%s", err).Title("CHIP-8").Error()
		return
	}

	e.VM = vm
	e.File = file
	e.history.Clear()
	e.window.SetTitle("CHIP-8 - " + filepath.Base(file))

	e.logger.Info("Loaded rom", log.String("file", file))
}

// LoadDialog asks for a ROM file to load.
func (e *Emulator) LoadDialog() {
	file, err := dialog.File().Title("Load CHIP-8 ROM").Filter("CHIP-8 ROM", "ch8", "c8").Load()
	if err != nil {
		if err != dialog.ErrCancelled {
			e.logger.Error("Opening file dialog failed", log.Err(err))
		}
		return
	}

	e.Load(file)
}

// Reset reboots the loaded program.
func (e *Emulator) Reset(paused bool) {
	e.VM.Reset()
	e.history.Clear()
	e.Paused = paused

	e.logger.Info("Rebooted", log.Bool("paused", paused))
}
