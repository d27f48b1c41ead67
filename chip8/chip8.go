// Package chip8 implements the CHIP-8 virtual machine: memory and font,
// registers and call stack, the fetch/decode/execute engine, the 64x32
// framebuffer, the delay and sound timers and the 16-key keypad.
//
// A VM is owned by a single driver, which loads a ROM, calls Step once per
// 60 Hz tick and reports key changes with SetKey between ticks.
package chip8

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// VM is a CHIP-8 virtual machine.
type VM struct {
	// ROM is the pristine memory image (font and program) as loaded. Reset
	// copies it back into Memory.
	ROM Memory

	// Memory addressable by CHIP-8 programs. The font occupies 0x050-0x09F
	// and programs begin at 0x200.
	Memory Memory

	// Video is the 64x32 monochrome framebuffer.
	Video Display

	// PC is the program counter.
	PC uint16

	// I is the index (address) register.
	I uint16

	// V are the 16 general registers. VF doubles as the flag register.
	V [16]byte

	// DT and ST are the delay and sound timers, decremented once per tick.
	DT byte
	ST byte

	// Keys hold the current state of the 16-key pad.
	Keys [16]bool

	// Cycles counts instructions executed since the last reset.
	Cycles int64

	stack callStack
	wait  waitLatch

	// op and opPC identify the instruction being executed, for faults.
	op   Opcode
	opPC uint16

	loaded bool
	halted *Fault

	opts options
	log  *log.Logger
}

// New creates a virtual machine with an empty program. Load must succeed
// before the VM will execute.
func New(opts ...Option) *VM {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	vm := &VM{
		ROM:  newImage(),
		opts: o,
		log:  o.logger,
	}
	vm.stack.limit = o.stackDepth

	vm.Reset()
	return vm
}

// LoadROM creates a virtual machine and loads program into it.
func LoadROM(program []byte, opts ...Option) (*VM, error) {
	vm := New(opts...)

	if err := vm.Load(program); err != nil {
		return nil, err
	}
	return vm, nil
}

// LoadFile reads a ROM file and returns a virtual machine running it.
func LoadFile(file string, opts ...Option) (*VM, error) {
	program, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}

	return LoadROM(program, opts...)
}

// Load copies program into memory at 0x200 and resets the machine. On
// failure the VM is left unloaded and will not execute.
func (vm *VM) Load(program []byte) error {
	image := newImage()

	if err := image.load(program); err != nil {
		vm.loaded = false
		vm.log.Error("Loading rom failed", log.Err(err), log.Int("size", len(program)))
		return err
	}

	vm.ROM = image
	vm.loaded = true
	vm.Reset()

	vm.log.Debug("Loaded rom", log.Int("size", len(program)))
	return nil
}

// Reset restores memory from the loaded image and clears all other state.
func (vm *VM) Reset() {
	vm.Memory = vm.ROM

	// reset video memory and keys
	vm.Video.Clear()
	vm.Keys = [16]bool{}

	// reset program counter, stack and index
	vm.PC = ProgramStart
	vm.I = 0
	vm.stack.clear()

	// reset registers and timers
	vm.V = [16]byte{}
	vm.DT = 0
	vm.ST = 0

	vm.Cycles = 0
	vm.wait = waitLatch{}
	vm.halted = nil
}

// Loaded is true once a ROM was loaded successfully.
func (vm *VM) Loaded() bool {
	return vm.loaded
}

// Halted returns the fatal fault that stopped the VM, or nil.
func (vm *VM) Halted() *Fault {
	return vm.halted
}

// Quirks returns the quirk set the VM was constructed with.
func (vm *VM) Quirks() Quirks {
	return vm.opts.quirks
}

// Display returns a copy of the framebuffer.
func (vm *VM) Display() Display {
	return vm.Video
}

// DelayTimer returns the current delay timer value.
func (vm *VM) DelayTimer() byte {
	return vm.DT
}

// SoundTimer returns the current sound timer value.
func (vm *VM) SoundTimer() byte {
	return vm.ST
}

// SoundActive is true while the tone should be playing.
func (vm *VM) SoundActive() bool {
	return vm.ST > 0
}

// Stack returns a copy of the return addresses, oldest first.
func (vm *VM) Stack() []uint16 {
	return append([]uint16(nil), vm.stack.entries...)
}

// InstructionsPerTick returns how many instructions Step executes.
func (vm *VM) InstructionsPerTick() int {
	return vm.opts.perTick
}

// SetInstructionsPerTick changes the emulation speed, clamped to
// [1, MaxInstructionsPerTick].
func (vm *VM) SetInstructionsPerTick(n int) {
	vm.opts.perTick = clampPerTick(n)
}

// fault builds a fault for the instruction currently executing.
func (vm *VM) fault(kind FaultKind, address int) error {
	return &Fault{
		Kind:    kind,
		PC:      vm.opPC,
		Opcode:  vm.op,
		Address: address,
	}
}
