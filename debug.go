package main

import (
	"fmt"
	"strings"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/log"
)

// speedStep is how many instructions per tick [ and ] add or remove.
const speedStep = 5

// DebugHelp logs the key bindings.
func (e *Emulator) DebugHelp() {
	e.logger.Info("Virtual keys: 1234 QWER ASDF ZXCV")
	e.logger.Info("Emulation keys",
		log.String("ESC", "quit"),
		log.String("BS", "reboot, ctrl+BS reboots paused"),
		log.String("F1/H", "help"),
		log.String("F3", "load rom"),
		log.String("F5/SPACE", "pause"),
		log.String("F6/F10", "step instruction"),
		log.String("F7/F11", "step frame"),
		log.String("F8", "dump registers and memory"),
		log.String("F9", "disassemble around pc"),
		log.String("[ ]", "slower, faster"),
	)
}

// DebugPause logs the pause state and where execution stopped.
func (e *Emulator) DebugPause() {
	if !e.Paused {
		e.logger.Info("Resumed")
		return
	}

	e.logger.Info("Paused", log.String("next", e.VM.Disassemble(e.VM.PC)))
}

// StepInstruction executes a single instruction without ticking the timers.
func (e *Emulator) StepInstruction() {
	pc := e.VM.PC

	err := e.VM.Cycle()
	if err != nil && chip8.IsFatal(err) {
		e.Halt(err)
		return
	}

	if _, awaiting := e.VM.Awaiting(); awaiting {
		e.logger.Info("Waiting for key", log.String("at", e.VM.Disassemble(pc)))
		return
	}

	e.logger.Info("Step", log.String("executed", e.VM.Disassemble(pc)))
}

// ChangeSpeed adjusts the instructions executed per tick by delta steps.
func (e *Emulator) ChangeSpeed(delta int) {
	n := e.VM.InstructionsPerTick() + delta*speedStep
	if n < 1 {
		n = 1
	}

	e.VM.SetInstructionsPerTick(n)
	e.logger.Info("Speed changed", log.Int("instructions_per_tick", e.VM.InstructionsPerTick()))
}

// DebugRegisters logs the value of all the CHIP-8 registers.
func (e *Emulator) DebugRegisters() {
	vm := e.VM

	var regs strings.Builder
	for i, v := range vm.V {
		if i > 0 {
			regs.WriteByte(' ')
		}
		fmt.Fprintf(&regs, "V%X=%02X", i, v)
	}

	e.logger.Info("Registers",
		log.Hex("pc", vm.PC),
		log.Hex("i", vm.I),
		log.Hex("dt", vm.DelayTimer()),
		log.Hex("st", vm.SoundTimer()),
		log.String("v", regs.String()),
		log.String("stack", formatStack(vm.Stack())),
		log.Int64("cycles", vm.Cycles),
	)
}

// DebugMemory logs a hex dump of the memory around I.
func (e *Emulator) DebugMemory() {
	base := int(e.VM.I) &^ 0xF

	for row := 0; row < 4; row++ {
		addr := base + row*16

		line, ok := e.VM.Memory.Slice(addr, 16)
		if !ok {
			break
		}

		e.logger.Info(fmt.Sprintf("%04X - % X", addr, line))
	}
}

// DebugAssembly logs the disassembled instructions around the program
// counter.
func (e *Emulator) DebugAssembly() {
	pc := e.VM.PC

	// start a few instructions back, keeping word alignment with pc
	start := uint16(0)
	if pc >= 8 {
		start = pc - 8
	}

	for addr := start; addr < pc+16; addr += 2 {
		line := e.VM.Disassemble(addr)
		if line == "" {
			break
		}

		if addr == pc {
			line += "  <"
		}
		e.logger.Info(line)
	}
}

// DebugHistory logs the most recently executed instructions. It does
// nothing unless the history is being recorded.
func (e *Emulator) DebugHistory() {
	recent := e.history.Window(historySize)
	if len(recent) == 0 {
		return
	}

	e.logger.Info("Recently executed", log.Int("count", len(recent)))
	for _, x := range recent {
		e.logger.Info(x.String())
	}
}

// formatStack renders the return addresses, innermost first.
func formatStack(stack []uint16) string {
	if len(stack) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		parts = append(parts, fmt.Sprintf("%04X", stack[i]))
	}
	return strings.Join(parts, " ")
}
