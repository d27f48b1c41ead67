/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */


package main

import (
	"github.com/massung/chip-8/chip8"
)

// Executed is a single instruction recorded by the History.
type Executed struct {
	PC     uint16
	Opcode chip8.Opcode
}

// String returns the disassembly of the recorded instruction.
func (x Executed) String() string {
	return chip8.DisassembleLine(x.PC, x.Opcode)
}

// History is a fixed size ring of the most recently executed instructions.
// A nil History records nothing.
type History struct {
	// buf holds the recorded instructions, oldest at pos once full.
	buf []Executed

	// pos is the next slot to write.
	pos int

	// full is true once the ring has wrapped.
	full bool
}

// NewHistory creates a History holding the last n instructions.
func NewHistory(n int) *History {
	if n < 1 {
		n = 1
	}

	return &History{
		buf: make([]Executed, n),
	}
}

// Record adds an instruction to the history, evicting the oldest when full.
func (h *History) Record(pc uint16, op chip8.Opcode) {
	if h == nil {
		return
	}

	h.buf[h.pos] = Executed{PC: pc, Opcode: op}
	h.pos++

	if h.pos == len(h.buf) {
		h.pos = 0
		h.full = true
	}
}

// Len returns the number of instructions recorded.
func (h *History) Len() int {
	switch {
	case h == nil:
		return 0
	case h.full:
		return len(h.buf)
	default:
		return h.pos
	}
}

// Window returns up to the last n instructions, oldest first.
func (h *History) Window(n int) []Executed {
	count := h.Len()
	if n > count {
		n = count
	}
	if n <= 0 {
		return nil
	}

	out := make([]Executed, 0, n)

	// oldest wanted entry, walking forward around the ring
	start := h.pos - n
	if start < 0 {
		start += len(h.buf)
	}

	for i := 0; i < n; i++ {
		out = append(out, h.buf[(start+i)%len(h.buf)])
	}

	return out
}

// Clear drops everything recorded.
func (h *History) Clear() {
	if h == nil {
		return
	}

	h.pos = 0
	h.full = false
}
