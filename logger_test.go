package main

import (
	"testing"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestHistory_Window(t *testing.T) {
	h := NewHistory(3)
	assert.Empty(t, h.Window(3))

	h.Record(0x200, 0x6005)
	h.Record(0x202, 0x7003)

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []Executed{{0x200, 0x6005}, {0x202, 0x7003}}, h.Window(5))
	assert.Equal(t, []Executed{{0x202, 0x7003}}, h.Window(1))
}

func TestHistory_Wraps(t *testing.T) {
	h := NewHistory(3)
	for i := range 5 {
		h.Record(uint16(0x200+2*i), chip8.Opcode(0x1000+i))
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []Executed{
		{0x204, 0x1002},
		{0x206, 0x1003},
		{0x208, 0x1004},
	}, h.Window(3))

	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Window(3))
}

func TestHistory_Nil(t *testing.T) {
	var h *History

	h.Record(0x200, 0x00E0)
	h.Clear()

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Window(10))
}

func TestExecuted_String(t *testing.T) {
	x := Executed{PC: 0x20A, Opcode: 0xD125}
	assert.Equal(t, "020A - DRW    V1, V2, 5", x.String())
}

func TestFormatStack(t *testing.T) {
	assert.Equal(t, "-", formatStack(nil))
	assert.Equal(t, "0206 0202", formatStack([]uint16{0x202, 0x206}))
}
