package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisassembleOpcode(t *testing.T) {
	tests := []struct {
		op   Opcode
		want string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1234, "JP     #234"},
		{0x2ABC, "CALL   #ABC"},
		{0x3A12, "SE     VA, #12"},
		{0x5120, "SE     V1, V2"},
		{0x6A12, "LD     VA, #12"},
		{0x8124, "ADD    V1, V2"},
		{0x812E, "SHL    V1, V2"},
		{0x9120, "SNE    V1, V2"},
		{0xA123, "LD     I, #123"},
		{0xB300, "JP     V0, #300"},
		{0xC10F, "RND    V1, #0F"},
		{0xD125, "DRW    V1, V2, 5"},
		{0xE19E, "SKP    V1"},
		{0xE1A1, "SKNP   V1"},
		{0xF107, "LD     V1, DT"},
		{0xF10A, "LD     V1, K"},
		{0xF11E, "ADD    I, V1"},
		{0xF129, "LD     F, V1"},
		{0xF133, "LD     B, V1"},
		{0xF155, "LD     [I], V1"},
		{0xF165, "LD     V1, [I]"},
		{0x0123, "??"},
		{0x5121, "??"},
		{0x8128, "??"},
		{0xFFFF, "??"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DisassembleOpcode(tt.op), "opcode %04X", uint16(tt.op))
	}
}

func TestVM_Disassemble(t *testing.T) {
	vm := newTestVM(t, nil, 0x00E0, 0x0000, 0x6A12)

	assert.Equal(t, "0200 - CLS", vm.Disassemble(0x200))
	assert.Equal(t, "0202 -", vm.Disassemble(0x202))
	assert.Equal(t, "0204 - LD     VA, #12", vm.Disassemble(0x204))
	assert.Equal(t, "", vm.Disassemble(MaxAddress))
}
