package chip8

import (
	"fmt"
	"strings"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic returns the instruction name of op, or "??" if the opcode is
// not part of the instruction set.
func Mnemonic(op Opcode) string {
	for _, o := range cpu.Opcodes[op.Nibble()] {
		if uint16(op)&o.Info.Mask == o.Info.Value {
			return strings.ToUpper(o.Instruction.Name)
		}
	}
	return "??"
}

// DisassembleOpcode formats a single instruction with its operands.
func DisassembleOpcode(op Opcode) string {
	name := Mnemonic(op)
	if name == "??" {
		return name
	}

	args := operands(op)
	if args == "" {
		return name
	}
	return fmt.Sprintf("%-6s %s", name, args)
}

// Disassemble the CHIP-8 instruction at address.
func (vm *VM) Disassemble(address uint16) string {
	w, ok := vm.Memory.Word(int(address))
	if !ok {
		return ""
	}

	// end of program memory?
	if w == 0 {
		return fmt.Sprintf("%04X -", address)
	}

	return DisassembleLine(address, Opcode(w))
}

// DisassembleLine formats op as if it were found at address.
func DisassembleLine(address uint16, op Opcode) string {
	return fmt.Sprintf("%04X - %s", address, DisassembleOpcode(op))
}

// operands formats the arguments of a known instruction.
func operands(op Opcode) string {
	x, y := op.X(), op.Y()

	switch op.Nibble() {
	case 0x0:
		return ""
	case 0x1, 0x2:
		return fmt.Sprintf("#%03X", op.NNN())
	case 0x3, 0x4, 0x6, 0x7, 0xC:
		return fmt.Sprintf("V%X, #%02X", x, op.NN())
	case 0x5, 0x8, 0x9:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA:
		return fmt.Sprintf("I, #%03X", op.NNN())
	case 0xB:
		return fmt.Sprintf("V0, #%03X", op.NNN())
	case 0xD:
		return fmt.Sprintf("V%X, V%X, %d", x, y, op.N())
	case 0xE:
		return fmt.Sprintf("V%X", x)
	}

	// FXNN
	switch op.NN() {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("I, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}
