package chip8

// Opcode is a 16-bit instruction word, fetched big-endian from memory.
type Opcode uint16

// Nibble is the top 4 bits, the primary instruction selector.
func (op Opcode) Nibble() uint8 {
	return uint8(op >> 12)
}

// X is the register operand in bits 8-11.
func (op Opcode) X() uint8 {
	return uint8(op>>8) & 0xF
}

// Y is the register operand in bits 4-7.
func (op Opcode) Y() uint8 {
	return uint8(op>>4) & 0xF
}

// N is the low nibble.
func (op Opcode) N() uint8 {
	return uint8(op) & 0xF
}

// NN is the low byte.
func (op Opcode) NN() byte {
	return byte(op)
}

// NNN is the 12-bit address operand.
func (op Opcode) NNN() uint16 {
	return uint16(op) & 0xFFF
}
