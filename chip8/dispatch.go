package chip8

// handler executes one decoded instruction.
type handler func(vm *VM, op Opcode) error

// primary dispatches on the top nibble. Groups 0, 8, E and F dispatch again
// through the sub-tables below. Every slot left empty is filled with the
// unknown instruction handler by init, so each 16-bit word has an outcome.
var primary = [16]handler{
	0x0: (*VM).system,
	0x1: (*VM).jump,
	0x2: (*VM).call,
	0x3: (*VM).skipIf,
	0x4: (*VM).skipIfNot,
	0x5: (*VM).skipIfXY,
	0x6: (*VM).loadX,
	0x7: (*VM).addX,
	0x8: (*VM).alu,
	0x9: (*VM).skipIfNotXY,
	0xA: (*VM).loadI,
	0xB: (*VM).jumpOffset,
	0xC: (*VM).rnd,
	0xD: (*VM).drw,
	0xE: (*VM).keys,
	0xF: (*VM).misc,
}

// systemOps is keyed by NN of 00NN.
var systemOps = [256]handler{
	0xE0: (*VM).cls,
	0xEE: (*VM).ret,
}

// aluOps is keyed by N of 8XYN.
var aluOps = [16]handler{
	0x0: (*VM).loadXY,
	0x1: (*VM).or,
	0x2: (*VM).and,
	0x3: (*VM).xor,
	0x4: (*VM).addXY,
	0x5: (*VM).subXY,
	0x6: (*VM).shr,
	0x7: (*VM).subYX,
	0xE: (*VM).shl,
}

// keyOps is keyed by NN of EXNN.
var keyOps = [256]handler{
	0x9E: (*VM).skipIfPressed,
	0xA1: (*VM).skipIfNotPressed,
}

// miscOps is keyed by NN of FXNN.
var miscOps = [256]handler{
	0x07: (*VM).loadXDT,
	0x0A: (*VM).loadXK,
	0x15: (*VM).loadDTX,
	0x18: (*VM).loadSTX,
	0x1E: (*VM).addIX,
	0x29: (*VM).loadF,
	0x33: (*VM).loadB,
	0x55: (*VM).saveRegs,
	0x65: (*VM).loadRegs,
}

func init() {
	for _, table := range [][]handler{primary[:], systemOps[:], aluOps[:], keyOps[:], miscOps[:]} {
		for i := range table {
			if table[i] == nil {
				table[i] = (*VM).unknown
			}
		}
	}
}

// execute runs a single decoded instruction.
func (vm *VM) execute(op Opcode) error {
	return primary[op.Nibble()](vm, op)
}

// system dispatches 0NNN. Only 00E0 and 00EE are defined; machine code
// calls (SYS) are not supported.
func (vm *VM) system(op Opcode) error {
	if op.X() != 0 {
		return vm.unknown(op)
	}
	return systemOps[op.NN()](vm, op)
}

// alu dispatches 8XYN.
func (vm *VM) alu(op Opcode) error {
	return aluOps[op.N()](vm, op)
}

// keys dispatches EXNN.
func (vm *VM) keys(op Opcode) error {
	return keyOps[op.NN()](vm, op)
}

// misc dispatches FXNN.
func (vm *VM) misc(op Opcode) error {
	return miscOps[op.NN()](vm, op)
}

// unknown is the outcome of every unassigned opcode.
func (vm *VM) unknown(op Opcode) error {
	return vm.fault(UnknownInstruction, int(vm.opPC))
}
