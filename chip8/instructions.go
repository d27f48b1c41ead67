package chip8

// clear the video display memory.
func (vm *VM) cls(_ Opcode) error {
	vm.Video.Clear()
	return nil
}

// return from subroutine.
func (vm *VM) ret(_ Opcode) error {
	address, ok := vm.stack.pop()
	if !ok {
		return vm.fault(StackUnderflow, int(vm.opPC))
	}

	vm.PC = address
	return nil
}

// jump to address.
func (vm *VM) jump(op Opcode) error {
	vm.PC = op.NNN()
	return nil
}

// call a subroutine at address. PC already points past the CALL.
func (vm *VM) call(op Opcode) error {
	if !vm.stack.push(vm.PC) {
		return vm.fault(StackOverflow, int(vm.opPC))
	}

	vm.PC = op.NNN()
	return nil
}

// skip next instruction if vx == nn.
func (vm *VM) skipIf(op Opcode) error {
	if vm.V[op.X()] == op.NN() {
		vm.PC += 2
	}
	return nil
}

// skip next instruction if vx != nn.
func (vm *VM) skipIfNot(op Opcode) error {
	if vm.V[op.X()] != op.NN() {
		vm.PC += 2
	}
	return nil
}

// skip next instruction if vx == vy.
func (vm *VM) skipIfXY(op Opcode) error {
	if op.N() != 0 {
		return vm.unknown(op)
	}

	if vm.V[op.X()] == vm.V[op.Y()] {
		vm.PC += 2
	}
	return nil
}

// skip next instruction if vx != vy.
func (vm *VM) skipIfNotXY(op Opcode) error {
	if op.N() != 0 {
		return vm.unknown(op)
	}

	if vm.V[op.X()] != vm.V[op.Y()] {
		vm.PC += 2
	}
	return nil
}

// skip next instruction if key(vx) is pressed.
func (vm *VM) skipIfPressed(op Opcode) error {
	if vm.Keys[vm.V[op.X()]&0xF] {
		vm.PC += 2
	}
	return nil
}

// skip next instruction if key(vx) is not pressed.
func (vm *VM) skipIfNotPressed(op Opcode) error {
	if !vm.Keys[vm.V[op.X()]&0xF] {
		vm.PC += 2
	}
	return nil
}

// load nn into vx.
func (vm *VM) loadX(op Opcode) error {
	vm.V[op.X()] = op.NN()
	return nil
}

// add nn to vx, vf is unaffected.
func (vm *VM) addX(op Opcode) error {
	vm.V[op.X()] += op.NN()
	return nil
}

// load vy into vx.
func (vm *VM) loadXY(op Opcode) error {
	vm.V[op.X()] = vm.V[op.Y()]
	return nil
}

// or vx with vy into vx.
func (vm *VM) or(op Opcode) error {
	vm.V[op.X()] |= vm.V[op.Y()]
	return nil
}

// and vx with vy into vx.
func (vm *VM) and(op Opcode) error {
	vm.V[op.X()] &= vm.V[op.Y()]
	return nil
}

// xor vx with vy into vx.
func (vm *VM) xor(op Opcode) error {
	vm.V[op.X()] ^= vm.V[op.Y()]
	return nil
}

// add vy to vx and set carry.
func (vm *VM) addXY(op Opcode) error {
	sum := uint16(vm.V[op.X()]) + uint16(vm.V[op.Y()])

	vm.V[op.X()] = byte(sum)
	vm.V[0xF] = flag(sum > 0xFF)
	return nil
}

// subtract vy from vx, set carry if no borrow.
func (vm *VM) subXY(op Opcode) error {
	vx, vy := vm.V[op.X()], vm.V[op.Y()]

	vm.V[op.X()] = vx - vy
	vm.V[0xF] = flag(vx >= vy)
	return nil
}

// subtract vx from vy and store in vx, set carry if no borrow.
func (vm *VM) subYX(op Opcode) error {
	vx, vy := vm.V[op.X()], vm.V[op.Y()]

	vm.V[op.X()] = vy - vx
	vm.V[0xF] = flag(vy >= vx)
	return nil
}

// shr 1 bit into vx, set carry to LSB of the source before the shift.
func (vm *VM) shr(op Opcode) error {
	v := vm.shiftSource(op)

	vm.V[op.X()] = v >> 1
	vm.V[0xF] = v & 1
	return nil
}

// shl 1 bit into vx, set carry to MSB of the source before the shift.
func (vm *VM) shl(op Opcode) error {
	v := vm.shiftSource(op)

	vm.V[op.X()] = v << 1
	vm.V[0xF] = v >> 7
	return nil
}

func (vm *VM) shiftSource(op Opcode) byte {
	if vm.opts.quirks.Shift == ShiftVY {
		return vm.V[op.Y()]
	}
	return vm.V[op.X()]
}

// load address register.
func (vm *VM) loadI(op Opcode) error {
	vm.I = op.NNN()
	return nil
}

// jump to address + v0 (or vx with the jump quirk).
func (vm *VM) jumpOffset(op Opcode) error {
	r := uint8(0)
	if vm.opts.quirks.Jump == JumpVX {
		r = op.X()
	}

	vm.PC = op.NNN() + uint16(vm.V[r])
	return nil
}

// load a random number & nn into vx.
func (vm *VM) rnd(op Opcode) error {
	vm.V[op.X()] = vm.opts.random() & op.NN()
	return nil
}

// draw an n-row sprite at I to video memory at vx, vy.
func (vm *VM) drw(op Opcode) error {
	x := int(vm.V[op.X()]) % ScreenWidth
	y := int(vm.V[op.Y()]) % ScreenHeight

	// rows below the screen are clipped and never read
	rows := min(int(op.N()), ScreenHeight-y)

	var sprite []byte
	if rows > 0 {
		var ok bool
		if sprite, ok = vm.Memory.Slice(int(vm.I), rows); !ok {
			return vm.fault(MemoryOutOfBounds, int(vm.I)+rows-1)
		}
	}

	vm.V[0xF] = flag(vm.Video.Blit(x, y, sprite))
	return nil
}

// load delay timer into vx.
func (vm *VM) loadXDT(op Opcode) error {
	vm.V[op.X()] = vm.DT
	return nil
}

// load vx with next key released (suspends execution).
func (vm *VM) loadXK(op Opcode) error {
	vm.wait = waitLatch{
		awaiting: true,
		register: op.X(),
	}
	return nil
}

// load vx into delay timer.
func (vm *VM) loadDTX(op Opcode) error {
	vm.DT = vm.V[op.X()]
	return nil
}

// load vx into sound timer.
func (vm *VM) loadSTX(op Opcode) error {
	vm.ST = vm.V[op.X()]
	return nil
}

// add vx to i. With the overflow quirk, vf is set when i passes 0xFFF.
func (vm *VM) addIX(op Opcode) error {
	sum := uint32(vm.I) + uint32(vm.V[op.X()])

	vm.I = uint16(sum)
	if vm.opts.quirks.IndexOverflowFlag && sum > MaxAddress {
		vm.V[0xF] = 1
	}
	return nil
}

// load font sprite for vx into I.
func (vm *VM) loadF(op Opcode) error {
	vm.I = FontAddress(vm.V[op.X()])
	return nil
}

// load address with BCD of vx.
func (vm *VM) loadB(op Opcode) error {
	dst, ok := vm.Memory.Slice(int(vm.I), 3)
	if !ok {
		return vm.fault(MemoryOutOfBounds, int(vm.I)+2)
	}

	n := uint16(vm.V[op.X()])
	b := uint16(0)

	// double dabble: perform 8 shifts
	for i := uint(0); i < 8; i++ {
		if (b>>0)&0xF >= 5 {
			b += 3
		}
		if (b>>4)&0xF >= 5 {
			b += 3 << 4
		}
		if (b>>8)&0xF >= 5 {
			b += 3 << 8
		}

		// apply shift, pull next bit
		b = (b << 1) | (n >> (7 - i) & 1)
	}

	dst[0] = byte(b>>8) & 0xF
	dst[1] = byte(b>>4) & 0xF
	dst[2] = byte(b>>0) & 0xF
	return nil
}

// save registers v0..vx to I. I is unchanged.
func (vm *VM) saveRegs(op Opcode) error {
	n := int(op.X()) + 1

	dst, ok := vm.Memory.Slice(int(vm.I), n)
	if !ok {
		return vm.fault(MemoryOutOfBounds, int(vm.I)+n-1)
	}

	copy(dst, vm.V[:n])
	return nil
}

// load registers v0..vx from I. I is unchanged.
func (vm *VM) loadRegs(op Opcode) error {
	n := int(op.X()) + 1

	src, ok := vm.Memory.Slice(int(vm.I), n)
	if !ok {
		return vm.fault(MemoryOutOfBounds, int(vm.I)+n-1)
	}

	copy(vm.V[:n], src)
	return nil
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
