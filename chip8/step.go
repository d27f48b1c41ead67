package chip8

import (
	"errors"

	"github.com/retroenv/retrogolib/log"
)

// Step advances the machine by one 60 Hz tick. Unless the VM is waiting for
// a key, it executes up to InstructionsPerTick instructions, stopping early
// when an instruction starts a key wait. Both timers are then decremented.
//
// A fatal fault halts the VM and is returned as is; timers are left alone
// and later calls return the same fault until Reset or Load. Recovered
// faults (unknown instructions) do not interrupt the batch and are returned
// joined once it completes; use IsFatal to tell them apart.
func (vm *VM) Step() error {
	if !vm.loaded {
		return ErrNotLoaded
	}
	if vm.halted != nil {
		return vm.halted
	}

	var recovered []error

	for i := 0; i < vm.opts.perTick && !vm.wait.awaiting; i++ {
		if err := vm.Cycle(); err != nil {
			if IsFatal(err) {
				return err
			}
			recovered = append(recovered, err)
		}
	}

	vm.tick()
	return errors.Join(recovered...)
}

// Cycle fetches, decodes and executes a single instruction. Timers are not
// touched. While waiting for a key it does nothing.
func (vm *VM) Cycle() error {
	if !vm.loaded {
		return ErrNotLoaded
	}
	if vm.halted != nil {
		return vm.halted
	}
	if vm.wait.awaiting {
		return nil
	}

	vm.opPC = vm.PC

	// fetch the next instruction
	op, err := vm.fetch()
	if err != nil {
		return vm.report(err)
	}

	if vm.opts.trace != nil {
		vm.opts.trace(vm.opPC, op)
	}

	err = vm.execute(op)

	// increment the cycle count
	vm.Cycles++

	if err != nil {
		return vm.report(err)
	}
	return nil
}

// fetch the next 16-bit instruction to execute and advance PC past it.
func (vm *VM) fetch() (Opcode, error) {
	w, ok := vm.Memory.Word(int(vm.PC))
	if !ok {
		vm.op = 0
		return 0, vm.fault(MemoryOutOfBounds, int(vm.PC)+1)
	}

	vm.op = Opcode(w)
	vm.PC += 2
	return vm.op, nil
}

// tick decrements both timers, flooring at zero.
func (vm *VM) tick() {
	if vm.DT > 0 {
		vm.DT--
	}
	if vm.ST > 0 {
		vm.ST--
	}
}

// report logs a fault and halts the VM if it is fatal.
func (vm *VM) report(err error) error {
	var f *Fault
	if !errors.As(err, &f) {
		return err
	}

	if !f.Fatal() {
		vm.log.Warn("Skipping unknown instruction",
			log.Hex("pc", f.PC),
			log.Hex("opcode", uint16(f.Opcode)),
		)
		return f
	}

	vm.halted = f
	vm.log.Error("VM halted", log.Err(f), log.Hex("pc", f.PC))
	return f
}
