package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// waitLatch is the key wait state. The zero value is RUNNING; LD Vx, K
// sets awaiting with the target register.
type waitLatch struct {
	awaiting bool
	register uint8
}

// Awaiting returns the register LD Vx, K will store the next released key
// into, and true if the VM is suspended waiting for it.
func (vm *VM) Awaiting() (uint8, bool) {
	return vm.wait.register, vm.wait.awaiting
}

// SetKey records a key press or release. A release while awaiting a key
// stores the key in the latched register and resumes execution on the
// next Step.
func (vm *VM) SetKey(key byte, pressed bool) error {
	if key > 0xF {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}

	vm.Keys[key] = pressed

	// waiting for a key, set it now
	if !pressed && vm.wait.awaiting {
		x := vm.wait.register

		vm.V[x] = key
		vm.wait = waitLatch{}

		vm.log.Debug("Key wait satisfied", log.Uint8("key", key), log.Uint8("register", x))
	}

	return nil
}

// PressKey emulates a CHIP-8 key being pressed.
func (vm *VM) PressKey(key byte) error {
	return vm.SetKey(key, true)
}

// ReleaseKey emulates a CHIP-8 key being released.
func (vm *VM) ReleaseKey(key byte) error {
	return vm.SetKey(key, false)
}
