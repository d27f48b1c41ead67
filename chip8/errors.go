package chip8

import (
	"errors"
	"fmt"
)

// FaultKind classifies a VM fault.
type FaultKind int

const (
	// UnknownInstruction is raised for an opcode without a handler. It is
	// recoverable: the word is treated as a no-op.
	UnknownInstruction FaultKind = iota + 1

	// StackUnderflow is raised by RET with an empty call stack.
	StackUnderflow

	// StackOverflow is raised by CALL when the stack is at its depth limit.
	StackOverflow

	// MemoryOutOfBounds is raised when PC, I or I+offset addresses past 0xFFF.
	MemoryOutOfBounds

	// RomTooLarge is raised by Load when the program does not fit in memory.
	RomTooLarge
)

// Sentinel errors matched by errors.Is against a *Fault of the same kind.
var (
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrStackOverflow      = errors.New("stack overflow")
	ErrMemoryOutOfBounds  = errors.New("memory access out of bounds")
	ErrRomTooLarge        = errors.New("rom too large")

	// ErrNotLoaded is returned by Step before a ROM was loaded successfully.
	ErrNotLoaded = errors.New("no rom loaded")

	// ErrInvalidKey is returned by SetKey for key codes above 0xF.
	ErrInvalidKey = errors.New("invalid key")
)

var faultSentinels = map[FaultKind]error{
	UnknownInstruction: ErrUnknownInstruction,
	StackUnderflow:     ErrStackUnderflow,
	StackOverflow:      ErrStackOverflow,
	MemoryOutOfBounds:  ErrMemoryOutOfBounds,
	RomTooLarge:        ErrRomTooLarge,
}

// String returns the name of the fault kind.
func (k FaultKind) String() string {
	if err, ok := faultSentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("fault(%d)", int(k))
}

// Fault is a typed VM error. PC is the address of the faulting instruction.
type Fault struct {
	Kind    FaultKind
	PC      uint16
	Opcode  Opcode
	Address int // offending address for MemoryOutOfBounds and RomTooLarge
}

func (f *Fault) Error() string {
	switch f.Kind {
	case MemoryOutOfBounds:
		return fmt.Sprintf("%s: address #%04X at #%04X (%04X)", f.Kind, f.Address, f.PC, uint16(f.Opcode))
	case RomTooLarge:
		return fmt.Sprintf("%s: program ends at #%04X", f.Kind, f.Address)
	default:
		return fmt.Sprintf("%s: %04X at #%04X", f.Kind, uint16(f.Opcode), f.PC)
	}
}

// Is reports whether target is the sentinel error for the fault kind.
func (f *Fault) Is(target error) bool {
	return faultSentinels[f.Kind] == target
}

// Fatal is true if execution cannot continue after the fault.
func (f *Fault) Fatal() bool {
	return f.Kind != UnknownInstruction
}

// IsFatal returns true if err contains a fatal *Fault. Errors that are not
// faults are considered fatal as well.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	// a joined batch is fatal only if one of its members is
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range j.Unwrap() {
			if IsFatal(e) {
				return true
			}
		}
		return false
	}

	var f *Fault
	if errors.As(err, &f) {
		return f.Fatal()
	}
	return true
}
