package chip8

import (
	"fmt"
	"strings"
)

// ShiftSource selects the operand of SHR/SHL (8XY6, 8XYE).
type ShiftSource int

const (
	// ShiftVX shifts Vx in place, ignoring Vy.
	ShiftVX ShiftSource = iota

	// ShiftVY loads Vx with Vy shifted, as the original COSMAC VIP did.
	ShiftVY
)

// JumpOffset selects the register added by JP V0, NNN (BNNN).
type JumpOffset int

const (
	// JumpV0 jumps to NNN + V0.
	JumpV0 JumpOffset = iota

	// JumpVX jumps to NNN + Vx, where x is the high nibble of NNN.
	JumpVX
)

// Quirks resolves the historically ambiguous instructions. The zero value
// is not the default; use DefaultQuirks.
type Quirks struct {
	Shift ShiftSource
	Jump  JumpOffset

	// IndexOverflowFlag sets VF to 1 when ADD I, Vx carries I past 0x0FFF.
	// VF is left alone when it doesn't.
	IndexOverflowFlag bool
}

// DefaultQuirks returns the quirk set used when none is configured.
func DefaultQuirks() Quirks {
	return Quirks{
		Shift:             ShiftVX,
		Jump:              JumpV0,
		IndexOverflowFlag: true,
	}
}

func (s ShiftSource) String() string {
	if s == ShiftVY {
		return "vy"
	}
	return "vx"
}

func (j JumpOffset) String() string {
	if j == JumpVX {
		return "vx"
	}
	return "v0"
}

// ParseShiftSource parses "vx" or "vy".
func ParseShiftSource(s string) (ShiftSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vx", "":
		return ShiftVX, nil
	case "vy":
		return ShiftVY, nil
	}
	return ShiftVX, fmt.Errorf("unsupported shift quirk %q (vx, vy)", s)
}

// ParseJumpOffset parses "v0" or "vx".
func ParseJumpOffset(s string) (JumpOffset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v0", "":
		return JumpV0, nil
	case "vx":
		return JumpVX, nil
	}
	return JumpV0, fmt.Errorf("unsupported jump quirk %q (v0, vx)", s)
}
