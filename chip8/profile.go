package chip8

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/config"
)

// Profile is the on-disk form of the construction-time options:
//
//	[quirks]
//	shift = vx                  # or vy
//	jump = v0                   # or vx
//	index_overflow_flag = true
//
//	[cpu]
//	stack_depth = 16
//	instructions_per_tick = 15
type Profile struct {
	Shift             string `config:"quirks.shift,default=vx"`
	Jump              string `config:"quirks.jump,default=v0"`
	IndexOverflowFlag bool   `config:"quirks.index_overflow_flag,default=true"`

	StackDepth          int `config:"cpu.stack_depth,default=16"`
	InstructionsPerTick int `config:"cpu.instructions_per_tick,default=15"`
}

// Options converts the profile to VM options.
func (p Profile) Options() ([]Option, error) {
	shift, err := ParseShiftSource(p.Shift)
	if err != nil {
		return nil, err
	}

	jump, err := ParseJumpOffset(p.Jump)
	if err != nil {
		return nil, err
	}

	if p.StackDepth < 1 {
		return nil, fmt.Errorf("stack depth must be positive, got %d", p.StackDepth)
	}

	q := Quirks{
		Shift:             shift,
		Jump:              jump,
		IndexOverflowFlag: p.IndexOverflowFlag,
	}

	return []Option{
		WithQuirks(q),
		WithStackDepth(p.StackDepth),
		WithInstructionsPerTick(p.InstructionsPerTick),
	}, nil
}

// LoadProfile parses a profile and returns the options it describes. Keys
// missing from the profile keep their defaults.
func LoadProfile(r io.Reader) ([]Option, error) {
	doc, err := config.Parse(r, config.Options{InlineComments: true})
	if err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}

	var p Profile
	if err := doc.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	return p.Options()
}

// LoadProfileFile reads a profile from disk.
func LoadProfileFile(path string) ([]Option, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening profile: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return LoadProfile(f)
}
