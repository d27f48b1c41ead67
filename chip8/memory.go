package chip8

// Memory layout.
const (
	// MemorySize is the size of the address space in bytes.
	MemorySize = 0x1000

	// MaxAddress is the last addressable byte.
	MaxAddress = MemorySize - 1

	// ProgramStart is where ROMs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest ROM that fits at ProgramStart.
	MaxProgramSize = MemorySize - ProgramStart
)

// Memory is the 4 KiB CHIP-8 address space.
type Memory [MemorySize]byte

// newImage returns a zeroed memory image with the font seeded at FontBase.
func newImage() Memory {
	var m Memory

	copy(m[FontBase:], Font[:])
	return m
}

// Read returns the byte at address or false if it is out of range.
func (m *Memory) Read(address int) (byte, bool) {
	if address < 0 || address > MaxAddress {
		return 0, false
	}
	return m[address], true
}

// Slice returns n bytes beginning at address, or false if any of them lie
// beyond MaxAddress.
func (m *Memory) Slice(address, n int) ([]byte, bool) {
	if address < 0 || n < 0 || address+n > MemorySize {
		return nil, false
	}
	return m[address : address+n], true
}

// Word returns the big-endian 16-bit word at address.
func (m *Memory) Word(address int) (uint16, bool) {
	b, ok := m.Slice(address, 2)
	if !ok {
		return 0, false
	}
	return uint16(b[0])<<8 | uint16(b[1]), true
}

// load copies program into the image at ProgramStart.
func (m *Memory) load(program []byte) error {
	if len(program) > MaxProgramSize {
		return &Fault{
			Kind:    RomTooLarge,
			Address: ProgramStart + len(program) - 1,
		}
	}

	copy(m[ProgramStart:], program)
	return nil
}
