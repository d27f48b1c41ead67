package chip8_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/massung/chip-8/chip8"
)

// rom assembles big-endian instruction words.
func rom(words ...uint16) []byte {
	b := make([]byte, 0, 2*len(words))
	for _, w := range words {
		b = append(b, byte(w>>8), byte(w))
	}
	return b
}

func load(opts []chip8.Option, words ...uint16) *chip8.VM {
	vm, err := chip8.LoadROM(rom(words...), opts...)
	Expect(err).NotTo(HaveOccurred())
	return vm
}

// single executes one instruction per Step.
var single = []chip8.Option{chip8.WithInstructionsPerTick(1)}

var _ = Describe("VM", func() {
	Describe("construction", func() {
		It("starts at the program with cleared state", func() {
			vm := load(nil, 0x6005)

			Expect(vm.PC).To(Equal(uint16(chip8.ProgramStart)))
			Expect(vm.I).To(BeZero())
			Expect(vm.V).To(Equal([16]byte{}))
			Expect(vm.Stack()).To(BeEmpty())
			Expect(vm.Memory[chip8.FontBase : chip8.FontBase+len(chip8.Font)]).To(Equal(chip8.Font[:]))
			Expect(vm.Memory[0x200:0x202]).To(Equal([]byte{0x60, 0x05}))
		})

		It("refuses to step before a rom is loaded", func() {
			vm := chip8.New()

			Expect(vm.Loaded()).To(BeFalse())
			Expect(vm.Step()).To(MatchError(chip8.ErrNotLoaded))
			Expect(vm.Cycle()).To(MatchError(chip8.ErrNotLoaded))
		})

		It("stays unloaded after a rom that is too large", func() {
			vm := chip8.New()

			err := vm.Load(make([]byte, chip8.MaxProgramSize+1))
			Expect(err).To(MatchError(chip8.ErrRomTooLarge))
			Expect(vm.Loaded()).To(BeFalse())
			Expect(vm.Step()).To(MatchError(chip8.ErrNotLoaded))
		})

		It("accepts the largest rom", func() {
			_, err := chip8.LoadROM(make([]byte, chip8.MaxProgramSize))
			Expect(err).NotTo(HaveOccurred())
		})

		It("loads rom files", func() {
			file := filepath.Join(GinkgoT().TempDir(), "add.ch8")
			Expect(os.WriteFile(file, rom(0x6005, 0x7003), 0o644)).To(Succeed())

			vm, err := chip8.LoadFile(file, single...)
			Expect(err).NotTo(HaveOccurred())
			Expect(vm.Step()).To(Succeed())
			Expect(vm.V[0]).To(Equal(byte(5)))
		})

		It("reports missing rom files", func() {
			_, err := chip8.LoadFile(filepath.Join(GinkgoT().TempDir(), "missing.ch8"))
			Expect(err).To(MatchError(ContainSubstring("reading rom")))
		})
	})

	Describe("step", func() {
		It("runs the add program end to end", func() {
			vm := load(single, 0x6005, 0x7003)

			Expect(vm.Step()).To(Succeed())
			Expect(vm.Step()).To(Succeed())

			Expect(vm.V[0]).To(Equal(byte(8)))
			Expect(vm.PC).To(Equal(uint16(0x204)))
			Expect(vm.Cycles).To(Equal(int64(2)))
		})

		It("executes a batch of instructions per tick", func() {
			opts := []chip8.Option{chip8.WithInstructionsPerTick(3)}
			vm := load(opts, 0x6001, 0x7001, 0x7001, 0x7001)

			Expect(vm.Step()).To(Succeed())
			Expect(vm.V[0]).To(Equal(byte(3)))
			Expect(vm.PC).To(Equal(uint16(0x206)))
		})

		It("decrements both timers once per tick and floors at zero", func() {
			vm := load(single, 0x6002, 0xF015, 0xF018, 0x1206)

			Expect(vm.Step()).To(Succeed())
			Expect(vm.Step()).To(Succeed())
			Expect(vm.DelayTimer()).To(Equal(byte(1)))

			Expect(vm.Step()).To(Succeed())
			Expect(vm.DelayTimer()).To(BeZero())
			Expect(vm.SoundTimer()).To(Equal(byte(1)))
			Expect(vm.SoundActive()).To(BeTrue())

			for range 3 {
				Expect(vm.Step()).To(Succeed())
			}
			Expect(vm.DelayTimer()).To(BeZero())
			Expect(vm.SoundTimer()).To(BeZero())
			Expect(vm.SoundActive()).To(BeFalse())
		})

		It("does not tick a single cycle", func() {
			vm := load(nil, 0x6009, 0xF015, 0x1204)

			Expect(vm.Cycle()).To(Succeed())
			Expect(vm.Cycle()).To(Succeed())
			Expect(vm.Cycle()).To(Succeed())
			Expect(vm.DelayTimer()).To(Equal(byte(9)))
		})

		It("skips unknown instructions and reports them after the batch", func() {
			opts := []chip8.Option{chip8.WithInstructionsPerTick(3)}
			vm := load(opts, 0x0123, 0x6007, 0xFFFF)

			err := vm.Step()
			Expect(err).To(MatchError(chip8.ErrUnknownInstruction))
			Expect(chip8.IsFatal(err)).To(BeFalse())

			Expect(vm.V[0]).To(Equal(byte(7)))
			Expect(vm.PC).To(Equal(uint16(0x206)))
			Expect(vm.Halted()).To(BeNil())
		})

		It("halts on a fatal fault without ticking", func() {
			vm := load(nil, 0x6003, 0xF015, 0x00EE)

			Expect(vm.Step()).To(MatchError(chip8.ErrStackUnderflow))
			Expect(vm.DelayTimer()).To(Equal(byte(3)))

			halted := vm.Halted()
			Expect(halted).NotTo(BeNil())
			Expect(halted.Kind).To(Equal(chip8.StackUnderflow))
			Expect(halted.PC).To(Equal(uint16(0x204)))

			Expect(vm.Step()).To(MatchError(chip8.ErrStackUnderflow))
			Expect(vm.DelayTimer()).To(Equal(byte(3)))
		})

		It("faults when the program counter leaves memory", func() {
			vm := load(nil, 0x1FFF)

			Expect(vm.Step()).To(MatchError(chip8.ErrMemoryOutOfBounds))
			Expect(vm.Halted().Address).To(Equal(0x1000))
		})

		It("calls the trace hook for every instruction", func() {
			var traced []uint16
			trace := chip8.WithTrace(func(pc uint16, op chip8.Opcode) {
				traced = append(traced, pc, uint16(op))
			})

			vm := load([]chip8.Option{trace, chip8.WithInstructionsPerTick(2)}, 0x6005, 0x7003)
			Expect(vm.Step()).To(Succeed())

			Expect(traced).To(Equal([]uint16{0x200, 0x6005, 0x202, 0x7003}))
		})
	})

	Describe("subroutines", func() {
		It("returns to the instruction after the call", func() {
			vm := load(single, 0x2206, 0x0000, 0x0000, 0x00EE)

			Expect(vm.Step()).To(Succeed())
			Expect(vm.Stack()).To(Equal([]uint16{0x202}))

			Expect(vm.Step()).To(Succeed())
			Expect(vm.PC).To(Equal(uint16(0x202)))
			Expect(vm.Stack()).To(BeEmpty())
		})

		It("bounds the stack depth", func() {
			vm := load([]chip8.Option{chip8.WithInstructionsPerTick(20)}, 0x2200)

			err := vm.Step()
			Expect(err).To(MatchError(chip8.ErrStackOverflow))
			Expect(chip8.IsFatal(err)).To(BeTrue())
			Expect(vm.Stack()).To(HaveLen(chip8.DefaultStackDepth))
		})
	})

	Describe("framebuffer", func() {
		It("restores the screen when a sprite is drawn twice", func() {
			vm := load(single, 0x6A08, 0x6B04, 0xA050, 0xDAB5, 0xDAB5)

			for range 4 {
				Expect(vm.Step()).To(Succeed())
			}
			drawn := vm.Display()
			Expect(drawn).NotTo(Equal(chip8.Display{}))
			Expect(vm.V[0xF]).To(BeZero())

			Expect(vm.Step()).To(Succeed())
			Expect(vm.Display()).To(Equal(chip8.Display{}))
			Expect(vm.V[0xF]).To(Equal(byte(1)))
		})

		It("clears every pixel", func() {
			vm := load(single, 0xA050, 0xD005, 0x00E0)

			Expect(vm.Step()).To(Succeed())
			Expect(vm.Step()).To(Succeed())
			Expect(vm.Step()).To(Succeed())

			display := vm.Display()
			for y := range chip8.ScreenHeight {
				for x := range chip8.ScreenWidth {
					Expect(display.Pixel(x, y)).To(BeZero())
				}
			}
		})
	})

	Describe("registers and memory", func() {
		It("stores and restores registers through memory", func() {
			vm := load(single,
				0x6011, 0x6122, 0x6233, 0x6344, 0x6455,
				0xA300, 0xF355,
				0x6000, 0x6100, 0x6200, 0x6300,
				0xF365,
			)

			for range 12 {
				Expect(vm.Step()).To(Succeed())
			}

			Expect(vm.V[:5]).To(Equal([]byte{0x11, 0x22, 0x33, 0x44, 0x55}))
			Expect(vm.I).To(Equal(uint16(0x300)))
		})

		It("writes the decimal digits of a register", func() {
			vm := load(single, 0x609D, 0xA300, 0xF033)

			for range 3 {
				Expect(vm.Step()).To(Succeed())
			}
			Expect(vm.Memory[0x300:0x303]).To(Equal([]byte{1, 5, 7}))
		})
	})

	Describe("key wait", func() {
		var vm *chip8.VM

		BeforeEach(func() {
			vm = load(nil, 0xF50A, 0x7501, 0x1204)
		})

		It("suspends until a key is released", func() {
			Expect(vm.Step()).To(Succeed())

			register, awaiting := vm.Awaiting()
			Expect(awaiting).To(BeTrue())
			Expect(register).To(Equal(uint8(5)))

			for range 10 {
				Expect(vm.Step()).To(Succeed())
				Expect(vm.PC).To(Equal(uint16(0x202)))
				Expect(vm.V[5]).To(BeZero())
			}

			// pressing alone is not enough
			Expect(vm.PressKey(0xB)).To(Succeed())
			Expect(vm.Step()).To(Succeed())
			Expect(vm.PC).To(Equal(uint16(0x202)))

			Expect(vm.ReleaseKey(0xB)).To(Succeed())
			_, awaiting = vm.Awaiting()
			Expect(awaiting).To(BeFalse())

			Expect(vm.Step()).To(Succeed())
			Expect(vm.V[5]).To(Equal(byte(0xC)))
			Expect(vm.PC).To(Equal(uint16(0x204)))
		})

		It("keeps the timers running while waiting", func() {
			vm.DT = 5

			for range 3 {
				Expect(vm.Step()).To(Succeed())
			}
			Expect(vm.DelayTimer()).To(Equal(byte(2)))
		})

		It("rejects invalid keys", func() {
			Expect(vm.SetKey(0x10, true)).To(MatchError(chip8.ErrInvalidKey))
		})
	})

	Describe("reset", func() {
		It("restores the loaded program and clears state", func() {
			vm := load(nil, 0x6005, 0xA300, 0xF055, 0xF015, 0x1208)

			Expect(vm.Step()).To(Succeed())
			Expect(vm.Memory[0x300]).To(Equal(byte(5)))
			Expect(vm.PressKey(3)).To(Succeed())

			vm.Reset()

			Expect(vm.PC).To(Equal(uint16(chip8.ProgramStart)))
			Expect(vm.V).To(Equal([16]byte{}))
			Expect(vm.I).To(BeZero())
			Expect(vm.DelayTimer()).To(BeZero())
			Expect(vm.Memory[0x300]).To(BeZero())
			Expect(vm.Keys).To(Equal([16]bool{}))
			Expect(vm.Cycles).To(BeZero())
			Expect(vm.Loaded()).To(BeTrue())
		})

		It("recovers a halted machine", func() {
			vm := load(nil, 0x00EE)

			Expect(vm.Step()).To(HaveOccurred())
			vm.Reset()

			Expect(vm.Halted()).To(BeNil())
			Expect(vm.PC).To(Equal(uint16(chip8.ProgramStart)))
		})
	})

	Describe("speed", func() {
		It("clamps the instructions per tick", func() {
			vm := load(nil, 0x1200)

			vm.SetInstructionsPerTick(0)
			Expect(vm.InstructionsPerTick()).To(Equal(1))

			vm.SetInstructionsPerTick(chip8.MaxInstructionsPerTick * 2)
			Expect(vm.InstructionsPerTick()).To(Equal(chip8.MaxInstructionsPerTick))
		})
	})
})
