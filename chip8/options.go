package chip8

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// Defaults applied by New.
const (
	DefaultStackDepth          = 16
	DefaultInstructionsPerTick = 15

	// MaxInstructionsPerTick bounds SetInstructionsPerTick.
	MaxInstructionsPerTick = 1000
)

// RandomSource returns uniformly distributed bytes for RND.
type RandomSource func() byte

// TraceFunc is called before each instruction executes.
type TraceFunc func(pc uint16, op Opcode)

// Option configures a VM at construction time.
type Option func(*options)

type options struct {
	quirks     Quirks
	stackDepth int
	perTick    int
	random     RandomSource
	logger     *log.Logger
	trace      TraceFunc
}

func defaultOptions() options {
	return options{
		quirks:     DefaultQuirks(),
		stackDepth: DefaultStackDepth,
		perTick:    DefaultInstructionsPerTick,
		random:     func() byte { return byte(rand.N(256)) },
	}
}

// WithQuirks sets the interpretation of the ambiguous instructions.
func WithQuirks(q Quirks) Option {
	return func(o *options) {
		o.quirks = q
	}
}

// WithStackDepth bounds the call stack. Values below 1 are ignored.
func WithStackDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.stackDepth = depth
		}
	}
}

// WithInstructionsPerTick sets how many instructions Step executes.
func WithInstructionsPerTick(n int) Option {
	return func(o *options) {
		o.perTick = clampPerTick(n)
	}
}

// WithRandom replaces the byte generator used by RND.
func WithRandom(r RandomSource) Option {
	return func(o *options) {
		if r != nil {
			o.random = r
		}
	}
}

// WithLogger sets the logger faults and lifecycle events are written to.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTrace installs a hook called with every fetched instruction.
func WithTrace(fn TraceFunc) Option {
	return func(o *options) {
		o.trace = fn
	}
}

func clampPerTick(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxInstructionsPerTick:
		return MaxInstructionsPerTick
	}
	return n
}
