// SPDX-License-Identifier: MIT

package reduce

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/blockreduce/algebra"
	"github.com/katalvlaran/blockreduce/circuit"
)

// Sentinel errors for reduction runs.
var (
	// ErrCircuitNil is returned if a nil circuit pointer is passed.
	ErrCircuitNil = errors.New("reduce: circuit is nil")

	// ErrEmptyBlock is returned when the block to simplify holds no element.
	ErrEmptyBlock = errors.New("reduce: block is empty")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("reduce: invalid option supplied")
)

// Defaults for the two safety valves of the driver.
const (
	DefaultMaxStall    = 10
	DefaultMaxRewrites = 100000
)

// State is the outcome of simplifying one block.
type State uint8

const (
	// Iterating means rules are still being applied.
	Iterating State = iota
	// PartiallyDone means no rule made progress for MaxStall invocations
	// (or MaxRewrites was reached) before the block reduced to one element.
	PartiallyDone
	// FullyDone means the block holds a single transfer element.
	FullyDone
)

// String returns "iterating", "partially-done" or "fully-done".
func (s State) String() string {
	switch s {
	case Iterating:
		return "iterating"
	case PartiallyDone:
		return "partially-done"
	case FullyDone:
		return "fully-done"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Rule names one structural rewrite.
type Rule uint8

const (
	// RuleUnusedAdders deletes or bypasses adders that sum nothing.
	RuleUnusedAdders Rule = iota + 1
	// RuleSplit gives every output of a multi-output element its own copy.
	RuleSplit
	// RuleParallel sums two elements between the same pair of adders.
	RuleParallel
	// RuleFeedback closes a loop through an adder into G/(1-L).
	RuleFeedback
	// RuleSerialTfs multiplies two elements in direct series.
	RuleSerialTfs
	// RuleSerialAdders fuses two adders in direct series.
	RuleSerialAdders
)

// String returns the rule name used in logs and spans.
func (r Rule) String() string {
	switch r {
	case RuleUnusedAdders:
		return "unused-adders"
	case RuleSplit:
		return "split"
	case RuleParallel:
		return "parallel"
	case RuleFeedback:
		return "feedback"
	case RuleSerialTfs:
		return "serial-tfs"
	case RuleSerialAdders:
		return "serial-adders"
	default:
		return fmt.Sprintf("rule(%d)", uint8(r))
	}
}

// Event describes one applied rewrite. It is passed to the OnRewrite hook
// after the graph edit is complete.
type Event struct {
	RunID uuid.UUID
	Block circuit.ID
	Rule  Rule
	// Survivor is the element that carries the rewritten value or wiring
	// (NoID when the rewrite only deleted elements).
	Survivor circuit.ID
	Removed  []circuit.ID
	Added    []circuit.ID
	// Rewrites counts rewrites in the run so far, this one included.
	Rewrites int
}

// Result is the outcome of a Simplify call.
//   - State/Value: outcome of the requested block; Value is set on FullyDone.
//   - Blocks: final state of every block processed, nested ones included.
//   - Order: blocks in the order they were simplified (children first).
type Result struct {
	RunID       uuid.UUID
	State       State
	Value       algebra.Ratio
	Rewrites    int
	Invocations int
	Blocks      map[circuit.ID]State
	Order       []circuit.ID
}

// Option configures Simplify via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when
// Simplify is invoked.
type Option func(*Options)

// Options holds the parameters of one reduction run.
type Options struct {
	// Ctx allows cancellation; it is checked after every rewrite.
	Ctx context.Context

	// OnRewrite is called after every rewrite. Returning an error stops the
	// run; the graph is left consistent.
	OnRewrite func(Event) error

	// Logger receives Debug records per rewrite and Info per finished block.
	Logger *slog.Logger

	// Tracer starts one span per block run.
	Tracer trace.Tracer

	// Engine performs all value arithmetic.
	Engine *algebra.Engine

	// MaxStall is the number of consecutive rule invocations without a
	// rewrite after which a block is left PartiallyDone.
	MaxStall int

	// MaxRewrites bounds the rewrites of a whole run.
	MaxRewrites int

	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - no rewrite hook
//   - a logger that discards everything
//   - the global OpenTelemetry tracer provider
//   - a standard algebra engine
//   - MaxStall = DefaultMaxStall, MaxRewrites = DefaultMaxRewrites
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		OnRewrite:   func(Event) error { return nil },
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:      otel.Tracer("github.com/katalvlaran/blockreduce/reduce"),
		Engine:      algebra.NewEngine(),
		MaxStall:    DefaultMaxStall,
		MaxRewrites: DefaultMaxRewrites,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnRewrite registers the hook run after every rewrite.
func WithOnRewrite(fn func(Event) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRewrite = fn
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTracer sets the tracer used for block spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		if t != nil {
			o.Tracer = t
		}
	}
}

// WithEngine sets the algebra engine.
func WithEngine(e *algebra.Engine) Option {
	return func(o *Options) {
		if e != nil {
			o.Engine = e
		}
	}
}

// WithMaxStall sets the stall limit.
//
//	n > 0: stop a block after n fruitless rule invocations
//	n <= 0: invalid option → ErrOptionViolation
func WithMaxStall(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxStall must be positive (%d)", ErrOptionViolation, n)

			return
		}
		o.MaxStall = n
	}
}

// WithMaxRewrites bounds the rewrites of a run.
//
//	n > 0: limit
//	n <= 0: invalid option → ErrOptionViolation
func WithMaxRewrites(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxRewrites must be positive (%d)", ErrOptionViolation, n)

			return
		}
		o.MaxRewrites = n
	}
}
