// Package dispatch routes host calls to the native grid library.
//
// A Table holds one Descriptor per exposed operation: its name, ordered
// parameter kinds and handler. Call validates arguments against the
// descriptor before any native work, runs the handler with per-call scratch
// memory and resolves every error class:
//
//   - unknown operations and parameter errors are returned as errors
//   - native-reported failures answer false with a nil error
//   - panics inside a handler are recovered into an internal error
package dispatch

import (
	"sort"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"

	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/native"
	"github.com/wippyai/h3-runtime/value"
)

// Table is an immutable operation table. Safe for concurrent use when the
// native library is reentrant.
type Table struct {
	lib      native.Library
	mem      memory.Allocator
	logger   *zap.Logger
	observer Observer
	ops      map[string]*Descriptor
	order    []*Descriptor
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the table logger. Defaults to the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithAllocator overrides the scratch allocator. Defaults to the library's
// allocator; a cgo library needs C memory.
func WithAllocator(mem memory.Allocator) Option {
	return func(t *Table) {
		if mem != nil {
			t.mem = mem
		}
	}
}

// WithObserver installs a call observer.
func WithObserver(o Observer) Option {
	return func(t *Table) {
		if o != nil {
			t.observer = o
		}
	}
}

// New builds the table of every operation over lib.
func New(lib native.Library, opts ...Option) (*Table, error) {
	if lib == nil {
		return nil, errors.InvalidInput(errors.PhaseDispatch, "native library cannot be nil")
	}

	t := &Table{
		lib:      lib,
		mem:      lib.Allocator(),
		logger:   Logger(),
		observer: NopObserver{},
		ops:      make(map[string]*Descriptor),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.mem == nil {
		t.mem = memory.DefaultAllocator
	}

	for _, group := range [][]*Descriptor{
		conversionOps(),
		inspectionOps(),
		traversalOps(),
		hierarchyOps(),
		edgeOps(),
		regionOps(),
		metricOps(),
	} {
		for _, d := range group {
			if err := t.register(d); err != nil {
				return nil, err
			}
		}
	}

	t.logger.Debug("dispatch table ready", zap.Int("operations", len(t.order)))
	return t, nil
}

func (t *Table) register(d *Descriptor) error {
	if d.Name == "" {
		return errors.InvalidInput(errors.PhaseDispatch, "operation name cannot be empty")
	}
	if d.handler == nil {
		return errors.Registration(errors.PhaseDispatch, d.Name, errors.InvalidInput(errors.PhaseDispatch, "handler cannot be nil"))
	}
	if _, dup := t.ops[d.Name]; dup {
		return errors.Registration(errors.PhaseDispatch, d.Name, errors.InvalidInput(errors.PhaseDispatch, "duplicate operation"))
	}
	for _, p := range d.Params {
		if p.Kind() == value.KindNull {
			return errors.Registration(errors.PhaseDispatch, d.Name, errors.InvalidInput(errors.PhaseDispatch, "unsupported parameter type for "+p.Name))
		}
	}
	t.ops[d.Name] = d
	t.order = append(t.order, d)
	return nil
}

// Lookup returns the descriptor for name.
func (t *Table) Lookup(name string) (*Descriptor, bool) {
	d, ok := t.ops[name]
	return d, ok
}

// Names returns every operation name, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.ops))
	for name := range t.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Descriptors returns every descriptor in group order.
func (t *Table) Descriptors() []*Descriptor {
	out := make([]*Descriptor, len(t.order))
	copy(out, t.order)
	return out
}

// Groups returns descriptors keyed by group, in declaration order within
// each group.
func (t *Table) Groups() ([]Group, map[Group][]*Descriptor) {
	byGroup := make(map[Group][]*Descriptor)
	for _, d := range t.order {
		byGroup[d.Group] = append(byGroup[d.Group], d)
	}
	groups := make([]Group, 0, len(byGroup))
	for _, g := range groupOrder {
		if len(byGroup[g]) > 0 {
			groups = append(groups, g)
		}
	}
	return groups, byGroup
}

// Call invokes the named operation.
func (t *Table) Call(name string, args ...value.Value) (value.Value, error) {
	start := time.Now()

	d, ok := t.ops[name]
	if !ok {
		err := errors.NotFound(errors.PhaseDispatch, "operation", name)
		t.logger.Info("unknown operation", zap.String("op", name))
		t.observer.OnCall(name, time.Since(start), OutcomeError)
		return value.Null(), err
	}

	bound, err := d.bind(args)
	if err != nil {
		t.logger.Info("parameter error", zap.String("op", name), zap.Error(err))
		t.observer.OnCall(name, time.Since(start), OutcomeParamError)
		return value.Null(), err
	}

	scratch := &countingAllocator{Allocator: t.mem}
	result, err := t.invoke(d, bound, scratch)
	if scratch.bytes > 0 {
		t.observer.OnScratch(name, scratch.bytes)
	}

	outcome := classify(err)
	elapsed := time.Since(start)
	t.observer.OnCall(name, elapsed, outcome)

	switch outcome {
	case OutcomeOK:
		t.logger.Debug("call",
			zap.String("op", name),
			zap.Int("args", len(args)),
			zap.Duration("duration", elapsed))
		return result, nil
	case OutcomeNativeFailure:
		if d.Fallible {
			t.logger.Debug("native failure", zap.String("op", name), zap.Error(err))
			return value.False(), nil
		}
		t.logger.Warn("native failure on infallible operation", zap.String("op", name), zap.Error(err))
	case OutcomeInternal:
		t.logger.Error("recovered panic", zap.String("op", name), zap.Error(err))
	default:
		t.logger.Info("call failed", zap.String("op", name), zap.Error(err))
	}
	return value.Null(), errors.WithOp(err, name)
}

func (t *Table) invoke(d *Descriptor, args []value.Value, mem memory.Allocator) (result value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = value.Null()
			err = errors.Internal(d.Name, r)
		}
	}()
	return d.handler(&Call{Desc: d, Args: args, Lib: t.lib, Mem: mem})
}

func classify(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}
	var e *errors.Error
	if !errors.As(err, &e) {
		return OutcomeError
	}
	switch {
	case e.Kind == errors.KindNativeFailure:
		return OutcomeNativeFailure
	case e.Kind == errors.KindInternal:
		return OutcomeInternal
	case e.Phase == errors.PhaseParam:
		return OutcomeParamError
	}
	return OutcomeError
}

// countingAllocator records bytes reserved during one call.
type countingAllocator struct {
	memory.Allocator
	bytes int
}

func (c *countingAllocator) Allocate(size int) []byte {
	c.bytes += size
	return c.Allocator.Allocate(size)
}
