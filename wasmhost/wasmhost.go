// Package wasmhost exposes a dispatch table to WebAssembly guests through a
// wazero host module.
//
// The module exports a single function:
//
//	call(name i64, args i64) -> i64
//
// Each i64 packs a guest pointer in the upper 32 bits and a length in the
// lower 32 bits. name is the operation name, args a JSON array of
// arguments. The response is JSON, either {"result": ...} or
// {"error": {"phase", "kind", "message"}}, written into memory obtained from
// the guest's allocate export. A zero return means no response could be
// written.
package wasmhost

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/h3-runtime/dispatch"
	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/value"
)

// DefaultMaxRequestSize bounds name plus arguments read from the guest.
const DefaultMaxRequestSize = 1 << 20

// Config holds host module settings.
type Config struct {
	// ModuleName is the import module name guests use. Default "h3".
	ModuleName string
	// AllocateExport is the guest export used to reserve response memory.
	AllocateExport string
	// MaxRequestSize limits name and argument bytes per call.
	MaxRequestSize uint32
}

// Option configures the host module.
type Option func(*Config)

// WithModuleName sets the import module name.
func WithModuleName(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.ModuleName = name
		}
	}
}

// WithMaxRequestSize sets the request size limit.
func WithMaxRequestSize(size uint32) Option {
	return func(c *Config) {
		c.MaxRequestSize = size
	}
}

// WithAllocateExport sets the guest allocation export name.
func WithAllocateExport(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.AllocateExport = name
		}
	}
}

func defaultConfig() Config {
	return Config{
		ModuleName:     "h3",
		AllocateExport: "allocate",
		MaxRequestSize: DefaultMaxRequestSize,
	}
}

// Register instantiates the host module in rt.
func Register(ctx context.Context, rt wazero.Runtime, tbl *dispatch.Table, opts ...Option) (api.Module, error) {
	if tbl == nil {
		return nil, errors.InvalidInput(errors.PhaseHost, "dispatch table cannot be nil")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &host{cfg: cfg, tbl: tbl}
	mod, err := rt.NewHostModuleBuilder(cfg.ModuleName).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(h.call),
			[]api.ValueType{api.ValueTypeI64, api.ValueTypeI64},
			[]api.ValueType{api.ValueTypeI64}).
		WithParameterNames("name", "args").
		Export("call").
		Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindRegistration, err, "instantiate host module "+cfg.ModuleName)
	}
	Logger().Debug("host module ready", zap.String("module", cfg.ModuleName))
	return mod, nil
}

type host struct {
	cfg Config
	tbl *dispatch.Table
}

type errorBody struct {
	Phase   string `json:"phase"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type response struct {
	Result *value.Value `json:"result,omitempty"`
	Error  *errorBody   `json:"error,omitempty"`
}

func (h *host) call(ctx context.Context, mod api.Module, stack []uint64) {
	result, err := h.handle(mod, stack[0], stack[1])
	stack[0] = h.respond(ctx, mod, result, err)
}

func (h *host) handle(mod api.Module, namePacked, argsPacked uint64) (value.Value, error) {
	namePtr, nameLen := unpackPtrLen(namePacked)
	argsPtr, argsLen := unpackPtrLen(argsPacked)

	if total := uint64(nameLen) + uint64(argsLen); total > uint64(h.cfg.MaxRequestSize) {
		return value.Null(), errors.New(errors.PhaseHost, errors.KindOutOfRange).
			Value(total).
			Detail("request size %d exceeds maximum %d bytes", total, h.cfg.MaxRequestSize).
			Build()
	}

	name, ok := mod.Memory().Read(namePtr, nameLen)
	if !ok {
		return value.Null(), errors.InvalidInput(errors.PhaseHost, "operation name out of guest memory bounds")
	}
	raw, ok := mod.Memory().Read(argsPtr, argsLen)
	if !ok {
		return value.Null(), errors.InvalidInput(errors.PhaseHost, "arguments out of guest memory bounds")
	}

	var args []value.Value
	if argsLen > 0 {
		v, err := value.Parse(raw)
		if err != nil {
			return value.Null(), errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "arguments are not valid JSON")
		}
		seq, ok := v.AsSeq()
		if !ok {
			return value.Null(), errors.TypeMismatch(errors.PhaseHost, []string{"args"}, value.KindSeq.String(), v.Kind().String())
		}
		args = seq
	}

	return h.tbl.Call(string(name), args...)
}

func (h *host) respond(ctx context.Context, mod api.Module, result value.Value, callErr error) uint64 {
	var resp response
	if callErr != nil {
		resp.Error = errorBodyOf(callErr)
	} else {
		resp.Result = &result
	}

	data, err := json.Marshal(resp)
	if err != nil {
		Logger().Error("encode response", zap.Error(err))
		data, _ = json.Marshal(response{Error: errorBodyOf(errors.Wrap(errors.PhaseHost, errors.KindInternal, err, "encode response"))})
	}
	return h.write(ctx, mod, data)
}

func errorBodyOf(err error) *errorBody {
	body := &errorBody{Message: err.Error()}
	var e *errors.Error
	if errors.As(err, &e) {
		body.Phase = string(e.Phase)
		body.Kind = string(e.Kind)
	}
	return body
}

// write copies data into guest memory and returns its packed location.
func (h *host) write(ctx context.Context, mod api.Module, data []byte) uint64 {
	alloc := mod.ExportedFunction(h.cfg.AllocateExport)
	if alloc == nil {
		Logger().Error("guest missing allocate export", zap.String("export", h.cfg.AllocateExport))
		return 0
	}
	results, err := alloc.Call(ctx, uint64(len(data)))
	if err != nil || len(results) == 0 {
		Logger().Error("guest allocate failed", zap.Error(err))
		return 0
	}
	ptr := uint32(results[0])
	if !mod.Memory().Write(ptr, data) {
		Logger().Error("response out of guest memory bounds", zap.Uint32("ptr", ptr), zap.Int("len", len(data)))
		return 0
	}
	return packPtrLen(ptr, uint32(len(data)))
}

func packPtrLen(ptr, length uint32) uint64 {
	return uint64(ptr)<<32 | uint64(length)
}

func unpackPtrLen(packed uint64) (ptr, length uint32) {
	return uint32(packed >> 32), uint32(packed)
}
