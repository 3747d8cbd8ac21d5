// Package host exposes a resource.Table to WebAssembly guests as a wazero
// host module.
//
// Guests see handles only as i32 ids. Every function is core-wasm typed:
//
//	clone(id i32) -> i32             new id, 0 on failure
//	drop(id i32) -> i32              0, or a negative status
//	num-fds(id i32) -> i32           -1 for an unknown id
//	num-ints(id i32) -> i32          -1 for an unknown id
//	get-int(id i32, index i32) -> i64  -1 for an unknown id or bad index
//
// Guest returns a module that re-exports all of these, for embedders that
// want to call them from Go.
package host

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/nativewindow/errors"
	"github.com/wippyai/nativewindow/handle"
	"github.com/wippyai/nativewindow/host/internal/wasm"
	"github.com/wippyai/nativewindow/resource"
)

// DefaultModuleName is the import module name guests use.
const DefaultModuleName = "nativewindow:handle/native-handle@0.1.0"

// Status codes returned by drop.
const (
	StatusOK       int32 = 0
	StatusNotFound int32 = -1
	StatusBorrowed int32 = -2
	StatusFailed   int32 = -3
)

// Options configures the host module.
type Options struct {
	Logger     *zap.Logger
	ModuleName string
}

// DefaultOptions returns default host configuration.
func DefaultOptions() Options {
	return Options{
		ModuleName: DefaultModuleName,
	}
}

// Host serves native handle operations to guests from a table.
type Host struct {
	table   *resource.Table
	log     *zap.Logger
	options Options
}

// New creates a Host over table. The table stays owned by the caller.
func New(table *resource.Table, opts Options) *Host {
	if opts.ModuleName == "" {
		opts.ModuleName = DefaultModuleName
	}
	log := opts.Logger
	if log == nil {
		log = handle.Logger()
	}
	return &Host{
		table:   table,
		log:     log.Named("host"),
		options: opts,
	}
}

// Table returns the table the host serves.
func (h *Host) Table() *resource.Table {
	return h.table
}

// signature describes one guest-visible function.
type signature struct {
	name    string
	params  []api.ValueType
	results []api.ValueType
}

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64

	signatures = []signature{
		{"clone", []api.ValueType{i32}, []api.ValueType{i32}},
		{"drop", []api.ValueType{i32}, []api.ValueType{i32}},
		{"num-fds", []api.ValueType{i32}, []api.ValueType{i32}},
		{"num-ints", []api.ValueType{i32}, []api.ValueType{i32}},
		{"get-int", []api.ValueType{i32, i32}, []api.ValueType{i64}},
	}
)

// Instantiate registers the host module in rt.
// It must be called before instantiating guests that import it.
func (h *Host) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	handlers := map[string]api.GoModuleFunc{
		"clone":    h.clone,
		"drop":     h.drop,
		"num-fds":  h.numFds,
		"num-ints": h.numInts,
		"get-int":  h.getInt,
	}

	builder := rt.NewHostModuleBuilder(h.options.ModuleName)
	for _, sig := range signatures {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(handlers[sig.name], sig.params, sig.results).
			Export(sig.name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Instantiation(h.options.ModuleName, err)
	}
	h.log.Debug("host module instantiated", zap.String("module", h.options.ModuleName))
	return mod, nil
}

// Guest returns a core wasm module that imports every host function from
// moduleName and exports it under the same name. Host modules cannot be
// called directly through wazero, so an embedder instantiates this guest
// and calls its exports to drive the host the way a real guest does.
func Guest(moduleName string) []byte {
	b := wasm.NewGuestBuilder(moduleName)
	for _, sig := range signatures {
		b.AddFunc(sig.name, sig.params, sig.results)
	}
	return b.Build()
}

func (h *Host) clone(_ context.Context, _ api.Module, stack []uint64) {
	id := resource.ID(api.DecodeU32(stack[0]))
	newID, err := h.table.Clone(id)
	if err != nil {
		h.log.Debug("clone failed", zap.Uint32("id", uint32(id)), zap.Error(err))
		stack[0] = 0
		return
	}
	stack[0] = api.EncodeU32(uint32(newID))
}

func (h *Host) drop(_ context.Context, _ api.Module, stack []uint64) {
	id := resource.ID(api.DecodeU32(stack[0]))
	err := h.table.Remove(id)
	stack[0] = api.EncodeI32(dropStatus(err))
	if err != nil {
		h.log.Debug("drop failed", zap.Uint32("id", uint32(id)), zap.Error(err))
	}
}

func dropStatus(err error) int32 {
	if err == nil {
		return StatusOK
	}
	switch {
	case errors.HasKind(err, errors.KindNotFound), errors.HasKind(err, errors.KindClosed):
		return StatusNotFound
	case errors.HasKind(err, errors.KindBorrowed):
		return StatusBorrowed
	}
	return StatusFailed
}

func (h *Host) numFds(_ context.Context, _ api.Module, stack []uint64) {
	id := resource.ID(api.DecodeU32(stack[0]))
	n := int32(-1)
	h.withRaw(id, func(nh *handle.NativeHandle) {
		n = nh.Raw().NumFds
	})
	stack[0] = api.EncodeI32(n)
}

func (h *Host) numInts(_ context.Context, _ api.Module, stack []uint64) {
	id := resource.ID(api.DecodeU32(stack[0]))
	n := int32(-1)
	h.withRaw(id, func(nh *handle.NativeHandle) {
		n = nh.Raw().NumInts
	})
	stack[0] = api.EncodeI32(n)
}

func (h *Host) getInt(_ context.Context, _ api.Module, stack []uint64) {
	id := resource.ID(api.DecodeU32(stack[0]))
	index := api.DecodeI32(stack[1])
	v := int64(-1)
	h.withRaw(id, func(nh *handle.NativeHandle) {
		ints := nh.Raw().Ints()
		if index < 0 || int(index) >= len(ints) {
			h.log.Debug("get-int out of bounds", zap.Uint32("id", uint32(id)),
				zap.Error(errors.OutOfBounds(errors.PhaseHost, int(index), len(ints))))
			return
		}
		v = int64(ints[index])
	})
	stack[0] = api.EncodeI64(v)
}

// withRaw pins id for the duration of fn.
func (h *Host) withRaw(id resource.ID, fn func(*handle.NativeHandle)) {
	nh, err := h.table.Borrow(id)
	if err != nil {
		h.log.Debug("borrow failed", zap.Uint32("id", uint32(id)), zap.Error(err))
		return
	}
	defer func() {
		if err := h.table.ReturnBorrow(id); err != nil {
			h.log.Error("return borrow failed", zap.Uint32("id", uint32(id)), zap.Error(err))
		}
	}()
	if nh.Raw() == nil {
		return
	}
	fn(nh)
}
