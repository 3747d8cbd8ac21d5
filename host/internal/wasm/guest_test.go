package wasm

import (
	"bytes"
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

func TestGuestBuilder_EmptyBuild(t *testing.T) {
	if got := NewGuestBuilder("env").Build(); got != nil {
		t.Errorf("expected nil for empty builder, got %x", got)
	}
}

func TestGuestBuilder_Header(t *testing.T) {
	b := NewGuestBuilder("env")
	b.AddFunc("f", nil, nil)
	bin := b.Build()

	magic := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	if !bytes.HasPrefix(bin, magic) {
		t.Fatalf("missing wasm header: %x", bin[:8])
	}
	if bin[8] != sectionType {
		t.Errorf("first section = 0x%02x, want type section", bin[8])
	}
}

func TestGuestBuilder_ForwardsToHost(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	i32 := api.ValueTypeI32
	i64 := api.ValueTypeI64

	var notified uint32
	_, err := rt.NewHostModuleBuilder("env").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			a := api.DecodeI32(stack[0])
			b := api.DecodeI32(stack[1])
			stack[0] = uint64(int64(a) * int64(b))
		}), []api.ValueType{i32, i32}, []api.ValueType{i64}).
		Export("mul").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			notified = api.DecodeU32(stack[0])
		}), []api.ValueType{i32}, nil).
		Export("notify").
		Instantiate(ctx)
	if err != nil {
		t.Fatalf("failed to instantiate host: %v", err)
	}

	b := NewGuestBuilder("env")
	b.AddFunc("mul", []api.ValueType{i32, i32}, []api.ValueType{i64})
	b.AddFunc("notify", []api.ValueType{i32}, nil)

	compiled, err := rt.CompileModule(ctx, b.Build())
	if err != nil {
		t.Fatalf("failed to compile guest: %v", err)
	}
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName("guest"))
	if err != nil {
		t.Fatalf("failed to instantiate guest: %v", err)
	}

	results, err := mod.ExportedFunction("mul").Call(ctx, api.EncodeI32(-6), api.EncodeI32(7))
	if err != nil {
		t.Fatalf("mul: %v", err)
	}
	if got := int64(results[0]); got != -42 {
		t.Errorf("mul = %d, want -42", got)
	}

	if _, err := mod.ExportedFunction("notify").Call(ctx, 9); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if notified != 9 {
		t.Errorf("notified = %d, want 9", notified)
	}
}

func TestGuestBuilder_MissingHostFunc(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	b := NewGuestBuilder("absent")
	b.AddFunc("f", nil, nil)
	if _, err := rt.Instantiate(ctx, b.Build()); err == nil {
		t.Error("expected instantiation to fail without the host module")
	}
}
