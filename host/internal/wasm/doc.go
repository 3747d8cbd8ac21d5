// Package wasm builds small WebAssembly binaries for the host package.
//
// # Encoding
//
// LEB128 encoding for WebAssembly integers:
//
//	encoded := wasm.EncodeULEB128(300)
//
// # Guest Modules
//
// A guest module imports functions from a host module and re-exports each
// one under the same name, so embedders can call host functions the way a
// real guest would:
//
//	b := wasm.NewGuestBuilder("env")
//	b.AddFunc("num-fds", []api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32})
//	bin := b.Build()
//
// This package is internal to host and should not be used directly.
package wasm
