// Package nativewindow provides Go ownership management for native handles:
// bundles of file descriptors and plain integers passed around as one unit,
// as used by graphics and windowing IPC.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	nativewindow/        Root package (documentation only)
//	├── native/          The native handle itself: create, clone, close, delete
//	├── handle/          NativeHandle, the owning wrapper with exactly-once release
//	├── resource/        Id table of owned handles with borrow tracking
//	├── host/            wazero host module serving a table to WASM guests
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Wrap a raw handle and release it when done:
//
//	raw := native.Create(1, 0)
//	raw.Fds()[0] = int32(fd)
//
//	h := handle.FromRaw(raw) // raw must not be used again
//	defer h.Close()
//
// Duplicate it, descriptors included:
//
//	dup := h.Clone() // panics if the duplicate cannot be made
//	defer dup.Close()
//
//	other, ok := handle.CloneFromRaw(someoneElsesRaw)
//	if !ok {
//	    return errDuplicate
//	}
//
// Hand ownership back to native code:
//
//	raw = h.IntoRaw() // h will no longer close or delete raw
//
// # Failure Policy
//
// A failed CloneFromRaw is an ordinary result. A failed Clone of a live
// handle, or a non-zero status from close or delete during release, means
// the handle was already broken and panics with an *errors.Error.
//
// # Thread Safety
//
// NativeHandle may move between goroutines and be read concurrently; Close
// and IntoRaw belong to its single owner. resource.Table is safe for
// concurrent use.
package nativewindow
