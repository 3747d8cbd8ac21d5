// Package handle provides NativeHandle, an owning wrapper around a
// *native.Handle and its file descriptors.
//
// # Ownership
//
// A NativeHandle owns exactly one native handle. Releasing it closes the
// descriptors and then deletes the handle, exactly once:
//
//	h := handle.FromRaw(raw) // raw must not be used again
//	defer h.Close()
//
// Ownership can be handed back out with IntoRaw, which disarms the wrapper:
//
//	raw := h.IntoRaw() // caller now closes and deletes raw
//
// A wrapper that becomes unreachable while still armed is released by a
// runtime cleanup, so a forgotten Close does not leak descriptors. Close is
// still the way to release deterministically.
//
// # Cloning
//
// CloneFromRaw duplicates a handle the caller keeps owning and reports
// failure as a false result. Clone duplicates the wrapper's own handle and
// panics on failure, since a live handle is expected to always be
// duplicable.
//
// # Fatal failures
//
// A non-zero status from the close or delete call during release, and a nil
// result from Clone, panic with an *errors.Error. These indicate a broken
// handle or a double release somewhere else in the process, not a condition
// the caller can recover from.
//
// # Thread Safety
//
// A NativeHandle holds only integers and file descriptors, none of which
// are tied to a goroutine or OS thread. It may be handed between goroutines
// freely, and Raw, Clone and String may be called concurrently. Close and
// IntoRaw must be called by the single logical owner, once.
package handle
