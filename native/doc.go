// Package native implements the native handle: a bundle of file descriptors
// and plain integers transported as one unit, laid out like libcutils'
// native_handle_t.
//
// A Handle is manipulated only through the package functions, which follow
// the C library's status conventions: constructors return nil on failure, and
// Close and Delete return 0 or a negated errno.
//
//	h := native.Create(2, 1)
//	h.Fds()[0], h.Fds()[1] = int32(r), int32(w)
//	h.Ints()[0] = usage
//
//	dup := native.Clone(h) // nil if any fd could not be duplicated
//
//	native.Close(h)  // closes the fds
//	native.Delete(h) // marks the handle dead
//
// Handles carry no thread affinity. The package does no locking: callers
// must not Close or Delete a handle concurrently with any other use of it.
//
// Most code should not own a *Handle directly but wrap it in a
// handle.NativeHandle, which guarantees the Close+Delete pair runs exactly
// once.
package native
