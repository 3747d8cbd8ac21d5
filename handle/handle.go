package handle

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/nativewindow/errors"
	"github.com/wippyai/nativewindow/native"
)

const (
	opClone  = "native_handle_clone"
	opClose  = "native_handle_close"
	opDelete = "native_handle_delete"
)

const (
	stateArmed uint32 = iota
	stateReleased
)

// ErrReleased is returned by Close on a handle that was already closed or
// handed out with IntoRaw.
var ErrReleased = &errors.Error{
	Phase:  errors.PhaseRelease,
	Kind:   errors.KindReleased,
	Detail: "native handle already released",
}

// NativeHandle owns a *native.Handle and its file descriptors, and closes
// and deletes it when released.
type NativeHandle struct {
	raw     *native.Handle
	lib     Library
	log     *zap.Logger
	cleanup runtime.Cleanup
	state   atomic.Uint32
}

// owned is the state the runtime cleanup needs; it must not reference the
// NativeHandle itself or the cleanup would never run.
type owned struct {
	raw *native.Handle
	lib Library
	log *zap.Logger
}

// FromRaw wraps raw, taking ownership of it.
//
// raw must be a valid, live handle and must not be used anywhere else after
// this call. Neither is checked.
func FromRaw(raw *native.Handle, opts ...Option) *NativeHandle {
	return adopt(raw, newConfig(opts))
}

// CloneFromRaw returns a NativeHandle wrapping a duplicate of raw.
//
// Unlike FromRaw this does not take ownership of raw, so the caller remains
// responsible for closing and deleting it. raw must be valid. The second
// result is false if the duplicate could not be made.
func CloneFromRaw(raw *native.Handle, opts ...Option) (*NativeHandle, bool) {
	return cloneFromRaw(raw, newConfig(opts))
}

func cloneFromRaw(raw *native.Handle, cfg config) (*NativeHandle, bool) {
	cloned := cfg.lib.Clone(raw)
	if cloned == nil {
		cfg.log.Debug("native handle clone failed", zap.String("op", opClone))
		return nil, false
	}
	return adopt(cloned, cfg), true
}

func adopt(raw *native.Handle, cfg config) *NativeHandle {
	h := &NativeHandle{
		raw: raw,
		lib: cfg.lib,
		log: cfg.log,
	}
	h.cleanup = runtime.AddCleanup(h, releaseUnreachable, owned{raw: raw, lib: cfg.lib, log: cfg.log})
	return h
}

// Raw returns the wrapped handle without transferring ownership.
//
// The result is only valid while h is armed and reachable, so it shouldn't
// be stored, and it mustn't be closed or deleted. Callers that hold only the
// raw pointer across a blocking call should runtime.KeepAlive(h) after it.
// Raw returns nil once h has been released.
func (h *NativeHandle) Raw() *native.Handle {
	return h.raw
}

// IntoRaw returns the wrapped handle and disarms h: it will never close or
// delete the handle. The caller takes ownership and becomes responsible for
// closing and deleting it. Returns nil if h was already released.
func (h *NativeHandle) IntoRaw() *native.Handle {
	if !h.state.CompareAndSwap(stateArmed, stateReleased) {
		return nil
	}
	h.cleanup.Stop()
	raw := h.raw
	h.raw = nil
	return raw
}

// Clone returns a new NativeHandle wrapping a duplicate of h's handle.
//
// Panics if the duplicate could not be made. Use TryClone to handle that
// case instead.
func (h *NativeHandle) Clone() *NativeHandle {
	c, ok := h.TryClone()
	if !ok {
		err := errors.CloneFailed(errors.PhaseClone, opClone)
		h.log.Error("cannot clone live native handle", zap.Error(err))
		panic(err)
	}
	return c
}

// TryClone is like Clone but reports a failed duplicate as false instead of
// panicking. The duplicate uses the same Library and logger as h.
//
// Panics with ErrReleased if h was already released.
func (h *NativeHandle) TryClone() (*NativeHandle, bool) {
	raw := h.raw
	if raw == nil {
		panic(ErrReleased)
	}

	c, ok := cloneFromRaw(raw, config{lib: h.lib, log: h.log})
	runtime.KeepAlive(h)
	return c, ok
}

// Close closes the handle's descriptors and deletes it. It returns
// ErrReleased, and does nothing, if h was already closed or disarmed.
//
// Panics if either native call reports failure.
func (h *NativeHandle) Close() error {
	if !h.state.CompareAndSwap(stateArmed, stateReleased) {
		return ErrReleased
	}
	h.cleanup.Stop()
	raw := h.raw
	h.raw = nil
	release(owned{raw: raw, lib: h.lib, log: h.log})
	return nil
}

// String implements fmt.Stringer.
func (h *NativeHandle) String() string {
	raw := h.raw
	if raw == nil {
		return "NativeHandle(released)"
	}
	return fmt.Sprintf("NativeHandle(%p)", raw)
}

func releaseUnreachable(o owned) {
	o.log.Debug("releasing unreachable native handle", zap.String("handle", fmt.Sprintf("%p", o.raw)))
	release(o)
}

func release(o owned) {
	if status := o.lib.Close(o.raw); status != 0 {
		err := errors.ReleaseFailed(errors.KindCloseFailed, opClose, status)
		o.log.Error("native handle release failed", zap.Int("status", status), zap.Error(err))
		panic(err)
	}
	if status := o.lib.Delete(o.raw); status != 0 {
		err := errors.ReleaseFailed(errors.KindDeleteFailed, opDelete, status)
		o.log.Error("native handle release failed", zap.Int("status", status), zap.Error(err))
		panic(err)
	}
}
