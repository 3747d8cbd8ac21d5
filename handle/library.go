package handle

import (
	"go.uber.org/zap"

	"github.com/wippyai/nativewindow/native"
)

// Library is the set of native calls a NativeHandle is built on.
//
// Clone returns an independent duplicate of h, descriptors included, or nil
// on failure, and must leave h untouched. Close closes h's descriptors and
// Delete frees h; both return 0 on success.
type Library interface {
	Clone(h *native.Handle) *native.Handle
	Close(h *native.Handle) int
	Delete(h *native.Handle) int
}

type nativeLibrary struct{}

func (nativeLibrary) Clone(h *native.Handle) *native.Handle { return native.Clone(h) }
func (nativeLibrary) Close(h *native.Handle) int            { return native.Close(h) }
func (nativeLibrary) Delete(h *native.Handle) int           { return native.Delete(h) }

// DefaultLibrary returns the Library backed by the native package.
func DefaultLibrary() Library {
	return nativeLibrary{}
}

// Option configures how a NativeHandle is constructed.
type Option func(*config)

type config struct {
	lib Library
	log *zap.Logger
}

// WithLibrary sets the Library used to clone and release the handle.
func WithLibrary(lib Library) Option {
	return func(c *config) {
		c.lib = lib
	}
}

// WithLogger sets the logger used for the handle's diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

func newConfig(opts []Option) config {
	c := config{lib: DefaultLibrary()}
	for _, opt := range opts {
		opt(&c)
	}
	if c.log == nil {
		c.log = Logger()
	}
	return c
}
