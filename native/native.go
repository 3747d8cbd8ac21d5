package native

import (
	"golang.org/x/sys/unix"
)

const (
	// HeaderSize is the value of Version for a live handle: the size in bytes
	// of the version, fd count and int count header words.
	HeaderSize = 12

	MaxFds  = 1024
	MaxInts = 1024
)

// Handle is a native handle. Data holds NumFds file descriptors followed by
// NumInts integers. Negative fd slots are unset.
type Handle struct {
	Data    []int32
	Version int32
	NumFds  int32
	NumInts int32
}

// Create allocates a handle with room for numFds descriptors and numInts
// integers. Fd slots start unset. Returns nil if either count is out of range.
func Create(numFds, numInts int) *Handle {
	if !validCounts(numFds, numInts) {
		return nil
	}
	data := make([]int32, numFds+numInts)
	for i := 0; i < numFds; i++ {
		data[i] = -1
	}
	return &Handle{
		Version: HeaderSize,
		NumFds:  int32(numFds),
		NumInts: int32(numInts),
		Data:    data,
	}
}

// Init builds a handle over caller-provided storage, which must hold exactly
// numFds+numInts values. Returns nil on a size mismatch.
func Init(numFds, numInts int, data []int32) *Handle {
	if !validCounts(numFds, numInts) || len(data) != numFds+numInts {
		return nil
	}
	return &Handle{
		Version: HeaderSize,
		NumFds:  int32(numFds),
		NumInts: int32(numInts),
		Data:    data,
	}
}

func validCounts(numFds, numInts int) bool {
	return numFds >= 0 && numInts >= 0 && numFds <= MaxFds && numInts <= MaxInts
}

// Live reports whether h is non-nil and has not been deleted.
func (h *Handle) Live() bool {
	return h != nil && h.Version == HeaderSize
}

// Fds returns the descriptor slots. The slice aliases h.Data.
func (h *Handle) Fds() []int32 {
	return h.Data[:h.NumFds]
}

// Ints returns the integer slots. The slice aliases h.Data.
func (h *Handle) Ints() []int32 {
	return h.Data[h.NumFds : h.NumFds+h.NumInts]
}

// Clone returns a new handle holding duplicates of h's descriptors (opened
// close-on-exec) and a copy of its integers. h is not modified. Returns nil if
// h is not live or any descriptor could not be duplicated; descriptors
// duplicated before the failure are closed again.
func Clone(h *Handle) *Handle {
	if !h.Live() {
		return nil
	}

	c := Create(int(h.NumFds), int(h.NumInts))
	if c == nil {
		return nil
	}

	fds := c.Fds()
	for i, fd := range h.Fds() {
		if fd < 0 {
			continue
		}
		dup, err := unix.FcntlInt(uintptr(fd), unix.F_DUPFD_CLOEXEC, 0)
		if err != nil {
			Close(c)
			Delete(c)
			return nil
		}
		fds[i] = int32(dup)
	}
	copy(c.Ints(), h.Ints())
	return c
}

// Close closes every set descriptor of h and marks its slot unset. It keeps
// going after a failure and returns 0, or the negated errno of the last
// failure. Returns -EINVAL if h is not live.
func Close(h *Handle) int {
	if !h.Live() {
		return -int(unix.EINVAL)
	}

	status := 0
	fds := h.Fds()
	for i, fd := range fds {
		if fd < 0 {
			continue
		}
		if err := unix.Close(int(fd)); err != nil {
			status = negErrno(err)
		}
		fds[i] = -1
	}
	return status
}

// Delete marks h dead and drops its storage. It does not close descriptors.
// Returns -EINVAL if h is nil or already deleted.
func Delete(h *Handle) int {
	if !h.Live() {
		return -int(unix.EINVAL)
	}
	h.Version = 0
	h.NumFds = 0
	h.NumInts = 0
	h.Data = nil
	return 0
}

func negErrno(err error) int {
	if errno, ok := err.(unix.Errno); ok {
		return -int(errno)
	}
	return -int(unix.EIO)
}
