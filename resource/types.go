package resource

import (
	"go.uber.org/zap"

	"github.com/wippyai/nativewindow/handle"
)

// ID is an opaque reference to a native handle in a table.
// ID 0 is reserved and always invalid.
type ID uint32

// Event types for handle lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventTaken
	EventBorrowed
	EventBorrowReturned
)

func (e EventType) String() string {
	switch e {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventTaken:
		return "taken"
	case EventBorrowed:
		return "borrowed"
	case EventBorrowReturned:
		return "borrow-returned"
	}
	return "unknown"
}

// Event represents a handle lifecycle event.
type Event struct {
	Handle *handle.NativeHandle
	ID     ID
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
// Observers are called with no table lock held.
type Observer interface {
	OnResourceEvent(Event)
}

// Options configures table behavior.
type Options struct {
	Logger *zap.Logger
	// MaxEntries caps live entries; 0 means no limit.
	MaxEntries int
}

// DefaultOptions returns default table configuration.
func DefaultOptions() Options {
	return Options{}
}
