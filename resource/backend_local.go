package resource

import (
	"sync"

	"github.com/wippyai/nativewindow/errors"
	"github.com/wippyai/nativewindow/handle"
)

// LocalBackend is an in-memory slot store with borrow tracking.
// Freed slots are reused, most recently freed first.
type LocalBackend struct {
	entries  []entry
	freeList []ID
	mu       sync.RWMutex
	closed   bool
	limit    int
}

type entry struct {
	value       *handle.NativeHandle
	borrowCount uint32
	valid       bool
}

// NewLocalBackend creates a new in-memory backend holding at most limit
// entries, or any number if limit is 0.
func NewLocalBackend(limit int) *LocalBackend {
	return &LocalBackend{
		entries:  make([]entry, 0, 64),
		freeList: make([]ID, 0, 16),
		limit:    limit,
	}
}

// Create stores a handle and returns its id.
func (b *LocalBackend) Create(value *handle.NativeHandle) (ID, error) {
	if value == nil {
		return 0, errors.InvalidInput(errors.PhaseTable, "nil handle")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, errors.Closed(errors.PhaseTable, "resource backend")
	}
	if b.limit > 0 && len(b.entries)-len(b.freeList) >= b.limit {
		return 0, errors.Exhausted(errors.PhaseTable, b.limit)
	}

	e := entry{
		value: value,
		valid: true,
	}

	if len(b.freeList) > 0 {
		id := b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		b.entries[id-1] = e
		return id, nil
	}

	b.entries = append(b.entries, e)
	return ID(len(b.entries)), nil
}

// lookup returns the live entry for id. Caller holds b.mu.
func (b *LocalBackend) lookup(id ID) (*entry, error) {
	if b.closed {
		return nil, errors.Closed(errors.PhaseTable, "resource backend")
	}
	if id == 0 || int(id-1) >= len(b.entries) {
		return nil, errors.NotFound(errors.PhaseTable, "handle", id)
	}
	e := &b.entries[id-1]
	if !e.valid {
		return nil, errors.NotFound(errors.PhaseTable, "handle", id)
	}
	return e, nil
}

// Get retrieves a handle by id.
func (b *LocalBackend) Get(id ID) (*handle.NativeHandle, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e, err := b.lookup(id)
	if err != nil {
		return nil, false
	}
	return e.value, true
}

// Drop removes an entry and returns its handle. It fails if the id is
// unknown or the entry has outstanding borrows. The handle is not released.
func (b *LocalBackend) Drop(id ID) (*handle.NativeHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, err := b.lookup(id)
	if err != nil {
		return nil, err
	}
	if e.borrowCount > 0 {
		return nil, errors.Borrowed(errors.PhaseTable, id, e.borrowCount)
	}

	value := e.value
	*e = entry{}
	b.freeList = append(b.freeList, id)
	return value, nil
}

// Borrow increments the borrow count for id and returns its handle.
func (b *LocalBackend) Borrow(id ID) (*handle.NativeHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, err := b.lookup(id)
	if err != nil {
		return nil, err
	}
	e.borrowCount++
	return e.value, nil
}

// ReturnBorrow decrements the borrow count for id.
func (b *LocalBackend) ReturnBorrow(id ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, err := b.lookup(id)
	if err != nil {
		return err
	}
	if e.borrowCount == 0 {
		return errors.New(errors.PhaseTable, errors.KindInvalidInput).
			Value(id).
			Detail("handle %d has no outstanding borrows", id).
			Build()
	}
	e.borrowCount--
	return nil
}

// Len returns the number of live entries.
func (b *LocalBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries) - len(b.freeList)
}

// Each iterates over all live entries until fn returns false.
// fn must not call back into the backend.
func (b *LocalBackend) Each(fn func(ID, *handle.NativeHandle) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i, e := range b.entries {
		if e.valid {
			if !fn(ID(i+1), e.value) {
				break
			}
		}
	}
}

// Close stops accepting operations and returns every handle still stored,
// regardless of borrows. Closing twice returns nothing the second time.
func (b *LocalBackend) Close() []*handle.NativeHandle {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	var values []*handle.NativeHandle
	for _, e := range b.entries {
		if e.valid {
			values = append(values, e.value)
		}
	}
	b.entries = nil
	b.freeList = nil
	return values
}
