package resource

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/nativewindow/errors"
	"github.com/wippyai/nativewindow/handle"
)

// Table owns native handles and hands out small integer ids for them.
// Thread-safe.
type Table struct {
	backend   *LocalBackend
	log       *zap.Logger
	observers []Observer
	options   Options
	obsMu     sync.RWMutex
}

// NewTable creates a new table with the given options.
func NewTable(opts Options) *Table {
	log := opts.Logger
	if log == nil {
		log = handle.Logger()
	}
	return &Table{
		backend: NewLocalBackend(opts.MaxEntries),
		log:     log.Named("resource"),
		options: opts,
	}
}

// NewTableWithDefaults creates a new table with default options.
func NewTableWithDefaults() *Table {
	return NewTable(DefaultOptions())
}

// Insert takes ownership of h and returns its id. On error the caller
// keeps ownership.
func (t *Table) Insert(h *handle.NativeHandle) (ID, error) {
	id, err := t.backend.Create(h)
	if err != nil {
		return 0, err
	}

	t.notify(Event{Type: EventCreated, ID: id, Handle: h})
	return id, nil
}

// Get returns the handle stored under id without transferring ownership.
// The handle may be released by a concurrent Remove; use Borrow to pin it.
func (t *Table) Get(id ID) (*handle.NativeHandle, bool) {
	return t.backend.Get(id)
}

// Borrow pins the entry for id until ReturnBorrow, and returns its handle.
// A pinned entry cannot be removed or taken.
func (t *Table) Borrow(id ID) (*handle.NativeHandle, error) {
	h, err := t.backend.Borrow(id)
	if err != nil {
		return nil, err
	}
	t.notify(Event{Type: EventBorrowed, ID: id, Handle: h})
	return h, nil
}

// ReturnBorrow releases one pin taken by Borrow.
func (t *Table) ReturnBorrow(id ID) error {
	if err := t.backend.ReturnBorrow(id); err != nil {
		return err
	}
	t.notify(Event{Type: EventBorrowReturned, ID: id})
	return nil
}

// Take removes the entry for id and transfers ownership of its handle to the
// caller, who becomes responsible for closing it.
func (t *Table) Take(id ID) (*handle.NativeHandle, error) {
	h, err := t.backend.Drop(id)
	if err != nil {
		return nil, err
	}
	t.notify(Event{Type: EventTaken, ID: id, Handle: h})
	return h, nil
}

// Remove removes the entry for id and releases its handle.
func (t *Table) Remove(id ID) error {
	h, err := t.backend.Drop(id)
	if err != nil {
		return err
	}
	if err := h.Close(); err != nil {
		t.log.Warn("removed handle was already released", zap.Uint32("id", uint32(id)), zap.Error(err))
	}
	t.notify(Event{Type: EventDropped, ID: id, Handle: h})
	return nil
}

// Clone duplicates the handle stored under id and stores the duplicate
// under a new id. The duplicate is made with the Library and logger the
// stored handle was created with. Duplication failure is returned as an
// error.
func (t *Table) Clone(id ID) (ID, error) {
	src, err := t.backend.Borrow(id)
	if err != nil {
		return 0, err
	}
	var dup *handle.NativeHandle
	ok := false
	if src.Raw() != nil {
		dup, ok = src.TryClone()
	}
	if rerr := t.backend.ReturnBorrow(id); rerr != nil {
		t.log.Error("returning clone borrow failed", zap.Uint32("id", uint32(id)), zap.Error(rerr))
	}
	if !ok {
		return 0, errors.New(errors.PhaseTable, errors.KindCloneFailed).
			Op("native_handle_clone").
			Value(id).
			Detail("cannot duplicate handle %d", id).
			Build()
	}

	newID, err := t.Insert(dup)
	if err != nil {
		dup.Close()
		return 0, err
	}
	t.log.Debug("cloned handle", zap.Uint32("id", uint32(id)), zap.Uint32("clone", uint32(newID)))
	return newID, nil
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of stored handles.
func (t *Table) Len() int {
	return t.backend.Len()
}

// Each iterates over all stored handles until fn returns false.
// fn must not call back into the table.
func (t *Table) Each(fn func(ID, *handle.NativeHandle) bool) {
	t.backend.Each(fn)
}

// Clear removes and releases every handle that has no outstanding borrows.
func (t *Table) Clear() {
	// Collect ids first to avoid holding the lock during Remove
	var ids []ID
	t.backend.Each(func(id ID, _ *handle.NativeHandle) bool {
		ids = append(ids, id)
		return true
	})
	for _, id := range ids {
		if err := t.Remove(id); err != nil {
			t.log.Debug("clear skipped handle", zap.Uint32("id", uint32(id)), zap.Error(err))
		}
	}
}

// Close releases every stored handle, borrowed or not, and stops accepting
// operations. A handle that was already released elsewhere is logged and
// skipped; Close always returns nil.
func (t *Table) Close() error {
	for _, h := range t.backend.Close() {
		if err := h.Close(); err != nil {
			t.log.Warn("stored handle was already released", zap.Stringer("handle", h), zap.Error(err))
		}
	}
	return nil
}

// notify calls observers with no lock held, so they may Subscribe or
// Unsubscribe, including themselves.
func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	observers := make([]Observer, len(t.observers))
	copy(observers, t.observers)
	t.obsMu.RUnlock()

	for _, o := range observers {
		o.OnResourceEvent(e)
	}
}
