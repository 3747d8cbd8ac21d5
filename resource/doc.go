// Package resource maps small integer ids to owned native handles.
//
// Ids let a native handle be named across a boundary that cannot carry a Go
// pointer, such as a WebAssembly guest. The table owns every handle stored
// in it and releases them on Remove, Clear and Close.
//
// # Handle Table
//
//	table := resource.NewTableWithDefaults()
//	defer table.Close()
//
//	// Insert transfers ownership to the table
//	id, err := table.Insert(handle.FromRaw(raw))
//
//	// Remove releases the handle (close + delete)
//	err = table.Remove(id)
//
//	// Take transfers ownership back out without releasing
//	h, err := table.Take(id)
//
// # Borrows
//
// Get returns a handle without any guarantee that it stays alive. To use a
// handle while other goroutines may remove it, pin it:
//
//	h, err := table.Borrow(id)
//	if err != nil {
//	    return err
//	}
//	defer table.ReturnBorrow(id)
//
// Remove and Take fail with KindBorrowed while pins are outstanding. Close
// releases everything regardless.
//
// # Cloning
//
// Clone duplicates a stored handle, descriptors included, under a new id.
// Unlike handle.NativeHandle.Clone, a failed duplicate is returned as an
// error rather than a panic.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(obs) // obs.OnResourceEvent(resource.Event)
package resource
