package lookup

import "reflect"

// Provider is the single-value registry contract. Every object is indexed
// under each type key in its closure, and a key resolves to the object most
// recently added under it ("last wins").
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for concurrent use: the render thread and the
// event thread routinely share one owner's registry. Every slice handed to a
// caller is a fresh copy, so callers may keep or mutate it freely.
type Provider interface {
	// Add indexes obj under every key of its closure, overwriting whatever
	// each key held. Fails with ErrMissingObject or ErrInvalidObject.
	Add(obj any) error

	// Remove drops every key currently resolving to obj (by ==) and reports
	// whether anything was dropped. Removing an unknown object returns false.
	Remove(obj any) (bool, error)

	// Lookup returns the object currently indexed under t, or nil.
	// Fails with ErrMissingType for a nil t.
	Lookup(t reflect.Type) (any, error)

	// LookupAll returns the distinct registered objects.
	LookupAll() []any

	// AppendAll appends the distinct registered objects to dst and returns
	// the extended slice. Multi-value providers treat this as FillAllOf with
	// the root type and therefore reset dst first.
	AppendAll(dst []any) []any

	// Len returns the number of distinct registered objects.
	Len() int

	// Clear empties the registry.
	Clear()
}

// MultiProvider is the multi-value registry contract. On top of Provider it
// tracks, for every key, the complete set of registered objects whose
// closure includes that key.
type MultiProvider interface {
	Provider

	// AddAll adds every object of objs. All elements are validated before
	// anything is written, so a failing call changes nothing.
	AddAll(objs []any) error

	// RemoveAll removes every object of objs and reports whether anything
	// was removed.
	RemoveAll(objs []any) (bool, error)

	// LookupAllOf returns every registered object indexed under t. The result
	// is never nil; an absent key yields an empty slice.
	LookupAllOf(t reflect.Type) ([]any, error)

	// FillAllOf truncates dst, fills it with every object indexed under t and
	// returns it.
	FillAllOf(t reflect.Type, dst []any) ([]any, error)
}
