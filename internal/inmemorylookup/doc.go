// Package inmemorylookup provides thread-safe, in-memory implementations of
// lookup.Provider and lookup.MultiProvider, and the factory functions that
// create them or take independent snapshot copies.
//
// # Indices
//
// Both flavors keep a single-value index mapping every type key to the
// object most recently added under it. The multi-value flavor adds a second
// index whose buckets are a tagged union:
//
//   - empty: the key is absent from the map; empty buckets are never stored;
//   - one:   the sole member is held inline, no slice is allocated;
//   - many:  an insertion-ordered slice of members.
//
// Adding promotes empty -> one -> many; removing demotes many -> one and
// deletes a bucket as soon as it would become empty.
//
// # Concurrency Model
//
// Each registry has one sync.RWMutex. Mutations and any read spanning both
// indices take the write or read lock for their whole duration; Lookup only
// needs the read lock for a single map fetch. Type closures are computed
// before the lock is taken. No callback ever runs under the lock.
//
// # Identity
//
// Objects are compared with ==. Pointers therefore compare by address and
// plain values (strings, small structs) by value.
package inmemorylookup
