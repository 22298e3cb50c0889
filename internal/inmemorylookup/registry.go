package inmemorylookup

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/specialistvlad/lookupgo/internal/lookup"
	"github.com/specialistvlad/lookupgo/internal/typeclosure"
)

var _ lookup.Provider = (*Registry)(nil)

// Registry is the single-value, last-wins implementation of lookup.Provider.
// Each key holds exactly one object, so removing an object never reveals an
// object it had overwritten.
type Registry struct {
	mu     sync.RWMutex
	walker *typeclosure.Walker
	logger *slog.Logger
	values valueIndex
}

// Add indexes obj under every key of its closure.
func (r *Registry) Add(obj any) error {
	if err := lookup.ValidateObject(obj); err != nil {
		return err
	}
	keys := r.walker.Closure(obj)
	r.logger.Debug("Registering object.", "type", reflect.TypeOf(obj).String(), "keys", len(keys))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.values.put(keys, entry{value: obj, seq: r.values.next()})
	return nil
}

// Remove deletes every key currently resolving to obj.
func (r *Registry) Remove(obj any) (bool, error) {
	if err := lookup.ValidateRemoval(obj); err != nil {
		return false, err
	}

	removed := r.drop(obj)
	if removed {
		r.logger.Debug("Removed object.", "type", reflect.TypeOf(obj).String())
	}
	return removed, nil
}

func (r *Registry) drop(obj any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values.drop(obj)
}

// Lookup returns the object most recently added under t, or nil.
func (r *Registry) Lookup(t reflect.Type) (any, error) {
	if err := lookup.ValidateType(t); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values.get(t), nil
}

// LookupAll returns the distinct registered objects, oldest add first.
func (r *Registry) LookupAll() []any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := r.values.members()
	out := make([]any, 0, len(members))
	for _, m := range members {
		out = append(out, m.value)
	}
	return out
}

// AppendAll appends the distinct registered objects to dst without clearing it.
func (r *Registry) AppendAll(dst []any) []any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values.appendDistinct(dst)
}

// Len returns the number of distinct registered objects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values.members())
}

// Clear removes every object.
func (r *Registry) Clear() {
	r.logger.Debug("Clearing registry.")
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values.reset()
}

// Inspect returns a snapshot of the index, one row per key, sorted by key name.
func (r *Registry) Inspect() []BucketInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]BucketInfo, 0, len(r.values.entries))
	for k, e := range r.values.entries {
		rows = append(rows, BucketInfo{Key: k, Form: formOne.String(), Count: 1, Current: e.value})
	}
	sortBucketInfo(rows)
	return rows
}
