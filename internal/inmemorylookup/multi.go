package inmemorylookup

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/pkg/errors"

	"github.com/specialistvlad/lookupgo/internal/lookup"
	"github.com/specialistvlad/lookupgo/internal/typeclosure"
)

var _ lookup.MultiProvider = (*MultiRegistry)(nil)

// MultiRegistry is the multi-value implementation of lookup.MultiProvider.
// Its single-value index behaves like Registry's, except that removing the
// current holder of a key falls back to the most recently added remaining
// member of that key's bucket.
type MultiRegistry struct {
	mu      sync.RWMutex
	walker  *typeclosure.Walker
	logger  *slog.Logger
	values  valueIndex
	buckets map[reflect.Type]bucket
}

// Add indexes obj in both indices.
func (r *MultiRegistry) Add(obj any) error {
	if err := lookup.ValidateObject(obj); err != nil {
		return err
	}
	keys := r.walker.Closure(obj)
	r.logger.Debug("Registering object.", "type", reflect.TypeOf(obj).String(), "keys", len(keys))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(obj, keys)
	return nil
}

// AddAll validates every element of objs, then adds them in order.
func (r *MultiRegistry) AddAll(objs []any) error {
	if objs == nil {
		return lookup.ErrMissingCollection
	}
	closures := make([][]reflect.Type, len(objs))
	for i, obj := range objs {
		if err := lookup.ValidateObject(obj); err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
		closures[i] = r.walker.Closure(obj)
	}

	r.logger.Debug("Registering objects.", "count", len(objs))

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, obj := range objs {
		r.insert(obj, closures[i])
	}
	return nil
}

func (r *MultiRegistry) insert(obj any, keys []reflect.Type) {
	e := entry{value: obj, seq: r.values.next()}
	r.values.put(keys, e)
	for _, k := range keys {
		r.buckets[k] = r.buckets[k].with(e)
	}
}

// Remove takes obj out of every bucket it belongs to.
func (r *MultiRegistry) Remove(obj any) (bool, error) {
	if err := lookup.ValidateRemoval(obj); err != nil {
		return false, err
	}

	removed := r.extractAll(obj)
	if removed {
		r.logger.Debug("Removed object.", "type", reflect.TypeOf(obj).String())
	}
	return removed, nil
}

// RemoveAll validates every element of objs, then removes them in order.
func (r *MultiRegistry) RemoveAll(objs []any) (bool, error) {
	if objs == nil {
		return false, lookup.ErrMissingCollection
	}
	for i, obj := range objs {
		if err := lookup.ValidateRemoval(obj); err != nil {
			return false, errors.Wrapf(err, "element %d", i)
		}
	}

	removed := r.extractAll(objs...)
	r.logger.Debug("Removed objects.", "count", len(objs), "any_removed", removed)
	return removed, nil
}

// extractAll removes objs in order under the write lock and reports whether
// any of them was present.
func (r *MultiRegistry) extractAll(objs ...any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := false
	for _, obj := range objs {
		if r.extract(obj) {
			removed = true
		}
	}
	return removed
}

// extract scans every bucket. Closures may have changed since obj was added
// (new capability declarations), so obj's current closure is not trusted.
func (r *MultiRegistry) extract(obj any) bool {
	removed := false
	for k, b := range r.buckets {
		nb, ok := b.without(obj)
		if !ok {
			continue
		}
		removed = true
		if nb.form == formEmpty {
			delete(r.buckets, k)
			delete(r.values.entries, k)
			continue
		}
		r.buckets[k] = nb
		if r.values.entries[k].value == obj {
			r.values.entries[k] = nb.last()
		}
	}
	return removed
}

// Lookup returns the object most recently added under t, or nil.
func (r *MultiRegistry) Lookup(t reflect.Type) (any, error) {
	if err := lookup.ValidateType(t); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values.get(t), nil
}

// LookupAllOf returns a fresh slice of every object indexed under t, in the
// order they were (last) added.
func (r *MultiRegistry) LookupAllOf(t reflect.Type) ([]any, error) {
	if err := lookup.ValidateType(t); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b := r.buckets[t]
	return b.appendTo(make([]any, 0, b.len())), nil
}

// FillAllOf truncates dst and fills it with every object indexed under t.
func (r *MultiRegistry) FillAllOf(t reflect.Type, dst []any) ([]any, error) {
	if err := lookup.ValidateType(t); err != nil {
		return dst, err
	}
	clear(dst)
	dst = dst[:0]

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.buckets[t].appendTo(dst), nil
}

// LookupAll returns every registered object, read from the root bucket.
func (r *MultiRegistry) LookupAll() []any {
	all, _ := r.LookupAllOf(typeclosure.Root)
	return all
}

// AppendAll resets dst and fills it with every registered object.
func (r *MultiRegistry) AppendAll(dst []any) []any {
	all, _ := r.FillAllOf(typeclosure.Root, dst)
	return all
}

// Len returns the number of distinct registered objects.
func (r *MultiRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.buckets[typeclosure.Root].len()
}

// Clear empties both indices.
func (r *MultiRegistry) Clear() {
	r.logger.Debug("Clearing registry.")
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values.reset()
	clear(r.buckets)
}

// Inspect returns a snapshot of the multi-value index, one row per key,
// sorted by key name.
func (r *MultiRegistry) Inspect() []BucketInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]BucketInfo, 0, len(r.buckets))
	for k, b := range r.buckets {
		rows = append(rows, BucketInfo{
			Key:     k,
			Form:    b.form.String(),
			Count:   b.len(),
			Current: r.values.get(k),
		})
	}
	sortBucketInfo(rows)
	return rows
}
