package lookup

import (
	"github.com/pkg/errors"

	"github.com/specialistvlad/lookupgo/internal/typeclosure"
)

// Get resolves the object indexed under T and asserts it to T.
// The boolean is false when nothing is indexed under T. Ancestor keys (an
// embedded struct, the struct behind a pointer) index values that are not
// assignable to the key itself; Get reports ErrNotAssignable for those and
// callers should use Provider.Lookup instead.
func Get[T any](p Provider) (T, bool, error) {
	var zero T
	v, err := p.Lookup(typeclosure.KeyOf[T]())
	if err != nil || v == nil {
		return zero, false, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false, errors.Wrapf(ErrNotAssignable, "%T under %v", v, typeclosure.KeyOf[T]())
	}
	return typed, true, nil
}

// All returns every object indexed under T, asserted to T.
func All[T any](p MultiProvider) ([]T, error) {
	vals, err := p.LookupAllOf(typeclosure.KeyOf[T]())
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(vals))
	for _, v := range vals {
		typed, ok := v.(T)
		if !ok {
			return nil, errors.Wrapf(ErrNotAssignable, "%T under %v", v, typeclosure.KeyOf[T]())
		}
		out = append(out, typed)
	}
	return out, nil
}

// MustAdd adds obj to p and panics on failure. Useful when wiring fixed
// capabilities at construction time.
func MustAdd(p Provider, obj any) {
	if err := p.Add(obj); err != nil {
		panic(err)
	}
}
