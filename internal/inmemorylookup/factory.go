package inmemorylookup

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/specialistvlad/lookupgo/internal/lookup"
)

// New creates an empty single-value registry.
func New(opts ...Option) *Registry {
	o := buildOptions(options{}, opts)
	return &Registry{
		walker: o.walker,
		logger: o.logger,
		values: newValueIndex(),
	}
}

// NewMulti creates an empty multi-value registry.
func NewMulti(opts ...Option) *MultiRegistry {
	o := buildOptions(options{}, opts)
	return &MultiRegistry{
		walker:  o.walker,
		logger:  o.logger,
		values:  newValueIndex(),
		buckets: make(map[reflect.Type]bucket),
	}
}

// NewFrom creates a single-value registry holding an independent copy of
// existing. Registries from this package are cloned structurally and keep
// their walker and logger unless opts override them. Any other provider is
// copied by re-adding every object from its LookupAll, which rebuilds the
// closures with the new registry's walker.
func NewFrom(existing lookup.Provider, opts ...Option) (*Registry, error) {
	switch src := existing.(type) {
	case nil:
		return nil, errors.Wrap(lookup.ErrMissingObject, "source registry")
	case *Registry:
		if src == nil {
			return nil, errors.Wrap(lookup.ErrMissingObject, "source registry")
		}
		src.mu.RLock()
		defer src.mu.RUnlock()
		o := buildOptions(options{walker: src.walker, logger: src.logger}, opts)
		return &Registry{walker: o.walker, logger: o.logger, values: src.values.clone()}, nil
	case *MultiRegistry:
		if src == nil {
			return nil, errors.Wrap(lookup.ErrMissingObject, "source registry")
		}
		src.mu.RLock()
		defer src.mu.RUnlock()
		o := buildOptions(options{walker: src.walker, logger: src.logger}, opts)
		return &Registry{walker: o.walker, logger: o.logger, values: src.values.clone()}, nil
	default:
		r := New(opts...)
		for _, obj := range existing.LookupAll() {
			if err := r.Add(obj); err != nil {
				return nil, errors.Wrap(err, "copying source registry")
			}
		}
		return r, nil
	}
}

// NewMultiFrom creates a multi-value registry holding an independent copy of
// existing. A MultiRegistry is cloned structurally: inline members are shared,
// member slices are deep-copied. Any other provider, including a
// single-value Registry, is copied by re-adding every object from its
// LookupAll.
func NewMultiFrom(existing lookup.Provider, opts ...Option) (*MultiRegistry, error) {
	switch src := existing.(type) {
	case nil:
		return nil, errors.Wrap(lookup.ErrMissingObject, "source registry")
	case *MultiRegistry:
		if src == nil {
			return nil, errors.Wrap(lookup.ErrMissingObject, "source registry")
		}
		src.mu.RLock()
		defer src.mu.RUnlock()
		o := buildOptions(options{walker: src.walker, logger: src.logger}, opts)
		buckets := make(map[reflect.Type]bucket, len(src.buckets))
		for k, b := range src.buckets {
			buckets[k] = b.clone()
		}
		return &MultiRegistry{
			walker:  o.walker,
			logger:  o.logger,
			values:  src.values.clone(),
			buckets: buckets,
		}, nil
	default:
		if r, ok := src.(*Registry); ok && r == nil {
			return nil, errors.Wrap(lookup.ErrMissingObject, "source registry")
		}
		r := NewMulti(opts...)
		if all := existing.LookupAll(); len(all) > 0 {
			if err := r.AddAll(all); err != nil {
				return nil, errors.Wrap(err, "copying source registry")
			}
		}
		return r, nil
	}
}
