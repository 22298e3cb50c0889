package inmemorylookup

import "slices"

// bucketForm tags which representation a bucket currently uses.
type bucketForm uint8

const (
	formEmpty bucketForm = iota
	formOne
	formMany
)

// String returns the human-readable form name used by Inspect.
func (f bucketForm) String() string {
	switch f {
	case formOne:
		return "one"
	case formMany:
		return "many"
	default:
		return "empty"
	}
}

// bucket is the multi-value content for one type key. The zero value is the
// empty bucket. Buckets are values: every transition returns a new bucket
// which the caller stores back into the index.
type bucket struct {
	form bucketForm
	one  entry   // valid when form == formOne
	many []entry // insertion ordered; len >= 2 when form == formMany
}

// with returns b with e added. Adding an existing member refreshes its
// sequence number and moves it to the end, so the last member is always the
// most recently added one.
func (b bucket) with(e entry) bucket {
	switch b.form {
	case formEmpty:
		return bucket{form: formOne, one: e}
	case formOne:
		if b.one.value == e.value {
			return bucket{form: formOne, one: e}
		}
		return bucket{form: formMany, many: []entry{b.one, e}}
	default:
		if i := b.index(e.value); i >= 0 {
			b.many = slices.Delete(b.many, i, i+1)
		}
		b.many = append(b.many, e)
		return b
	}
}

// without returns b with obj removed and whether obj was a member. The
// result is the empty bucket when the last member goes away.
func (b bucket) without(obj any) (bucket, bool) {
	switch b.form {
	case formOne:
		if b.one.value != obj {
			return b, false
		}
		return bucket{}, true
	case formMany:
		i := b.index(obj)
		if i < 0 {
			return b, false
		}
		b.many = slices.Delete(b.many, i, i+1)
		if len(b.many) == 1 {
			return bucket{form: formOne, one: b.many[0]}, true
		}
		return b, true
	default:
		return b, false
	}
}

func (b bucket) index(obj any) int {
	return slices.IndexFunc(b.many, func(e entry) bool { return e.value == obj })
}

// last returns the most recently added member of a non-empty bucket.
func (b bucket) last() entry {
	if b.form == formOne {
		return b.one
	}
	return b.many[len(b.many)-1]
}

func (b bucket) len() int {
	switch b.form {
	case formOne:
		return 1
	case formMany:
		return len(b.many)
	default:
		return 0
	}
}

func (b bucket) appendTo(dst []any) []any {
	switch b.form {
	case formOne:
		dst = append(dst, b.one.value)
	case formMany:
		for _, e := range b.many {
			dst = append(dst, e.value)
		}
	}
	return dst
}

// clone shares the inline member and deep-copies the member slice.
func (b bucket) clone() bucket {
	if b.form == formMany {
		b.many = slices.Clone(b.many)
	}
	return b
}
