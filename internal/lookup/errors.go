package lookup

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/specialistvlad/lookupgo/internal/typeclosure"
)

var (
	// ErrMissingObject indicates a nil object argument.
	ErrMissingObject = errors.New("lookup: missing object")
	// ErrMissingType indicates a nil type argument.
	ErrMissingType = errors.New("lookup: missing type")
	// ErrMissingCollection indicates a nil collection argument to a bulk operation.
	ErrMissingCollection = errors.New("lookup: missing collection")
	// ErrInvalidObject indicates an object that can never be registered.
	ErrInvalidObject = errors.New("lookup: invalid object")
	// ErrNotAssignable indicates a typed helper found a value that is indexed
	// under an ancestor key but is not assignable to it.
	ErrNotAssignable = errors.New("lookup: indexed value not assignable to key")
)

// ValidateObject checks obj against the rules shared by every registry
// flavor. Identity is the == operator on the interface value, so values of
// non-comparable dynamic types (slices, maps, funcs) are rejected, including
// comparable structs and arrays whose interface fields hold such values.
func ValidateObject(obj any) error {
	if obj == nil {
		return ErrMissingObject
	}
	if typeclosure.IsTypeToken(obj) {
		return errors.Wrapf(ErrInvalidObject, "type %v is a type key, not an instance", obj)
	}
	return checkIdentity(obj)
}

// ValidateRemoval checks obj for a remove call. Unlike ValidateObject it
// accepts anything non-nil and comparable; a type key simply is not found.
func ValidateRemoval(obj any) error {
	if obj == nil {
		return ErrMissingObject
	}
	return checkIdentity(obj)
}

// checkIdentity rejects obj unless hashing it as a map key succeeds. The
// static Comparable check misses interface fields holding slices or maps,
// which only fail at run time.
func checkIdentity(obj any) (err error) {
	t := reflect.TypeOf(obj)
	if !t.Comparable() {
		return errors.Wrapf(ErrInvalidObject, "values of type %v have no identity", t)
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrInvalidObject, "value of type %v has no identity: %v", t, r)
		}
	}()
	seen := make(map[any]struct{}, 1)
	seen[obj] = struct{}{}
	return nil
}

// ValidateType checks a lookup key.
func ValidateType(t reflect.Type) error {
	if t == nil {
		return ErrMissingType
	}
	return nil
}
