// Package typeclosure computes the set of type keys a value is indexed under
// by the lookup registries.
//
// # Closure
//
// Go has neither class inheritance nor a way to enumerate every interface a
// type satisfies, so the closure of a value is assembled from four sources:
//
//   - the concrete dynamic type of the value;
//   - its "ancestors": the struct behind a pointer, and every embedded
//     (anonymous) field type of a struct, followed transitively;
//   - every capability interface declared on the Walker that the concrete
//     type or one of its ancestors implements;
//   - the universal root type (any), which indexes every value.
//
// The order of a closure is stable for a given concrete type and set of
// declarations: concrete type, ancestors in breadth-first embedding order,
// capabilities in declaration order, root.
//
// # Capabilities
//
// A capability is an interface type registered with Declare. Declarations are
// usually made once at start-up, the same way modules register handlers. A
// declaration only affects closures computed after it; values already
// indexed in a registry are not re-indexed.
package typeclosure
