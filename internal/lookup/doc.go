// Package lookup defines the registry-facing boundary through which actors,
// cameras, scenes and support objects discover one another by type.
//
// # Why Lookup Exists
//
// Capabilities are attached to an owner without static coupling: a
// collaborator that needs a renderer does not hold a *Renderer, it asks the
// owner's registry for whatever is indexed under the Drawable key. This
// package holds only the contract (Provider, MultiProvider), the failure
// taxonomy and a few generic helpers. See internal/inmemorylookup for the
// implementation and the factory functions.
//
// # Failure Taxonomy
//
//   - Missing argument (nil object, nil type, nil collection): ErrMissingObject,
//     ErrMissingType, ErrMissingCollection.
//   - Invalid argument (a type key passed as an object, or a value whose
//     identity cannot be compared): ErrInvalidObject.
//   - Not found is never an error: lookups return nil or an empty slice and
//     removing an unknown object reports false.
//
// Every failure is returned before any state changes.
package lookup
