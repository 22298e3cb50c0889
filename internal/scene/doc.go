// Package scene holds the owners that consume the lookup registries: actors,
// cameras, support objects and the scene that groups them.
//
// An Actor owns a single-value registry of Support objects. Support objects
// never hold references to one another; a Collider that needs its actor's
// position asks the owner for whatever is indexed under *Transform. A Scene
// owns a multi-value registry of nodes and cameras and answers questions such
// as "every Drawable" or "the most recently added Viewpoint".
//
// The Catalog maps manifest names to constructors and capability interfaces,
// and owns the walker every registry of the scene shares.
package scene
