// Package manifest loads scene manifests written in HCL and builds scenes
// from them.
//
// A manifest declares actors with their support objects, cameras and named
// queries. Blocks may be spread over any number of .hcl files; the loader
// merges them into a single Manifest. Build turns a Manifest into a
// scene.Scene using the constructors registered on a scene.Catalog.
package manifest
