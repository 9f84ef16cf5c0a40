// Package primitives provides the set-algebra building blocks of the cube lattice engine.
// Collections are plain slices kept in insertion order; membership is decided by a
// caller-supplied equality, or by == for comparable element types.
// All operations return fresh slices and never mutate their inputs or elements.
package primitives
