// Package world holds the simulation state for an N-body gravitational
// system: point-mass bodies, the ordered collection that owns them, and the
// pairwise force evaluation every integration scheme is built on.
//
// Masses are stored pre-multiplied by the gravitational constant (Gm), so
// acceleration sums need no separate G. The force evaluation is the naive
// O(N^2) all-pairs sum, recomputed from current positions on every call;
// coincident bodies produce Inf/NaN terms that poison the sum rather than
// being trapped.
//
// A World is exclusively owned by a single driver loop. Nothing in this
// package is safe for concurrent mutation.
package world
