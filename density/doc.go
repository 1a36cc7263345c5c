// Package density implements the periodic Density Stage: global
// reclassification of the live population into Dense, Semi-Dense, and
// Low-Density by thresholds derived from the mean and max density, and
// assembly of final clusters by a BFS seeded at Dense microclusters that
// propagates through face-adjacent ("direct") neighbors, treating
// Semi-Dense microclusters as labeled boundaries that do not propagate.
//
// The BFS queue/visited-set shape mirrors the flood-fill idiom used
// throughout the example pack for grid component analysis (closest
// instance: katalvlaran-lvlath/gridgraph.ConnectedComponents); the
// Dense-seed ordering and Semi-Dense-boundary propagation rule are
// specific to this spec and have no direct pack analogue.
package density
