// Package gridindex maps integer hyperbox addresses to the microcluster
// currently occupying that cell, and answers Moore-neighborhood queries
// over that map.
//
// It generalizes the teacher's fixed-cell-size SpatialIndex
// (banshee-data/velocity.report internal/lidar.SpatialIndex, a 2-D hash
// grid with a 3x3 cell probe for DBSCAN region queries) to DyClee's
// d-dimensional exact-address grid, where uniqueness per address is a
// hard invariant rather than a bucket of candidate points.
package gridindex
