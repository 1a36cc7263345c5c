// Package distance implements the Distance Stage: per-sample online
// ingestion into the microcluster population — candidate selection,
// nearest-center assimilation, creation, re-address bookkeeping with
// merge-on-collision, and staleness eviction.
//
// Its candidate-expansion shape (probe a neighborhood, assimilate into
// the best match, otherwise seed a new cell) is grounded on the
// teacher's internal/lidar.DBSCAN / expandCluster neighbor-expansion
// loop, adapted from one-shot batch clustering to a per-sample online
// update with no separate label-propagation pass.
package distance
