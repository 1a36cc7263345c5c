// Package core defines the sufficient-statistic data model shared by every
// DyClee stage: the bounding Context, the Microcluster, and the live
// Population that owns them.
//
// Dependency rule: core depends on nothing else in this module. Every
// other package (gridindex, distance, density, snapshot, dyclee) depends
// on core, never the reverse.
package core
