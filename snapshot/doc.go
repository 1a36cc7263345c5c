// Package snapshot implements the pyramidal Snapshot Manager: a
// time-indexed archive of deep-copied population/final-cluster state,
// retained at coarser and coarser resolution the further back in time a
// snapshot sits. Spec.md §4.6.
//
// Every captured snapshot is copied on the way in, mirroring the
// copy-before-serve discipline the teacher applies to its own read-side
// accessors (dashboards never alias live tracker state); the archive
// here exists so a caller can inspect population history without
// racing the Distance/Density stages that keep mutating the live
// population.
package snapshot
