// Package dyclee is the Engine Facade: the single entry point wiring
// core.Context, core.Population, the gridindex, the distance and
// density stages, and the snapshot archive into the streaming API
// described by spec.md §6. It is single-threaded and cooperative —
// Ingest is not safe to call concurrently with itself, matching
// spec.md §5's stated concurrency contract.
//
// The option-function constructor style (WithTGlobal, WithOrdinal,
// WithPyramid) mirrors the teacher's TrackerConfig-via-functional-knobs
// convention in internal/lidar/l5tracks, generalized slightly since the
// teacher itself favors a plain config struct; NewFromConfig exists for
// parity with the teacher's JSON-config-first style via internal/config.
package dyclee
