// Command dyclee-demo generates a synthetic two-blob stream, runs it
// through a dyclee.Engine, and exports the resulting pyramidal snapshot
// archive into a SQLite database for offline inspection with any
// SQLite client.
//
// This driver is intentionally thin: it contains no clustering logic of
// its own, only stream generation, engine wiring, and persistence.
//
// Usage:
//
//	go run ./cmd/dyclee-demo [flags]
//
// Flags:
//
//	-out       Path to the SQLite export file (default: dyclee-demo.sqlite)
//	-n         Number of samples to generate (default: 3000)
//	-phi       Hyperbox shrink factor in (0,1] (default: 0.06)
//	-t-global  Samples per density stage (default: 500)
//	-stddev    Per-blob standard deviation (default: 1.5)
//	-seed      RNG seed for the synthetic stream (default: 1)
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/piratevector/dyclee/core"
	"github.com/piratevector/dyclee/dyclee"
)

func main() {
	outPath := flag.String("out", "dyclee-demo.sqlite", "path to the SQLite export file")
	n := flag.Int("n", 3000, "number of samples to generate")
	phi := flag.Float64("phi", 0.06, "hyperbox shrink factor in (0,1]")
	tGlobal := flag.Int64("t-global", 500, "samples per density stage")
	stddev := flag.Float64("stddev", 1.5, "per-blob standard deviation")
	seed := flag.Int64("seed", 1, "RNG seed for the synthetic stream")
	flag.Parse()

	const alpha, l = 2, 5
	bbox := core.BoundingBox{{-20, 40}, {-20, 40}}
	centerA := [2]float64{0, 0}
	centerB := [2]float64{20, 20}

	samples := syntheticTwoBlobs(*n, centerA, centerB, *stddev, *seed)

	engine, err := dyclee.New(*phi, bbox, dyclee.WithTGlobal(*tGlobal), dyclee.WithPyramid(alpha, l))
	if err != nil {
		log.Fatalf("dyclee-demo: construct engine: %v", err)
	}

	labels, err := engine.RunDataset(samples)
	if err != nil {
		log.Fatalf("dyclee-demo: run dataset: %v", err)
	}
	unclassed := 0
	for _, lab := range labels {
		if lab == dyclee.Unclassed {
			unclassed++
		}
	}
	fmt.Printf("ingested %d samples, %d unclassed, %d snapshots captured\n",
		len(samples), unclassed, engine.Snapshots().Count())

	runID := uuid.New().String()
	store, err := openExportStore(*outPath)
	if err != nil {
		log.Fatalf("dyclee-demo: %v", err)
	}
	defer store.Close()

	if err := store.insertRun(runID, time.Now().UnixNano(), *phi, *tGlobal, alpha, l); err != nil {
		log.Fatalf("dyclee-demo: %v", err)
	}
	count, err := exportArchive(store, runID, engine.Snapshots())
	if err != nil {
		log.Fatalf("dyclee-demo: %v", err)
	}

	fmt.Printf("run %s: exported %d snapshots to %s\n", runID, count, *outPath)
}
