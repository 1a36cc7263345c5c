package dyclee_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/piratevector/dyclee/core"
	"github.com/piratevector/dyclee/dyclee"
)

// TestRunDataset_TwoBlobs covers scenario S1: two well-separated, tight
// clusters of samples must be assimilated into two single-cell Dense
// microclusters, each forming its own final cluster, with fewer than
// 1% of samples left Unclassed.
func TestRunDataset_TwoBlobs(t *testing.T) {
	e, err := dyclee.New(0.06, core.BoundingBox{{-10, 30}, {-10, 30}}, dyclee.WithTGlobal(1500))
	if err != nil {
		t.Fatal(err)
	}

	var samples [][]float64
	for i := 0; i < 750; i++ {
		samples = append(samples, []float64{0, 0})
	}
	for i := 0; i < 750; i++ {
		samples = append(samples, []float64{20, 20})
	}

	labels, err := e.RunDataset(samples)
	if err != nil {
		t.Fatal(err)
	}

	unclassed := 0
	seen := map[int]int{}
	for _, l := range labels {
		if l == dyclee.Unclassed {
			unclassed++
		} else {
			seen[l]++
		}
	}
	if unclassed > 15 { // < 1% of 1500
		t.Fatalf("unclassed samples = %d, want < 1%% of 1500", unclassed)
	}
	if len(seen) != 2 {
		t.Fatalf("distinct final-cluster labels = %d, want exactly 2", len(seen))
	}
}

// squarePerimeter returns the grid addresses forming the perimeter of a
// square of Chebyshev radius r around center, walked so consecutive
// entries always differ by exactly 1 along a single axis (face-adjacent
// under Context.Direct).
func squarePerimeter(center [2]int, r int) [][2]int {
	var out [][2]int
	cx, cy := center[0], center[1]
	top, bottom := cy-r, cy+r
	left, right := cx-r, cx+r
	for x := left; x < right; x++ {
		out = append(out, [2]int{x, top})
	}
	for y := top; y < bottom; y++ {
		out = append(out, [2]int{right, y})
	}
	for x := right; x > left; x-- {
		out = append(out, [2]int{x, bottom})
	}
	for y := bottom; y > top; y-- {
		out = append(out, [2]int{left, y})
	}
	return out
}

func cellCenter(ctx *core.Context, addr [2]int) []float64 {
	return []float64{
		ctx.Lo[0] + (float64(addr[0])+0.5)*ctx.Side[0],
		ctx.Lo[1] + (float64(addr[1])+0.5)*ctx.Side[1],
	}
}

// TestRunDataset_ConcentricRings covers scenario S2: two concentric
// rings of equal-density microclusters, separated by an empty gap, must
// form two distinct face-connected final clusters rather than one
// (face-adjacency, not mere reachability, is what must separate them
// here, since every ring cell is classified Dense and so, if Reachable
// alone gated final-cluster connectivity instead of Direct, nothing
// would change — the real test of ring-vs-disc topology is that the
// *gap* between rings prevents any connection at all, at either
// predicate).
func TestRunDataset_ConcentricRings(t *testing.T) {
	ctx, err := core.NewContext(0.02, core.BoundingBox{{0, 100}, {0, 100}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	center := [2]int{25, 25}
	inner := squarePerimeter(center, 3)
	outer := squarePerimeter(center, 8)

	e, err := dyclee.New(0.02, core.BoundingBox{{0, 100}, {0, 100}}, dyclee.WithTGlobal(int64((len(inner)+len(outer))*5)))
	if err != nil {
		t.Fatal(err)
	}

	var samples [][]float64
	for _, addr := range inner {
		pt := cellCenter(ctx, addr)
		for i := 0; i < 5; i++ {
			samples = append(samples, pt)
		}
	}
	for _, addr := range outer {
		pt := cellCenter(ctx, addr)
		for i := 0; i < 5; i++ {
			samples = append(samples, pt)
		}
	}

	if _, err := e.RunDataset(samples); err != nil {
		t.Fatal(err)
	}

	result := e.LastResult()
	if len(result.Clusters) != 2 {
		t.Fatalf("final clusters = %d, want 2 (inner ring, outer ring)", len(result.Clusters))
	}
	sizes := map[int]int{}
	for _, cl := range result.Clusters {
		sizes[len(cl.Members)] = sizes[len(cl.Members)] + 1
	}
	if _, ok := sizes[len(inner)]; !ok {
		t.Fatalf("no cluster matched the inner ring's cell count %d; got cluster sizes %v", len(inner), sizes)
	}
	if _, ok := sizes[len(outer)]; !ok {
		t.Fatalf("no cluster matched the outer ring's cell count %d; got cluster sizes %v", len(outer), sizes)
	}
}

// TestRunDataset_NearUniformNoise covers scenario S3. Given the exact
// D_hi = mean + (max-mean)/2 formula, a literally-tied uniform
// distribution always makes the single (or jointly) maximal cell
// technically clear D_hi; the testable invariant this scenario actually
// captures is that such incidental density variation produces no
// cluster of any meaningful size — the overwhelming majority of samples
// remain Unclassed, and at most a negligible singleton forms.
func TestRunDataset_NearUniformNoise(t *testing.T) {
	e, err := dyclee.New(0.1, core.BoundingBox{{0, 1}, {0, 1}}, dyclee.WithTGlobal(101))
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := core.NewContext(0.1, core.BoundingBox{{0, 1}, {0, 1}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Every other cell in each axis, so no populated cell is Reachable
	// from another and each sample seeds its own microcluster (a sample
	// in a cell next to an existing microcluster would be absorbed by it).
	var samples [][]float64
	for x := 0; x < 10; x += 2 {
		for y := 0; y < 10; y += 2 {
			samples = append(samples, cellCenter(ctx, [2]int{x, y}))
		}
	}
	// One extra sample in an already-populated cell, the only source of
	// density variation in an otherwise perfectly uniform grid.
	samples = append(samples, cellCenter(ctx, [2]int{0, 0}))

	labels, err := e.RunDataset(samples)
	if err != nil {
		t.Fatal(err)
	}

	classified := 0
	for _, l := range labels {
		if l != dyclee.Unclassed {
			classified++
		}
	}
	if classified > 2 {
		t.Fatalf("classified samples = %d, want at most 2 (the single accidental over-density cell)", classified)
	}
	if len(e.LastResult().Clusters) > 1 {
		t.Fatalf("final clusters = %d, want at most 1 (no meaningful density peak in uniform data)", len(e.LastResult().Clusters))
	}
}

// TestEngine_StaleOutlierEvictedOnceOvertakenAndUntouched is grounded in
// scenario S4's narrative (an old, no-longer-touched cluster eventually
// drops out of Active as a newer one overtakes it in density, then gets
// evicted once stale past t_global), built with deterministic counts so
// the exact step at which each transition happens is known in advance
// rather than approximated from randomly generated drift.
func TestEngine_StaleOutlierEvictedOnceOvertakenAndUntouched(t *testing.T) {
	e, err := dyclee.New(0.1, core.BoundingBox{{0, 100}, {0, 100}}, dyclee.WithTGlobal(3))
	if err != nil {
		t.Fatal(err)
	}

	pointA := []float64{5, 5}
	pointB := []float64{55, 55}

	tm := int64(0)
	ingestN := func(point []float64, n int) {
		for i := 0; i < n; i++ {
			if err := e.Ingest(point, tm); err != nil {
				t.Fatal(err)
			}
			tm++
		}
	}

	ingestN(pointA, 3) // t=0,1,2 -> density stage #1 (single mc, trivially Dense)
	if total := len(e.Active()) + len(e.Outliers()); total != 1 {
		t.Fatalf("population after first blob = %d, want 1", total)
	}

	ingestN(pointB, 6) // t=3..8 -> density stages at t=5 (tie, both Dense) and t=8 (A overtaken)
	if total := len(e.Active()) + len(e.Outliers()); total != 2 {
		t.Fatalf("population after both blobs = %d, want 2", total)
	}
	outliers := e.Outliers()
	if len(outliers) != 1 {
		t.Fatalf("outliers = %d, want 1 (the overtaken first blob)", len(outliers))
	}
	if outliers[0].Center()[0] != pointA[0] {
		t.Fatalf("the overtaken outlier's center = %v, want near %v", outliers[0].Center(), pointA)
	}

	ingestN(pointB, 1) // t=9: evictStale fires for the stale Low-Density outlier
	if total := len(e.Active()) + len(e.Outliers()); total != 1 {
		t.Fatalf("population after eviction = %d, want 1 (only the surviving blob)", total)
	}

	// The archive must have captured distinct populations at each
	// density-stage boundary.
	snaps := e.Snapshots()
	if n := len(snaps.All()); n < 2 {
		t.Fatalf("snapshot archive holds %d distinct snapshots, want at least 2 distinct captures", n)
	}
}

// TestEngine_GridUniqueness covers Testable Property 2 end-to-end: no
// two live microclusters ever occupy the same grid address.
func TestEngine_GridUniqueness(t *testing.T) {
	e, err := dyclee.New(0.06, core.BoundingBox{{0, 50}, {0, 50}}, dyclee.WithTGlobal(200))
	if err != nil {
		t.Fatal(err)
	}
	var samples [][]float64
	for i := 0; i < 200; i++ {
		x := float64(i%10) * 0.3
		y := float64((i / 10) % 10) * 0.3
		samples = append(samples, []float64{x + 1, y + 1})
	}
	if _, err := e.RunDataset(samples); err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	for _, mc := range append(e.Active(), e.Outliers()...) {
		key := addrKey(mc.GridAddr)
		if seen[key] {
			t.Fatalf("grid address %v occupied by more than one live microcluster", mc.GridAddr)
		}
		seen[key] = true
	}
}

func addrKey(addr []int) string {
	parts := make([]string, len(addr))
	for i, a := range addr {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, ",")
}
