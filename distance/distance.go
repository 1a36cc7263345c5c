package distance

import (
	"fmt"

	"github.com/piratevector/dyclee/core"
	"github.com/piratevector/dyclee/gridindex"
)

// Ingest assimilates one timestamped sample into the population,
// implementing spec steps 1-6 of the Distance Stage:
//
//  1. compute the sample's grid address;
//  2. gather live microclusters reachable from that address;
//  3. assimilate into the nearest one (ties broken by older TStart), or
//  4. spawn a new microcluster if none are reachable;
//  5. recompute the address after assimilation, merging into whichever
//     microcluster already occupies the new cell if one does (older
//     absorbs younger); and
//  6. evict any Outlier untouched for tGlobal steps.
//
// It returns the microcluster that absorbed (or was created for) the
// sample, so callers can later map sample index -> final label.
func Ingest(ctx *core.Context, pop *core.Population, grid *gridindex.Index, sample []float64, t int64, tGlobal int64) (*core.Microcluster, error) {
	if len(sample) != ctx.Dims {
		return nil, fmt.Errorf("distance: sample has %d dims, context has %d: %w", len(sample), ctx.Dims, core.ErrDimensionMismatch)
	}

	addr := ctx.Address(sample)
	candidates := grid.Neighbors(ctx, addr)

	var absorber *core.Microcluster
	if len(candidates) > 0 {
		absorber = pickNearest(candidates, sample)
		oldAddr := absorber.GridAddr
		absorber.Assimilate(sample, t)
		readdress(ctx, pop, grid, absorber, oldAddr)
	} else {
		absorber = core.NewMicrocluster(pop.NewID(), sample, addr, t)
		pop.Add(absorber)
		grid.Put(addr, absorber)
	}

	evictStale(pop, grid, t, tGlobal)

	return absorber, nil
}

// pickNearest returns the candidate whose center is closest to sample in
// Euclidean distance, breaking ties in favor of the older (smaller
// TStart) microcluster for stability.
func pickNearest(candidates []*core.Microcluster, sample []float64) *core.Microcluster {
	best := candidates[0]
	bestDist := core.EuclideanDistance(best.Center(), sample)
	for _, c := range candidates[1:] {
		d := core.EuclideanDistance(c.Center(), sample)
		if d < bestDist || (d == bestDist && c.TStart < best.TStart) {
			best, bestDist = c, d
		}
	}
	return best
}

// readdress recomputes mc's grid address after assimilation. If the
// address changed, it moves mc's grid-index entry, merging into
// whichever microcluster already occupies the destination cell (the
// older of the two absorbs the younger, which is then destroyed).
func readdress(ctx *core.Context, pop *core.Population, grid *gridindex.Index, mc *core.Microcluster, oldAddr []int) {
	newAddr := ctx.Address(mc.Center())
	if addrEqual(newAddr, oldAddr) {
		return
	}
	grid.Delete(oldAddr)

	occupant, collided := grid.Get(newAddr)
	if !collided {
		mc.GridAddr = newAddr
		grid.Put(newAddr, mc)
		return
	}

	// Merge: the older of the two (smaller TStart) survives.
	if occupant.TStart <= mc.TStart {
		occupant.Absorb(mc)
		pop.Remove(mc.ID)
		return
	}
	mc.GridAddr = newAddr
	mc.Absorb(occupant)
	pop.Remove(occupant.ID)
	grid.Put(newAddr, mc)
}

// evictStale destroys every Outlier (Low-Density) microcluster that has
// gone tGlobal steps without being touched.
func evictStale(pop *core.Population, grid *gridindex.Index, t, tGlobal int64) {
	for _, mc := range pop.Outliers() {
		if t-mc.TLast >= tGlobal {
			grid.Delete(mc.GridAddr)
			pop.Remove(mc.ID)
		}
	}
}

func addrEqual(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
