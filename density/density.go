package density

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/piratevector/dyclee/core"
	"github.com/piratevector/dyclee/gridindex"
)

// Cluster is one assembled final cluster: a connected set of Active
// microclusters reachable from at least one Dense seed via Direct
// (face) adjacency, together with its density-weighted centroid.
type Cluster struct {
	Label   int
	Members []*core.Microcluster
	Center  []float64
}

// Result is the outcome of one Density Stage pass.
type Result struct {
	Clusters              []Cluster
	MeanDensity, MaxDensity, DHi, DLo float64
}

// Run performs one Density Stage pass over the live population:
// classify every microcluster's density type against thresholds derived
// from the population's mean and max density, then assemble final
// clusters by BFS over the Active set.
//
// Returns core.ErrEmptyPopulation (non-fatal; see its doc in package
// core) if there are no live microclusters.
func Run(ctx *core.Context, pop *core.Population) (Result, error) {
	live := pop.Live()
	if len(live) == 0 {
		return Result{}, core.ErrEmptyPopulation
	}

	meanD, maxD, dHi, dLo := classify(ctx, live)

	for _, mc := range live {
		mc.ClassK = core.Unclassed
	}

	clusters := assemble(ctx, pop.Active())

	return Result{
		Clusters:    clusters,
		MeanDensity: meanD,
		MaxDensity:  maxD,
		DHi:         dHi,
		DLo:         dLo,
	}, nil
}

// classify recomputes density and density_type for every live
// microcluster against thresholds derived from the population's mean
// and max density (spec step 1), and returns those statistics.
func classify(ctx *core.Context, live []*core.Microcluster) (meanD, maxD, dHi, dLo float64) {
	volume := ctx.Volume()
	densities := make([]float64, len(live))
	for i, mc := range live {
		mc.Density = float64(mc.N) / volume
		densities[i] = mc.Density
	}
	meanD = stat.Mean(densities, nil)
	maxD = floats.Max(densities)
	dHi = meanD + (maxD-meanD)/2
	dLo = meanD

	for _, mc := range live {
		switch {
		case mc.Density >= dHi:
			mc.DensityType = core.Dense
		case mc.Density >= dLo:
			mc.DensityType = core.SemiDense
		default:
			mc.DensityType = core.LowDensity
		}
		mc.RunSeq++
	}
	return meanD, maxD, dHi, dLo
}

// assemble labels connected components of the Active set, seeded at
// Dense microclusters in descending-density order (ties broken by
// ascending ID for determinism), and emits one Cluster per label
// (spec steps 2-3).
func assemble(ctx *core.Context, active []*core.Microcluster) []Cluster {
	if len(active) == 0 {
		return nil
	}

	index := gridindex.New()
	for _, mc := range active {
		index.Put(mc.GridAddr, mc)
	}

	seeds := make([]*core.Microcluster, 0, len(active))
	for _, mc := range active {
		if mc.DensityType == core.Dense {
			seeds = append(seeds, mc)
		}
	}
	sort.Slice(seeds, func(i, j int) bool {
		if seeds[i].Density != seeds[j].Density {
			return seeds[i].Density > seeds[j].Density
		}
		return seeds[i].ID < seeds[j].ID
	})

	byLabel := make(map[int][]*core.Microcluster)
	label := 0
	for _, seed := range seeds {
		if seed.ClassK != core.Unclassed {
			continue
		}
		label++
		seed.ClassK = label
		byLabel[label] = append(byLabel[label], seed)

		queue := []*core.Microcluster{seed}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]

			for _, v := range index.Neighbors(ctx, u.GridAddr) {
				if v.ID == u.ID || v.ClassK != core.Unclassed {
					continue
				}
				if !ctx.Direct(u.GridAddr, v.GridAddr) {
					continue
				}
				v.ClassK = label
				byLabel[label] = append(byLabel[label], v)
				if v.DensityType == core.Dense {
					queue = append(queue, v)
				}
			}
		}
	}

	clusters := make([]Cluster, 0, label)
	for k := 1; k <= label; k++ {
		members := byLabel[k]
		clusters = append(clusters, Cluster{
			Label:   k,
			Members: members,
			Center:  weightedCentroid(members),
		})
	}
	return clusters
}

// weightedCentroid returns the density-weighted centroid of a cluster's
// members (spec step 3).
func weightedCentroid(members []*core.Microcluster) []float64 {
	if len(members) == 0 {
		return nil
	}
	dims := len(members[0].LS)
	center := make([]float64, dims)
	var totalWeight float64
	for _, mc := range members {
		w := mc.Density
		totalWeight += w
		mcCenter := mc.Center()
		for i := 0; i < dims; i++ {
			center[i] += w * mcCenter[i]
		}
	}
	if totalWeight == 0 {
		// Degenerate (all-zero density): fall back to an unweighted mean.
		for i := range center {
			center[i] = 0
		}
		for _, mc := range members {
			mcCenter := mc.Center()
			for i := 0; i < dims; i++ {
				center[i] += mcCenter[i]
			}
		}
		for i := range center {
			center[i] /= float64(len(members))
		}
		return center
	}
	for i := range center {
		center[i] /= totalWeight
	}
	return center
}
