package snapshot

import (
	"fmt"
	"sort"

	"github.com/piratevector/dyclee/core"
	"github.com/piratevector/dyclee/density"
)

// FinalCluster is a deep-copied, alias-free record of one final cluster
// at capture time: its centroid and the IDs of the microclusters that
// composed it. It intentionally does not hold live *core.Microcluster
// pointers, since those keep mutating after the snapshot is taken.
type FinalCluster struct {
	Label     int
	Center    []float64
	MemberIDs []int64
}

// Snapshot is one captured instant: deep copies of every live
// microcluster and the final clusters assembled from them at time T.
type Snapshot struct {
	T          int64
	Population []*core.Microcluster
	Final      []FinalCluster
}

// tier buckets, indexed 0 (finest, receives every capture) .. L
// (coarsest).
type tier struct {
	snapshots []*Snapshot
}

// Archive is the pyramidal Snapshot Manager: tier ℓ retains a capture
// whenever t mod alpha^ℓ == 0, for ℓ in 0..L. Each tier keeps at most
// alpha+1 snapshots, evicting the oldest first, which bounds the whole
// archive at (L+1)*(alpha+1) snapshots (see DESIGN.md's Open Question
// decision reconciling spec.md §4.6 with Testable Property 7 and
// scenario S6).
type Archive struct {
	alpha int
	l     int
	tiers []tier
}

// NewArchive constructs an empty pyramidal archive with branching
// factor alpha and l+1 tiers (0..l).
func NewArchive(alpha, l int) (*Archive, error) {
	if alpha < 2 {
		return nil, fmt.Errorf("snapshot: alpha must be >= 2: %w", core.ErrBadConfig)
	}
	if l < 0 {
		return nil, fmt.Errorf("snapshot: l must be >= 0: %w", core.ErrBadConfig)
	}
	return &Archive{alpha: alpha, l: l, tiers: make([]tier, l+1)}, nil
}

// Capture deep-copies the live population and final clusters at time t
// and files them into every tier whose retention condition t admits.
// t=0 is divisible by every power of alpha and so is filed into every
// tier; like any capture, it leaves a tier once alpha+1 newer captures
// have been filed there.
func (a *Archive) Capture(t int64, live []*core.Microcluster, finalClusters []density.Cluster) {
	snap := &Snapshot{
		T:          t,
		Population: copyPopulation(live),
		Final:      copyFinal(finalClusters),
	}

	ell := a.tierFor(t)
	for lvl := 0; lvl <= ell; lvl++ {
		a.tiers[lvl].snapshots = append(a.tiers[lvl].snapshots, snap)
		if cap := a.alpha + 1; len(a.tiers[lvl].snapshots) > cap {
			a.tiers[lvl].snapshots = a.tiers[lvl].snapshots[len(a.tiers[lvl].snapshots)-cap:]
		}
	}
}

// tierFor returns the largest ℓ in 0..L such that t mod alpha^ℓ == 0.
// Tier 0 always qualifies (alpha^0 == 1 divides everything).
func (a *Archive) tierFor(t int64) int {
	ell := 0
	pow := int64(1)
	for ell < a.l {
		next := pow * int64(a.alpha)
		if t%next != 0 {
			break
		}
		pow = next
		ell++
	}
	return ell
}

// Count returns the total number of snapshots retained across every
// tier (bounded by (L+1)*(alpha+1)).
func (a *Archive) Count() int {
	n := 0
	for _, tr := range a.tiers {
		n += len(tr.snapshots)
	}
	return n
}

// Tier returns the snapshots retained at tier ℓ, oldest first.
func (a *Archive) Tier(ell int) []*Snapshot {
	if ell < 0 || ell > a.l {
		return nil
	}
	return a.tiers[ell].snapshots
}

// Latest returns the most recently captured snapshot at the finest
// tier (tier 0), or nil if nothing has been captured yet.
func (a *Archive) Latest() *Snapshot {
	finest := a.tiers[0].snapshots
	if len(finest) == 0 {
		return nil
	}
	return finest[len(finest)-1]
}

// All returns every distinct snapshot retained anywhere in the archive,
// sorted by T ascending. A snapshot captured into multiple tiers (every
// capture is, at minimum, filed into tier 0) is returned once.
func (a *Archive) All() []*Snapshot {
	seen := make(map[*Snapshot]bool)
	var out []*Snapshot
	for _, tr := range a.tiers {
		for _, s := range tr.snapshots {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].T < out[j].T })
	return out
}

func copyPopulation(live []*core.Microcluster) []*core.Microcluster {
	out := make([]*core.Microcluster, len(live))
	for i, mc := range live {
		out[i] = mc.Copy()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func copyFinal(clusters []density.Cluster) []FinalCluster {
	out := make([]FinalCluster, len(clusters))
	for i, cl := range clusters {
		ids := make([]int64, len(cl.Members))
		for j, m := range cl.Members {
			ids[j] = m.ID
		}
		center := append([]float64(nil), cl.Center...)
		out[i] = FinalCluster{Label: cl.Label, Center: center, MemberIDs: ids}
	}
	return out
}
