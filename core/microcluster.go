package core

// DensityType classifies a microcluster's density relative to the
// population-wide thresholds computed each density stage pass.
type DensityType int

const (
	// LowDensity microclusters belong to the Outlier list (O) and are
	// candidates for staleness eviction.
	LowDensity DensityType = iota
	// SemiDense microclusters belong to the Active list (A). They act
	// as connectivity boundaries: reachable by Dense final clusters but
	// never a propagation seed themselves.
	SemiDense
	// Dense microclusters belong to the Active list (A) and seed final
	// clusters.
	Dense
)

// String renders a DensityType for logs and debug dumps.
func (d DensityType) String() string {
	switch d {
	case Dense:
		return "Dense"
	case SemiDense:
		return "Semi-Dense"
	default:
		return "Low-Density"
	}
}

// Unclassed is the sentinel ClassK value meaning "no final cluster
// label assigned yet" (or, after a density pass, "not reachable from
// any Dense seed").
const Unclassed = 0

// Microcluster is the unit sufficient statistic maintained by the
// Distance Stage and reclassified by the Density Stage: a fixed-size
// hyperbox cell accumulating a linear sum, a count, and two timestamps.
type Microcluster struct {
	ID      int64
	N       int64
	LS      []float64
	TStart  int64
	TLast   int64
	Density float64

	DensityType DensityType
	ClassK      int

	GridAddr []int

	// RunSeq increments on every mutation (assimilate, absorb, or
	// reclassification). It is a debugging/export convenience only; no
	// clustering decision depends on it.
	RunSeq uint64
}

// NewMicrocluster creates a singleton microcluster from one sample, as
// performed by the Distance Stage when no reachable microcluster exists.
func NewMicrocluster(id int64, sample []float64, addr []int, t int64) *Microcluster {
	ls := make([]float64, len(sample))
	copy(ls, sample)
	return &Microcluster{
		ID:          id,
		N:           1,
		LS:          ls,
		TStart:      t,
		TLast:       t,
		DensityType: LowDensity,
		ClassK:      Unclassed,
		GridAddr:    addr,
		RunSeq:      1,
	}
}

// Center returns the elementwise mean LS/N.
func (mc *Microcluster) Center() []float64 {
	center := make([]float64, len(mc.LS))
	for i, s := range mc.LS {
		center[i] = s / float64(mc.N)
	}
	return center
}

// Assimilate folds one sample into the microcluster's sufficient
// statistics and advances its last-seen timestamp. It does not update
// GridAddr; callers recompute and apply the new address themselves so
// that grid-index bookkeeping (delete-then-reinsert, merge-on-collision)
// happens atomically with the address change.
func (mc *Microcluster) Assimilate(sample []float64, t int64) {
	for i, v := range sample {
		mc.LS[i] += v
	}
	mc.N++
	mc.TLast = t
	mc.RunSeq++
}

// Absorb merges other into mc: linear sums and counts add, TLast takes
// the later of the two, TStart is left untouched (mc is assumed to be
// the older, surviving microcluster per the Distance Stage's
// merge-on-collision rule). other is left unmodified; the caller is
// responsible for destroying it.
func (mc *Microcluster) Absorb(other *Microcluster) {
	for i, v := range other.LS {
		mc.LS[i] += v
	}
	mc.N += other.N
	if other.TLast > mc.TLast {
		mc.TLast = other.TLast
	}
	mc.RunSeq++
}

// Volatile reports whether the microcluster is anything other than
// Dense. It is a presentation convenience for exporters; it carries no
// clustering semantics of its own.
func (mc *Microcluster) Volatile() bool {
	return mc.DensityType != Dense
}

// Copy returns a deep copy, used by the Snapshot Manager to archive
// immutable point-in-time state without aliasing the live population.
func (mc *Microcluster) Copy() *Microcluster {
	cp := *mc
	cp.LS = make([]float64, len(mc.LS))
	copy(cp.LS, mc.LS)
	cp.GridAddr = make([]int, len(mc.GridAddr))
	copy(cp.GridAddr, mc.GridAddr)
	return &cp
}
