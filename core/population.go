package core

// Population owns every live microcluster, keyed by its assigned ID. The
// Distance Stage mutates it (create, assimilate, merge, evict); the
// Density Stage reads and reclassifies it; the Snapshot Manager copies
// it. Active and Outlier membership are not stored redundantly — they
// are a partition of Live() by DensityType, which keeps the invariant
// A ∩ O = ∅, A ∪ O = live trivially true rather than needing separate
// bookkeeping to stay in sync.
type Population struct {
	nextID  int64
	members map[int64]*Microcluster
}

// NewPopulation returns an empty population.
func NewPopulation() *Population {
	return &Population{members: make(map[int64]*Microcluster)}
}

// NewID allocates the next monotonically increasing microcluster ID.
func (p *Population) NewID() int64 {
	p.nextID++
	return p.nextID
}

// Add registers a microcluster as live.
func (p *Population) Add(mc *Microcluster) {
	p.members[mc.ID] = mc
}

// Remove destroys a microcluster (collision merge or staleness eviction).
func (p *Population) Remove(id int64) {
	delete(p.members, id)
}

// Get returns the live microcluster with the given ID, if any.
func (p *Population) Get(id int64) (*Microcluster, bool) {
	mc, ok := p.members[id]
	return mc, ok
}

// Len returns the number of live microclusters.
func (p *Population) Len() int {
	return len(p.members)
}

// Live returns every live microcluster. Order is unspecified; callers
// needing determinism should sort by ID.
func (p *Population) Live() []*Microcluster {
	out := make([]*Microcluster, 0, len(p.members))
	for _, mc := range p.members {
		out = append(out, mc)
	}
	return out
}

// Active returns the Dense ∪ Semi-Dense subset (A).
func (p *Population) Active() []*Microcluster {
	out := make([]*Microcluster, 0, len(p.members))
	for _, mc := range p.members {
		if mc.DensityType != LowDensity {
			out = append(out, mc)
		}
	}
	return out
}

// Outliers returns the Low-Density subset (O).
func (p *Population) Outliers() []*Microcluster {
	out := make([]*Microcluster, 0, len(p.members))
	for _, mc := range p.members {
		if mc.DensityType == LowDensity {
			out = append(out, mc)
		}
	}
	return out
}
