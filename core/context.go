package core

import (
	"fmt"
	"math"
)

// Context is the immutable bounding box of a data stream: a per-dimension
// [lo, hi] range together with the derived hyperbox side lengths used to
// address samples into the grid. Dimensions flagged ordinal are compared
// by exact equality rather than bucketed into a hyperbox.
type Context struct {
	Dims    int
	Lo, Hi  []float64
	Side    []float64
	Ordinal []bool
	Phi     float64
}

// BoundingBox is a per-dimension [lo, hi] range, bbox[i] = [lo_i, hi_i].
type BoundingBox = [][2]float64

// NewContext builds a Context from a phi shrink factor in (0,1], a 2xd
// bounding box (bbox[i] = [lo_i, hi_i]), and an optional ordinal mask
// (nil or empty means every dimension is continuous).
func NewContext(phi float64, bbox BoundingBox, ordinal []bool) (*Context, error) {
	if phi <= 0 || phi > 1 {
		return nil, fmt.Errorf("core: phi must be in (0,1], got %v: %w", phi, ErrBadConfig)
	}
	if len(bbox) == 0 {
		return nil, fmt.Errorf("core: context must declare at least one dimension: %w", ErrBadConfig)
	}
	dims := len(bbox)
	if ordinal != nil && len(ordinal) != dims {
		return nil, fmt.Errorf("core: ordinal mask length %d does not match %d dimensions: %w", len(ordinal), dims, ErrBadConfig)
	}

	lo := make([]float64, dims)
	hi := make([]float64, dims)
	mask := make([]bool, dims)
	side := make([]float64, dims)
	for i, b := range bbox {
		lo[i], hi[i] = b[0], b[1]
		if ordinal != nil {
			mask[i] = ordinal[i]
		}
		if mask[i] {
			continue
		}
		if hi[i] <= lo[i] {
			return nil, fmt.Errorf("core: dimension %d has non-positive range [%v,%v]: %w", i, lo[i], hi[i], ErrBadConfig)
		}
		side[i] = phi * (hi[i] - lo[i])
		if side[i] <= 0 {
			return nil, fmt.Errorf("core: dimension %d produced non-positive side length: %w", i, ErrBadConfig)
		}
	}

	return &Context{Dims: dims, Lo: lo, Hi: hi, Side: side, Ordinal: mask, Phi: phi}, nil
}

// Volume returns the hyperbox volume over continuous dimensions only.
func (c *Context) Volume() float64 {
	v := 1.0
	for i := 0; i < c.Dims; i++ {
		if c.Ordinal[i] {
			continue
		}
		v *= c.Side[i]
	}
	return v
}

// Address maps a sample to its integer grid address. Continuous
// dimensions are floor((x-lo)/side); ordinal dimensions are truncated to
// int directly. A point exactly on the upper boundary of a continuous
// dimension rounds down into the last nominal cell rather than spilling
// into the next one.
func (c *Context) Address(point []float64) []int {
	addr := make([]int, c.Dims)
	for i := 0; i < c.Dims; i++ {
		if c.Ordinal[i] {
			addr[i] = int(point[i])
			continue
		}
		v := point[i]
		if v == c.Hi[i] {
			v = math.Nextafter(v, math.Inf(-1))
		}
		addr[i] = int(math.Floor((v - c.Lo[i]) / c.Side[i]))
	}
	return addr
}

// Reachable reports whether two grid addresses lie in the same Moore
// neighborhood: L-infinity distance at most 1 across continuous
// dimensions, and exact equality across ordinal dimensions. Reachable
// gates ingestion candidacy.
func (c *Context) Reachable(a, b []int) bool {
	for i := 0; i < c.Dims; i++ {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		if c.Ordinal[i] {
			if d != 0 {
				return false
			}
			continue
		}
		if d > 1 {
			return false
		}
	}
	return true
}

// Direct reports face-adjacency: Reachable, plus at most one continuous
// dimension may differ by 1 (diagonal moves are excluded). Direct gates
// final-cluster connectivity; keeping it distinct from Reachable changes
// the shape of assembled clusters (see the gridindex/density packages).
func (c *Context) Direct(a, b []int) bool {
	if !c.Reachable(a, b) {
		return false
	}
	differing := 0
	for i := 0; i < c.Dims; i++ {
		if c.Ordinal[i] {
			continue
		}
		if a[i] != b[i] {
			differing++
		}
	}
	return differing <= 1
}
