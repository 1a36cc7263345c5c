package gridindex

import (
	"strconv"
	"strings"

	"github.com/piratevector/dyclee/core"
)

// Index maps a packed grid address to the microcluster occupying that
// cell. It holds a weak reference (the Population is the owner); deleting
// from the Index never destroys the microcluster itself.
type Index struct {
	cells map[string]*core.Microcluster
}

// New returns an empty Index.
func New() *Index {
	return &Index{cells: make(map[string]*core.Microcluster)}
}

// key packs an address into a map key, mirroring the teacher's
// vertexID-style "join coordinates with a separator" convention
// (katalvlaran-lvlath/gridgraph.vertexID), generalized from 2 to d dims.
func key(addr []int) string {
	var b strings.Builder
	for i, a := range addr {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(a))
	}
	return b.String()
}

// Put registers mc under addr, overwriting any previous occupant.
func (ix *Index) Put(addr []int, mc *core.Microcluster) {
	ix.cells[key(addr)] = mc
}

// Get returns the microcluster at addr, if any.
func (ix *Index) Get(addr []int) (*core.Microcluster, bool) {
	mc, ok := ix.cells[key(addr)]
	return mc, ok
}

// Delete removes whatever occupies addr.
func (ix *Index) Delete(addr []int) {
	delete(ix.cells, key(addr))
}

// Len returns the number of occupied cells.
func (ix *Index) Len() int {
	return len(ix.cells)
}

// Neighbors returns every microcluster whose address is Reachable (Moore
// neighborhood, inclusive of addr itself) from addr. At most 3^dcont
// addresses are probed, where dcont is the number of continuous
// dimensions — ordinal dimensions are held fixed at addr's value, per
// ctx.Reachable's exact-equality gate on ordinal dims.
func (ix *Index) Neighbors(ctx *core.Context, addr []int) []*core.Microcluster {
	offsets := make([][]int, ctx.Dims)
	for i := 0; i < ctx.Dims; i++ {
		if ctx.Ordinal[i] {
			offsets[i] = []int{0}
		} else {
			offsets[i] = []int{-1, 0, 1}
		}
	}

	var out []*core.Microcluster
	candidate := make([]int, ctx.Dims)
	var walk func(dim int)
	walk = func(dim int) {
		if dim == ctx.Dims {
			if mc, ok := ix.Get(candidate); ok {
				out = append(out, mc)
			}
			return
		}
		for _, d := range offsets[dim] {
			candidate[dim] = addr[dim] + d
			walk(dim + 1)
		}
	}
	walk(0)
	return out
}
