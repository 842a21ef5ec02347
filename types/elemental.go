package types

import (
	"fmt"
	"math"
)

/*
EdgeKey packs the two vertex indices of an undirected edge into one uint64.
The smaller index always lands in the low 32 bits, so [4,0] and [0,4] map to
the same key.
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	for _, vert := range verts {
		if vert < 0 || vert > math.MaxUint32 {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	lo, hi := verts[0], verts[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	packed = EdgeKey(uint64(lo) | uint64(hi)<<32)
	return
}

// GetVertices returns the vertices in ascending order, or descending with rev
func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	verts[0] = int(uint64(ek) & math.MaxUint32)
	verts[1] = int(uint64(ek) >> 32)
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

// EdgeCount tallies how many elements reference each edge
type EdgeCount map[EdgeKey]int

// AddPolygon registers every edge of a closed polygon given by its vertex loop
func (ec EdgeCount) AddPolygon(verts ...int) {
	for n := range verts {
		ec[NewEdgeKey([2]int{verts[n], verts[(n+1)%len(verts)]})]++
	}
}

// Tally returns the number of edges referenced once and twice, and the count of
// edges referenced any other number of times
func (ec EdgeCount) Tally() (single, shared, other int) {
	for _, c := range ec {
		switch c {
		case 1:
			single++
		case 2:
			shared++
		default:
			other++
		}
	}
	return
}
