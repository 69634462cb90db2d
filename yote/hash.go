package yote

const (
	fnvBasis = 14695981039346656037
	fnvPrime = 1099511628211
)

func hash8(basis uint64, b byte) uint64 {
	return (basis ^ uint64(b)) * fnvPrime
}

// Hash returns a 64-bit FNV-1a hash of the full game state, excluding
// the ply counter. Equal positions hash equally.
func (p *Position) Hash() uint64 {
	var h uint64 = fnvBasis
	for _, c := range p.cells {
		h = hash8(h, byte(c))
	}
	h = hash8(h, byte(p.hand[0]))
	h = hash8(h, byte(p.hand[1]))
	h = hash8(h, byte(p.captured[0]))
	h = hash8(h, byte(p.captured[1]))
	h = hash8(h, byte(p.toMove))
	return h
}
