package utils

// Index is a flat list of node indices, used both for connectivity arrays and
// for per-file local to global index sets
type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}

// Add returns a new Index with val added to every entry. Used to shift
// between the 0-based in-memory numbering and the 1-based on-file numbering.
func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = val + ival
	}
	return r
}
