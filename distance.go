package edm

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// unusableDistance is the sentinel the spec (§3 Invariants) designates for
// "unusable": any computed distance at or above this is infinite for
// projection purposes.
const unusableDistance = 1e30

// rowDistance returns the Euclidean distance between row i of a and row j
// of b, over columns 1..width (column 0 is always time and is never part
// of the distance computation, per spec §4.2).
func rowDistance(a *mat.Dense, i int, b *mat.Dense, j int) float64 {
	_, w := a.Dims()
	ra := mat.Row(nil, i, a)[1:w]
	rb := mat.Row(nil, j, b)[1:w]
	return floats.Distance(ra, rb, 2)
}

// DistanceMatrix is a precomputed, symmetric, N x N distance matrix over a
// single PhaseSpace's rows. CCM (spec §4.4 "CCM variant") builds this once
// and subsets it by library-index list on every library size instead of
// rescanning distances, trading memory for repeated scans.
type DistanceMatrix struct {
	d    []float64 // flat N*N, row-major
	n    int
	time []float64
}

// NewDistanceMatrix computes the full pairwise distance matrix for ps.
func NewDistanceMatrix(ps *PhaseSpace) *DistanceMatrix {
	n := ps.Rows()
	flat := make([]float64, n*n)
	for i := 0; i < n; i++ {
		flat[i*n+i] = 0
		for j := i + 1; j < n; j++ {
			d := rowDistance(ps.M, i, ps.M, j)
			flat[i*n+j] = d
			flat[j*n+i] = d
		}
	}
	return &DistanceMatrix{d: flat, n: n, time: ps.Time()}
}

// At returns the precomputed distance between global rows i and j.
func (dm *DistanceMatrix) At(i, j int) float64 {
	return dm.d[i*dm.n+j]
}

// Time returns the time value of global row i.
func (dm *DistanceMatrix) Time(i int) float64 {
	return dm.time[i]
}
