package edm

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// almostEqual compares floats with tolerance.
func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// makeDataset builds a Dataset with time 0..n-1 and the given named
// columns (each a full-length []float64).
func makeDataset(names []string, cols [][]float64) *Dataset {
	n := len(cols[0])
	time := make([]float64, n)
	for i := range time {
		time[i] = float64(i)
	}
	flat := make([]float64, 0, n*len(cols))
	for i := 0; i < n; i++ {
		for _, c := range cols {
			flat = append(flat, c[i])
		}
	}
	return &Dataset{
		Time:     time,
		Values:   mat.NewDense(n, len(cols), flat),
		ColNames: names,
	}
}
