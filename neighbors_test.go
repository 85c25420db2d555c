package edm

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func phaseSpaceFromRows(rows [][]float64, y []float64) *PhaseSpace {
	n := len(rows)
	w := len(rows[0])
	flat := make([]float64, 0, n*w)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	return &PhaseSpace{M: mat.NewDense(n, w, flat), ColNames: nil, Y: y, E: w - 1}
}

func TestNeighbors_OrdersByDistanceAscending(t *testing.T) {
	lib := phaseSpaceFromRows([][]float64{
		{0, 0},
		{1, 1},
		{2, 5},
		{3, 2},
	}, []float64{10, 11, 12, 13})
	pred := phaseSpaceFromRows([][]float64{{100, 0}}, []float64{0})

	idx, dist, err := Neighbors(lib, pred, 2, 0)
	if err != nil {
		t.Fatalf("Neighbors returned error: %v", err)
	}
	if len(idx[0]) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(idx[0]))
	}
	if idx[0][0] != 0 || idx[0][1] != 1 {
		t.Errorf("nearest neighbors = %v, want [0 1] (distances 0 then 1)", idx[0])
	}
	if dist[0][0] != 0 {
		t.Errorf("nearest distance = %v, want 0", dist[0][0])
	}
}

func TestNeighbors_ExclusionRadiusDropsNearTimes(t *testing.T) {
	lib := phaseSpaceFromRows([][]float64{
		{0, 0},
		{1, 0.01},
		{10, 0.02},
	}, []float64{1, 2, 3})
	pred := phaseSpaceFromRows([][]float64{{0, 0}}, []float64{0})

	// row 0 and row 1 are within 1 time unit of the prediction row's time (0);
	// only row 2 (time 10) should survive a radius-of-1 exclusion.
	idx, _, err := Neighbors(lib, pred, 1, 1)
	if err != nil {
		t.Fatalf("Neighbors returned error: %v", err)
	}
	if idx[0][0] != 2 {
		t.Errorf("surviving neighbor = %d, want 2", idx[0][0])
	}
}

func TestNeighbors_ErrorsWhenLibraryTooSmall(t *testing.T) {
	lib := phaseSpaceFromRows([][]float64{{0, 0}, {1, 1}}, []float64{1, 2})
	pred := phaseSpaceFromRows([][]float64{{0, 0}}, []float64{0})
	if _, _, err := Neighbors(lib, pred, 5, 0); err == nil {
		t.Error("Neighbors with k > library size should error")
	}
}

func TestAllNeighbors_ReturnsEveryUnexcludedRow(t *testing.T) {
	lib := phaseSpaceFromRows([][]float64{{0, 0}, {1, 1}, {2, 2}}, []float64{1, 2, 3})
	pred := phaseSpaceFromRows([][]float64{{0, 0}}, []float64{0})
	idx, _ := AllNeighbors(lib, pred, 0)
	if len(idx[0]) != 2 {
		t.Errorf("AllNeighbors excluding the coincident row returned %d rows, want 2", len(idx[0]))
	}
}
