package edm

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestSMap_RecoversLinearCoefficients builds a library whose target is an
// exact linear function of the embedding coordinates; with theta=0 (no
// locality weighting), S-Map's local regression degenerates to global OLS
// and should recover the generating coefficients exactly.
func TestSMap_RecoversLinearCoefficients(t *testing.T) {
	// y = 2 + 3*x1 - 1*x2
	rows := [][]float64{
		{0, 1, 1},
		{0, 2, 1},
		{0, 1, 2},
		{0, 3, 2},
		{0, 2, 3},
	}
	libY := make([]float64, len(rows))
	for i, r := range rows {
		libY[i] = 2 + 3*r[1] - 1*r[2]
	}
	libM := mat.NewDense(len(rows), 3, flatten(rows))

	// Every prediction row regresses against the full library (S-Map's k=0
	// "use all" convention); zero distances plus theta=0 means every row
	// is weighted equally, so the fit degenerates to plain OLS.
	indices := make([][]int, len(rows))
	distances := make([][]float64, len(rows))
	for p := range rows {
		idx := make([]int, len(rows))
		for i := range rows {
			idx[i] = i
		}
		indices[p] = idx
		distances[p] = make([]float64, len(rows))
	}

	preds, coeffs, warnings, err := SMap(libM, libY, libM, indices, distances, 0, 1e-5)
	if err != nil {
		t.Fatalf("SMap returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	for p := range rows {
		if !almostEqual(preds[p], libY[p], 1e-6) {
			t.Errorf("preds[%d] = %v, want %v", p, preds[p], libY[p])
		}
		c0, c1, c2 := coeffs.At(p, 0), coeffs.At(p, 1), coeffs.At(p, 2)
		if !almostEqual(c0, 2, 1e-6) || !almostEqual(c1, 3, 1e-6) || !almostEqual(c2, -1, 1e-6) {
			t.Errorf("coeffs[%d] = (%v,%v,%v), want (2,3,-1)", p, c0, c1, c2)
		}
	}
}

func TestSMap_SingularSystemDegradesToNaN(t *testing.T) {
	libM := mat.NewDense(1, 2, []float64{0, 1})
	libY := []float64{5}
	indices := [][]int{{}}
	distances := [][]float64{{}}

	preds, _, warnings, err := SMap(libM, libY, libM, indices, distances, 0, 1e-5)
	if err != nil {
		t.Fatalf("SMap returned error: %v", err)
	}
	if len(warnings) == 0 {
		t.Error("expected a warning for a row with no library neighbors")
	}
	if preds[0] == preds[0] { // NaN != NaN
		t.Errorf("preds[0] = %v, want NaN", preds[0])
	}
}

func flatten(rows [][]float64) []float64 {
	var out []float64
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
