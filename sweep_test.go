package edm

import "testing"

func TestSweepE_RunsOnePointPerDimension(t *testing.T) {
	ds := makeDataset([]string{"x"}, [][]float64{tentMap(200, 0.31)})
	base := EmbedParams{TargetColumn: "x", Tau: 1, Direction: Backward, Tp: 1}
	pp := PredictParams{Method: Simplex, LibLo: 0, LibHi: 90, PredLo: 90, PredHi: 180, Tp: 1}

	points, err := SweepE(ds, base, pp, 1, 5)
	if err != nil {
		t.Fatalf("SweepE returned error: %v", err)
	}
	if len(points) != 5 {
		t.Fatalf("got %d points, want 5", len(points))
	}
	for i, p := range points {
		if p.E != i+1 {
			t.Errorf("points[%d].E = %d, want %d", i, p.E, i+1)
		}
	}
}

func TestSweepTp_RunsOnePointPerHorizon(t *testing.T) {
	ds := makeDataset([]string{"x"}, [][]float64{tentMap(200, 0.31)})
	base := EmbedParams{TargetColumn: "x", E: 2, Tau: 1, Direction: Backward}
	pp := PredictParams{Method: Simplex, LibLo: 0, LibHi: 90, PredLo: 90, PredHi: 180}

	points, err := SweepTp(ds, base, pp, 1, 4)
	if err != nil {
		t.Fatalf("SweepTp returned error: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("got %d points, want 4", len(points))
	}
}

func TestSweepTheta_RunsOnePointPerTheta(t *testing.T) {
	ds := makeDataset([]string{"x"}, [][]float64{tentMap(200, 0.31)})
	ps, err := Embed(ds, EmbedParams{TargetColumn: "x", E: 2, Tau: 1, Direction: Backward, Tp: 1})
	if err != nil {
		t.Fatalf("Embed returned error: %v", err)
	}
	n := ps.Rows()
	base := PredictParams{LibLo: 0, LibHi: n / 2, PredLo: n / 2, PredHi: n, Tp: 1}

	thetas := []float64{0, 1, 2, 4, 8}
	points, err := SweepTheta(ps, base, thetas)
	if err != nil {
		t.Fatalf("SweepTheta returned error: %v", err)
	}
	if len(points) != len(thetas) {
		t.Fatalf("got %d points, want %d", len(points), len(thetas))
	}
	for i, th := range thetas {
		if points[i].Theta != th {
			t.Errorf("points[%d].Theta = %v, want %v", i, points[i].Theta, th)
		}
	}
}

func TestSweepE_RejectsBadRange(t *testing.T) {
	ds := makeDataset([]string{"x"}, [][]float64{tentMap(50, 0.31)})
	base := EmbedParams{TargetColumn: "x", Tau: 1, Direction: Backward}
	pp := PredictParams{Method: Simplex}
	if _, err := SweepE(ds, base, pp, 5, 1); err == nil {
		t.Error("SweepE with hi < lo should error")
	}
}
