package edm

import (
	"math"
	"testing"
)

// tentMap generates n iterates of the tent map x_{t+1} = r(1 - |2x_t - 1|)
// with r=0.995 (chaotic, values stay inside [0,1]), starting from x0.
// r=1 exactly collapses to 0 within about 55 steps in float64.
func tentMap(n int, x0 float64) []float64 {
	x := make([]float64, n)
	x[0] = x0
	for i := 1; i < n; i++ {
		x[i] = 0.995 * (1 - math.Abs(2*x[i-1]-1))
	}
	return x
}

func TestEmbed_ColumnNamesBackward(t *testing.T) {
	ds := makeDataset([]string{"x"}, [][]float64{tentMap(20, 0.3)})
	ps, err := Embed(ds, EmbedParams{TargetColumn: "x", E: 3, Tau: 2, Direction: Backward, Tp: 1})
	if err != nil {
		t.Fatalf("Embed returned error: %v", err)
	}
	want := []string{"time", "x(t)", "x(t-tau)", "x(t-2tau)"}
	if len(ps.ColNames) != len(want) {
		t.Fatalf("ColNames = %v, want %v", ps.ColNames, want)
	}
	for i, w := range want {
		if ps.ColNames[i] != w {
			t.Errorf("ColNames[%d] = %q, want %q", i, ps.ColNames[i], w)
		}
	}
}

func TestEmbed_RowCountDropsDelayRows(t *testing.T) {
	ds := makeDataset([]string{"x"}, [][]float64{tentMap(20, 0.3)})
	ps, err := Embed(ds, EmbedParams{TargetColumn: "x", E: 3, Tau: 2, Direction: Backward, Tp: 0})
	if err != nil {
		t.Fatalf("Embed returned error: %v", err)
	}
	// delRows = (E-1)*tau = 4
	if got, want := ps.Rows(), 16; got != want {
		t.Errorf("Rows() = %d, want %d", got, want)
	}
}

func TestEmbed_TpShiftPadsNaN(t *testing.T) {
	ds := makeDataset([]string{"x"}, [][]float64{tentMap(10, 0.3)})
	ps, err := Embed(ds, EmbedParams{TargetColumn: "x", E: 1, Tau: 1, Direction: Backward, Tp: 3})
	if err != nil {
		t.Fatalf("Embed returned error: %v", err)
	}
	n := ps.Rows()
	for i := n - 3; i < n; i++ {
		if !math.IsNaN(ps.Y[i]) {
			t.Errorf("Y[%d] = %v, want NaN (Tp shift past series end)", i, ps.Y[i])
		}
	}
	for i := 0; i < n-3; i++ {
		if math.IsNaN(ps.Y[i]) {
			t.Errorf("Y[%d] = NaN, want a finite value", i)
		}
	}
}

func TestEmbed_MultivariableWidth(t *testing.T) {
	ds := makeDataset([]string{"x", "y", "z"}, [][]float64{
		tentMap(15, 0.3), tentMap(15, 0.55), tentMap(15, 0.71),
	})
	ps, err := Embed(ds, EmbedParams{Columns: []string{"x", "y", "z"}, TargetColumn: "x", E: 2, Tau: 1, Direction: Backward, Tp: 0})
	if err != nil {
		t.Fatalf("Embed returned error: %v", err)
	}
	if got, want := ps.Width(), 6; got != want {
		t.Errorf("Width() = %d, want %d", got, want)
	}
}

func TestEmbed_RejectsBadParams(t *testing.T) {
	ds := makeDataset([]string{"x"}, [][]float64{tentMap(10, 0.3)})
	if _, err := Embed(ds, EmbedParams{TargetColumn: "x", E: 0, Tau: 1}); err == nil {
		t.Error("Embed with E=0 should error")
	}
	if _, err := Embed(ds, EmbedParams{TargetColumn: "x", E: 1, Tau: 0}); err == nil {
		t.Error("Embed with Tau=0 should error")
	}
	if _, err := Embed(ds, EmbedParams{TargetColumn: "missing", E: 1, Tau: 1}); err == nil {
		t.Error("Embed with an unknown target column should error")
	}
}
