package edm

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Multiview runs the multiview ensemble forecaster (Ye & Sugihara, 2016;
// spec §4.9): embed all m columns together at dimension E, rank every
// E-sized coordinate subset by in-sample skill, keep the top K, forecast
// out-of-sample with each, and average row-wise across the ensemble.
func Multiview(ds *Dataset, p MultiviewParams) (*MultiviewResult, error) {
	if len(p.Columns) == 0 {
		return nil, fmt.Errorf("edm: Multiview requires Columns: %w", ErrInvalidParam)
	}
	if p.E < 1 || p.Tau < 1 {
		return nil, fmt.Errorf("edm: Multiview E=%d tau=%d: %w", p.E, p.Tau, ErrInvalidParam)
	}

	ps, err := Embed(ds, EmbedParams{
		Columns:      p.Columns,
		TargetColumn: p.TargetColumn,
		E:            p.E,
		Tau:          p.Tau,
		Direction:    Backward,
		Tp:           p.Tp,
	})
	if err != nil {
		return nil, err
	}

	m := len(p.Columns)
	subsets := enumerateSubsets(m, p.E)
	if len(subsets) == 0 {
		return nil, fmt.Errorf("edm: Multiview found no valid column subsets for %d columns at E=%d: %w", m, p.E, ErrInvalidParam)
	}

	k := p.K
	if k == 0 {
		k = int(math.Max(2, math.Floor(math.Sqrt(float64(len(subsets))))))
	}

	type ranked struct {
		cols []int
		rho  float64
	}
	scored := make([]ranked, 0, len(subsets))
	for _, cols := range subsets {
		sub, err := projectColumns(ps, cols)
		if err != nil {
			return nil, err
		}
		res, err := Predict(sub, PredictParams{
			Method: Simplex, LibLo: p.LibLo, LibHi: p.LibHi,
			PredLo: p.LibLo, PredHi: p.LibHi, Tp: p.Tp,
			ExclusionRadius: p.ExclusionRadius,
		})
		if err != nil {
			return nil, err
		}
		scored = append(scored, ranked{cols: cols, rho: res.Rho})
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].rho > scored[j].rho })
	if k > len(scored) {
		k = len(scored)
	}
	top := scored[:k]

	nOut := p.PredHi - p.PredLo
	sumPred := make([]float64, nOut)
	components := make([]MultiviewComponent, 0, k)
	var observed, timeCol []float64

	for _, t := range top {
		sub, err := projectColumns(ps, t.cols)
		if err != nil {
			return nil, err
		}
		res, err := Predict(sub, PredictParams{
			Method: Simplex, LibLo: p.LibLo, LibHi: p.LibHi,
			PredLo: p.PredLo, PredHi: p.PredHi, Tp: p.Tp,
			ExclusionRadius: p.ExclusionRadius,
		})
		if err != nil {
			return nil, err
		}
		if observed == nil {
			rows, _ := res.Output.Dims()
			observed = make([]float64, rows)
			timeCol = make([]float64, rows)
			for i := 0; i < rows; i++ {
				timeCol[i] = res.Output.At(i, 0)
				observed[i] = res.Output.At(i, 1)
			}
		}
		rows, _ := res.Output.Dims()
		for i := 0; i < rows; i++ {
			sumPred[i] += res.Output.At(i, 2)
		}
		components = append(components, MultiviewComponent{
			Columns: t.cols, InSampleRho: t.rho, OutSampleRho: res.Rho,
		})
	}

	prediction := make([]float64, nOut)
	for i := range prediction {
		prediction[i] = sumPred[i] / float64(k)
	}

	rho, _, rmse, mae, _, err := ComputeErrorStats(observed, prediction)
	if err != nil && err != ErrInsufficientData {
		return nil, err
	}

	return &MultiviewResult{
		Time: timeCol, Observed: observed, Prediction: prediction,
		Rho: rho, RMSE: rmse, MAE: mae, Components: components,
	}, nil
}

// enumerateSubsets lists every E-sized combination of the m embedded
// variables' coordinate blocks that includes at least one "unlagged"
// coordinate (spec §4.9: a subset with no tau=0 coordinate for any
// variable cannot anchor a forecast to the present). Coordinates are
// numbered 1..m*E in embedding order; coordinate j belongs to variable
// (j-1)/E and is unlagged when (j-1)%E == 0.
func enumerateSubsets(m, e int) [][]int {
	total := m * e
	var subsets [][]int
	var combo func(start int, cur []int)
	combo = func(start int, cur []int) {
		if len(cur) == e {
			if hasUnlagged(cur, e) {
				subsets = append(subsets, append([]int(nil), cur...))
			}
			return
		}
		for c := start; c <= total-(e-len(cur)); c++ {
			combo(c+1, append(cur, c))
		}
	}
	combo(1, nil)
	return subsets
}

func hasUnlagged(cols []int, e int) bool {
	for _, c := range cols {
		if (c-1)%e == 0 {
			return true
		}
	}
	return false
}

// projectColumns builds a PhaseSpace restricted to the given 1-based
// embedding coordinates (plus time), sharing no backing storage with ps.
func projectColumns(ps *PhaseSpace, cols []int) (*PhaseSpace, error) {
	n := ps.Rows()
	width := len(cols) + 1
	M := mat.NewDense(n, width, nil)
	colNames := make([]string, width)
	colNames[0] = "time"
	for row := 0; row < n; row++ {
		M.Set(row, 0, ps.M.At(row, 0))
	}
	for j, c := range cols {
		if c < 1 || c > ps.Width() {
			return nil, fmt.Errorf("edm: Multiview coordinate %d out of [1,%d]: %w", c, ps.Width(), ErrInvalidParam)
		}
		colNames[j+1] = ps.ColNames[c]
		for row := 0; row < n; row++ {
			M.Set(row, j+1, ps.M.At(row, c))
		}
	}
	return &PhaseSpace{
		M:        M,
		ColNames: colNames,
		Y:        append([]float64(nil), ps.Y...),
		E:        ps.E,
	}, nil
}
