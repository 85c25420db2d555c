package edm

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ComputeErrorStats computes (ρ, r, RMSE, MAE) from two equal-length
// vectors, dropping any row where either entry is non-finite (spec §4.1).
//
// ρ is the Pearson correlation of obs and pred. r is the slope of the OLS
// fit pred ≈ a + r·obs — historically the same symbol as correlation, but
// documented here as the regression slope, which differs from ρ whenever
// obs and pred have different variances (Open Question #1 in spec §9,
// retained as specified).
func ComputeErrorStats(obs, pred []float64) (rho, r, rmse, mae float64, warnings []string, err error) {
	if len(obs) != len(pred) {
		return 0, 0, 0, 0, nil, fmt.Errorf("edm: obs/pred length mismatch %d/%d: %w", len(obs), len(pred), ErrShapeMismatch)
	}

	o := make([]float64, 0, len(obs))
	p := make([]float64, 0, len(pred))
	for i := range obs {
		if isFinite(obs[i]) && isFinite(pred[i]) {
			o = append(o, obs[i])
			p = append(p, pred[i])
		}
	}
	if len(o) < 2 {
		return 0, 0, 0, 0, nil, ErrInsufficientData
	}

	sdObs, _ := mstats.StandardDeviation(o)
	if sdObs == 0 {
		warnings = append(warnings, "ComputeErrorStats: zero variance in observed values, rho and r set to 0")
		rho, r = 0, 0
	} else {
		rho = stat.Correlation(o, p, nil)
		_, r = stat.LinearRegression(o, p, nil, false)
	}

	sqDiffs := make([]float64, len(o))
	absDiffs := make([]float64, len(o))
	for i := range o {
		d := p[i] - o[i]
		sqDiffs[i] = d * d
		absDiffs[i] = math.Abs(d)
	}
	meanSq, _ := mstats.Mean(sqDiffs)
	meanAbs, _ := mstats.Mean(absDiffs)
	rmse = math.Sqrt(meanSq)
	mae = meanAbs

	return rho, r, rmse, mae, warnings, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
