package edm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Predict orchestrates embedding slicing, neighbor search, and
// projection, then computes error statistics over the result (spec
// §4.7). ps is typically the output of Embed, but per Design Notes §9
// ("Embedding vs. reading pre-embedded data") a caller may also hand in
// a PhaseSpace assembled by hand — Predict never re-embeds.
func Predict(ps *PhaseSpace, p PredictParams) (*PredictionResult, error) {
	n := ps.Rows()
	if p.LibLo < 0 || p.LibHi > n || p.LibLo > p.LibHi ||
		p.PredLo < 0 || p.PredHi > n || p.PredLo > p.PredHi {
		return nil, fmt.Errorf("edm: Predict lib=[%d,%d) pred=[%d,%d) rows=%d: %w",
			p.LibLo, p.LibHi, p.PredLo, p.PredHi, n, ErrInvalidParam)
	}
	width := ps.Width()
	if p.Method == SMap && p.K != 0 && p.K < width+2 {
		return nil, fmt.Errorf("edm: S-Map k=%d must be >= E+2=%d: %w", p.K, width+2, ErrInvalidParam)
	}

	libPS, err := ps.slice(p.LibLo, p.LibHi)
	if err != nil {
		return nil, err
	}
	predPS, err := ps.slice(p.PredLo, p.PredHi)
	if err != nil {
		return nil, err
	}

	var warnings []string
	var predicted []float64
	var smapOut *SMapOutput

	switch p.Method {
	case Simplex:
		k := p.K
		if k == 0 {
			k = width + 1
		}
		indices, distances, err := Neighbors(libPS, predPS, k, p.ExclusionRadius)
		if err != nil {
			return nil, err
		}
		predicted = Simplex(libPS.Y, indices, distances)

	case SMap:
		var indices [][]int
		var distances [][]float64
		if p.K == 0 {
			indices, distances = AllNeighbors(libPS, predPS, p.ExclusionRadius)
		} else {
			indices, distances, err = Neighbors(libPS, predPS, p.K, p.ExclusionRadius)
			if err != nil {
				return nil, err
			}
		}
		sig := p.SVDSignificance
		if sig == 0 {
			sig = defaultSVDSignificance
		}
		preds, coeffs, smWarn, err := SMap(libPS.M, libPS.Y, predPS.M, indices, distances, p.Theta, sig)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, smWarn...)
		predicted = preds

		header, full, jerr := buildSMapHeader(coeffs, p.JacobianPairs)
		if jerr != nil {
			return nil, jerr
		}
		smapOut = &SMapOutput{Header: header, Coefficients: full}

	default:
		return nil, fmt.Errorf("edm: unknown method %d: %w", p.Method, ErrInvalidParam)
	}

	predTime := predPS.Time()
	outTime := make([]float64, len(predTime))
	for i, t := range predTime {
		outTime[i] = t + float64(p.Tp)
	}

	output := mat.NewDense(len(outTime), 3, nil)
	observed := predPS.Y
	for i := range outTime {
		output.Set(i, 0, outTime[i])
		output.Set(i, 1, observed[i])
		output.Set(i, 2, predicted[i])
	}

	if smapOut != nil {
		smapOut = prependTimeColumn(smapOut, outTime)
	}

	rho, r, rmse, mae, statWarn, err := ComputeErrorStats(observed, predicted)
	if err != nil && err != ErrInsufficientData {
		return nil, err
	}
	warnings = append(warnings, statWarn...)
	if err == ErrInsufficientData {
		warnings = append(warnings, "Predict: fewer than 2 finite (observed, predicted) pairs; rho/r/rmse/mae are 0")
	}

	return &PredictionResult{
		Rho: rho, R: r, RMSE: rmse, MAE: mae,
		Header:   []string{"time", "observed", "predicted"},
		Output:   output,
		SMap:     smapOut,
		Warnings: warnings,
	}, nil
}

func prependTimeColumn(out *SMapOutput, time []float64) *SMapOutput {
	rows, cols := out.Coefficients.Dims()
	full := mat.NewDense(rows, cols+1, nil)
	for i := 0; i < rows; i++ {
		full.Set(i, 0, time[i])
		for j := 0; j < cols; j++ {
			full.Set(i, j+1, out.Coefficients.At(i, j))
		}
	}
	header := append([]string{"time"}, out.Header...)
	return &SMapOutput{Header: header, Coefficients: full}
}

// buildSMapHeader appends requested Jacobian-product columns to the
// coefficient matrix and builds the matching header (spec §4.6).
func buildSMapHeader(coeffs *mat.Dense, pairs [][2]int) ([]string, *mat.Dense, error) {
	rows, cols := coeffs.Dims() // cols = 1(bias) + E
	e := cols - 1

	header := make([]string, cols)
	header[0] = "c0"
	for j := 1; j < cols; j++ {
		header[j] = fmt.Sprintf("c%d", j)
	}

	if len(pairs) == 0 {
		return header, mat.DenseCopyOf(coeffs), nil
	}

	full := mat.NewDense(rows, cols+len(pairs), nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			full.Set(i, j, coeffs.At(i, j))
		}
	}
	for pi, pair := range pairs {
		i, j := pair[0], pair[1]
		if i < 1 || i > e || j < 1 || j > e {
			return nil, nil, fmt.Errorf("edm: jacobian pair (%d,%d) out of [1,%d]: %w", i, j, e, ErrBadJacobianPair)
		}
		col := cols + pi
		header = append(header, fmt.Sprintf("jac_%d_%d", i, j))
		for row := 0; row < rows; row++ {
			full.Set(row, col, coeffs.At(row, i)*coeffs.At(row, j))
		}
	}
	return header, full, nil
}
