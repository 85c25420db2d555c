package edm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// defaultSVDSignificance is applied when PredictParams.SVDSignificance is
// left at its zero value (spec §6 parameter enumeration).
const defaultSVDSignificance = 1e-5

// SMap computes locally-weighted linear regression forecasts solved by
// SVD (Sugihara, 1994; spec §4.6). indices[p]/distances[p] name the
// library rows used for prediction row p — pass every library row (k=0
// convention, "use all") or a k-NN subset per the caller's choice.
//
// Returns per-row predictions, the (len(indices) x E+1) coefficient
// matrix, E being the number of non-time columns of libM (bias first,
// then one coefficient per embedding dimension), and
// any non-fatal warnings (singular systems degrade that row to NaN).
func SMap(libM *mat.Dense, libY []float64, predM *mat.Dense, indices [][]int, distances [][]float64, theta, svdSignificance float64) (preds []float64, coeffs *mat.Dense, warnings []string, err error) {
	if svdSignificance <= 0 {
		svdSignificance = defaultSVDSignificance
	}
	_, width := libM.Dims() // includes time column
	nCoef := width // bias + (width-1) embedding dims => width total columns

	nPred := len(indices)
	preds = make([]float64, nPred)
	coeffs = mat.NewDense(nPred, nCoef, nil)

	for p := 0; p < nPred; p++ {
		c, rowWarn, singular := smapRow(libM, libY, indices[p], distances[p], theta, svdSignificance, nCoef)
		if rowWarn != "" {
			warnings = append(warnings, fmt.Sprintf("SMap row %d: %s", p, rowWarn))
		}
		for j := 0; j < nCoef; j++ {
			coeffs.Set(p, j, c[j])
		}
		if singular {
			preds[p] = math.NaN()
			continue
		}
		pred := c[0]
		for j := 1; j < nCoef; j++ {
			pred += c[j] * predM.At(p, j)
		}
		preds[p] = pred
	}
	return preds, coeffs, warnings, nil
}

// smapRow solves the weighted design matrix for one prediction row.
func smapRow(libM *mat.Dense, libY []float64, idx []int, dist []float64, theta, svdSignificance float64, nCoef int) (c []float64, warning string, singular bool) {
	c = make([]float64, nCoef)
	m := len(idx)
	if m == 0 {
		return c, "no library rows", true
	}

	dbar := 0.0
	for _, d := range dist {
		dbar += d
	}
	dbar /= float64(m)

	weights := make([]float64, m)
	if dbar == 0 {
		for i := range weights {
			weights[i] = 1
		}
	} else {
		for i, d := range dist {
			weights[i] = math.Exp(-theta * d / dbar)
		}
	}

	A := mat.NewDense(m, nCoef, nil)
	b := mat.NewVecDense(m, nil)
	for i, li := range idx {
		w := weights[i]
		A.Set(i, 0, w)
		for j := 1; j < nCoef; j++ {
			A.Set(i, j, w*libM.At(li, j))
		}
		b.SetVec(i, w*libY[li])
	}

	var svd mat.SVD
	if !svd.Factorize(A, mat.SVDThinU|mat.SVDThinV) {
		return c, "SVD factorization failed", true
	}

	sigma := svd.Values(nil)
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)

	maxSigma := 0.0
	for _, s := range sigma {
		if s > maxSigma {
			maxSigma = s
		}
	}
	thresh := svdSignificance * maxSigma

	anyUsable := false
	for r, s := range sigma {
		if s < thresh {
			continue
		}
		anyUsable = true
		uCol := U.ColView(r)
		vCol := V.ColView(r)
		coef := mat.Dot(uCol, b) / s
		for j := 0; j < nCoef; j++ {
			c[j] += coef * vCol.AtVec(j)
		}
	}
	if !anyUsable {
		return c, fmt.Sprintf("no singular value above %.3g: %v", thresh, ErrSingularSystem), true
	}
	return c, "", false
}
