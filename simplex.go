package edm

import "math"

// Simplex computes exponentially-weighted convex-combination forecasts
// from neighbor targets (Sugihara & May, 1990; spec §4.5).
//
// indices[p][j] is the library-local row supplying the jth neighbor
// target for prediction row p; distances holds the matching distances.
func Simplex(libY []float64, indices [][]int, distances [][]float64) []float64 {
	preds := make([]float64, len(indices))
	for p := range indices {
		preds[p] = simplexRow(libY, indices[p], distances[p])
	}
	return preds
}

func simplexRow(libY []float64, idx []int, dist []float64) float64 {
	if len(idx) == 0 {
		return math.NaN()
	}
	d1 := dist[0]
	for _, d := range dist[1:] {
		if d < d1 {
			d1 = d
		}
	}
	if d1 >= unusableDistance {
		return math.NaN()
	}

	weights := make([]float64, len(idx))
	if d1 == 0 {
		// Avoid division by zero: weight 1 to every zero-distance
		// neighbor, 0 to the rest (Sugihara convention).
		for j, d := range dist {
			if d == 0 {
				weights[j] = 1
			}
		}
	} else {
		for j, d := range dist {
			weights[j] = math.Exp(-d / d1)
		}
	}

	var num, den float64
	for j, w := range weights {
		num += w * libY[idx[j]]
		den += w
	}
	if den == 0 {
		return math.NaN()
	}
	return num / den
}
