package edm

import (
	"fmt"
	"math"
	"math/rand"
)

// CCM runs convergent cross mapping in both directions between
// DriverColumn and TargetColumn (Sugihara et al., 2012; spec §4.8).
// "X cross maps Y" means X's reconstructed manifold is used to predict
// Y — a skillful cross map from X indicates Y's dynamics are embedded
// in X, i.e. that Y causally forces X, so CCMResult.ColToTarget reports
// driver-embeds-predicts-target skill and TargetToCol the reverse.
func CCM(ds *Dataset, p CCMParams) (*CCMResult, error) {
	if p.E < 1 || p.Tau < 1 {
		return nil, fmt.Errorf("edm: CCM E=%d tau=%d: %w", p.E, p.Tau, ErrInvalidParam)
	}
	start, stop, step := p.LibSizes[0], p.LibSizes[1], p.LibSizes[2]
	if step <= 0 || start < 1 || stop < start {
		return nil, fmt.Errorf("edm: CCM lib size schedule [%d,%d,%d]: %w", start, stop, step, ErrInvalidParam)
	}

	colToTarget, err := crossMap(ds, p.DriverColumn, p.TargetColumn, p)
	if err != nil {
		return nil, err
	}
	targetToCol, err := crossMap(ds, p.TargetColumn, p.DriverColumn, p)
	if err != nil {
		return nil, err
	}
	return &CCMResult{ColToTarget: colToTarget, TargetToCol: targetToCol}, nil
}

// crossMap embeds "from" and cross-predicts "to" at every library size in
// p.LibSizes, averaging stats over resampled libraries per size: p.Subsample
// random draws when RandomLib, or one contiguous window per sample index
// 0..stop-1 otherwise (spec §4.8 "library size schedule").
func crossMap(ds *Dataset, from, to string, p CCMParams) (map[int]CCMLibStat, error) {
	ps, err := Embed(ds, EmbedParams{
		Columns:      []string{from},
		TargetColumn: to,
		E:            p.E,
		Tau:          p.Tau,
		Direction:    Backward,
		Tp:           p.Tp,
	})
	if err != nil {
		return nil, err
	}
	n := ps.Rows()
	dm := NewDistanceMatrix(ps)
	k := ps.E + 1

	// Sample count per spec §4.8: S = subsample when randomLib, else
	// S = stop (the schedule's upper bound) so the contiguous case
	// sweeps one sample per possible window start.
	samples := p.LibSizes[1]
	if p.RandomLib {
		samples = p.Subsample
	}
	if samples < 1 {
		samples = 1
	}
	rng := rand.New(rand.NewSource(p.Seed))

	out := make(map[int]CCMLibStat)
	for libSize := p.LibSizes[0]; libSize <= p.LibSizes[1]; libSize += p.LibSizes[2] {
		if libSize > n {
			break
		}
		var rhoSum, rSum, rmseSum, maeSum float64
		valid := 0
		for s := 0; s < samples; s++ {
			libIdx := drawLibrary(rng, s, n, libSize, p.RandomLib)
			obs, pred := crossPredictAll(ps, dm, libIdx, k, p.ExclusionRadius)
			rho, r, rmse, mae, _, err := ComputeErrorStats(obs, pred)
			if err == ErrInsufficientData {
				continue
			}
			if err != nil {
				return nil, err
			}
			rhoSum += rho
			rSum += r
			rmseSum += rmse
			maeSum += mae
			valid++
		}
		if valid == 0 {
			out[libSize] = CCMLibStat{}
			continue
		}
		out[libSize] = CCMLibStat{
			Rho:  rhoSum / float64(valid),
			R:    rSum / float64(valid),
			RMSE: rmseSum / float64(valid),
			MAE:  maeSum / float64(valid),
		}
	}
	return out, nil
}

// drawLibrary picks libSize row indices from [0, n) for sample s. RandomLib
// samples uniformly with replacement using rng; otherwise it takes the
// contiguous block [s, s+libSize), wrapping to the origin if that block
// would run past n (spec §4.8, Open Question #2: intentional but unusual
// temporal discontinuity).
func drawLibrary(rng *rand.Rand, s, n, libSize int, random bool) []int {
	idx := make([]int, libSize)
	if random {
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		return idx
	}
	start := s % n
	if start+libSize > n {
		start = 0
	}
	for i := range idx {
		idx[i] = (start + i) % n
	}
	return idx
}

// crossPredictAll Simplex-projects every row of ps against the library
// libIdx, using the precomputed distance matrix dm, and returns the
// paired (observed, predicted) vectors for error-stat computation.
func crossPredictAll(ps *PhaseSpace, dm *DistanceMatrix, libIdx []int, k, exclusionRadius int) (obs, pred []float64) {
	n := ps.Rows()
	obs = make([]float64, n)
	pred = make([]float64, n)
	for row := 0; row < n; row++ {
		idx, dist, err := neighborsForRow(dm, libIdx, row, k, exclusionRadius)
		obs[row] = ps.Y[row]
		if err != nil {
			pred[row] = math.NaN()
			continue
		}
		libLocalY := make([]float64, len(libIdx))
		for i, g := range libIdx {
			libLocalY[i] = ps.Y[g]
		}
		pred[row] = simplexRow(libLocalY, idx, dist)
	}
	return obs, pred
}
