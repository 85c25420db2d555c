package edm

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

type neighborCandidate struct {
	idx  int
	dist float64
}

// Neighbors finds, for every row of pred, the k nearest rows of lib under
// a time-gap exclusion (spec §4.4). Returned indices are library-local
// (0..lib.Rows()), and distances are the matching Euclidean distances.
// Ties are broken by ascending library index.
func Neighbors(lib, pred *PhaseSpace, k, exclusionRadius int) ([][]int, [][]float64, error) {
	if k <= 0 {
		return nil, nil, fmt.Errorf("edm: Neighbors k=%d: %w", k, ErrInvalidParam)
	}
	nPred := pred.Rows()
	libTimes := lib.Time()

	indices := make([][]int, nPred)
	dists := make([][]float64, nPred)

	for p := 0; p < nPred; p++ {
		distances := rowDistances(lib.M, pred.M, p)
		cands := gatherCandidates(libTimes, pred.M.At(p, 0), distances, exclusionRadius)
		idx, d, err := takeK(cands, k)
		if err != nil {
			return nil, nil, err
		}
		indices[p] = idx
		dists[p] = d
	}
	return indices, dists, nil
}

// AllNeighbors returns every library row surviving the gap exclusion for
// each prediction row, with no k truncation — S-Map's k=0 convention of
// "use all available library rows" (spec §4.6).
func AllNeighbors(lib, pred *PhaseSpace, exclusionRadius int) ([][]int, [][]float64) {
	nPred := pred.Rows()
	libTimes := lib.Time()

	indices := make([][]int, nPred)
	dists := make([][]float64, nPred)
	for p := 0; p < nPred; p++ {
		distances := rowDistances(lib.M, pred.M, p)
		cands := gatherCandidates(libTimes, pred.M.At(p, 0), distances, exclusionRadius)
		idx := make([]int, len(cands))
		d := make([]float64, len(cands))
		for i, c := range cands {
			idx[i] = c.idx
			d[i] = c.dist
		}
		indices[p] = idx
		dists[p] = d
	}
	return indices, dists
}

func rowDistances(lib, pred *mat.Dense, predRow int) []float64 {
	nLib, _ := lib.Dims()
	out := make([]float64, nLib)
	for l := 0; l < nLib; l++ {
		out[l] = rowDistance(lib, l, pred, predRow)
	}
	return out
}

// gatherCandidates filters out library rows within exclusionRadius time
// steps of predTime and sorts the survivors ascending by distance, ties
// broken by ascending library index.
func gatherCandidates(libTimes []float64, predTime float64, distances []float64, exclusionRadius int) []neighborCandidate {
	cands := make([]neighborCandidate, 0, len(distances))
	for i, d := range distances {
		if math.Abs(libTimes[i]-predTime) <= float64(exclusionRadius) {
			continue
		}
		cands = append(cands, neighborCandidate{idx: i, dist: d})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].idx < cands[j].idx
	})
	return cands
}

// takeK truncates sorted candidates to the first k, failing if fewer than
// k survived exclusion.
func takeK(cands []neighborCandidate, k int) ([]int, []float64, error) {
	if len(cands) < k {
		return nil, nil, fmt.Errorf("edm: need %d neighbors, only %d available: %w", k, len(cands), ErrLibraryTooSmall)
	}
	idx := make([]int, k)
	d := make([]float64, k)
	for i := 0; i < k; i++ {
		idx[i] = cands[i].idx
		d[i] = cands[i].dist
	}
	return idx, d, nil
}

// neighborsForRow is the CCM variant of Neighbors (spec §4.4 "CCM uses a
// variant that precomputes the full N×N symmetric distance matrix once,
// then subsets rows and columns by a library-index list"). libIdx may
// contain repeated global row indices when CCM's random subsampling draws
// with replacement; returned indices are local positions within libIdx.
func neighborsForRow(dm *DistanceMatrix, libIdx []int, predGlobal, k, exclusionRadius int) ([]int, []float64, error) {
	libTimes := make([]float64, len(libIdx))
	distances := make([]float64, len(libIdx))
	for i, g := range libIdx {
		libTimes[i] = dm.Time(g)
		distances[i] = dm.At(g, predGlobal)
	}
	cands := gatherCandidates(libTimes, dm.Time(predGlobal), distances, exclusionRadius)
	return takeK(cands, k)
}
