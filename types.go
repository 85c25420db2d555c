package edm

import "gonum.org/v1/gonum/mat"

// Dataset is the raw tabular input: a monotone ordinal time column and one
// or more real-valued observation columns. It is the pre-embedding
// counterpart of the teacher repo's TimeSeries struct — that type held
// already-lagged VAR observations, this one holds the columns Embed
// consumes to build a PhaseSpace.
type Dataset struct {
	Time     []float64
	Values   *mat.Dense // T x K, column order matches ColNames
	ColNames []string
}

// Column returns the named column as a plain slice, or nil if absent.
func (ds *Dataset) Column(name string) []float64 {
	idx := ds.columnIndex(name)
	if idx < 0 {
		return nil
	}
	t, _ := ds.Values.Dims()
	out := make([]float64, t)
	for i := 0; i < t; i++ {
		out[i] = ds.Values.At(i, idx)
	}
	return out
}

func (ds *Dataset) columnIndex(name string) int {
	for i, n := range ds.ColNames {
		if n == name {
			return i
		}
	}
	return -1
}

// Direction selects whether lagged coordinates look backward (t, t-τ,
// t-2τ, ...) or forward (t, t+τ, t+2τ, ...) from the unlagged observation.
type Direction int

const (
	Backward Direction = iota
	Forward
)

// EmbedParams configures time-delay embedding (spec §4.3).
type EmbedParams struct {
	// Columns to embed, in order. Each contributes E consecutive columns
	// to the output. If empty, TargetColumn alone is embedded.
	Columns []string
	// TargetColumn is shifted by Tp to build the aligned target vector.
	TargetColumn string
	E           int
	Tau         int
	Direction   Direction
	Tp          int
}

// PhaseSpace is the embedded N x (E_total+1) matrix M (column 0 = time)
// together with the column names and the Tp-aligned, possibly NaN-padded
// target vector Y.
type PhaseSpace struct {
	M        *mat.Dense
	ColNames []string
	Y        []float64
	E        int // embedding dimension used to build M (per variable)
}

// Rows returns the number of rows in M.
func (ps *PhaseSpace) Rows() int {
	r, _ := ps.M.Dims()
	return r
}

// Width returns the number of non-time columns in M.
func (ps *PhaseSpace) Width() int {
	_, c := ps.M.Dims()
	return c - 1
}

// Time returns column 0 of M as a plain slice.
func (ps *PhaseSpace) Time() []float64 {
	n := ps.Rows()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = ps.M.At(i, 0)
	}
	return out
}

// slice returns the row range [lo, hi) of ps as an independent PhaseSpace,
// sharing no backing storage with the original (callers mutate freely).
func (ps *PhaseSpace) slice(lo, hi int) (*PhaseSpace, error) {
	n := ps.Rows()
	if lo < 0 || hi > n || lo > hi {
		return nil, ErrInvalidParam
	}
	_, w := ps.M.Dims()
	sub := mat.DenseCopyOf(ps.M.Slice(lo, hi, 0, w))
	return &PhaseSpace{
		M:        sub,
		ColNames: ps.ColNames,
		Y:        append([]float64(nil), ps.Y[lo:hi]...),
		E:        ps.E,
	}, nil
}

// Method selects the projector used by the prediction driver.
type Method int

const (
	Simplex Method = iota
	SMap
)

// PredictParams configures a single call to Predict (spec §4.7).
type PredictParams struct {
	Method Method

	// Half-open row ranges into the PhaseSpace being predicted from/over.
	LibLo, LibHi   int
	PredLo, PredHi int

	// Tp is the forecast horizon the embedding already baked into Y; it
	// is carried here only to label the output time column (row r's
	// prediction targets time[r]+Tp, not time[r]).
	Tp int

	// K is k_NN. 0 means "use the method's default": E+1 for Simplex,
	// all library rows for S-Map.
	K int

	// Theta is the S-Map locality exponent (ignored by Simplex).
	Theta float64

	// SVDSignificance zeroes singular values below this fraction of the
	// largest one (S-Map only). 0 selects the spec default of 1e-5.
	SVDSignificance float64

	// ExclusionRadius excludes library rows within this many time steps
	// of the prediction row (0 excludes only exact time coincidence).
	ExclusionRadius int

	// JacobianPairs requests derived columns C[:,i]*C[:,j] in the S-Map
	// coefficient table (S-Map only). Indices are 1-based coefficient
	// indices; 0 (the bias term) is rejected.
	JacobianPairs [][2]int
}

// PredictionResult is the outcome of a prediction driver run (spec §4.7).
type PredictionResult struct {
	Rho, R, RMSE, MAE float64

	// Header is {"time", "observed", "predicted"}; Output has one row
	// per prediction and those three columns.
	Header []string
	Output *mat.Dense

	// SMap is non-nil only when Method == SMap.
	SMap *SMapOutput

	// Warnings accumulates non-fatal per-row degradations (singular
	// systems, zero-variance error stats) without aborting the run.
	Warnings []string
}

// SMapOutput carries the per-row linear coefficients and any requested
// Jacobian-product columns (spec §4.6).
type SMapOutput struct {
	Header       []string // {"time", "c0", "c1", ..., "cE", jac columns...}
	Coefficients *mat.Dense
}

// CCMParams configures a convergent cross mapping run (spec §4.8).
type CCMParams struct {
	DriverColumn string // X: embedded to build the library
	TargetColumn string // Y: cross-predicted from X's manifold
	E            int
	Tau          int
	Tp           int

	// LibSizes is an inclusive [start, stop, step] schedule.
	LibSizes [3]int

	Subsample       int
	RandomLib       bool
	Seed            int64
	ExclusionRadius int
}

// CCMLibStat is the averaged error-stats at one library size.
type CCMLibStat struct {
	Rho, R, RMSE, MAE float64
}

// CCMResult holds both cross-mapping directions, each a libSize -> stats
// map (spec §6 "two maps").
type CCMResult struct {
	ColToTarget map[int]CCMLibStat
	TargetToCol map[int]CCMLibStat
}

// MultiviewParams configures a multiview ensemble run (spec §4.9).
type MultiviewParams struct {
	Columns      []string // m columns embedded together
	TargetColumn string
	E            int
	Tau          int
	Tp           int

	LibLo, LibHi   int
	PredLo, PredHi int

	// K is multiview_K; 0 selects max(2, floor(sqrt(#subsets))).
	K int

	ExclusionRadius int
}

// MultiviewComponent records one retained embedding-column subset and its
// in-sample/out-of-sample skill.
type MultiviewComponent struct {
	Columns      []int // 1-based column indices into the m*E embedding
	InSampleRho  float64
	OutSampleRho float64
}

// MultiviewResult is the averaged ensemble prediction plus its components.
type MultiviewResult struct {
	Time       []float64
	Observed   []float64
	Prediction []float64

	Rho, RMSE, MAE float64
	Components     []MultiviewComponent
}

// ESweepPoint is one (E, rho) sample from SweepE.
type ESweepPoint struct {
	E   int
	Rho float64
}

// TpSweepPoint is one (Tp, rho) sample from SweepTp.
type TpSweepPoint struct {
	Tp  int
	Rho float64
}

// ThetaSweepPoint is one (theta, rho) sample from SweepTheta.
type ThetaSweepPoint struct {
	Theta float64
	Rho   float64
}
