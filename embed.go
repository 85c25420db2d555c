package edm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Embed time-delay embeds one or more columns of ds into an
// E-dimensional (per column) phase-space matrix, per spec §3/§4.3.
//
// For a single column this produces dims [name(t), name(t-τ), name(t-2τ), ...]
// (or the forward equivalent). For multiple columns each contributes E
// consecutive columns, in the order given, so the total embedded width is
// len(Columns)*E.
func Embed(ds *Dataset, p EmbedParams) (*PhaseSpace, error) {
	if p.E < 1 || p.Tau < 1 {
		return nil, fmt.Errorf("edm: Embed E=%d tau=%d: %w", p.E, p.Tau, ErrInvalidParam)
	}
	columns := p.Columns
	if len(columns) == 0 {
		if p.TargetColumn == "" {
			return nil, fmt.Errorf("edm: Embed requires Columns or TargetColumn: %w", ErrInvalidParam)
		}
		columns = []string{p.TargetColumn}
	}
	target := p.TargetColumn
	if target == "" {
		target = columns[0]
	}

	srcs := make([][]float64, len(columns))
	for i, name := range columns {
		col := ds.Column(name)
		if col == nil {
			return nil, fmt.Errorf("edm: Embed column %q not found: %w", name, ErrInvalidParam)
		}
		srcs[i] = col
	}
	targetSrc := ds.Column(target)
	if targetSrc == nil {
		return nil, fmt.Errorf("edm: Embed target column %q not found: %w", target, ErrInvalidParam)
	}

	L := len(ds.Time)
	delRows := (p.E - 1) * p.Tau

	var lo, hi int // retained [lo, hi) of original indices
	if p.Direction == Backward {
		lo, hi = delRows, L
	} else {
		lo, hi = 0, L-delRows
	}
	if lo >= hi {
		return nil, fmt.Errorf("edm: Embed E=%d tau=%d leaves no rows for series of length %d: %w", p.E, p.Tau, L, ErrInvalidParam)
	}
	n := hi - lo

	width := len(columns)*p.E + 1
	M := mat.NewDense(n, width, nil)
	colNames := make([]string, width)
	colNames[0] = "time"

	for row := 0; row < n; row++ {
		origIdx := lo + row
		M.Set(row, 0, ds.Time[origIdx])
	}

	col := 1
	for ci, name := range columns {
		src := srcs[ci]
		for j := 0; j < p.E; j++ {
			lag := j * p.Tau
			colNames[col] = lagColumnName(name, j, p.Tau, p.Direction)
			for row := 0; row < n; row++ {
				origIdx := lo + row
				var srcIdx int
				if p.Direction == Backward {
					srcIdx = origIdx - lag
				} else {
					srcIdx = origIdx + lag
				}
				M.Set(row, col, src[srcIdx])
			}
			col++
		}
	}

	y := make([]float64, n)
	for row := 0; row < n; row++ {
		origIdx := lo + row
		shifted := origIdx + p.Tp
		if shifted < 0 || shifted >= L {
			y[row] = math.NaN()
		} else {
			y[row] = targetSrc[shifted]
		}
	}

	return &PhaseSpace{M: M, ColNames: colNames, Y: y, E: p.E}, nil
}

// lagColumnName formats dimension names as name(t), name(t-tau),
// name(t-2tau), ... (or the +tau forward equivalent), where mult is the
// multiple of tau this dimension is offset by.
func lagColumnName(name string, mult, tau int, dir Direction) string {
	if mult == 0 {
		return fmt.Sprintf("%s(t)", name)
	}
	sign := "-"
	if dir == Forward {
		sign = "+"
	}
	if mult == 1 {
		return fmt.Sprintf("%s(t%stau)", name, sign)
	}
	return fmt.Sprintf("%s(t%s%dtau)", name, sign, mult)
}
