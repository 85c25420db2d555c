package edm

import (
	"context"
	"fmt"

	"edm/internal/pool"
)

// SweepE runs Predict once per embedding dimension in [eLo, eHi], re-
// embedding ds at each E, and reports the resulting rho (spec §4.10,
// "vary E holding tau and Tp fixed"). Runs are independent and are
// dispatched across a worker pool sized to the host's core count.
func SweepE(ds *Dataset, base EmbedParams, pp PredictParams, eLo, eHi int) ([]ESweepPoint, error) {
	if eLo < 1 || eHi < eLo {
		return nil, fmt.Errorf("edm: SweepE range [%d,%d]: %w", eLo, eHi, ErrInvalidParam)
	}
	n := eHi - eLo + 1
	results := pool.Run(context.Background(), n, 0, func(_ context.Context, i int) (ESweepPoint, error) {
		e := eLo + i
		ep := base
		ep.E = e
		ps, err := Embed(ds, ep)
		if err != nil {
			return ESweepPoint{}, err
		}
		res, err := Predict(ps, pp)
		if err != nil {
			return ESweepPoint{}, err
		}
		return ESweepPoint{E: e, Rho: res.Rho}, nil
	})
	return collectPoints[ESweepPoint](results)
}

// SweepTp runs Predict once per forecast horizon in [tpLo, tpHi], holding
// E and tau fixed (spec §4.10, "vary Tp").
func SweepTp(ds *Dataset, base EmbedParams, pp PredictParams, tpLo, tpHi int) ([]TpSweepPoint, error) {
	if tpHi < tpLo {
		return nil, fmt.Errorf("edm: SweepTp range [%d,%d]: %w", tpLo, tpHi, ErrInvalidParam)
	}
	n := tpHi - tpLo + 1
	results := pool.Run(context.Background(), n, 0, func(_ context.Context, i int) (TpSweepPoint, error) {
		tp := tpLo + i
		ep := base
		ep.Tp = tp
		ps, err := Embed(ds, ep)
		if err != nil {
			return TpSweepPoint{}, err
		}
		res, err := Predict(ps, pp)
		if err != nil {
			return TpSweepPoint{}, err
		}
		return TpSweepPoint{Tp: tp, Rho: res.Rho}, nil
	})
	return collectPoints[TpSweepPoint](results)
}

// SweepTheta runs S-Map once per nonlinearity parameter in thetas, holding
// the embedding fixed (spec §4.10, "vary theta"; this is the nonlinearity
// test from Sugihara 1994, identifying state dependence when skill peaks
// away from theta=0).
func SweepTheta(ps *PhaseSpace, base PredictParams, thetas []float64) ([]ThetaSweepPoint, error) {
	if len(thetas) == 0 {
		return nil, fmt.Errorf("edm: SweepTheta requires at least one theta: %w", ErrInvalidParam)
	}
	results := pool.Run(context.Background(), len(thetas), 0, func(_ context.Context, i int) (ThetaSweepPoint, error) {
		pp := base
		pp.Method = SMap
		pp.Theta = thetas[i]
		res, err := Predict(ps, pp)
		if err != nil {
			return ThetaSweepPoint{}, err
		}
		return ThetaSweepPoint{Theta: thetas[i], Rho: res.Rho}, nil
	})
	return collectPoints[ThetaSweepPoint](results)
}

func collectPoints[T any](results []pool.Result[T]) ([]T, error) {
	out := make([]T, len(results))
	for i, r := range results {
		if r.Err != nil {
			return nil, r.Err
		}
		out[i] = r.Value
	}
	return out, nil
}
