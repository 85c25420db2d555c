package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"edm"
)

// main is the CLI entrypoint, adapted from the teacher's single-country
// VAR driver into a general EDM command line whose flag names mirror
// pyEDM's ArgParse.py (-m method, -E embed dimension, -T Tp, -u tau,
// -c columns, -r target, -l library, -p prediction, -t theta, -k knn).
func main() {
	var (
		method   = flag.String("m", "Simplex", "Simplex or SMap")
		input    = flag.String("i", "", "input observation CSV (required)")
		columns  = flag.String("c", "", "comma-separated data column names to embed")
		target   = flag.String("r", "", "target column name")
		e        = flag.Int("E", 0, "embedding dimension")
		tau      = flag.Int("u", 1, "time delay tau")
		tp       = flag.Int("T", 0, "forecast interval Tp")
		k        = flag.Int("k", 0, "number of nearest neighbors (0 = method default)")
		theta    = flag.Float64("t", 0, "S-Map local weighting exponent")
		svdSig   = flag.Float64("sig", 0, "S-Map SVD significance (0 = 1e-5 default)")
		library  = flag.String("l", "1,10", "library start,stop indices (1-based, inclusive)")
		pred     = flag.String("p", "1,10", "prediction start,stop indices (1-based, inclusive)")
		forward  = flag.Bool("f", false, "embed as t+tau instead of t-tau")
		radius   = flag.Int("x", 0, "exclusion radius in time steps")
		jacobian = flag.String("j", "", "comma-separated S-Map jacobian column pairs")
	)
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "edm: -i input file is required")
		flag.Usage()
		os.Exit(2)
	}

	ds, err := loadCSVDataset(*input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "edm:", err)
		os.Exit(1)
	}

	libLo, libHi, err := parseRange(*library)
	if err != nil {
		fmt.Fprintln(os.Stderr, "edm: -l", err)
		os.Exit(2)
	}
	predLo, predHi, err := parseRange(*pred)
	if err != nil {
		fmt.Fprintln(os.Stderr, "edm: -p", err)
		os.Exit(2)
	}

	dir := edm.Backward
	if *forward {
		dir = edm.Forward
	}
	cols := splitNonEmpty(*columns)

	ps, err := edm.Embed(ds, edm.EmbedParams{
		Columns:      cols,
		TargetColumn: *target,
		E:            *e,
		Tau:          *tau,
		Direction:    dir,
		Tp:           *tp,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "edm:", err)
		os.Exit(1)
	}

	pairs, err := parseJacobianPairs(*jacobian)
	if err != nil {
		fmt.Fprintln(os.Stderr, "edm: -j", err)
		os.Exit(2)
	}

	m := edm.Simplex
	if strings.EqualFold(*method, "smap") {
		m = edm.SMap
	}

	res, err := edm.Predict(ps, edm.PredictParams{
		Method:          m,
		LibLo:           libLo,
		LibHi:           libHi,
		PredLo:          predLo,
		PredHi:          predHi,
		Tp:              *tp,
		K:               *k,
		Theta:           *theta,
		SVDSignificance: *svdSig,
		ExclusionRadius: *radius,
		JacobianPairs:   pairs,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "edm:", err)
		os.Exit(1)
	}

	printPredictionResult(res)
}

// parseRange parses a "start,stop" 1-based inclusive string into a
// zero-offset half-open [lo, hi) range, matching ArgParse.py's index
// conversion.
func parseRange(s string) (lo, hi int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected start,stop, got %q", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	stop, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start - 1, stop, nil
}

func splitNonEmpty(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseJacobianPairs parses "-j 1,2,1,3" into [(1,2),(1,3)], requiring an
// even count of positive column indices (pyEDM's column-0-forbidden,
// must-be-pairs rule from ArgParse.py).
func parseJacobianPairs(s string) ([][2]int, error) {
	fields := splitNonEmpty(s)
	if len(fields) == 0 {
		return nil, nil
	}
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("jacobian column indices must be in pairs, got %d", len(fields))
	}
	pairs := make([][2]int, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		a, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, err
		}
		b, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, err
		}
		if a < 1 || b < 1 {
			return nil, fmt.Errorf("jacobian column indices must be positive (column 0 is the bias term), got %d,%d", a, b)
		}
		pairs = append(pairs, [2]int{a, b})
	}
	return pairs, nil
}
