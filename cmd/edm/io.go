package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"edm"

	"gonum.org/v1/gonum/mat"
)

// loadCSVDataset reads a CSV file into a Dataset, adapted from the
// teacher's LoadCSVToTimeSeries: first column is time, remaining columns
// are header-named observation variables, all numeric.
func loadCSVDataset(path string) (*edm.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%s: expected a time column plus at least one variable column", path)
	}
	colNames := header[1:]
	k := len(colNames)

	var data []float64
	var times []float64
	row := 0

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+2, err)
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}
		if len(record) != k+1 {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", row+2, k+1, len(record))
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parse time at row %d (%q): %w", row+2, record[0], err)
		}
		times = append(times, t)

		for j, s := range record[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("parse float at row %d col %d (%q): %w", row+2, j+2, s, err)
			}
			data = append(data, v)
		}
		row++
	}
	if row == 0 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	return &edm.Dataset{
		Time:     times,
		Values:   mat.NewDense(row, k, data),
		ColNames: colNames,
	}, nil
}

func printPredictionResult(res *edm.PredictionResult) {
	fmt.Printf("rho=%.4f r=%.4f rmse=%.4f mae=%.4f\n", res.Rho, res.R, res.RMSE, res.MAE)
	for _, w := range res.Warnings {
		fmt.Println("warning:", w)
	}
	fmt.Println(mat.Formatted(res.Output, mat.Prefix(" ")))
	if res.SMap != nil {
		fmt.Println("\n=== S-Map coefficients ===")
		fmt.Println(mat.Formatted(res.SMap.Coefficients, mat.Prefix(" ")))
	}
}
