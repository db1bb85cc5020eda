package recipe

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// Table computes a result for every pair of oil weight and superfat.
func Table(oils []float64, superfats []int) []Result {
	results := make([]Result, 0, len(oils)*len(superfats))
	for _, oil := range oils {
		for _, sf := range superfats {
			results = append(results, Calculate(Input{OilGrams: oil, SuperfatPercent: sf}))
		}
	}
	return results
}

// ExportXLSX writes results as a spreadsheet with one row per result.
func ExportXLSX(path string, results []Result) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("recipe: stream writer: %w", err)
	}

	header := []any{"oil_g", "superfat_pct", "water_g", "lye_g"}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("recipe: header: %w", err)
	}

	for i, r := range results {
		row := []any{
			round1(r.OilGrams),
			r.SuperfatPercent,
			round1(r.WaterGrams),
			round1(r.LyeGrams),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("recipe: row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("recipe: flush: %w", err)
	}

	return f.SaveAs(path)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
