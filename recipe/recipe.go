// Package recipe computes how much water and lye a batch of oil needs.
package recipe

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// SAPValue is the NaOH saponification value of an average olive and
	// coconut oil blend, in grams of lye per gram of oil.
	SAPValue = 0.137

	// WaterRatio is the water weight as a fraction of oil weight.
	WaterRatio = 0.38

	// MaxSuperfat bounds the superfat percentage.
	MaxSuperfat = 100
)

// Input is what the visitor types into the calculator.
type Input struct {
	OilGrams        float64 `json:"oil_grams"`
	SuperfatPercent int     `json:"superfat_percent"`
}

// Result is the calculator output.
type Result struct {
	OilGrams        float64 `json:"oil_grams"`
	SuperfatPercent int     `json:"superfat_percent"`
	WaterGrams      float64 `json:"water_grams"`
	LyeGrams        float64 `json:"lye_grams"`
}

// ParseInput reads the raw form values. Values that do not parse count as
// zero, like an empty field.
func ParseInput(oil, superfat string) Input {
	var in Input

	if v, err := strconv.ParseFloat(strings.TrimSpace(oil), 64); err == nil {
		in.OilGrams = v
	}

	if v, err := strconv.Atoi(strings.TrimSpace(superfat)); err == nil {
		in.SuperfatPercent = v
	}

	return in
}

// Calculate applies the beginner formula:
//
//	water = oil × 0.38
//	lye   = oil × 0.137 × (1 − superfat/100)
//
// Negative or non-finite oil weights count as zero and the superfat is
// clamped to [0, 100].
func Calculate(in Input) Result {
	oil := in.OilGrams
	if math.IsNaN(oil) || math.IsInf(oil, 0) || oil < 0 {
		oil = 0
	}

	superfat := min(max(in.SuperfatPercent, 0), MaxSuperfat)

	return Result{
		OilGrams:        oil,
		SuperfatPercent: superfat,
		WaterGrams:      oil * WaterRatio,
		LyeGrams:        oil * SAPValue * (1 - float64(superfat)/100),
	}
}

// WaterLabel formats the water weight as shown on the page, e.g. "190.0g".
func (r Result) WaterLabel() string {
	return fmt.Sprintf("%.1fg", r.WaterGrams)
}

// LyeLabel formats the lye weight, e.g. "65.1g".
func (r Result) LyeLabel() string {
	return fmt.Sprintf("%.1fg", r.LyeGrams)
}

// SuperfatLabel formats the superfat, e.g. "5%".
func (r Result) SuperfatLabel() string {
	return fmt.Sprintf("%d%%", r.SuperfatPercent)
}

func (r Result) String() string {
	return fmt.Sprintf("oil %.1fg, superfat %s: water %s, lye %s",
		r.OilGrams, r.SuperfatLabel(), r.WaterLabel(), r.LyeLabel())
}
