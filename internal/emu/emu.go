// Package emu converts physical lengths into English Metric Units, the
// fixed-point length unit of OOXML presentation documents.
package emu

import "math"

// EMU per physical unit.
const (
	PerInch       = 914400
	PerCentimeter = 360000
	PerMillimeter = 36000
	PerPoint      = 12700
	PerPixel      = 9525 // 96 px per inch
)

// FromInches converts a length in inches to whole EMU.
// Rounding is half-away-from-zero (math.Round); consumers of presentation
// documents expect exact integers, so the rule is fixed and tested.
// Negative inputs are a caller contract violation and are propagated
// unchanged rather than clamped.
func FromInches(in float64) int64 {
	return int64(math.Round(in * PerInch))
}

// FromCentimeters converts a length in centimeters to whole EMU.
func FromCentimeters(cm float64) int64 {
	return int64(math.Round(cm * PerCentimeter))
}

// FromMillimeters converts a length in millimeters to whole EMU.
func FromMillimeters(mm float64) int64 {
	return int64(math.Round(mm * PerMillimeter))
}

// FromPoints converts a length in typographic points to whole EMU.
func FromPoints(pt float64) int64 {
	return int64(math.Round(pt * PerPoint))
}

// FromPixels converts a length in 96-dpi device pixels to whole EMU.
func FromPixels(px float64) int64 {
	return int64(math.Round(px * PerPixel))
}

// ToInches converts whole EMU back to inches.
func ToInches(v int64) float64 {
	return float64(v) / PerInch
}
