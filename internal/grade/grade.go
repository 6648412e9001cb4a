// Package grade classifies numeric scores into letters, tiers and bands.
//
// All functions are total: every real number, including negatives, values
// above the scale and NaN, maps to exactly one bucket.
package grade

import "math"

// Native scales of the classification functions.
const (
	Scale100 = 100.0
	Scale10  = 10.0
)

// ColorTier is the presentation class attached to a letter grade.
type ColorTier string

const (
	ColorSuccess ColorTier = "success"
	ColorInfo    ColorTier = "info"
	ColorWarning ColorTier = "warning"
	ColorCaution ColorTier = "caution"
	ColorDanger  ColorTier = "danger"
)

// Grade is a letter grade with its color.
type Grade struct {
	Letter string    `json:"letter"`
	Tier   ColorTier `json:"colorTier"`
	Color  string    `json:"color"`
}

// Breakpoints are inclusive lower bounds, checked from the top.
var letterScale = []struct {
	min   float64
	grade Grade
}{
	{90, Grade{"A", ColorSuccess, "#28a745"}},
	{80, Grade{"B", ColorInfo, "#17a2b8"}},
	{70, Grade{"C", ColorWarning, "#ffc107"}},
	{60, Grade{"D", ColorCaution, "#fd7e14"}},
}

var failing = Grade{"F", ColorDanger, "#dc3545"}

// Letter grades a score on the 0-100 scale.
func Letter(score float64) Grade {
	for _, bp := range letterScale {
		if score >= bp.min {
			return bp.grade
		}
	}
	return failing
}

// LetterOn grades a score expressed on the given scale.
func LetterOn(score, scale float64) Grade {
	return Letter(Rescale(score, scale, Scale100))
}

// Rank orders letters from F (0) to A (4). Unknown letters rank below F.
func Rank(letter string) int {
	switch letter {
	case "A":
		return 4
	case "B":
		return 3
	case "C":
		return 2
	case "D":
		return 1
	case "F":
		return 0
	}
	return -1
}

// Rescale converts a score from one scale to another. A non-positive source
// scale leaves the score unchanged.
func Rescale(score, from, to float64) float64 {
	if from <= 0 || from == to {
		return score
	}
	return score / from * to
}

// Tier classifies an individual reviewer score.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierAverage   Tier = "average"
	TierPoor      Tier = "poor"
	TierUnknown   Tier = "unknown"
)

// ReviewerTier classifies a reviewer score on the 0-10 scale. NaN stands
// for a missing score and yields TierUnknown.
func ReviewerTier(score float64) Tier {
	switch {
	case math.IsNaN(score):
		return TierUnknown
	case score >= 8:
		return TierExcellent
	case score >= 6:
		return TierGood
	case score >= 4:
		return TierAverage
	default:
		return TierPoor
	}
}

// ReviewerTierOn classifies a reviewer score expressed on the given scale.
func ReviewerTierOn(score, scale float64) Tier {
	return ReviewerTier(Rescale(score, scale, Scale10))
}
