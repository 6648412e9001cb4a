package grade

// Band is the bucket of an aggregate score on the 0-100 scale.
type Band string

const (
	BandExcellent    Band = "excellent"
	BandGood         Band = "good"
	BandAverage      Band = "average"
	BandBelowAverage Band = "below-average"
	BandPoor         Band = "poor"
)

var bands = []struct {
	min   float64
	band  Band
	label string
	color string
}{
	{90, BandExcellent, "Excellent Code!", "#51cf66"},
	{80, BandGood, "Good Code", "#69db7c"},
	{70, BandAverage, "Average Code", "#ffd43b"},
	{60, BandBelowAverage, "Below Average", "#ff8787"},
}

const (
	poorLabel = "Needs Improvement"
	poorColor = "#ff6b6b"
)

// BandFor buckets an aggregate score on the 0-100 scale. Bands are half-open:
// [90,inf) excellent, [80,90) good, [70,80) average, [60,70) below-average,
// everything else poor.
func BandFor(score float64) Band {
	for _, b := range bands {
		if score >= b.min {
			return b.band
		}
	}
	return BandPoor
}

// BandOn buckets a score expressed on the given scale.
func BandOn(score, scale float64) Band {
	return BandFor(Rescale(score, scale, Scale100))
}

// Label is the display text of the band.
func (b Band) Label() string {
	for _, e := range bands {
		if e.band == b {
			return e.label
		}
	}
	return poorLabel
}

// Color is the bar color used for scores in this band.
func (b Band) Color() string {
	for _, e := range bands {
		if e.band == b {
			return e.color
		}
	}
	return poorColor
}
