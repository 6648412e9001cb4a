package grade

import (
	"math"
	"testing"
)

func TestLetterBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A"},
		{95, "A"},
		{90, "A"},
		{89.99, "B"},
		{80, "B"},
		{79.9, "C"},
		{70, "C"},
		{69.9, "D"},
		{60, "D"},
		{59.9, "F"},
		{0, "F"},
		{-15, "F"},
		{250, "A"},
		{math.Inf(1), "A"},
		{math.Inf(-1), "F"},
		{math.NaN(), "F"},
	}
	for _, tt := range tests {
		got := Letter(tt.score)
		if got.Letter != tt.want {
			t.Errorf("Letter(%v) = %s, want %s", tt.score, got.Letter, tt.want)
		}
	}
}

func TestLetterColors(t *testing.T) {
	if g := Letter(95); g.Tier != ColorSuccess || g.Color != "#28a745" {
		t.Errorf("A grade color = %+v", g)
	}
	if g := Letter(10); g.Tier != ColorDanger || g.Color != "#dc3545" {
		t.Errorf("F grade color = %+v", g)
	}
}

func TestLetterOn(t *testing.T) {
	if got := LetterOn(9.1, Scale10).Letter; got != "A" {
		t.Errorf("LetterOn(9.1, 10) = %s, want A", got)
	}
	if got := LetterOn(5.9, Scale10).Letter; got != "F" {
		t.Errorf("LetterOn(5.9, 10) = %s, want F", got)
	}
}

func TestRank(t *testing.T) {
	if !(Rank("A") > Rank("B") && Rank("B") > Rank("C") && Rank("C") > Rank("D") && Rank("D") > Rank("F")) {
		t.Error("ranks out of order")
	}
	if Rank("Z") >= Rank("F") {
		t.Error("unknown letter should rank below F")
	}
}

func TestRescale(t *testing.T) {
	tests := []struct {
		score, from, to, want float64
	}{
		{7, 10, 100, 70},
		{85, 100, 10, 8.5},
		{50, 100, 100, 50},
		{50, 0, 100, 50},
	}
	for _, tt := range tests {
		if got := Rescale(tt.score, tt.from, tt.to); got != tt.want {
			t.Errorf("Rescale(%v, %v, %v) = %v, want %v", tt.score, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestReviewerTier(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{10, TierExcellent},
		{8, TierExcellent},
		{7.99, TierGood},
		{6, TierGood},
		{5.5, TierAverage},
		{4, TierAverage},
		{3.99, TierPoor},
		{0, TierPoor},
		{-2, TierPoor},
		{42, TierExcellent},
		{math.NaN(), TierUnknown},
	}
	for _, tt := range tests {
		if got := ReviewerTier(tt.score); got != tt.want {
			t.Errorf("ReviewerTier(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestReviewerTierOn(t *testing.T) {
	if got := ReviewerTierOn(85, Scale100); got != TierExcellent {
		t.Errorf("ReviewerTierOn(85, 100) = %s, want excellent", got)
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Band
	}{
		{120, BandExcellent},
		{90, BandExcellent},
		{89.999, BandGood},
		{80, BandGood},
		{79.5, BandAverage},
		{70, BandAverage},
		{69, BandBelowAverage},
		{60, BandBelowAverage},
		{59.99, BandPoor},
		{-1, BandPoor},
		{math.NaN(), BandPoor},
	}
	for _, tt := range tests {
		if got := BandFor(tt.score); got != tt.want {
			t.Errorf("BandFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

// Every score maps to exactly one band and bands are contiguous.
func TestBandsAreContiguous(t *testing.T) {
	order := map[Band]int{BandPoor: 0, BandBelowAverage: 1, BandAverage: 2, BandGood: 3, BandExcellent: 4}
	prev := -1
	for s := -50.0; s <= 150; s += 0.25 {
		o, ok := order[BandFor(s)]
		if !ok {
			t.Fatalf("BandFor(%v) returned unknown band", s)
		}
		if o < prev {
			t.Fatalf("band order decreased at %v", s)
		}
		if o > prev+1 && prev >= 0 {
			t.Fatalf("band skipped at %v", s)
		}
		prev = o
	}
}

func TestBandLabelsAndColors(t *testing.T) {
	tests := []struct {
		band  Band
		label string
		color string
	}{
		{BandExcellent, "Excellent Code!", "#51cf66"},
		{BandGood, "Good Code", "#69db7c"},
		{BandAverage, "Average Code", "#ffd43b"},
		{BandBelowAverage, "Below Average", "#ff8787"},
		{BandPoor, "Needs Improvement", "#ff6b6b"},
	}
	for _, tt := range tests {
		if tt.band.Label() != tt.label {
			t.Errorf("%s.Label() = %q, want %q", tt.band, tt.band.Label(), tt.label)
		}
		if tt.band.Color() != tt.color {
			t.Errorf("%s.Color() = %q, want %q", tt.band, tt.band.Color(), tt.color)
		}
	}
}

func TestBandOn(t *testing.T) {
	if got := BandOn(9.5, Scale10); got != BandExcellent {
		t.Errorf("BandOn(9.5, 10) = %s, want excellent", got)
	}
}
