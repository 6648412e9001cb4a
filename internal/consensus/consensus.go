// Package consensus derives the verdict shown alongside a canonical result.
package consensus

import (
	"github.com/maverickalo/check-my-code/internal/grade"
	"github.com/maverickalo/check-my-code/internal/review"
)

// Verdict icons, chosen from vote counts alone.
const (
	IconMajorityOptimal = "✅"
	IconTie             = "⚖️"
	IconMajorityWork    = "🔧"
)

// Agreement icons.
const (
	IconAgree    = "✅"
	IconDisagree = "❌"
)

// Assessment is the headline view of a result.
type Assessment struct {
	Grade       grade.Grade `json:"grade"`
	Band        grade.Band  `json:"band"`
	Score       float64     `json:"score"`
	VerdictIcon string      `json:"verdictIcon"`
	// RecommendationText is produced by normalization; it is copied, never recomputed.
	RecommendationText  string                `json:"recommendationText"`
	Recommendation      review.Recommendation `json:"recommendation"`
	RecommendationIcon  string                `json:"recommendationIcon"`
	RecommendationLabel string                `json:"recommendationLabel"`
	Agreement           bool                  `json:"agreement"`
	AgreementIcon       string                `json:"agreementIcon"`
	AgreementLabel      string                `json:"agreementLabel"`
}

// Evaluate builds the assessment for a normalized result. The verdict icon
// compares optimal votes against the rest and may disagree with the grade;
// both are reported as-is.
func Evaluate(r review.EvaluationResult) Assessment {
	score := r.Representative()
	a := Assessment{
		Grade:              grade.Letter(score),
		Band:               grade.BandFor(score),
		Score:              score,
		VerdictIcon:        VerdictIcon(r.Consensus),
		RecommendationText: r.Consensus.SummaryText,
		Recommendation:     r.Recommendation,
		Agreement:          r.Consensus.Agreement,
	}
	a.RecommendationIcon, a.RecommendationLabel = RecommendationBadge(r.Recommendation)
	if a.Agreement {
		a.AgreementIcon, a.AgreementLabel = IconAgree, "Yes"
	} else {
		a.AgreementIcon, a.AgreementLabel = IconDisagree, "No"
	}
	return a
}

// VerdictIcon compares optimal votes with the votes for improvement.
func VerdictIcon(c review.Consensus) string {
	work := c.NeedsImprovementVotes()
	switch {
	case c.OptimalVotes > work:
		return IconMajorityOptimal
	case c.OptimalVotes == work:
		return IconTie
	default:
		return IconMajorityWork
	}
}

// RecommendationBadge returns the icon and label of the final recommendation.
func RecommendationBadge(rec review.Recommendation) (icon, label string) {
	if rec.Optimal() {
		return "✅", "Optimal"
	}
	return "🔧", "Needs Improvement"
}
