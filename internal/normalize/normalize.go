// Package normalize maps an evaluation payload of any shape onto the
// canonical review.EvaluationResult.
//
// The evaluation service spells several fields differently depending on the
// reviewer or version that produced them. Every canonical field is resolved
// through an ordered chain of candidate paths, declared together below, and
// falls back to a documented default. Normalization never fails.
package normalize

import (
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/maverickalo/check-my-code/internal/review"
)

// Candidate locations for each canonical field, in priority order.
var (
	evalCountPaths      = chain{"evalCount"}
	finalScorePaths     = chain{"finalScore"}
	finalRecPaths       = chain{"finalRecommendation"}
	consensusRecPaths   = chain{"consensus.recommendation"}
	totalEvalsPaths     = chain{"consensus.totalEvals", "evalCount"}
	optimalVotesPaths   = chain{"consensus.optimalVotes"}
	agreementPaths      = chain{"consensus.agree", "consensus.agreed", "consensus.agreement"}
	agreementPctPaths   = chain{"consensus.agreementPct"}
	concernsPaths       = chain{"consensus.primaryConcerns"}
	summaryPaths        = chain{"consensus.summary"}
	notesPaths          = chain{"consensus.notes"}
	issueTotalPaths     = chain{"issueSummary.total"}
	reviewerNotesPaths  = chain{"notes", "comments"}
	averageStylePaths   = chain{"averages.styleScore"}
	averagePerfPaths    = chain{"averages.performanceScore"}
	averageSecPaths     = chain{"averages.securityScore"}
	averageOverallPaths = chain{"averages.overallScore"}
)

func severityPaths(level review.Severity) chain {
	return chain{"issueSummary.bySeverity." + string(level), "issueSummary." + string(level)}
}

// Normalize builds the canonical result from an unwrapped evaluation payload.
// Input that is not a JSON object yields the all-default result.
func Normalize(raw []byte) review.EvaluationResult {
	doc := gjson.Result{}
	if gjson.ValidBytes(raw) {
		if parsed := gjson.ParseBytes(raw); parsed.IsObject() {
			doc = parsed
		}
	}

	r := review.EvaluationResult{
		EvalCount:   count(evalCountPaths, doc),
		Averages:    averages(doc),
		Issues:      issues(doc),
		Suggestions: suggestions(doc),
		Evals:       evals(doc),
	}
	if v, ok := finalScorePaths.number(doc); ok {
		r.FinalScore = &v
	}
	if v, ok := finalRecPaths.text(doc); ok {
		if rec := parseRecommendation(v); rec.Valid() {
			r.FinalRecommendation = rec
		}
	}

	r.Consensus = consensus(doc)
	r.IssueSummary = issueSummary(doc, len(r.Issues), lookup(doc, "issues").IsArray())
	r.Recommendation = resolveRecommendation(r)
	r.Consensus.SummaryText = summaryText(doc, r.Representative())
	return r
}

func averages(doc gjson.Result) review.Averages {
	var a review.Averages
	a.StyleScore, _ = averageStylePaths.number(doc)
	a.PerformanceScore, _ = averagePerfPaths.number(doc)
	a.SecurityScore, _ = averageSecPaths.number(doc)
	a.OverallScore, _ = averageOverallPaths.number(doc)
	return a
}

func consensus(doc gjson.Result) review.Consensus {
	c := review.Consensus{
		TotalEvals:   count(totalEvalsPaths, doc),
		OptimalVotes: count(optimalVotesPaths, doc),
	}
	if c.OptimalVotes > c.TotalEvals {
		c.OptimalVotes = c.TotalEvals
	}
	c.Agreement, _ = agreementPaths.boolean(doc)
	if pct, ok := agreementPctPaths.number(doc); ok {
		c.AgreementPct = clamp(pct, 0, 100)
	}
	c.Recommendation, _ = consensusRecPaths.text(doc)
	c.Summary, _ = summaryPaths.textOrList(doc)
	c.Notes, _ = notesPaths.textOrList(doc)
	if v, ok := concernsPaths.resolve(doc, isTextList); ok {
		c.PrimaryConcerns = texts(v)
	} else if s, ok := concernsPaths.text(doc); ok {
		c.PrimaryConcerns = []string{s}
	}
	return c
}

func issueSummary(doc gjson.Result, issueCount int, issuesSent bool) review.IssueSummary {
	s := review.IssueSummary{
		Total: count(issueTotalPaths, doc),
		BySeverity: review.SeverityCounts{
			High:   count(severityPaths(review.SeverityHigh), doc),
			Medium: count(severityPaths(review.SeverityMedium), doc),
			Low:    count(severityPaths(review.SeverityLow), doc),
		},
	}
	if issuesSent {
		s.BySeverity.High = min(s.BySeverity.High, issueCount)
		s.BySeverity.Medium = min(s.BySeverity.Medium, issueCount)
		s.BySeverity.Low = min(s.BySeverity.Low, issueCount)
	}
	return s
}

// resolveRecommendation prefers the final recommendation, then the
// consensus recommendation, then a majority vote.
func resolveRecommendation(r review.EvaluationResult) review.Recommendation {
	if r.FinalRecommendation != "" {
		return r.FinalRecommendation
	}
	if r.Consensus.Recommendation != "" {
		if rec := parseRecommendation(r.Consensus.Recommendation); rec.Valid() {
			return rec
		}
		return review.Recommendation(r.Consensus.Recommendation)
	}
	if r.Consensus.OptimalVotes > r.Consensus.NeedsImprovementVotes() {
		return review.RecommendationOptimal
	}
	return review.RecommendationNeedsImprovement
}

// parseRecommendation folds case and separators so "Needs Improvement"
// and "needs-improvement" read as needs_improvement.
func parseRecommendation(s string) review.Recommendation {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return review.Recommendation(s)
}

// Canned summaries keyed by the representative score.
var scoreSummaries = []struct {
	min  float64
	text string
}{
	{80, "Your code is in great shape! Most evaluators agree it's well-written."},
	{60, "Your code is decent, but there's room for improvement."},
	{40, "Your code needs some work. Consider the suggestions below."},
}

const lowScoreSummary = "Your code requires significant improvements for best practices."

// summaryText resolves the recommendation text: primary concerns, then the
// consensus summary, then consensus notes, then a score-derived sentence.
func summaryText(doc gjson.Result, score float64) string {
	if v, ok := concernsPaths.resolve(doc, isTextList); ok {
		return "Primary concerns: " + strings.Join(texts(v), ", ")
	}
	if s, ok := summaryPaths.textOrList(doc); ok {
		return s
	}
	if s, ok := notesPaths.textOrList(doc); ok {
		return s
	}
	for _, e := range scoreSummaries {
		if score >= e.min {
			return e.text
		}
	}
	return lowScoreSummary
}

// count reads a non-negative integer, truncating fractions. Values too
// large for an int saturate.
func count(c chain, doc gjson.Result) int {
	v, ok := c.resolve(doc, isNumber)
	if !ok {
		return 0
	}
	return toInt(v.Float())
}

func toInt(f float64) int {
	switch {
	case f <= 0:
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	}
	return int(f)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
