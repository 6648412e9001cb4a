// Package schema checks canonical evaluation results and publishes their
// JSON Schema.
package schema

import (
	"fmt"
	"math"

	"github.com/maverickalo/check-my-code/internal/review"
)

// ValidationError describes a single violation.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a canonical result. Normalized results always satisfy the
// structural rules; out-of-range scores are passed through from the service
// and reported here.
func Validate(r *review.EvaluationResult) []ValidationError {
	var errs []ValidationError

	errs = append(errs, checkCount("evalCount", r.EvalCount)...)
	if r.FinalScore != nil {
		errs = append(errs, checkScore("finalScore", *r.FinalScore, 100)...)
	}
	if r.FinalRecommendation != "" && !r.FinalRecommendation.Valid() {
		errs = append(errs, ValidationError{"finalRecommendation", fmt.Sprintf("invalid: %q", r.FinalRecommendation)})
	}
	if r.Recommendation == "" {
		errs = append(errs, ValidationError{"recommendation", "required"})
	}

	errs = append(errs, checkScore("averages.styleScore", r.Averages.StyleScore, 100)...)
	errs = append(errs, checkScore("averages.performanceScore", r.Averages.PerformanceScore, 100)...)
	errs = append(errs, checkScore("averages.securityScore", r.Averages.SecurityScore, 100)...)
	errs = append(errs, checkScore("averages.overallScore", r.Averages.OverallScore, 100)...)

	c := r.Consensus
	errs = append(errs, checkCount("consensus.totalEvals", c.TotalEvals)...)
	if c.OptimalVotes < 0 || c.OptimalVotes > c.TotalEvals {
		errs = append(errs, ValidationError{"consensus.optimalVotes", fmt.Sprintf("must be within [0, %d], got %d", c.TotalEvals, c.OptimalVotes)})
	}
	errs = append(errs, checkScore("consensus.agreementPct", c.AgreementPct, 100)...)
	if c.SummaryText == "" {
		errs = append(errs, ValidationError{"consensus.summaryText", "required"})
	}

	s := r.IssueSummary
	errs = append(errs, checkCount("issueSummary.total", s.Total)...)
	errs = append(errs, checkCount("issueSummary.bySeverity.high", s.BySeverity.High)...)
	errs = append(errs, checkCount("issueSummary.bySeverity.medium", s.BySeverity.Medium)...)
	errs = append(errs, checkCount("issueSummary.bySeverity.low", s.BySeverity.Low)...)

	if r.Issues == nil {
		errs = append(errs, ValidationError{"issues", "must be a list"})
	}
	for i, iss := range r.Issues {
		prefix := fmt.Sprintf("issues[%d]", i)
		if iss.Severity == "" {
			errs = append(errs, ValidationError{prefix + ".severity", "required"})
		}
		if iss.Category == "" {
			errs = append(errs, ValidationError{prefix + ".category", "required"})
		}
		if iss.Line != nil && *iss.Line < 1 {
			errs = append(errs, ValidationError{prefix + ".line", "must be >= 1"})
		}
		if iss.Column != nil && *iss.Column < 1 {
			errs = append(errs, ValidationError{prefix + ".column", "must be >= 1"})
		}
	}

	if r.Suggestions == nil {
		errs = append(errs, ValidationError{"suggestions", "must be a list"})
	}
	for i, sg := range r.Suggestions {
		if sg == "" {
			errs = append(errs, ValidationError{fmt.Sprintf("suggestions[%d]", i), "must not be empty"})
		}
	}

	if r.Evals == nil {
		errs = append(errs, ValidationError{"evals", "must be a list"})
	}
	for i, e := range r.Evals {
		if e.Scored {
			errs = append(errs, checkScore(fmt.Sprintf("evals[%d].score", i), e.Score, 10)...)
		}
	}

	return errs
}

func checkScore(path string, v, ceiling float64) []ValidationError {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return []ValidationError{{path, "must be a finite number"}}
	case v < 0 || v > ceiling:
		return []ValidationError{{path, fmt.Sprintf("must be within [0, %g], got %g", ceiling, v)}}
	}
	return nil
}

func checkCount(path string, n int) []ValidationError {
	if n < 0 {
		return []ValidationError{{path, "must be >= 0"}}
	}
	return nil
}
