// Package review defines the canonical evaluation result every display surface consumes.
package review

// EvaluationResult is the fully defaulted form of an evaluation payload.
// Lists are never nil and numeric scores are never absent, with the
// exception of FinalScore, which is only set when the service sent one.
type EvaluationResult struct {
	EvalCount           int                  `json:"evalCount" jsonschema:"minimum=0"`
	FinalScore          *float64             `json:"finalScore,omitempty"`
	FinalRecommendation Recommendation       `json:"finalRecommendation,omitempty" jsonschema:"enum=optimal,enum=needs_improvement"`
	Recommendation      Recommendation       `json:"recommendation"`
	Averages            Averages             `json:"averages"`
	Consensus           Consensus            `json:"consensus"`
	IssueSummary        IssueSummary         `json:"issueSummary"`
	Issues              []Issue              `json:"issues"`
	Suggestions         []string             `json:"suggestions"`
	Evals               []ReviewerEvaluation `json:"evals"`
}

// Representative returns the single score used for grading and banding:
// FinalScore when present, the overall average otherwise.
func (r *EvaluationResult) Representative() float64 {
	if r.FinalScore != nil {
		return *r.FinalScore
	}
	return r.Averages.OverallScore
}

// Averages holds per-dimension scores on the 0-100 scale.
type Averages struct {
	StyleScore       float64 `json:"styleScore"`
	PerformanceScore float64 `json:"performanceScore"`
	SecurityScore    float64 `json:"securityScore"`
	OverallScore     float64 `json:"overallScore"`
}

// Consensus is the aggregate agreement signal among reviewers.
type Consensus struct {
	TotalEvals      int      `json:"totalEvals" jsonschema:"minimum=0"`
	OptimalVotes    int      `json:"optimalVotes" jsonschema:"minimum=0"`
	Agreement       bool     `json:"agreement"`
	AgreementPct    float64  `json:"agreementPct" jsonschema:"minimum=0,maximum=100"`
	Recommendation  string   `json:"recommendation,omitempty"`
	Summary         string   `json:"summary,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	PrimaryConcerns []string `json:"primaryConcerns,omitempty"`
	// SummaryText is the resolved human-readable recommendation text.
	SummaryText string `json:"summaryText"`
}

// NeedsImprovementVotes is the number of reviewers that did not vote optimal.
func (c Consensus) NeedsImprovementVotes() int {
	return c.TotalEvals - c.OptimalVotes
}

// IssueSummary holds issue counts as reported by the service.
type IssueSummary struct {
	Total      int            `json:"total" jsonschema:"minimum=0"`
	BySeverity SeverityCounts `json:"bySeverity"`
}

// SeverityCounts counts issues per known severity.
type SeverityCounts struct {
	High   int `json:"high" jsonschema:"minimum=0"`
	Medium int `json:"medium" jsonschema:"minimum=0"`
	Low    int `json:"low" jsonschema:"minimum=0"`
}

// Issue is a single problem a reviewer found in the snippet.
type Issue struct {
	Severity     Severity `json:"severity"`
	Category     string   `json:"category"`
	Message      string   `json:"message"`
	Line         *int     `json:"line,omitempty"`
	Column       *int     `json:"column,omitempty"`
	CodeSnippet  string   `json:"codeSnippet,omitempty"`
	FixedSnippet string   `json:"fixedSnippet,omitempty"`
	SuggestedFix string   `json:"suggestedFix,omitempty"`
}

// ReviewerEvaluation is one reviewer's score (0-10 scale) and notes.
type ReviewerEvaluation struct {
	Reviewer string  `json:"reviewer,omitempty"`
	Score    float64 `json:"score"`
	// Scored is false when the service sent no numeric score.
	Scored bool   `json:"scored"`
	Notes  string `json:"notes,omitempty"`
}

// Failure is the error variant of a submission outcome. It is built by the
// transport layer and never passed through normalization.
type Failure struct {
	Error     string `json:"error"`
	CORSError bool   `json:"corsError"`
}

// Outcome is the result of one submission: exactly one of Result or Failure is set.
type Outcome struct {
	Result  *EvaluationResult `json:"result,omitempty"`
	Failure *Failure          `json:"failure,omitempty"`
}

// Succeeded reports whether the outcome carries a result.
func (o Outcome) Succeeded() bool {
	return o.Result != nil && o.Failure == nil
}

// ResultOutcome wraps a result.
func ResultOutcome(r EvaluationResult) Outcome {
	return Outcome{Result: &r}
}

// FailureOutcome wraps a failure.
func FailureOutcome(f Failure) Outcome {
	return Outcome{Failure: &f}
}
