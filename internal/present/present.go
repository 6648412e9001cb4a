// Package present turns a canonical evaluation result into the display
// model shared by every renderer and the HTTP service.
package present

import (
	"fmt"
	"strings"

	"github.com/maverickalo/check-my-code/internal/consensus"
	"github.com/maverickalo/check-my-code/internal/grade"
	"github.com/maverickalo/check-my-code/internal/issues"
	"github.com/maverickalo/check-my-code/internal/review"
	"github.com/maverickalo/check-my-code/internal/suggest"
)

const (
	colorOptimal = "#51cf66"
	colorWork    = "#ff6b6b"
)

// Dashboard is everything a display surface shows for one result.
type Dashboard struct {
	Assessment   consensus.Assessment `json:"assessment"`
	Stats        []StatCard           `json:"stats"`
	Breakdown    []Dimension          `json:"breakdown"`
	Bars         []Dimension          `json:"bars"`
	Radar        []Dimension          `json:"radar"`
	Slices       []Slice              `json:"consensusSlices"`
	AgreementPct float64              `json:"agreementPct"`
	TotalEvals   int                  `json:"totalEvals"`
	Final        FinalPanel           `json:"final"`
	Suggestions  []Suggestion         `json:"suggestions"`
	Issues       IssuePanel           `json:"issues"`
	Reviewers    []ReviewerCard       `json:"reviewers"`
}

// StatCard is a single headline number.
type StatCard struct {
	Icon  string `json:"icon"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// Dimension is one score on the 0-100 scale with its band color.
type Dimension struct {
	Name     string  `json:"name"`
	FullName string  `json:"fullName"`
	Score    float64 `json:"score"`
	Color    string  `json:"color"`
}

// Slice is one segment of the consensus chart.
type Slice struct {
	Name    string  `json:"name"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// FinalPanel shows the representative score and the final recommendation.
type FinalPanel struct {
	Score               float64    `json:"score"`
	Band                grade.Band `json:"band"`
	Label               string     `json:"label"`
	Color               string     `json:"color"`
	RecommendationIcon  string     `json:"recommendationIcon"`
	RecommendationLabel string     `json:"recommendationLabel"`
}

// Suggestion is a numbered improvement hint.
type Suggestion struct {
	Number int    `json:"number"`
	Icon   string `json:"icon"`
	Text   string `json:"text"`
}

// IssuePanel is the filtered issue list plus the filter choices.
type IssuePanel struct {
	View       issues.View   `json:"view"`
	Severities []FacetOption `json:"severities"`
	Categories []FacetOption `json:"categories"`
	Cards      []IssueCard   `json:"cards"`
	// Summary is the issue summary as reported by the service.
	Summary review.IssueSummary `json:"summary"`
}

// FacetOption is one selectable filter value.
type FacetOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// IssueCard is an issue decorated for display.
type IssueCard struct {
	review.Issue
	SeverityIcon  string `json:"severityIcon"`
	SeverityColor string `json:"severityColor"`
	CategoryIcon  string `json:"categoryIcon"`
	Location      string `json:"location,omitempty"`
}

// ReviewerCard is one reviewer's score and notes.
type ReviewerCard struct {
	Name   string     `json:"name"`
	Score  float64    `json:"score"`
	Scored bool       `json:"scored"`
	Tier   grade.Tier `json:"tier"`
	Notes  string     `json:"notes,omitempty"`
}

// Options selects the issue filters and the suggestion icon rules.
type Options struct {
	Severity string
	Category string
	// Rules defaults to the built-in suggestion rules.
	Rules *suggest.Rules
}

// Build assembles the dashboard for r.
func Build(r review.EvaluationResult, opts Options) Dashboard {
	rules := opts.Rules
	if rules == nil {
		rules = suggest.MustBuiltin()
	}
	a := consensus.Evaluate(r)

	d := Dashboard{
		Assessment:   a,
		Stats:        stats(r, a),
		Bars:         bars(r.Averages),
		Slices:       Slices(r.Consensus),
		AgreementPct: r.Consensus.AgreementPct,
		TotalEvals:   r.Consensus.TotalEvals,
		Final: FinalPanel{
			Score:               a.Score,
			Band:                a.Band,
			Label:               a.Band.Label(),
			Color:               a.Band.Color(),
			RecommendationIcon:  a.RecommendationIcon,
			RecommendationLabel: a.RecommendationLabel,
		},
		Suggestions: suggestions(r.Suggestions, rules),
		Issues:      issuePanel(r, opts.Severity, opts.Category),
		Reviewers:   Reviewers(r.Evals),
	}
	// Radar and breakdown leave the overall score out.
	d.Radar = d.Bars[:3]
	d.Breakdown = []Dimension{
		{Name: "Code Style", FullName: "Code Style", Score: r.Averages.StyleScore, Color: d.Bars[0].Color},
		d.Bars[1],
		d.Bars[2],
	}
	return d
}

func stats(r review.EvaluationResult, a consensus.Assessment) []StatCard {
	sev := r.IssueSummary.BySeverity
	return []StatCard{
		{Icon: a.AgreementIcon, Value: a.AgreementLabel, Label: "Reviewers Agree"},
		{Icon: "📊", Value: fmt.Sprint(r.EvalCount), Label: "Total Reviews"},
		{Icon: "📈", Value: fmt.Sprintf("%.1f", r.Averages.OverallScore), Label: "Average Score"},
		{Icon: "🚨", Value: fmt.Sprint(sev.High), Label: "High Severity"},
		{Icon: "⚠️", Value: fmt.Sprint(sev.Medium), Label: "Medium Severity"},
		{Icon: "💡", Value: fmt.Sprint(sev.Low), Label: "Low Severity"},
		{Icon: "🔧", Value: fmt.Sprint(r.IssueSummary.Total), Label: "Total Issues"},
	}
}

func bars(avg review.Averages) []Dimension {
	dim := func(name, full string, score float64) Dimension {
		return Dimension{Name: name, FullName: full, Score: score, Color: grade.BandFor(score).Color()}
	}
	return []Dimension{
		dim("Style", "Code Style", avg.StyleScore),
		dim("Performance", "Performance", avg.PerformanceScore),
		dim("Security", "Security", avg.SecurityScore),
		dim("Overall", "Overall Score", avg.OverallScore),
	}
}

// Slices splits the votes into needs-improvement and optimal segments.
// Percentages are of the vote total and are zero when nobody voted.
func Slices(c review.Consensus) []Slice {
	s := []Slice{
		{Name: "Needs Improvement", Value: c.NeedsImprovementVotes(), Color: colorWork},
		{Name: "Optimal", Value: c.OptimalVotes, Color: colorOptimal},
	}
	total := s[0].Value + s[1].Value
	if total > 0 {
		for i := range s {
			s[i].Percent = float64(s[i].Value) / float64(total) * 100
		}
	}
	return s
}

func suggestions(list []string, rules *suggest.Rules) []Suggestion {
	out := make([]Suggestion, 0, len(list))
	for i, text := range list {
		out = append(out, Suggestion{Number: i + 1, Icon: rules.Icon(text), Text: text})
	}
	return out
}

func issuePanel(r review.EvaluationResult, severity, category string) IssuePanel {
	view := issues.Visible(r.Issues, severity, category)
	facets := issues.FacetValues(r.Issues)

	p := IssuePanel{
		View:       view,
		Severities: make([]FacetOption, 0, len(facets.Severities)),
		Categories: make([]FacetOption, 0, len(facets.Categories)),
		Cards:      make([]IssueCard, 0, len(view.Issues)),
		Summary:    r.IssueSummary,
	}
	for _, s := range facets.Severities {
		p.Severities = append(p.Severities, FacetOption{Value: s, Label: capitalize(s), Icon: SeverityIcon(review.Severity(s))})
	}
	for _, c := range facets.Categories {
		p.Categories = append(p.Categories, FacetOption{Value: c, Label: capitalize(c), Icon: CategoryIcon(c)})
	}
	for _, iss := range view.Issues {
		p.Cards = append(p.Cards, Card(iss))
	}
	return p
}

// Card decorates a single issue.
func Card(iss review.Issue) IssueCard {
	return IssueCard{
		Issue:         iss,
		SeverityIcon:  SeverityIcon(iss.Severity),
		SeverityColor: SeverityColor(iss.Severity),
		CategoryIcon:  CategoryIcon(iss.Category),
		Location:      location(iss),
	}
}

func location(iss review.Issue) string {
	var parts []string
	if iss.Line != nil {
		parts = append(parts, fmt.Sprintf("Line %d", *iss.Line))
	}
	if iss.Column != nil {
		parts = append(parts, fmt.Sprintf("Col %d", *iss.Column))
	}
	return strings.Join(parts, ", ")
}

// Reviewers builds one card per reviewer evaluation in input order.
func Reviewers(evals []review.ReviewerEvaluation) []ReviewerCard {
	out := make([]ReviewerCard, 0, len(evals))
	for i, e := range evals {
		name := e.Reviewer
		if name == "" {
			name = fmt.Sprintf("Reviewer %d", i+1)
		}
		tier := grade.TierUnknown
		if e.Scored {
			tier = grade.ReviewerTier(e.Score)
		}
		out = append(out, ReviewerCard{Name: name, Score: e.Score, Scored: e.Scored, Tier: tier, Notes: e.Notes})
	}
	return out
}
