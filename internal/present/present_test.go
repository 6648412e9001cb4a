package present

import (
	"testing"

	"github.com/maverickalo/check-my-code/internal/grade"
	"github.com/maverickalo/check-my-code/internal/normalize"
	"github.com/maverickalo/check-my-code/internal/review"
)

const samplePayload = `{
  "evalCount": 3,
  "finalScore": 72.5,
  "finalRecommendation": "needs_improvement",
  "averages": {"styleScore": 91, "performanceScore": 65, "securityScore": 58, "overallScore": 70},
  "consensus": {"totalEvals": 3, "optimalVotes": 1, "agree": false, "agreementPct": 66.7},
  "issueSummary": {"total": 3, "bySeverity": {"high": 1, "medium": 1, "low": 1}},
  "issues": [
    {"severity": "high", "category": "security", "message": "SQL built by concatenation", "line": 4, "column": 12},
    {"severity": "medium", "category": "performance", "message": "Query inside loop", "line": 9},
    {"severity": "low", "category": "style", "message": "Unclear name"}
  ],
  "suggestions": ["Use parameterized SQL queries", "Rename the variable x", "Split the function"],
  "evals": [
    {"reviewer": "gpt", "score": 8.5, "notes": "Clean"},
    {"score": 5},
    {"reviewer": "gamma"}
  ]
}`

func sample(t *testing.T) review.EvaluationResult {
	t.Helper()
	return normalize.Normalize([]byte(samplePayload))
}

func TestSeverityAndCategoryIcons(t *testing.T) {
	sev := []struct {
		in    review.Severity
		icon  string
		color string
	}{
		{review.SeverityHigh, "🚨", "#dc3545"},
		{review.SeverityMedium, "⚠️", "#ffc107"},
		{review.SeverityLow, "💡", "#17a2b8"},
		{"critical", "💡", "#17a2b8"},
	}
	for _, tt := range sev {
		if got := SeverityIcon(tt.in); got != tt.icon {
			t.Errorf("SeverityIcon(%q) = %s, want %s", tt.in, got, tt.icon)
		}
		if got := SeverityColor(tt.in); got != tt.color {
			t.Errorf("SeverityColor(%q) = %s, want %s", tt.in, got, tt.color)
		}
	}

	cat := map[string]string{
		"security":       "🔒",
		"performance":    "⚡",
		"style":          "🎨",
		"correctness":    "✅",
		"error_handling": "🛡️",
		"other":          "🔧",
		"":               "🔧",
	}
	for in, want := range cat {
		if got := CategoryIcon(in); got != want {
			t.Errorf("CategoryIcon(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestBuildStats(t *testing.T) {
	d := Build(sample(t), Options{})

	want := []StatCard{
		{"❌", "No", "Reviewers Agree"},
		{"📊", "3", "Total Reviews"},
		{"📈", "70.0", "Average Score"},
		{"🚨", "1", "High Severity"},
		{"⚠️", "1", "Medium Severity"},
		{"💡", "1", "Low Severity"},
		{"🔧", "3", "Total Issues"},
	}
	if len(d.Stats) != len(want) {
		t.Fatalf("got %d stat cards, want %d", len(d.Stats), len(want))
	}
	for i := range want {
		if d.Stats[i] != want[i] {
			t.Errorf("Stats[%d] = %+v, want %+v", i, d.Stats[i], want[i])
		}
	}
}

func TestBuildChartSeries(t *testing.T) {
	d := Build(sample(t), Options{})

	if len(d.Bars) != 4 || d.Bars[3].Name != "Overall" {
		t.Fatalf("Bars = %+v, want four series ending with Overall", d.Bars)
	}
	wantColors := []string{"#51cf66", "#ff8787", "#ff6b6b", "#ffd43b"}
	for i, c := range wantColors {
		if d.Bars[i].Color != c {
			t.Errorf("Bars[%d].Color = %s, want %s", i, d.Bars[i].Color, c)
		}
	}

	if len(d.Radar) != 3 {
		t.Fatalf("Radar has %d points, want 3", len(d.Radar))
	}
	for _, p := range d.Radar {
		if p.Name == "Overall" {
			t.Error("radar must not include the overall score")
		}
	}

	if len(d.Breakdown) != 3 || d.Breakdown[0].Name != "Code Style" {
		t.Errorf("Breakdown = %+v", d.Breakdown)
	}
}

func TestSlices(t *testing.T) {
	s := Slices(review.Consensus{TotalEvals: 4, OptimalVotes: 1})
	if s[0].Name != "Needs Improvement" || s[0].Value != 3 || s[0].Percent != 75 {
		t.Errorf("needs improvement slice = %+v", s[0])
	}
	if s[1].Name != "Optimal" || s[1].Value != 1 || s[1].Percent != 25 {
		t.Errorf("optimal slice = %+v", s[1])
	}

	empty := Slices(review.Consensus{})
	for _, sl := range empty {
		if sl.Value != 0 || sl.Percent != 0 {
			t.Errorf("empty consensus slice = %+v, want zeros", sl)
		}
	}
}

func TestBuildFinalPanel(t *testing.T) {
	d := Build(sample(t), Options{})
	f := d.Final
	if f.Score != 72.5 {
		t.Errorf("Score = %v, want finalScore 72.5", f.Score)
	}
	if f.Band != grade.BandAverage || f.Label != "Average Code" {
		t.Errorf("Band = %s %q, want average", f.Band, f.Label)
	}
	if f.RecommendationIcon != "🔧" || f.RecommendationLabel != "Needs Improvement" {
		t.Errorf("recommendation = %s %s", f.RecommendationIcon, f.RecommendationLabel)
	}
	if d.Assessment.Grade.Letter != "C" {
		t.Errorf("grade = %s, want C", d.Assessment.Grade.Letter)
	}
}

func TestBuildSuggestions(t *testing.T) {
	d := Build(sample(t), Options{})
	want := []Suggestion{
		{1, "🗄️", "Use parameterized SQL queries"},
		{2, "🏷️", "Rename the variable x"},
		{3, "🔧", "Split the function"},
	}
	if len(d.Suggestions) != len(want) {
		t.Fatalf("got %d suggestions, want %d", len(d.Suggestions), len(want))
	}
	for i := range want {
		if d.Suggestions[i] != want[i] {
			t.Errorf("Suggestions[%d] = %+v, want %+v", i, d.Suggestions[i], want[i])
		}
	}
}

func TestBuildIssuePanel(t *testing.T) {
	d := Build(sample(t), Options{Severity: "all", Category: "all"})
	p := d.Issues
	if len(p.Cards) != 3 || p.View.Filtered() {
		t.Fatalf("unfiltered panel shows %d cards (filtered=%v)", len(p.Cards), p.View.Filtered())
	}
	if p.Cards[0].Location != "Line 4, Col 12" {
		t.Errorf("Location = %q", p.Cards[0].Location)
	}
	if p.Cards[1].Location != "Line 9" {
		t.Errorf("Location = %q", p.Cards[1].Location)
	}
	if p.Cards[2].Location != "" {
		t.Errorf("Location = %q, want empty", p.Cards[2].Location)
	}
	if p.Severities[0] != (FacetOption{"high", "High", "🚨"}) {
		t.Errorf("Severities[0] = %+v", p.Severities[0])
	}
	if p.Categories[1] != (FacetOption{"performance", "Performance", "⚡"}) {
		t.Errorf("Categories[1] = %+v", p.Categories[1])
	}

	filtered := Build(sample(t), Options{Severity: "high"}).Issues
	if len(filtered.Cards) != 1 || !filtered.View.Filtered() {
		t.Errorf("high filter shows %d cards", len(filtered.Cards))
	}
	if filtered.View.Shown != 1 || filtered.View.Total != 3 {
		t.Errorf("view = %d of %d, want 1 of 3", filtered.View.Shown, filtered.View.Total)
	}
	// Facets always come from the full list.
	if len(filtered.Categories) != 3 {
		t.Errorf("filtered panel has %d category options, want 3", len(filtered.Categories))
	}
}

func TestReviewers(t *testing.T) {
	cards := Reviewers(sample(t).Evals)
	want := []ReviewerCard{
		{Name: "gpt", Score: 8.5, Scored: true, Tier: grade.TierExcellent, Notes: "Clean"},
		{Name: "Reviewer 2", Score: 5, Scored: true, Tier: grade.TierAverage},
		{Name: "gamma", Tier: grade.TierUnknown},
	}
	if len(cards) != len(want) {
		t.Fatalf("got %d cards, want %d", len(cards), len(want))
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("cards[%d] = %+v, want %+v", i, cards[i], want[i])
		}
	}
}

func TestBuildEmptyResult(t *testing.T) {
	d := Build(normalize.Normalize([]byte(`{}`)), Options{})
	if d.Suggestions == nil || d.Reviewers == nil || d.Issues.Cards == nil {
		t.Error("empty result must produce empty, non-nil lists")
	}
	if d.Final.Band != grade.BandPoor {
		t.Errorf("Band = %s, want poor", d.Final.Band)
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"high":           "High",
		"error_handling": "Error_handling",
		"":               "",
		"Élan":           "Élan",
	}
	for in, want := range tests {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
