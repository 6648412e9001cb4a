package render

import (
	"fmt"
	"strings"

	"github.com/maverickalo/check-my-code/internal/present"
	"github.com/maverickalo/check-my-code/internal/review"
)

// Markdown renders a dashboard as a Markdown report.
func Markdown(d present.Dashboard) string {
	var b strings.Builder
	a := d.Assessment

	b.WriteString("# Evaluation Results\n\n")
	fmt.Fprintf(&b, "**Grade:** %s %s\n", a.Grade.Letter, a.VerdictIcon)
	fmt.Fprintf(&b, "**Final Score:** %.1f / 100 (%s)\n", d.Final.Score, d.Final.Label)
	fmt.Fprintf(&b, "**Recommendation:** %s %s\n\n", d.Final.RecommendationIcon, d.Final.RecommendationLabel)
	fmt.Fprintf(&b, "%s\n\n", a.RecommendationText)

	b.WriteString("| | Stat | Value |\n|---|---|---|\n")
	for _, s := range d.Stats {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", s.Icon, s.Label, s.Value)
	}
	b.WriteString("\n")

	b.WriteString("## Score Breakdown\n\n")
	for _, dim := range d.Bars {
		fmt.Fprintf(&b, "- **%s:** %.1f\n", dim.FullName, dim.Score)
	}
	b.WriteString("\n")

	b.WriteString("## Consensus\n\n")
	for _, s := range d.Slices {
		fmt.Fprintf(&b, "- %s: %d (%.0f%%)\n", s.Name, s.Value, s.Percent)
	}
	fmt.Fprintf(&b, "- Agreement: %.1f%%\n", d.AgreementPct)
	fmt.Fprintf(&b, "- Total Evaluations: %d\n\n", d.TotalEvals)

	if len(d.Suggestions) > 0 {
		b.WriteString("## Suggestions\n\n")
		for _, s := range d.Suggestions {
			fmt.Fprintf(&b, "%d. %s %s\n", s.Number, s.Icon, s.Text)
		}
		b.WriteString("\n")
	}

	if d.Issues.View.Total > 0 {
		b.WriteString("## Issues\n\n")
		if len(d.Issues.Cards) == 0 {
			b.WriteString("No issues found matching the selected filters.\n\n")
		}
		for _, c := range d.Issues.Cards {
			markdownIssue(&b, c)
		}
		if d.Issues.View.Filtered() {
			fmt.Fprintf(&b, "_Showing %d of %d issues_\n\n", d.Issues.View.Shown, d.Issues.View.Total)
		}
	}

	if len(d.Reviewers) > 0 {
		b.WriteString("## Individual Evaluations\n\n")
		for _, r := range d.Reviewers {
			fmt.Fprintf(&b, "### Review by %s: %s\n\n", r.Name, reviewerScore(r))
			if r.Notes != "" {
				fmt.Fprintf(&b, "%s\n\n", r.Notes)
			}
		}
	}

	return b.String()
}

func markdownIssue(b *strings.Builder, c present.IssueCard) {
	fmt.Fprintf(b, "### %s %s / %s %s\n\n", c.SeverityIcon, c.Severity, c.CategoryIcon, c.Category)
	if c.Location != "" {
		fmt.Fprintf(b, "_%s_\n\n", c.Location)
	}
	fmt.Fprintf(b, "%s\n\n", c.Message)
	if c.CodeSnippet != "" {
		fmt.Fprintf(b, "Current code:\n\n```\n%s\n```\n\n", c.CodeSnippet)
		if c.FixedSnippet != "" {
			fmt.Fprintf(b, "Suggested fix:\n\n```\n%s\n```\n\n", c.FixedSnippet)
		}
	}
	if c.SuggestedFix != "" {
		fmt.Fprintf(b, "**Fix:** %s\n\n", c.SuggestedFix)
	}
}

func reviewerScore(r present.ReviewerCard) string {
	if !r.Scored {
		return "no score"
	}
	return fmt.Sprintf("%g/10 (%s)", r.Score, r.Tier)
}

// FailureMarkdown renders a failure as a Markdown error block.
func FailureMarkdown(f review.Failure) string {
	var b strings.Builder
	b.WriteString("# Error\n\n")
	if !f.CORSError {
		fmt.Fprintf(&b, "%s\n", f.Error)
		return b.String()
	}
	fmt.Fprintf(&b, "%s\n\n%s\n\n### Solutions\n\n", corsTitle, f.Error)
	for i, s := range CORSHelp {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return b.String()
}
