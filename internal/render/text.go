package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/maverickalo/check-my-code/internal/grade"
	"github.com/maverickalo/check-my-code/internal/present"
	"github.com/maverickalo/check-my-code/internal/review"
)

const barWidth = 20

type painter struct {
	enabled bool
}

func (p painter) paint(text string, attrs ...color.Attribute) string {
	if !p.enabled {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

func bandAttr(b grade.Band) color.Attribute {
	switch b {
	case grade.BandExcellent, grade.BandGood:
		return color.FgGreen
	case grade.BandAverage:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

func severityAttr(s review.Severity) color.Attribute {
	switch s {
	case review.SeverityHigh:
		return color.FgRed
	case review.SeverityMedium:
		return color.FgYellow
	default:
		return color.FgCyan
	}
}

// Text renders a dashboard for a terminal.
func Text(d present.Dashboard, colored bool) string {
	p := painter{enabled: colored}
	var b strings.Builder
	a := d.Assessment

	fmt.Fprintf(&b, "%s  Grade %s  %s\n",
		p.paint("Evaluation Results", color.Bold),
		p.paint(a.Grade.Letter, bandAttr(d.Final.Band), color.Bold),
		a.VerdictIcon)
	fmt.Fprintf(&b, "Final score %s / 100  %s\n",
		p.paint(fmt.Sprintf("%.1f", d.Final.Score), bandAttr(d.Final.Band)), d.Final.Label)
	fmt.Fprintf(&b, "%s %s\n", d.Final.RecommendationIcon, d.Final.RecommendationLabel)
	fmt.Fprintf(&b, "%s\n\n", a.RecommendationText)

	for _, s := range d.Stats {
		fmt.Fprintf(&b, "  %s %-16s %s\n", s.Icon, s.Label, s.Value)
	}
	b.WriteString("\n")

	for _, dim := range d.Bars {
		band := grade.BandFor(dim.Score)
		fmt.Fprintf(&b, "  %-12s %s %5.1f\n", dim.Name, p.paint(bar(dim.Score), bandAttr(band)), dim.Score)
	}
	b.WriteString("\n")

	parts := make([]string, 0, len(d.Slices))
	for _, s := range d.Slices {
		parts = append(parts, fmt.Sprintf("%s %d (%.0f%%)", s.Name, s.Value, s.Percent))
	}
	fmt.Fprintf(&b, "Consensus: %s, agreement %.1f%%\n\n", strings.Join(parts, ", "), d.AgreementPct)

	if len(d.Suggestions) > 0 {
		b.WriteString(p.paint("Suggestions", color.Bold) + "\n")
		for _, s := range d.Suggestions {
			fmt.Fprintf(&b, "  %d. %s %s\n", s.Number, s.Icon, s.Text)
		}
		b.WriteString("\n")
	}

	if d.Issues.View.Total > 0 {
		b.WriteString(p.paint("Issues", color.Bold) + "\n")
		if len(d.Issues.Cards) == 0 {
			b.WriteString("  No issues found matching the selected filters.\n")
		}
		for _, c := range d.Issues.Cards {
			sev := p.paint(string(c.Severity), severityAttr(c.Severity))
			fmt.Fprintf(&b, "  %s %s  %s %s", c.SeverityIcon, sev, c.CategoryIcon, c.Category)
			if c.Location != "" {
				fmt.Fprintf(&b, "  (%s)", c.Location)
			}
			fmt.Fprintf(&b, "\n    %s\n", c.Message)
			if c.SuggestedFix != "" {
				fmt.Fprintf(&b, "    fix: %s\n", c.SuggestedFix)
			}
		}
		if d.Issues.View.Filtered() {
			fmt.Fprintf(&b, "  Showing %d of %d issues\n", d.Issues.View.Shown, d.Issues.View.Total)
		}
		b.WriteString("\n")
	}

	if len(d.Reviewers) > 0 {
		b.WriteString(p.paint("Reviewers", color.Bold) + "\n")
		for _, r := range d.Reviewers {
			fmt.Fprintf(&b, "  %s: %s\n", r.Name, reviewerScore(r))
			if r.Notes != "" {
				fmt.Fprintf(&b, "    %s\n", r.Notes)
			}
		}
	}

	return b.String()
}

func bar(score float64) string {
	filled := int(min(max(score, 0), 100) / 100 * barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// FailureText renders a failure for a terminal.
func FailureText(f review.Failure, colored bool) string {
	p := painter{enabled: colored}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", p.paint("Error:", color.FgRed, color.Bold), f.Error)
	if f.CORSError {
		fmt.Fprintf(&b, "\n%s\nSolutions:\n", corsTitle)
		for i, s := range CORSHelp {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
		}
	}
	return b.String()
}
