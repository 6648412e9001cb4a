// Package issues filters the issue list by severity and category facets.
package issues

import (
	"github.com/maverickalo/check-my-code/internal/review"
)

// All matches every value of a facet.
const All = "all"

// Filter returns the issues matching both facets, in input order. Either
// facet may be All (or empty) to match everything. The input is not modified.
func Filter(list []review.Issue, severity, category string) []review.Issue {
	out := []review.Issue{}
	for _, iss := range list {
		if matches(iss, severity, category) {
			out = append(out, iss)
		}
	}
	return out
}

func matches(iss review.Issue, severity, category string) bool {
	return facetMatch(severity, string(iss.Severity)) && facetMatch(category, iss.Category)
}

func facetMatch(want, got string) bool {
	return want == "" || want == All || want == got
}

// Facets lists the distinct values seen in an issue list.
type Facets struct {
	Severities []string `json:"severities"`
	Categories []string `json:"categories"`
}

// FacetValues collects distinct severities and categories in first-seen order.
func FacetValues(list []review.Issue) Facets {
	f := Facets{Severities: []string{}, Categories: []string{}}
	seenSev := make(map[string]bool)
	seenCat := make(map[string]bool)
	for _, iss := range list {
		if s := string(iss.Severity); !seenSev[s] {
			seenSev[s] = true
			f.Severities = append(f.Severities, s)
		}
		if !seenCat[iss.Category] {
			seenCat[iss.Category] = true
			f.Categories = append(f.Categories, iss.Category)
		}
	}
	return f
}

// View is a filtered issue list together with its visible counts.
type View struct {
	Severity string                `json:"severity"`
	Category string                `json:"category"`
	Issues   []review.Issue        `json:"issues"`
	Shown    int                   `json:"shown"`
	Total    int                   `json:"total"`
	Counts   review.SeverityCounts `json:"counts"`
}

// Filtered reports whether the filters hid any issue.
func (v View) Filtered() bool {
	return v.Shown < v.Total
}

// Visible filters the list and recomputes the counts of what remains.
func Visible(list []review.Issue, severity, category string) View {
	if severity == "" {
		severity = All
	}
	if category == "" {
		category = All
	}
	shown := Filter(list, severity, category)
	return View{
		Severity: severity,
		Category: category,
		Issues:   shown,
		Shown:    len(shown),
		Total:    len(list),
		Counts:   CountSeverities(shown),
	}
}

// CountSeverities counts issues per known severity. Other severities are
// not counted.
func CountSeverities(list []review.Issue) review.SeverityCounts {
	var c review.SeverityCounts
	for _, iss := range list {
		switch iss.Severity {
		case review.SeverityHigh:
			c.High++
		case review.SeverityMedium:
			c.Medium++
		case review.SeverityLow:
			c.Low++
		}
	}
	return c
}
