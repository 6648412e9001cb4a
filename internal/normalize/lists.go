package normalize

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/maverickalo/check-my-code/internal/review"
)

// issues reads the issue list. Entries that are not objects are dropped;
// a missing severity reads as low and a missing category as other.
func issues(doc gjson.Result) []review.Issue {
	out := []review.Issue{}
	list := lookup(doc, "issues")
	if !list.IsArray() {
		return out
	}
	for _, v := range list.Array() {
		if !v.IsObject() {
			continue
		}
		iss := review.Issue{
			Severity: review.SeverityLow,
			Category: review.CategoryOther,
		}
		if s, ok := (chain{"severity"}).text(v); ok {
			iss.Severity = review.Severity(strings.ToLower(s))
		}
		if s, ok := (chain{"category"}).text(v); ok {
			iss.Category = s
		}
		iss.Message, _ = (chain{"message"}).text(v)
		iss.Line = position(lookup(v, "line"))
		iss.Column = position(lookup(v, "column"))
		iss.CodeSnippet = snippet(lookup(v, "codeSnippet"))
		iss.FixedSnippet = snippet(lookup(v, "fixedSnippet"))
		iss.SuggestedFix, _ = (chain{"suggestedFix"}).text(v)
		out = append(out, iss)
	}
	return out
}

func suggestions(doc gjson.Result) []string {
	out := texts(lookup(doc, "suggestions"))
	if out == nil {
		return []string{}
	}
	return out
}

func evals(doc gjson.Result) []review.ReviewerEvaluation {
	out := []review.ReviewerEvaluation{}
	list := lookup(doc, "evals")
	if !list.IsArray() {
		return out
	}
	for _, v := range list.Array() {
		if !v.IsObject() {
			continue
		}
		var ev review.ReviewerEvaluation
		ev.Reviewer, _ = (chain{"reviewer"}).text(v)
		if score, ok := (chain{"score"}).number(v); ok {
			ev.Score = score
			ev.Scored = true
		}
		ev.Notes, _ = reviewerNotesPaths.text(v)
		out = append(out, ev)
	}
	return out
}

// position reads a 1-based line or column; anything else is absent.
func position(v gjson.Result) *int {
	if !isNumber(v) || v.Float() < 1 {
		return nil
	}
	n := toInt(v.Float())
	return &n
}

// snippet keeps code verbatim apart from surrounding blank lines.
func snippet(v gjson.Result) string {
	if v.Type != gjson.String {
		return ""
	}
	return strings.Trim(v.Str, "\r\n")
}
