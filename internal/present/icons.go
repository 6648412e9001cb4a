package present

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/maverickalo/check-my-code/internal/review"
)

// SeverityIcon returns the icon shown next to a severity. Unknown severities
// share the low icon.
func SeverityIcon(s review.Severity) string {
	switch s {
	case review.SeverityHigh:
		return "🚨"
	case review.SeverityMedium:
		return "⚠️"
	default:
		return "💡"
	}
}

// SeverityColor returns the accent color of a severity.
func SeverityColor(s review.Severity) string {
	switch s {
	case review.SeverityHigh:
		return "#dc3545"
	case review.SeverityMedium:
		return "#ffc107"
	default:
		return "#17a2b8"
	}
}

// CategoryIcon returns the icon shown next to a category.
func CategoryIcon(category string) string {
	switch category {
	case review.CategorySecurity:
		return "🔒"
	case review.CategoryPerformance:
		return "⚡"
	case review.CategoryStyle:
		return "🎨"
	case review.CategoryCorrectness:
		return "✅"
	case review.CategoryErrorHandling:
		return "🛡️"
	default:
		return "🔧"
	}
}

// capitalize upper-cases the first letter and leaves the rest alone.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	var b strings.Builder
	b.WriteRune(unicode.ToUpper(r))
	b.WriteString(s[size:])
	return b.String()
}
