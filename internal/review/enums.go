package review

// Severity is the importance of an issue. The service conventionally sends
// high, medium or low, but other values are preserved as-is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Conventional issue categories. Category is free-form; these are the values
// the service is known to send.
const (
	CategorySecurity      = "security"
	CategoryPerformance   = "performance"
	CategoryStyle         = "style"
	CategoryCorrectness   = "correctness"
	CategoryErrorHandling = "error_handling"
	CategoryOther         = "other"
)

// Recommendation is the overall verdict on the snippet.
type Recommendation string

const (
	RecommendationOptimal          Recommendation = "optimal"
	RecommendationNeedsImprovement Recommendation = "needs_improvement"
)

func (r Recommendation) Valid() bool {
	switch r {
	case RecommendationOptimal, RecommendationNeedsImprovement:
		return true
	}
	return false
}

// Optimal reports whether the recommendation is exactly "optimal". Any other
// value, including free-form text from the service, counts as needing work.
func (r Recommendation) Optimal() bool {
	return r == RecommendationOptimal
}
