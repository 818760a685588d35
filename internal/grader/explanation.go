package grader

// Explanation labels. The set is fixed; clients may match on these strings.
const (
	ExplanationNoAnswer        = "No answer provided"
	ExplanationNoCorrectAnswer = "No correct answer available for comparison"
	ExplanationExactMatch      = "Exact match"
	ExplanationExcellent       = "Excellent match — answers are semantically equivalent"
	ExplanationVeryStrong      = "Very strong match — core concepts are the same"
	ExplanationGood            = "Good match — answer conveys the correct meaning"
	ExplanationPartial         = "Partial match — some correct concepts but incomplete or missing key details"
	ExplanationWeak            = "Weak match — some related concepts but significantly different meaning"
	ExplanationNone            = "No significant match — answers have different meanings"
)

// Explain picks the label for score. Rules are checked in order and the first
// match wins. A threshold outside (0.70, 0.95) makes the labels non-monotonic
// in score; callers that rely on the labels should stay inside that range.
func Explain(score, threshold float64) string {
	switch {
	case score >= 0.95:
		return ExplanationExcellent
	case score >= 0.90:
		return ExplanationVeryStrong
	case score >= threshold:
		return ExplanationGood
	case score >= 0.70:
		return ExplanationPartial
	case score >= 0.50:
		return ExplanationWeak
	default:
		return ExplanationNone
	}
}
