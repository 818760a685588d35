package grader

import "strings"

// Normalize trims surrounding whitespace and lowercases text. It is only used
// to detect exact matches; embeddings always see the original text.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(text))
}

// IsBlank reports whether text is empty or whitespace only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Shortcut returns the verdict for requests that need no embeddings: a blank
// student answer, a blank reference answer, or answers equal after
// normalization. ok is false when the request needs semantic scoring.
func Shortcut(studentAnswer, correctAnswer string) (result Result, ok bool) {
	switch {
	case IsBlank(studentAnswer):
		return Result{IsCorrect: false, SimilarityScore: 0, Explanation: ExplanationNoAnswer}, true
	case IsBlank(correctAnswer):
		return Result{IsCorrect: false, SimilarityScore: 0, Explanation: ExplanationNoCorrectAnswer}, true
	case Normalize(studentAnswer) == Normalize(correctAnswer):
		return Result{IsCorrect: true, SimilarityScore: 1, Explanation: ExplanationExactMatch}, true
	}
	return Result{}, false
}
