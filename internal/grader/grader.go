// Package grader decides whether a student's answer means the same thing as
// the reference answer.
package grader

import (
	"context"
	"fmt"
)

// DefaultThreshold is the similarity at or above which an answer is correct
// when the caller does not supply a threshold.
const DefaultThreshold = 0.85

// Request is one answer to grade.
type Request struct {
	QuestionText  string
	StudentAnswer string
	CorrectAnswer string
	Threshold     float64
}

// Result is a grading verdict. SimilarityScore is always in [0, 1].
type Result struct {
	IsCorrect       bool
	SimilarityScore float64
	Explanation     string
}

// Grader grades a student's answer against a reference answer.
// Implementations may use embeddings, heuristics, or canned results (for tests).
type Grader interface {
	Grade(ctx context.Context, req Request) (Result, error)
}

// GradeError is returned when grading fails so the caller can distinguish
// between "the answer is wrong" and "the answer could not be graded".
type GradeError struct {
	Reason  string
	Wrapped error
}

func (e *GradeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("grading failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("grading failed: %s", e.Reason)
}

func (e *GradeError) Unwrap() error {
	return e.Wrapped
}
