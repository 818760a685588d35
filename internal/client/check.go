package client

import (
	"context"
	"fmt"

	"github.com/shreedharkb/Speechify/internal/api"
)

// Check is one smoke check against a running grading service. Run returns
// a short detail line and an error when the check fails.
type Check struct {
	Name string
	// Semantic checks depend on a real sentence-embedding model; the
	// feature-hashing encoder only sees shared words.
	Semantic bool
	Run      func(ctx context.Context, c *Client) (string, error)
}

// CheckResult is the outcome of one Check.
type CheckResult struct {
	Name   string
	Passed bool
	Detail string
}

// SmokeChecks returns the standard checks in the order they should run.
func SmokeChecks() []Check {
	return []Check{
		{Name: "Health Check", Run: checkHealth},
		{Name: "Exact Match Test", Run: expectGrade(gradeCase{
			question: "What is the capital of France?", student: "Paris", correct: "Paris", threshold: 0.85,
			wantCorrect: true, minScore: 0.95,
		})},
		{Name: "Case Insensitive Test", Run: expectGrade(gradeCase{
			question: "What is the capital of France?", student: "paris", correct: "Paris", threshold: 0.85,
			wantCorrect: true, minScore: 0.95,
		})},
		{Name: "Semantic Similarity Test", Semantic: true, Run: expectGrade(gradeCase{
			question: "What is photosynthesis?", student: "process where plants make food from sunlight",
			correct: "process by which plants convert light energy into chemical energy",
			threshold: 0.70, wantCorrect: true, minScore: 0.70,
		})},
		{Name: "Medical Terms Test", Semantic: true, Run: expectGrade(gradeCase{
			question: "What is ECG?", student: "electrical signal generated from the heart", correct: "electrocardiogram",
			threshold: 0.70, wantCorrect: true, minScore: 0.70,
		})},
		{Name: "Incorrect Answer Test", Semantic: true, Run: expectGrade(gradeCase{
			question: "What is the capital of France?", student: "London", correct: "Paris", threshold: 0.85,
			wantCorrect: false, maxScore: 0.85,
		})},
		{Name: "Empty Answer Test", Run: expectGrade(gradeCase{
			question: "What is photosynthesis?", student: "", correct: "process by which plants convert light energy",
			threshold: 0.85, wantCorrect: false, maxScore: 1e-9,
		})},
		{Name: "Batch Grading Test", Run: checkBatch},
	}
}

// RunChecks runs every check and reports each outcome. It never stops early.
func RunChecks(ctx context.Context, c *Client, checks []Check) []CheckResult {
	results := make([]CheckResult, 0, len(checks))
	for _, check := range checks {
		detail, err := check.Run(ctx, c)
		res := CheckResult{Name: check.Name, Passed: err == nil, Detail: detail}
		if err != nil {
			res.Detail = err.Error()
		}
		results = append(results, res)
	}
	return results
}

func checkHealth(ctx context.Context, c *Client) (string, error) {
	health, err := c.Health(ctx)
	if err != nil {
		return "", err
	}
	if health.Status != "healthy" {
		return "", fmt.Errorf("status is %q", health.Status)
	}
	return fmt.Sprintf("Model: %s, Status: %s", health.Model, health.Status), nil
}

type gradeCase struct {
	question, student, correct string
	threshold                  float64
	wantCorrect                bool
	minScore                   float64 // checked when wantCorrect
	maxScore                   float64 // exclusive upper bound, checked when !wantCorrect
}

func expectGrade(tc gradeCase) func(context.Context, *Client) (string, error) {
	return func(ctx context.Context, c *Client) (string, error) {
		threshold := api.Threshold(tc.threshold)
		got, err := c.Grade(ctx, api.GradeRequest{
			QuestionText:  tc.question,
			StudentAnswer: tc.student,
			CorrectAnswer: tc.correct,
			Threshold:     &threshold,
		})
		if err != nil {
			return "", err
		}

		detail := fmt.Sprintf("Score: %.4f, Correct: %t", got.SimilarityScore, got.IsCorrect)
		if got.IsCorrect != tc.wantCorrect {
			return "", fmt.Errorf("expected correct=%t. %s", tc.wantCorrect, detail)
		}
		if tc.wantCorrect && got.SimilarityScore < tc.minScore {
			return "", fmt.Errorf("score below %.2f. %s", tc.minScore, detail)
		}
		if !tc.wantCorrect && got.SimilarityScore >= tc.maxScore {
			return "", fmt.Errorf("score not below %.2f. %s", tc.maxScore, detail)
		}
		return detail, nil
	}
}

func checkBatch(ctx context.Context, c *Client) (string, error) {
	threshold := api.Threshold(0.85)
	got, err := c.BatchGrade(ctx, api.BatchGradeRequest{
		Threshold: &threshold,
		Answers: []api.BatchAnswer{
			{QuestionText: "Capital of France?", StudentAnswer: "Paris", CorrectAnswer: "Paris"},
			{QuestionText: "Capital of Germany?", StudentAnswer: "Berlin", CorrectAnswer: "Berlin"},
		},
	})
	if err != nil {
		return "", err
	}
	if len(got.Results) != 2 {
		return "", fmt.Errorf("expected 2 results, got %d", len(got.Results))
	}

	correct := 0
	for _, r := range got.Results {
		if r.IsCorrect {
			correct++
		}
	}
	return fmt.Sprintf("Graded %d answers, %d correct", len(got.Results), correct), nil
}
