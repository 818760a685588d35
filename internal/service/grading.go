// internal/service/grading.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shreedharkb/Speechify/internal/grader"
	"github.com/shreedharkb/Speechify/internal/metrics"
	"github.com/shreedharkb/Speechify/internal/worker"
)

// BatchItem is one answer of a batch. Err is set when the item could not be
// decoded; such an item fails on its own without affecting the others.
type BatchItem struct {
	QuestionText  string
	StudentAnswer string
	CorrectAnswer string
	Err           error
}

// BatchRequest grades every item against the same threshold.
type BatchRequest struct {
	Threshold float64
	Items     []BatchItem
}

// BatchItemResult is the outcome of one batch item. Index is the item's
// position in the request. When Err is set, Result is the zero verdict.
type BatchItemResult struct {
	Index  int
	Result grader.Result
	Err    error
}

// GradingService grades single answers and batches on top of a Grader.
// Requests arrive already validated by the transport layer.
type GradingService struct {
	grader  grader.Grader
	workers int
	logger  *slog.Logger
}

// NewGradingService creates a GradingService. workers is the number of batch
// items graded at once; 1 grades them sequentially.
func NewGradingService(g grader.Grader, workers int, logger *slog.Logger) *GradingService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GradingService{
		grader:  g,
		workers: workers,
		logger:  logger,
	}
}

// GradeOne grades a single answer. Failures are returned as KindInternal errors.
func (gs *GradingService) GradeOne(ctx context.Context, req grader.Request) (grader.Result, error) {
	result, err := gs.grade(ctx, req)
	if err != nil {
		gs.logger.ErrorContext(ctx, "grading error", "error", err)
		return grader.Result{}, InternalError(err)
	}
	return result, nil
}

// GradeBatch grades every item and returns one result per item, in input
// order. A failing item yields an error result and never aborts the batch.
func (gs *GradingService) GradeBatch(ctx context.Context, req BatchRequest) []BatchItemResult {
	jobs := make([]worker.Job[BatchItemResult], len(req.Items))
	for i, item := range req.Items {
		jobs[i] = func() BatchItemResult {
			return gs.gradeItem(ctx, i, item, req.Threshold)
		}
	}

	results := worker.Run(gs.workers, jobs)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	metrics.RecordBatch(len(results), failed)
	gs.logger.InfoContext(ctx, "batch graded", "items", len(results), "failed", failed)

	return results
}

func (gs *GradingService) gradeItem(ctx context.Context, index int, item BatchItem, threshold float64) BatchItemResult {
	if item.Err != nil {
		gs.logger.WarnContext(ctx, "invalid batch item", "index", index, "error", item.Err)
		return BatchItemResult{Index: index, Err: item.Err}
	}

	// Each item checks its own answers before reaching the grader.
	switch {
	case grader.IsBlank(item.StudentAnswer):
		metrics.RecordVerdict("shortcut", false)
		return BatchItemResult{Index: index, Result: grader.Result{Explanation: grader.ExplanationNoAnswer}}
	case grader.IsBlank(item.CorrectAnswer):
		metrics.RecordVerdict("shortcut", false)
		return BatchItemResult{Index: index, Result: grader.Result{Explanation: grader.ExplanationNoCorrectAnswer}}
	}

	result, err := gs.grade(ctx, grader.Request{
		QuestionText:  item.QuestionText,
		StudentAnswer: item.StudentAnswer,
		CorrectAnswer: item.CorrectAnswer,
		Threshold:     threshold,
	})
	if err != nil {
		gs.logger.ErrorContext(ctx, "grading error", "index", index, "error", err)
		return BatchItemResult{Index: index, Err: err}
	}
	return BatchItemResult{Index: index, Result: result}
}

// grade calls the grader, converting a panic into an error so that one bad
// request cannot take the process down.
func (gs *GradingService) grade(ctx context.Context, req grader.Request) (result grader.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while grading: %v", r)
		}
	}()
	return gs.grader.Grade(ctx, req)
}
