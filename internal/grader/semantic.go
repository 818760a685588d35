package grader

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/shreedharkb/Speechify/internal/embedding"
	"github.com/shreedharkb/Speechify/internal/metrics"
)

// SemanticGrader grades by embedding similarity.
//
// Two signals are computed: contextual similarity, where the question is
// prepended to both answers, and direct similarity of the answers alone. The
// higher one is the score.
type SemanticGrader struct {
	encoder embedding.Encoder
	logger  *slog.Logger
}

// Compile-time check: *SemanticGrader satisfies the Grader interface.
var _ Grader = (*SemanticGrader)(nil)

// NewSemanticGrader creates a grader that embeds text with enc.
func NewSemanticGrader(enc embedding.Encoder, logger *slog.Logger) *SemanticGrader {
	if logger == nil {
		logger = slog.Default()
	}
	return &SemanticGrader{encoder: enc, logger: logger}
}

// Grade applies the shortcuts, then scores the answer semantically.
func (g *SemanticGrader) Grade(ctx context.Context, req Request) (Result, error) {
	if result, ok := Shortcut(req.StudentAnswer, req.CorrectAnswer); ok {
		metrics.RecordVerdict("shortcut", result.IsCorrect)
		return result, nil
	}

	contextual, direct, err := g.signals(ctx, req)
	if err != nil {
		return Result{}, err
	}

	score := math.Max(contextual, direct)
	result := Result{
		IsCorrect:       score >= req.Threshold,
		SimilarityScore: score,
		Explanation:     Explain(score, req.Threshold),
	}

	g.logger.DebugContext(ctx, "answer graded",
		"contextual", contextual,
		"direct", direct,
		"score", score,
		"threshold", req.Threshold,
		"correct", result.IsCorrect,
	)
	metrics.RecordVerdict("semantic", result.IsCorrect)

	return result, nil
}

// signals encodes the four texts concurrently and returns the contextual and
// direct similarities.
func (g *SemanticGrader) signals(ctx context.Context, req Request) (contextual, direct float64, err error) {
	texts := [4]string{
		req.QuestionText + " " + req.StudentAnswer,
		req.QuestionText + " " + req.CorrectAnswer,
		req.StudentAnswer,
		req.CorrectAnswer,
	}

	var vecs [4][]float32
	eg, egCtx := errgroup.WithContext(ctx)
	for i, text := range texts {
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("encoder panicked: %v", r)
				}
			}()
			vec, err := g.encoder.Encode(egCtx, text)
			if err != nil {
				return err
			}
			vecs[i] = vec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, 0, &GradeError{Reason: "failed to encode answers", Wrapped: err}
	}

	contextual, err = embedding.Similarity(vecs[0], vecs[1])
	if err != nil {
		return 0, 0, &GradeError{Reason: "failed to compare contextual embeddings", Wrapped: err}
	}
	direct, err = embedding.Similarity(vecs[2], vecs[3])
	if err != nil {
		return 0, 0, &GradeError{Reason: "failed to compare direct embeddings", Wrapped: err}
	}

	return contextual, direct, nil
}
