package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreedharkb/Speechify/internal/grader"
	"github.com/shreedharkb/Speechify/internal/metrics"
	"github.com/shreedharkb/Speechify/internal/service"
)

// verdictCount reads the current value of verdicts_total for path and outcome.
func verdictCount(t *testing.T, path, correct string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.VerdictsTotal.WithLabelValues(path, correct).Write(&m))
	return m.GetCounter().GetValue()
}

// scriptedGrader answers from a table keyed by student answer.
type scriptedGrader struct {
	mu       sync.Mutex
	results  map[string]grader.Result
	failures map[string]error
	panicOn  string
	delay    map[string]time.Duration
	requests []grader.Request
}

func (s *scriptedGrader) Grade(_ context.Context, req grader.Request) (grader.Result, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if d, ok := s.delay[req.StudentAnswer]; ok {
		time.Sleep(d)
	}
	if req.StudentAnswer == s.panicOn && s.panicOn != "" {
		panic("boom")
	}
	if err, ok := s.failures[req.StudentAnswer]; ok {
		return grader.Result{}, err
	}
	if r, ok := s.results[req.StudentAnswer]; ok {
		return r, nil
	}
	return grader.Result{IsCorrect: true, SimilarityScore: 1, Explanation: grader.ExplanationExactMatch}, nil
}

func (s *scriptedGrader) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func TestGradeOne(t *testing.T) {
	g := &scriptedGrader{results: map[string]grader.Result{
		"Paris": {IsCorrect: true, SimilarityScore: 1, Explanation: "Exact match"},
	}}
	svc := service.NewGradingService(g, 1, nil)

	req := grader.Request{QuestionText: "Capital of France?", StudentAnswer: "Paris", CorrectAnswer: "Paris", Threshold: 0.85}
	got, err := svc.GradeOne(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, grader.Result{IsCorrect: true, SimilarityScore: 1, Explanation: "Exact match"}, got)
	assert.Equal(t, []grader.Request{req}, g.requests)
}

func TestGradeOne_FailureIsInternal(t *testing.T) {
	cause := errors.New("embedding provider unavailable")
	svc := service.NewGradingService(&scriptedGrader{failures: map[string]error{"London": cause}}, 1, nil)

	_, err := svc.GradeOne(context.Background(), grader.Request{StudentAnswer: "London", CorrectAnswer: "Paris"})

	var svcErr *service.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, service.KindInternal, svcErr.Kind)
	assert.Equal(t, "embedding provider unavailable", svcErr.Message)
	assert.ErrorIs(t, err, cause)
}

func TestGradeOne_PanicIsRecovered(t *testing.T) {
	svc := service.NewGradingService(&scriptedGrader{panicOn: "London"}, 1, nil)

	_, err := svc.GradeOne(context.Background(), grader.Request{StudentAnswer: "London", CorrectAnswer: "Paris"})
	require.Error(t, err)
	assert.Equal(t, service.KindInternal, service.KindOf(err))
	assert.Contains(t, err.Error(), "panic while grading")
}

func TestGradeBatch_OrderAndIndexes(t *testing.T) {
	for _, workers := range []int{1, 4} {
		g := &scriptedGrader{
			results: map[string]grader.Result{
				"Paris":  {IsCorrect: true, SimilarityScore: 1, Explanation: "Exact match"},
				"Berlin": {IsCorrect: true, SimilarityScore: 1, Explanation: "Exact match"},
				"London": {IsCorrect: false, SimilarityScore: 0.42, Explanation: grader.ExplanationNone},
			},
			delay: map[string]time.Duration{"Paris": 20 * time.Millisecond},
		}
		svc := service.NewGradingService(g, workers, nil)

		results := svc.GradeBatch(context.Background(), service.BatchRequest{
			Threshold: 0.85,
			Items: []service.BatchItem{
				{QuestionText: "Capital of France?", StudentAnswer: "Paris", CorrectAnswer: "Paris"},
				{QuestionText: "Capital of Germany?", StudentAnswer: "Berlin", CorrectAnswer: "Berlin"},
				{QuestionText: "Capital of France?", StudentAnswer: "London", CorrectAnswer: "Paris"},
			},
		})

		require.Len(t, results, 3)
		for i, r := range results {
			assert.Equal(t, i, r.Index)
			assert.NoError(t, r.Err)
		}
		assert.True(t, results[0].Result.IsCorrect)
		assert.True(t, results[1].Result.IsCorrect)
		assert.False(t, results[2].Result.IsCorrect)
		assert.Equal(t, 0.42, results[2].Result.SimilarityScore)
	}
}

func TestGradeBatch_FailuresAreIsolated(t *testing.T) {
	g := &scriptedGrader{
		failures: map[string]error{"timeout": errors.New("provider timeout")},
		panicOn:  "crash",
	}
	svc := service.NewGradingService(g, 2, nil)

	results := svc.GradeBatch(context.Background(), service.BatchRequest{
		Threshold: 0.85,
		Items: []service.BatchItem{
			{StudentAnswer: "Paris", CorrectAnswer: "Paris"},
			{Err: errors.New("answer item must be a JSON object")},
			{StudentAnswer: "timeout", CorrectAnswer: "Paris"},
			{StudentAnswer: "crash", CorrectAnswer: "Paris"},
			{StudentAnswer: "Berlin", CorrectAnswer: "Berlin"},
		},
	})

	require.Len(t, results, 5)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}

	assert.NoError(t, results[0].Err)
	assert.EqualError(t, results[1].Err, "answer item must be a JSON object")
	assert.EqualError(t, results[2].Err, "provider timeout")
	assert.ErrorContains(t, results[3].Err, "panic while grading")
	assert.NoError(t, results[4].Err)
	assert.True(t, results[4].Result.IsCorrect)

	for _, i := range []int{1, 2, 3} {
		assert.Equal(t, grader.Result{}, results[i].Result)
	}
}

func TestGradeBatch_BlankAnswersSkipGrader(t *testing.T) {
	g := &scriptedGrader{}
	svc := service.NewGradingService(g, 1, nil)

	before := verdictCount(t, "shortcut", "false")

	results := svc.GradeBatch(context.Background(), service.BatchRequest{
		Threshold: 0.85,
		Items: []service.BatchItem{
			{StudentAnswer: "  ", CorrectAnswer: "Paris"},
			{StudentAnswer: "Paris", CorrectAnswer: ""},
		},
	})

	require.Len(t, results, 2)
	assert.Equal(t, grader.Result{Explanation: "No answer provided"}, results[0].Result)
	assert.Equal(t, grader.Result{Explanation: "No correct answer available for comparison"}, results[1].Result)
	assert.Zero(t, g.calls())
	assert.Equal(t, before+2, verdictCount(t, "shortcut", "false"))
}

func TestGradeBatch_ThresholdAppliesToEveryItem(t *testing.T) {
	g := &scriptedGrader{}
	svc := service.NewGradingService(g, 3, nil)

	svc.GradeBatch(context.Background(), service.BatchRequest{
		Threshold: 0.7,
		Items: []service.BatchItem{
			{StudentAnswer: "a", CorrectAnswer: "b"},
			{StudentAnswer: "c", CorrectAnswer: "d"},
		},
	})

	require.Equal(t, 2, g.calls())
	for _, req := range g.requests {
		assert.Equal(t, 0.7, req.Threshold)
	}
}

func TestGradeBatch_Empty(t *testing.T) {
	svc := service.NewGradingService(&scriptedGrader{}, 1, nil)
	results := svc.GradeBatch(context.Background(), service.BatchRequest{Threshold: 0.85})
	assert.Empty(t, results)
}
