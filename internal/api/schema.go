package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shreedharkb/Speechify/internal/grader"
	"github.com/shreedharkb/Speechify/internal/service"
)

// Client-facing input error messages.
const (
	msgNoJSON      = "No JSON data provided"
	msgNoAnswers   = "No answers provided"
	msgInvalidJSON = "Invalid JSON"
)

// Threshold accepts a JSON number or a numeric string such as "0.9".
type Threshold float64

func (t *Threshold) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("threshold must be a number, got %s", string(b))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("threshold must be finite")
	}
	*t = Threshold(v)
	return nil
}

// thresholdOrDefault returns t, or grader.DefaultThreshold when t is absent.
func thresholdOrDefault(t *Threshold) float64 {
	if t == nil {
		return grader.DefaultThreshold
	}
	return float64(*t)
}

// GradeRequest is the body of POST /grade. Missing strings default to "".
type GradeRequest struct {
	QuestionText  string     `json:"questionText" example:"What is photosynthesis?"`
	StudentAnswer string     `json:"studentAnswer" example:"Process where plants make food from sunlight"`
	CorrectAnswer string     `json:"correctAnswer" example:"Process by which plants convert light energy into chemical energy"`
	Threshold     *Threshold `json:"threshold,omitempty" swaggertype:"number" example:"0.85"`
}

// BatchAnswer is one item of POST /batch-grade. The threshold is batch-wide.
type BatchAnswer struct {
	QuestionText  string `json:"questionText"`
	StudentAnswer string `json:"studentAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
}

// BatchGradeRequest is the body of POST /batch-grade.
type BatchGradeRequest struct {
	Threshold *Threshold    `json:"threshold,omitempty" swaggertype:"number" example:"0.85"`
	Answers   []BatchAnswer `json:"answers"`
}

// GradeResponse is the verdict for one answer.
type GradeResponse struct {
	IsCorrect       bool    `json:"isCorrect"`
	SimilarityScore float64 `json:"similarityScore"`
	Explanation     string  `json:"explanation"`
}

// BatchItemResponse is the verdict, or the error, for one batch item.
type BatchItemResponse struct {
	Index           int     `json:"index"`
	IsCorrect       bool    `json:"isCorrect"`
	SimilarityScore float64 `json:"similarityScore"`
	Explanation     string  `json:"explanation,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// BatchGradeResponse is the body of a successful POST /batch-grade.
type BatchGradeResponse struct {
	Results []BatchItemResponse `json:"results"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Model   string `json:"model"`
	Service string `json:"service"`
}

// parseGradeRequest validates a /grade body. An empty body, null or {} count
// as "no data".
func parseGradeRequest(body []byte) (grader.Request, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return grader.Request{}, err
	}
	if len(fields) == 0 {
		return grader.Request{}, service.InputError(msgNoJSON, nil)
	}

	var req GradeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return grader.Request{}, service.InputError(msgInvalidJSON, err)
	}

	return grader.Request{
		QuestionText:  req.QuestionText,
		StudentAnswer: req.StudentAnswer,
		CorrectAnswer: req.CorrectAnswer,
		Threshold:     thresholdOrDefault(req.Threshold),
	}, nil
}

// parseBatchRequest validates a /batch-grade body. Items are decoded one by
// one so that a malformed item only fails itself.
func parseBatchRequest(body []byte) (service.BatchRequest, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return service.BatchRequest{}, err
	}

	rawAnswers, ok := fields["answers"]
	if !ok || isNull(rawAnswers) {
		return service.BatchRequest{}, service.InputError(msgNoAnswers, nil)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(rawAnswers, &items); err != nil {
		return service.BatchRequest{}, service.InputError(msgInvalidJSON, errors.New("answers must be an array"))
	}

	var threshold *Threshold
	if raw, ok := fields["threshold"]; ok && !isNull(raw) {
		threshold = new(Threshold)
		if err := json.Unmarshal(raw, threshold); err != nil {
			return service.BatchRequest{}, service.InputError(msgInvalidJSON, err)
		}
	}

	req := service.BatchRequest{
		Threshold: thresholdOrDefault(threshold),
		Items:     make([]service.BatchItem, len(items)),
	}
	for i, raw := range items {
		req.Items[i] = decodeBatchItem(raw)
	}
	return req, nil
}

func decodeBatchItem(raw json.RawMessage) service.BatchItem {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return service.BatchItem{Err: errors.New("answer item must be a JSON object")}
	}

	var answer BatchAnswer
	if err := json.Unmarshal(trimmed, &answer); err != nil {
		return service.BatchItem{Err: fmt.Errorf("invalid answer item: %w", err)}
	}
	return service.BatchItem{
		QuestionText:  answer.QuestionText,
		StudentAnswer: answer.StudentAnswer,
		CorrectAnswer: answer.CorrectAnswer,
	}
}

// decodeObject parses body as a JSON object. A missing body or a literal null
// yields a nil map.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, service.InputError(msgInvalidJSON, err)
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// roundScore rounds to 4 decimal places for the response.
func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}
