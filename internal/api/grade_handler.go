package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/shreedharkb/Speechify/internal/service"
)

// health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Model:   h.model,
		Service: ServiceName,
	})
}

// grade godoc
// @Summary      Grade one answer
// @Description  Compares the student answer with the correct answer by semantic similarity.
// @Tags         grading
// @Accept       json
// @Produce      json
// @Param        request  body      GradeRequest  true  "Answer to grade"
// @Success      200      {object}  GradeResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /grade [post]
func (h *Handler) grade(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	req, err := parseGradeRequest(body)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "grading request received",
		"question", req.QuestionText,
		"threshold", req.Threshold,
	)

	result, err := h.grading.GradeOne(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, GradeResponse{
		IsCorrect:       result.IsCorrect,
		SimilarityScore: roundScore(result.SimilarityScore),
		Explanation:     result.Explanation,
	})
}

// batchGrade godoc
// @Summary      Grade many answers
// @Description  Grades every item with the batch threshold. A failing item is reported in place and does not affect the others.
// @Tags         grading
// @Accept       json
// @Produce      json
// @Param        request  body      BatchGradeRequest  true  "Answers to grade"
// @Success      200      {object}  BatchGradeResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /batch-grade [post]
func (h *Handler) batchGrade(w http.ResponseWriter, r *http.Request) {
	body, err := h.readBody(w, r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	req, err := parseBatchRequest(body)
	if err != nil {
		h.respondError(w, err)
		return
	}

	results := h.grading.GradeBatch(r.Context(), req)

	resp := BatchGradeResponse{Results: make([]BatchItemResponse, len(results))}
	for i, res := range results {
		if res.Err != nil {
			resp.Results[i] = BatchItemResponse{
				Index:           res.Index,
				IsCorrect:       false,
				SimilarityScore: 0,
				Error:           res.Err.Error(),
			}
			continue
		}
		resp.Results[i] = BatchItemResponse{
			Index:           res.Index,
			IsCorrect:       res.Result.IsCorrect,
			SimilarityScore: roundScore(res.Result.SimilarityScore),
			Explanation:     res.Result.Explanation,
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// readBody reads the request body up to the configured limit.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, service.InputError("Request body too large", err)
		}
		return nil, service.InputError(msgInvalidJSON, err)
	}
	return body, nil
}
