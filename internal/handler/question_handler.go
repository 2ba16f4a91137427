package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/qbankhq/qbank-backend/internal/model"
	"github.com/qbankhq/qbank-backend/internal/response"
	"github.com/qbankhq/qbank-backend/internal/service"
)

// QuestionHandler handles question bank endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListQuestions godoc
// GET /api/v1/questions
// Lists questions matching the optional filter criteria, newest first.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	filter := model.QuestionFilter{
		Subject:     c.Query("subject"),
		Exam:        c.Query("exam"),
		Type:        c.Query("type"),
		Difficulty:  c.Query("difficulty"),
		SubjectName: c.Query("subject_name"),
		ExamName:    c.Query("exam_name"),
		Chapter:     c.Query("chapter"),
		FileName:    c.Query("file_name"),
		Search:      c.Query("search"),
	}

	// Non-numeric page/limit parse to zero and get clamped to the defaults.
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	questions, pagination, err := h.questionService.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questions": questions}, pagination)
}

// CreateQuestion godoc
// POST /api/v1/questions
// Accepts a single question (flat or legacy layout) or a bulk array of flat
// questions. Bulk submissions report per-element errors without aborting.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	payload, err := model.ParseQuestionPayload(body)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	ctx := c.Request.Context()
	switch {
	case payload.Batch != nil:
		result, err := h.questionService.CreateBatch(ctx, payload.Batch)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		response.Success(c, http.StatusCreated, result)

	case payload.Flat != nil:
		question, err := h.questionService.CreateFlat(ctx, *payload.Flat)
		if err != nil {
			h.failQuestion(c, err)
			return
		}
		response.Success(c, http.StatusCreated, gin.H{"question": question})

	default:
		question, err := h.questionService.CreateLegacy(ctx, *payload.Legacy)
		if err != nil {
			h.failQuestion(c, err)
			return
		}
		response.Success(c, http.StatusCreated, gin.H{"question": question})
	}
}

// UpdateQuestion godoc
// PUT /api/v1/questions/:id
// Applies a partial update; fields absent from the payload are untouched,
// fields carried with an explicit null are cleared.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	payload, err := model.ParseQuestionPayload(body)
	if err != nil || payload.Batch != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, payload)
	if err != nil {
		h.failQuestion(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// DeleteQuestion godoc
// DELETE /api/v1/questions/:id
// Deletes a question. Sets referencing it keep their dangling reference,
// which materialization drops silently.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		h.failQuestion(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "question deleted successfully"})
}

// failQuestion maps normalizer errors onto the response envelope.
func (h *QuestionHandler) failQuestion(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuestionTextRequired),
		errors.Is(err, service.ErrLegacyFieldsRequired):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"detail": err.Error()})
	case errors.Is(err, service.ErrQuestionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrReferenceNotFound),
		errors.Is(err, service.ErrSubjectNotFound),
		errors.Is(err, service.ErrExamNotFound),
		errors.Is(err, service.ErrTypeNotFound),
		errors.Is(err, service.ErrDifficultyNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrReferenceNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
