package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qbankhq/qbank-backend/internal/response"
	"github.com/qbankhq/qbank-backend/internal/service"
)

// ReferenceHandler exposes the read-only catalog listings.
type ReferenceHandler struct {
	refService *service.ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(refService *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{refService: refService}
}

// ListSubjects godoc
// GET /api/v1/references/subjects
func (h *ReferenceHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.refService.ListSubjects(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// ListExams godoc
// GET /api/v1/references/exams
func (h *ReferenceHandler) ListExams(c *gin.Context) {
	exams, err := h.refService.ListExams(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// ListQuestionTypes godoc
// GET /api/v1/references/question-types
func (h *ReferenceHandler) ListQuestionTypes(c *gin.Context) {
	types, err := h.refService.ListQuestionTypes(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question_types": types})
}

// ListDifficulties godoc
// GET /api/v1/references/difficulties
func (h *ReferenceHandler) ListDifficulties(c *gin.Context) {
	difficulties, err := h.refService.ListDifficulties(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"difficulties": difficulties})
}
