package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/qbankhq/qbank-backend/internal/middleware"
	"github.com/qbankhq/qbank-backend/internal/model"
	"github.com/qbankhq/qbank-backend/internal/response"
	"github.com/qbankhq/qbank-backend/internal/service"
	"github.com/qbankhq/qbank-backend/internal/validator"
)

// QuestionSetHandler handles question set endpoints. All of them act on
// behalf of the authenticated identity.
type QuestionSetHandler struct {
	setService *service.QuestionSetService
}

// NewQuestionSetHandler creates a new QuestionSetHandler.
func NewQuestionSetHandler(setService *service.QuestionSetService) *QuestionSetHandler {
	return &QuestionSetHandler{setService: setService}
}

// ListSets godoc
// GET /api/v1/sets
// Lists the caller's sets, newest first.
func (h *QuestionSetHandler) ListSets(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sets, err := h.setService.List(c.Request.Context(), identity.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sets": sets})
}

// GetSet godoc
// GET /api/v1/sets/:id
// Returns a set materialized with its live questions in set order.
func (h *QuestionSetHandler) GetSet(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	set, err := h.setService.Materialize(c.Request.Context(), identity.ID, setID)
	if err != nil {
		h.failSet(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"set": set})
}

// CreateSet godoc
// POST /api/v1/sets
// Creates an empty named set owned by the caller.
func (h *QuestionSetHandler) CreateSet(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateSetRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	set, err := h.setService.Create(c.Request.Context(), identity.ID, req.Name)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"set": set})
}

// RenameSet godoc
// PUT /api/v1/sets/:id
// Renames a set.
func (h *QuestionSetHandler) RenameSet(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RenameSetRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	set, err := h.setService.Rename(c.Request.Context(), identity.ID, setID, req.Name)
	if err != nil {
		h.failSet(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"set": set})
}

// AddQuestions godoc
// POST /api/v1/sets/:id/questions
// Appends question references to a set. Every referenced question must
// exist; duplicates already in the set are skipped silently.
func (h *QuestionSetHandler) AddQuestions(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AddQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	refs := make([]model.QuestionRef, 0, len(req.Questions))
	for _, in := range req.Questions {
		questionID, err := uuid.Parse(in.QuestionID)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		refs = append(refs, model.QuestionRef{QuestionID: questionID, Order: in.Order})
	}

	set, err := h.setService.AddQuestions(c.Request.Context(), identity.ID, setID, refs)
	if err != nil {
		h.failSet(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"set": set})
}

// RemoveQuestion godoc
// DELETE /api/v1/sets/:id/questions/:question_id
// Removes a question reference from a set. Idempotent.
func (h *QuestionSetHandler) RemoveQuestion(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	set, err := h.setService.RemoveQuestion(c.Request.Context(), identity.ID, setID, questionID)
	if err != nil {
		h.failSet(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"set": set})
}

// DownloadSet godoc
// GET /api/v1/sets/:id/download
// Returns the flat downloadable form of a set.
func (h *QuestionSetHandler) DownloadSet(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	export, err := h.setService.Export(c.Request.Context(), identity.ID, setID)
	if err != nil {
		h.failSet(c, err)
		return
	}

	response.Success(c, http.StatusOK, export)
}

// failSet maps set assembler errors onto the response envelope. Ownership
// failures stay 403; they are never reported as not-found.
func (h *QuestionSetHandler) failSet(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSetNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNotSetOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotSetOwner)
	case errors.Is(err, service.ErrSetQuestions):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
