package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qbankhq/qbank-backend/internal/middleware"
	"github.com/qbankhq/qbank-backend/internal/model"
	"github.com/qbankhq/qbank-backend/internal/response"
	"github.com/qbankhq/qbank-backend/internal/service"
	"github.com/qbankhq/qbank-backend/internal/validator"
)

// UserHandler handles user profile endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile godoc
// GET /api/v1/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrProfileNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateProfile godoc
// POST /api/v1/users/profile
// Creates the profile on first save, updates it afterwards.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.UpdateProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), *identity, req)
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrReferenceNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// CheckProfile godoc
// GET /api/v1/users/profile/check
// Reports whether the caller's profile carries the fields required for
// authoring. A missing profile is an incomplete profile, not an error.
func (h *UserHandler) CheckProfile(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	check, err := h.userService.CheckProfile(c.Request.Context(), identity.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, check)
}
