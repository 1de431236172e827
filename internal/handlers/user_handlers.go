package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/patrimonio/api/internal/middleware"
	"github.com/patrimonio/api/internal/models"
	"github.com/patrimonio/api/internal/services"
)

// UserHandler handles profile and settings endpoints
type UserHandler struct {
	userSvc *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userSvc *services.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Profile handles GET /users
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users [get]
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.userSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Update handles PUT /users/:id. Users may only update their own account.
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "user id"
// @Param request body models.UpdateUserRequest true "profile fields"
// @Success 200 {object} models.User
// @Failure 403 {object} models.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	userID, _, ok := h.ownAccount(c)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id. Users may only delete their own account.
// @Summary Delete own account
// @Tags users
// @Produce json
// @Param id path int true "user id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	userID, _, ok := h.ownAccount(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), userID); err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// Settings handles GET /me/settings
// @Summary Get own settings
// @Tags users
// @Produce json
// @Success 200 {object} models.UserSettings
// @Failure 404 {object} models.ErrorResponse
// @Router /me/settings [get]
func (h *UserHandler) Settings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	settings, err := h.userSvc.Settings(c.Request.Context(), userID)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PATCH /me/settings
// @Summary Update own settings
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UpdateSettingsRequest true "settings fields"
// @Success 200 {object} models.UserSettings
// @Failure 400 {object} models.ErrorResponse
// @Router /me/settings [patch]
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	settings, err := h.userSvc.UpdateSettings(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCurrency) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
			return
		}
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// ownAccount parses the :id param and rejects requests targeting another
// user's account.
func (h *UserHandler) ownAccount(c *gin.Context) (int64, int64, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return 0, 0, false
	}

	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid user ID",
		})
		return 0, 0, false
	}
	if targetID != userID {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "forbidden",
			Message: "cannot modify another user's account",
		})
		return 0, 0, false
	}
	return userID, targetID, true
}
