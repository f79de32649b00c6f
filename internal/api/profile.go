package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/contentdesk/contentdesk/internal/middleware"
	"github.com/contentdesk/contentdesk/internal/repository"
)

// ProfileHandler serves the caller's own identity and self-service
// profile edits.
type ProfileHandler struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

func NewProfileHandler(profiles repository.ProfileRepository, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// Me handles GET /v1/me: the resolved identity, including the derived
// is_admin / is_super_admin flags the navigation shell keys off.
func (h *ProfileHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.GetIdentity(c))
}

type updateMeRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateMe handles PATCH /v1/me. Self-service edits cover name and
// avatar only; global_role changes go through the users screen and its
// super_admin gate.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), middleware.GetUserID(c), repository.ProfilePatch{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("failed to update profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
