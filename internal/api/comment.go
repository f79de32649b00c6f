package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contentdesk/contentdesk/internal/console"
	"github.com/contentdesk/contentdesk/internal/middleware"
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

// CommentHandler serves project comments. Commenting is the one
// mutation a viewer membership grants.
type CommentHandler struct {
	comments  repository.CommentRepository
	assembler *console.Projects
	logger    *zap.Logger
}

func NewCommentHandler(comments repository.CommentRepository, assembler *console.Projects, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, assembler: assembler, logger: logger}
}

func (h *CommentHandler) authorize(c *gin.Context, projectID uuid.UUID) bool {
	ident := middleware.GetIdentity(c)
	role, err := h.assembler.Role(c.Request.Context(), ident, projectID)
	if err != nil {
		h.logger.Error("failed to resolve project role", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return false
	}
	if !rbac.CanComment(ident.GlobalRole(), role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to comment on this project"})
		return false
	}
	return true
}

// List handles GET /v1/projects/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	if !h.authorize(c, projectID) {
		return
	}

	comments, err := h.comments.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to list comments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

type createCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// Create handles POST /v1/projects/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	if !h.authorize(c, projectID) {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), projectID, middleware.GetUserID(c), req.Body)
	if err != nil {
		h.logger.Error("failed to create comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}
