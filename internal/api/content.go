package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contentdesk/contentdesk/internal/console"
	"github.com/contentdesk/contentdesk/internal/middleware"
	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/repository"
)

// ContentHandler serves the content screen and the project-details
// content list.
type ContentHandler struct {
	assembler *console.Content
	projects  *console.Projects
	content   repository.ContentRepository
	logger    *zap.Logger
}

func NewContentHandler(assembler *console.Content, projects *console.Projects, content repository.ContentRepository, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{assembler: assembler, projects: projects, content: content, logger: logger}
}

// List handles GET /v1/content?q=&status=, always the caller's own
// items, regardless of global role.
func (h *ContentHandler) List(c *gin.Context) {
	views, err := h.assembler.ListMine(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		h.logger.Error("failed to list content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list content"})
		return
	}

	c.JSON(http.StatusOK, console.FilterContent(views, c.Query("q"), c.Query("status")))
}

// ListForProject handles GET /v1/projects/:id/content. Visibility
// follows project visibility; the 404 here is the redirect signal.
func (h *ContentHandler) ListForProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	ident := middleware.GetIdentity(c)

	view, err := h.projects.Get(c.Request.Context(), ident, projectID)
	if err != nil {
		h.logger.Error("failed to get project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list project content"})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	views, err := h.assembler.ListForProject(c.Request.Context(), ident, projectID, view.UserRole)
	if err != nil {
		h.logger.Error("failed to list project content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list project content"})
		return
	}

	c.JSON(http.StatusOK, console.FilterContent(views, c.Query("q"), c.Query("status")))
}

type createContentRequest struct {
	Title       string     `json:"title" binding:"required"`
	Body        string     `json:"body"`
	Status      string     `json:"status"`
	ProjectID   *uuid.UUID `json:"project_id"`
	Tags        []string   `json:"tags"`
	ContentType *string    `json:"content_type"`
	FileURL     *string    `json:"file_url"`
	FileName    *string    `json:"file_name"`
	FileSize    *int64     `json:"file_size"`
	IsTemplate  bool       `json:"is_template"`
	TemplateID  *uuid.UUID `json:"template_id"`
}

// Create handles POST /v1/content. Any authenticated user may author
// content; the author stamp comes from the session, never the body.
func (h *ContentHandler) Create(c *gin.Context) {
	var req createContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := models.ContentStatus(req.Status)
	if req.Status == "" {
		status = models.ContentDraft
	}
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content status"})
		return
	}

	item, err := h.content.Create(c.Request.Context(), middleware.GetUserID(c), repository.ContentCreate{
		Title:       req.Title,
		Body:        req.Body,
		Status:      status,
		ProjectID:   req.ProjectID,
		Tags:        req.Tags,
		ContentType: req.ContentType,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		IsTemplate:  req.IsTemplate,
		TemplateID:  req.TemplateID,
	})
	if err != nil {
		h.logger.Error("failed to create content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create content"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// loadMutable fetches the item and checks the caller's mutation rights
// over it. Returns nil when the response has already been written.
func (h *ContentHandler) loadMutable(c *gin.Context) *models.Content {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content id"})
		return nil
	}

	item, err := h.content.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to get content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get content"})
		return nil
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
		return nil
	}

	ok, err := h.assembler.CanMutate(c.Request.Context(), middleware.GetIdentity(c), item)
	if err != nil {
		h.logger.Error("failed to check content permissions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return nil
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to modify this content"})
		return nil
	}

	return item
}

type updateContentRequest struct {
	Title       *string    `json:"title"`
	Body        *string    `json:"body"`
	Status      *string    `json:"status"`
	ProjectID   *uuid.UUID `json:"project_id"`
	Tags        *[]string  `json:"tags"`
	ContentType *string    `json:"content_type"`
	Publish     *bool      `json:"publish"`
}

// Update handles PATCH /v1/content/:id
func (h *ContentHandler) Update(c *gin.Context) {
	item := h.loadMutable(c)
	if item == nil {
		return
	}

	var req updateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := repository.ContentPatch{
		Title:       req.Title,
		Body:        req.Body,
		ProjectID:   req.ProjectID,
		Tags:        req.Tags,
		ContentType: req.ContentType,
		PublishedAt: req.Publish,
	}
	if req.Status != nil {
		status := models.ContentStatus(*req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content status"})
			return
		}
		patch.Status = &status
	}

	updated, err := h.content.Update(c.Request.Context(), item.ID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
			return
		}
		h.logger.Error("failed to update content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update content"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	item := h.loadMutable(c)
	if item == nil {
		return
	}

	if err := h.content.Delete(c.Request.Context(), item.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
			return
		}
		h.logger.Error("failed to delete content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete content"})
		return
	}

	c.Status(http.StatusNoContent)
}
