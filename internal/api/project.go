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
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

// ProjectHandler serves the projects screen.
type ProjectHandler struct {
	assembler *console.Projects
	projects  repository.ProjectRepository
	logger    *zap.Logger
}

func NewProjectHandler(assembler *console.Projects, projects repository.ProjectRepository, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{assembler: assembler, projects: projects, logger: logger}
}

// List handles GET /v1/projects?q=&status=
func (h *ProjectHandler) List(c *gin.Context) {
	ident := middleware.GetIdentity(c)

	views, err := h.assembler.List(c.Request.Context(), ident)
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, console.FilterProjects(views, c.Query("q"), c.Query("status")))
}

type createProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// Create handles POST /v1/projects. Admin and super_admin only.
func (h *ProjectHandler) Create(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	if !rbac.CanCreateProject(ident.GlobalRole()) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to create projects"})
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := models.ProjectStatus(req.Status)
	if req.Status == "" {
		status = models.ProjectActive
	}
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project status"})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), req.Name, req.Description, status, ident.UserID)
	if err != nil {
		h.logger.Error("failed to create project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// Get handles GET /v1/projects/:id. A project the caller cannot view
// reads as 404; the screen redirects to the project list on that.
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	view, err := h.assembler.Get(c.Request.Context(), middleware.GetIdentity(c), projectID)
	if err != nil {
		h.logger.Error("failed to get project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, view)
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Update handles PATCH /v1/projects/:id.
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	ident := middleware.GetIdentity(c)

	role, err := h.assembler.Role(c.Request.Context(), ident, projectID)
	if err != nil {
		h.logger.Error("failed to resolve project role", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		return
	}
	if !rbac.CanEditProject(ident.GlobalRole(), role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to edit this project"})
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := repository.ProjectPatch{Name: req.Name, Description: req.Description}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project status"})
			return
		}
		patch.Status = &status
	}

	project, err := h.projects.Update(c.Request.Context(), projectID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("failed to update project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /v1/projects/:id. Super admin or the project's
// project_admin; a plain global admin cannot delete.
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	ident := middleware.GetIdentity(c)

	role, err := h.assembler.Role(c.Request.Context(), ident, projectID)
	if err != nil {
		h.logger.Error("failed to resolve project role", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}
	if !rbac.CanDeleteProject(ident.GlobalRole(), role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to delete this project"})
		return
	}

	if err := h.projects.Delete(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("failed to delete project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}

	c.Status(http.StatusNoContent)
}
