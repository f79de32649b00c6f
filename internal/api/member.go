package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contentdesk/contentdesk/internal/console"
	"github.com/contentdesk/contentdesk/internal/middleware"
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

// MemberHandler manages project membership. Every operation here sits
// behind the manage-members capability (global admins only).
type MemberHandler struct {
	members *console.Members
	logger  *zap.Logger
}

func NewMemberHandler(members *console.Members, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{members: members, logger: logger}
}

func (h *MemberHandler) authorize(c *gin.Context) bool {
	if !rbac.CanManageMembers(middleware.GetIdentity(c).GlobalRole()) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to manage members"})
		return false
	}
	return true
}

// ListMembers handles GET /v1/projects/:id/members
func (h *MemberHandler) ListMembers(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	members, err := h.members.List(c.Request.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to list members", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

type assignMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   string    `json:"role" binding:"required"`
}

// Assign handles POST /v1/projects/:id/members. A duplicate (project,
// user) pair is rejected with 409 and no write happens.
func (h *MemberHandler) Assign(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req assignMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role := rbac.ProjectRole(req.Role)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project role"})
		return
	}

	member, err := h.members.Assign(c.Request.Context(), projectID, req.UserID, role, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateMember) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to assign member", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign member"})
		return
	}

	c.JSON(http.StatusCreated, member)
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeRole handles PATCH /v1/projects/:id/members/:memberID
func (h *MemberHandler) ChangeRole(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	memberID, err := uuid.Parse(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role := rbac.ProjectRole(req.Role)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project role"})
		return
	}

	if err := h.members.ChangeRole(c.Request.Context(), memberID, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		h.logger.Error("failed to change member role", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change member role"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Remove handles DELETE /v1/projects/:id/members/:memberID
func (h *MemberHandler) Remove(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	memberID, err := uuid.Parse(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	if err := h.members.Remove(c.Request.Context(), memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		h.logger.Error("failed to remove member", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove member"})
		return
	}

	c.Status(http.StatusNoContent)
}
