package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/contentdesk/contentdesk/internal/console"
	"github.com/contentdesk/contentdesk/internal/identity"
	"github.com/contentdesk/contentdesk/internal/middleware"
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

// UserHandler is the users screen: super_admin only, end to end.
type UserHandler struct {
	accounts repository.AccountRepository
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

func NewUserHandler(accounts repository.AccountRepository, profiles repository.ProfileRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, profiles: profiles, logger: logger}
}

func (h *UserHandler) authorize(c *gin.Context) bool {
	if !middleware.GetIdentity(c).IsSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "super admin access required"})
		return false
	}
	return true
}

// List handles GET /v1/users?q=&role=
func (h *UserHandler) List(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	c.JSON(http.StatusOK, console.FilterProfiles(profiles, c.Query("q"), c.Query("role")))
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"global_role"`
}

// Create handles POST /v1/users: account plus profile in one step, with
// an explicit global role.
func (h *UserHandler) Create(c *gin.Context) {
	if !h.authorize(c) {
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role := rbac.GlobalRole(req.Role)
	if req.Role == "" {
		role = rbac.GlobalUser
	}
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid global role"})
		return
	}
	name := req.Name
	if name == "" {
		name = identity.NameFromEmail(req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), req.Email, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		h.logger.Error("failed to create account", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), account.ID, account.Email, name, role)
	if err != nil {
		h.logger.Error("failed to create profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, profile)
}

type updateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"global_role"`
}

// Update handles PATCH /v1/users/:id: name and global role.
func (h *UserHandler) Update(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := repository.ProfilePatch{Name: req.Name}
	if req.Role != nil {
		role := rbac.GlobalRole(*req.Role)
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid global role"})
			return
		}
		patch.GlobalRole = &role
	}

	profile, err := h.profiles.Update(c.Request.Context(), userID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("failed to update user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Delete handles DELETE /v1/users/:id. Removes the profile row only.
// The account's credentials and any session already issued remain
// valid; the next authenticated request recreates a default profile.
func (h *UserHandler) Delete(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.profiles.Delete(c.Request.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("failed to delete user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	c.Status(http.StatusNoContent)
}
