package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/contentdesk/contentdesk/internal/auth"
	"github.com/contentdesk/contentdesk/internal/identity"
	"github.com/contentdesk/contentdesk/internal/middleware"
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

const sessionTTL = 24 * time.Hour

// AuthHandler owns the public endpoints (signup, login) plus logout.
// Auth errors surface inline and are never fatal to the client.
type AuthHandler struct {
	accounts repository.AccountRepository
	profiles repository.ProfileRepository
	revoker  *auth.Revoker
	secret   string
	logger   *zap.Logger
}

func NewAuthHandler(
	accounts repository.AccountRepository,
	profiles repository.ProfileRepository,
	revoker *auth.Revoker,
	secret string,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		profiles: profiles,
		revoker:  revoker,
		secret:   secret,
		logger:   logger,
	}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Signup handles POST /v1/auth/signup. It creates the account; the
// profile comes into being lazily on the first resolved request, with a
// name derived from the email local-part.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	account, err := h.accounts.Create(c.Request.Context(), req.Email, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		h.logger.Error("failed to create account", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	token, err := auth.GenerateToken(account.ID, account.Email, h.secret, sessionTTL)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token})
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accounts.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("failed to find account", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	// One generic message for unknown email and wrong password: the
	// response must not reveal which emails are registered.
	if account == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	// Make sure the profile exists before stamping last_login, then
	// stamp best-effort: a failed stamp never fails the sign-in.
	if _, err := h.profiles.Create(c.Request.Context(), account.ID, account.Email, identity.NameFromEmail(account.Email), rbac.GlobalUser); err != nil {
		h.logger.Warn("profile ensure on login failed", zap.Error(err))
	} else if err := h.profiles.TouchLastLogin(c.Request.Context(), account.ID); err != nil {
		h.logger.Warn("last_login stamp failed", zap.Error(err))
	}

	token, err := auth.GenerateToken(account.ID, account.Email, h.secret, sessionTTL)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token})
}

// Logout handles POST /v1/auth/logout: the presented token is
// denylisted for its remaining lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.revoker == nil {
		// No denylist configured; the client discards the token.
		c.Status(http.StatusNoContent)
		return
	}

	ttl := time.Until(middleware.GetExpiresAt(c))
	if err := h.revoker.Revoke(c.Request.Context(), middleware.GetTokenID(c), ttl); err != nil {
		h.logger.Error("failed to revoke token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}

	c.Status(http.StatusNoContent)
}
