// Package identity turns an authenticated session into the caller's
// profile and derived privilege flags. It is the only place profiles are
// lazily created, and the only place IsAdmin/IsSuperAdmin are computed.
package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contentdesk/contentdesk/internal/models"
	"github.com/contentdesk/contentdesk/internal/rbac"
	"github.com/contentdesk/contentdesk/internal/repository"
)

// Identity is what the rest of the console knows about the caller.
// IsSuperAdmin implies IsAdmin: super_admin is a strict superset of
// admin capability everywhere.
type Identity struct {
	UserID       uuid.UUID       `json:"user_id"`
	Profile      *models.Profile `json:"profile"`
	IsAdmin      bool            `json:"is_admin"`
	IsSuperAdmin bool            `json:"is_super_admin"`
}

// GlobalRole returns the caller's effective global role. No profile
// means least privilege.
func (id Identity) GlobalRole() rbac.GlobalRole {
	if id.Profile == nil {
		return rbac.GlobalUser
	}
	return id.Profile.GlobalRole
}

type Resolver struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

func NewResolver(profiles repository.ProfileRepository, logger *zap.Logger) *Resolver {
	return &Resolver{profiles: profiles, logger: logger}
}

// Resolve loads the caller's profile, creating one on first access with
// global_role=user and a name derived from the email local-part.
//
// Resolution failure never blocks the surrounding authentication: the
// error is logged and the caller proceeds with a nil profile, which
// decays every policy decision to least privilege.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID, email string) Identity {
	ident := Identity{UserID: userID}

	profile, err := r.profiles.GetByID(ctx, userID)
	if err != nil {
		r.logger.Error("profile resolution failed", zap.String("user_id", userID.String()), zap.Error(err))
		return ident
	}

	if profile == nil {
		profile, err = r.profiles.Create(ctx, userID, email, NameFromEmail(email), rbac.GlobalUser)
		if err != nil {
			r.logger.Error("lazy profile creation failed", zap.String("user_id", userID.String()), zap.Error(err))
			return ident
		}
	}

	ident.Profile = profile
	ident.IsSuperAdmin = profile.GlobalRole == rbac.GlobalSuperAdmin
	ident.IsAdmin = profile.GlobalRole == rbac.GlobalAdmin || ident.IsSuperAdmin
	return ident
}

// NameFromEmail derives a display name from the email local-part,
// matching the sign-up default ("jane.doe@example.com" -> "jane.doe").
func NameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	if email != "" {
		return email
	}
	return "User"
}
