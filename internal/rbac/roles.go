package rbac

// GlobalRole is the account-wide privilege level stored on a profile.
// The column is nullable in the database; NormalizeGlobalRole makes it
// total before it reaches any policy decision.
type GlobalRole string

const (
	GlobalUser       GlobalRole = "user"
	GlobalAdmin      GlobalRole = "admin"
	GlobalSuperAdmin GlobalRole = "super_admin"
)

// ProjectRole is the privilege a membership row grants inside one project.
// ProjectNone means "no membership row"; it is never stored, only used
// as the policy input for non-members.
type ProjectRole string

const (
	ProjectNone    ProjectRole = ""
	ProjectViewer  ProjectRole = "viewer"
	ProjectContrib ProjectRole = "contributor"
	ProjectEditor  ProjectRole = "editor"
	ProjectAdmin   ProjectRole = "project_admin"
)

// NormalizeGlobalRole maps a nullable database value onto a valid role.
// NULL and anything unrecognized default to GlobalUser.
func NormalizeGlobalRole(raw *string) GlobalRole {
	if raw == nil {
		return GlobalUser
	}
	switch GlobalRole(*raw) {
	case GlobalAdmin:
		return GlobalAdmin
	case GlobalSuperAdmin:
		return GlobalSuperAdmin
	default:
		return GlobalUser
	}
}

func (r GlobalRole) Valid() bool {
	switch r {
	case GlobalUser, GlobalAdmin, GlobalSuperAdmin:
		return true
	}
	return false
}

func (r ProjectRole) Valid() bool {
	switch r {
	case ProjectViewer, ProjectContrib, ProjectEditor, ProjectAdmin:
		return true
	}
	return false
}

// IsMember reports whether the role comes from an actual membership row.
func (r ProjectRole) IsMember() bool {
	return r != ProjectNone
}
