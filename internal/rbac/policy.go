// Package rbac holds the authorization policy for the console: a set of
// pure predicates over (global role, project role). The functions take no
// hidden state, so they can be exercised exhaustively in tests.
package rbac

// CanCreateProject: only global admins (and super admins) create projects.
func CanCreateProject(global GlobalRole) bool {
	return global == GlobalAdmin || global == GlobalSuperAdmin
}

// CanEditProject: global admins, or any membership role above viewer.
func CanEditProject(global GlobalRole, project ProjectRole) bool {
	if global == GlobalAdmin || global == GlobalSuperAdmin {
		return true
	}
	switch project {
	case ProjectAdmin, ProjectEditor, ProjectContrib:
		return true
	}
	return false
}

// CanDeleteProject: super admin or the project's own project_admin.
// A plain global admin may create projects but not delete them.
func CanDeleteProject(global GlobalRole, project ProjectRole) bool {
	if global == GlobalSuperAdmin {
		return true
	}
	return project == ProjectAdmin
}

// CanManageMembers: assigning, removing and re-roling members is a
// collection-level operation reserved for global admins.
func CanManageMembers(global GlobalRole) bool {
	return global == GlobalAdmin || global == GlobalSuperAdmin
}

// CanEditContent decides mutation rights over content inside a project.
//
// Deliberate asymmetry: a global admin who is not a member of the project
// cannot touch its content; only super_admin bypasses membership. An
// admin who also holds a membership role gets whatever that role grants.
// Intentional, do not "fix" it.
func CanEditContent(global GlobalRole, project ProjectRole) bool {
	if global == GlobalSuperAdmin {
		return true
	}
	switch project {
	case ProjectAdmin, ProjectEditor, ProjectContrib:
		return true
	}
	return false
}

// CanComment: every membership role down to viewer, plus global admins.
func CanComment(global GlobalRole, project ProjectRole) bool {
	if global == GlobalAdmin || global == GlobalSuperAdmin {
		return true
	}
	return project.IsMember()
}

// CanViewProject: global admins see every project; everyone else needs a
// membership row.
func CanViewProject(global GlobalRole, project ProjectRole) bool {
	if global == GlobalAdmin || global == GlobalSuperAdmin {
		return true
	}
	return project.IsMember()
}

// CanViewAllProjects reports whether project listing should ignore
// membership entirely (the admin branch of the projects screen).
func CanViewAllProjects(global GlobalRole) bool {
	return global == GlobalAdmin || global == GlobalSuperAdmin
}

// IsViewOnly: a viewer membership without the super_admin override gets
// the read-and-comment experience, nothing else. Mirrors CanEditContent:
// a global admin holding a viewer membership is still view-only there.
func IsViewOnly(global GlobalRole, project ProjectRole) bool {
	return project == ProjectViewer && global != GlobalSuperAdmin
}
