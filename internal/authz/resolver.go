// Package authz decides, per user and per project, whether project details
// may be edited and whether grades may be recorded. Denials are reported as
// false values, never as errors.
package authz

import (
	"gradtrack/projects/internal/model"
	"gradtrack/projects/internal/store"
)

// AdminLabel is the reviewer label returned for admin accounts, which may
// grade any project without holding an assignment.
const AdminLabel = "admin"

// Decision is the outcome of a grading check. Slot is 0 when the label is
// AdminLabel or when the reviewer role names no slot digit.
type Decision struct {
	CanGrade     bool
	ReviewerRole string
	Slot         int
}

type Resolver struct {
	store *store.Store
}

func NewResolver(st *store.Store) *Resolver {
	return &Resolver{store: st}
}

// ProjectRoles returns the roles the user's linked teacher holds on the
// project. Dangling role ids are skipped.
func (r *Resolver) ProjectRoles(u model.User, projectID string) []model.TeacherRole {
	if u.TeacherID == nil {
		return nil
	}
	var roles []model.TeacherRole
	for _, a := range r.store.ListAssignments() {
		if a.ProjectID != projectID || a.TeacherID != *u.TeacherID {
			continue
		}
		if role, ok := r.store.Role(a.RoleID); ok {
			roles = append(roles, role)
		}
	}
	return roles
}

// CanEditProject is true for admins and for teachers holding a role with
// approval authority on the project. Students are always denied.
func (r *Resolver) CanEditProject(u model.User, projectID string) bool {
	if u.Role == model.RoleAdmin {
		return true
	}
	if u.Role != model.RoleTeacher {
		return false
	}
	for _, role := range r.ProjectRoles(u, projectID) {
		if role.Capabilities.Approves {
			return true
		}
	}
	return false
}

// GradingDecision resolves whether the user may grade the project and which
// reviewer slot they occupy. Teachers take the first reviewer-capable role
// among their assignments.
func (r *Resolver) GradingDecision(u model.User, projectID string) Decision {
	if u.Role == model.RoleAdmin {
		return Decision{CanGrade: true, ReviewerRole: AdminLabel}
	}
	if u.Role != model.RoleTeacher {
		return Decision{}
	}
	for _, role := range r.ProjectRoles(u, projectID) {
		if role.Capabilities.Reviews {
			return Decision{
				CanGrade:     true,
				ReviewerRole: role.Name,
				Slot:         role.Capabilities.ReviewerSlot,
			}
		}
	}
	return Decision{}
}
