package model

import "strings"

// Account roles.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User is a login account. Teacher and student accounts are derived from
// their profile records and carry the matching linked id; the admin account
// links to neither.
type User struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	TeacherID *string `json:"teacherId,omitempty"`
	StudentID *string `json:"studentId,omitempty"`
}

type Teacher struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	NationalID string `json:"nationalId"`
}

type Student struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	NationalID string  `json:"nationalId"`
	ProgramID  string  `json:"programId"`
	ProjectID  *string `json:"projectId"`
}

// Project grade fields stay nil until a reviewer records a value.
type Project struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	PresentationDate   string   `json:"presentationDate"`
	FilesURL           string   `json:"filesUrl"`
	StatusID           string   `json:"statusId"`
	FormatID           string   `json:"formatId"`
	DirectorApproved   bool     `json:"directorApproved"`
	WrittenGrade1      *float64 `json:"writtenGrade1"`
	PresentationGrade1 *float64 `json:"presentationGrade1"`
	WrittenGrade2      *float64 `json:"writtenGrade2"`
	PresentationGrade2 *float64 `json:"presentationGrade2"`
}

// Assignment links a teacher to a project in a given role. A teacher holds
// at most one assignment per project.
type Assignment struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	TeacherID string `json:"teacherId"`
	RoleID    string `json:"roleId"`
}

// RoleCapabilities are derived from the role name when the role is written,
// so authorization checks never re-parse free text.
type RoleCapabilities struct {
	Approves     bool `json:"approves"`
	Reviews      bool `json:"reviews"`
	ReviewerSlot int  `json:"reviewerSlot"`
}

type TeacherRole struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Capabilities RoleCapabilities `json:"capabilities"`
}

type Status struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Format struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Program struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Snapshot is the whole-store document exchanged with a persistence backend.
type Snapshot struct {
	Users       []User        `json:"users"`
	Teachers    []Teacher     `json:"teachers"`
	Students    []Student     `json:"students"`
	Projects    []Project     `json:"projects"`
	Assignments []Assignment  `json:"projectTeachers"`
	Roles       []TeacherRole `json:"teacherRoles"`
	Statuses    []Status      `json:"statuses"`
	Formats     []Format      `json:"formats"`
	Programs    []Program     `json:"programs"`
}

// DeriveCapabilities computes a role's capability tags from its name.
// "director" grants approval authority ("Co-Director" included); the
// evaluator/reviewer markers grant grading authority, with a '1' or '2' in
// the name selecting the reviewer slot.
func DeriveCapabilities(name string) RoleCapabilities {
	lower := strings.ToLower(name)
	caps := RoleCapabilities{
		Approves: strings.Contains(lower, "director"),
		Reviews: strings.Contains(lower, "evaluator") ||
			strings.Contains(lower, "evaluador") ||
			strings.Contains(lower, "reviewer"),
	}
	if caps.Reviews {
		switch {
		case strings.ContainsRune(lower, '1'):
			caps.ReviewerSlot = 1
		case strings.ContainsRune(lower, '2'):
			caps.ReviewerSlot = 2
		}
	}
	return caps
}

// LocalPart returns the lowercased part of an email address before the '@'.
// Derived usernames are built from it.
func LocalPart(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return strings.ToLower(local)
}

// UnknownLabel renders a dangling lookup reference. Lookup deletes do not
// cascade, so a project or assignment can point at an id that no longer
// exists.
func UnknownLabel(id string) string {
	return "unknown (" + id + ")"
}
