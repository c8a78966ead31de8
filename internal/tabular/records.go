package tabular

import (
	"strconv"

	"gradtrack/projects/internal/model"
)

// Per-record-set row mappings. Field names mirror the snapshot JSON keys so
// an exported file reads like the stored document.

var (
	userFields       = []string{"id", "username", "password", "role", "teacherId", "studentId"}
	teacherFields    = []string{"id", "name", "email", "nationalId"}
	studentFields    = []string{"id", "name", "email", "nationalId", "programId", "projectId"}
	projectFields    = []string{"id", "title", "presentationDate", "filesUrl", "statusId", "formatId", "directorApproved", "writtenGrade1", "presentationGrade1", "writtenGrade2", "presentationGrade2"}
	assignmentFields = []string{"id", "projectId", "teacherId", "roleId"}
	lookupFields     = []string{"id", "name"}
)

func UserRows(users []model.User) []Row {
	rows := make([]Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, Row{Fields: userFields, Values: map[string]any{
			"id":        u.ID,
			"username":  u.Username,
			"password":  u.Password,
			"role":      u.Role,
			"teacherId": u.TeacherID,
			"studentId": u.StudentID,
		}})
	}
	return rows
}

func UsersFromRows(rows []Row) []model.User {
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, model.User{
			ID:        asString(row.Values["id"]),
			Username:  asString(row.Values["username"]),
			Password:  asString(row.Values["password"]),
			Role:      asString(row.Values["role"]),
			TeacherID: asStringPtr(row.Values["teacherId"]),
			StudentID: asStringPtr(row.Values["studentId"]),
		})
	}
	return users
}

func TeacherRows(teachers []model.Teacher) []Row {
	rows := make([]Row, 0, len(teachers))
	for _, t := range teachers {
		rows = append(rows, Row{Fields: teacherFields, Values: map[string]any{
			"id":         t.ID,
			"name":       t.Name,
			"email":      t.Email,
			"nationalId": t.NationalID,
		}})
	}
	return rows
}

func TeachersFromRows(rows []Row) []model.Teacher {
	teachers := make([]model.Teacher, 0, len(rows))
	for _, row := range rows {
		teachers = append(teachers, model.Teacher{
			ID:         asString(row.Values["id"]),
			Name:       asString(row.Values["name"]),
			Email:      asString(row.Values["email"]),
			NationalID: asString(row.Values["nationalId"]),
		})
	}
	return teachers
}

func StudentRows(students []model.Student) []Row {
	rows := make([]Row, 0, len(students))
	for _, s := range students {
		rows = append(rows, Row{Fields: studentFields, Values: map[string]any{
			"id":         s.ID,
			"name":       s.Name,
			"email":      s.Email,
			"nationalId": s.NationalID,
			"programId":  s.ProgramID,
			"projectId":  s.ProjectID,
		}})
	}
	return rows
}

func StudentsFromRows(rows []Row) []model.Student {
	students := make([]model.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, model.Student{
			ID:         asString(row.Values["id"]),
			Name:       asString(row.Values["name"]),
			Email:      asString(row.Values["email"]),
			NationalID: asString(row.Values["nationalId"]),
			ProgramID:  asString(row.Values["programId"]),
			ProjectID:  asStringPtr(row.Values["projectId"]),
		})
	}
	return students
}

func ProjectRows(projects []model.Project) []Row {
	rows := make([]Row, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, Row{Fields: projectFields, Values: map[string]any{
			"id":                 p.ID,
			"title":              p.Title,
			"presentationDate":   p.PresentationDate,
			"filesUrl":           p.FilesURL,
			"statusId":           p.StatusID,
			"formatId":           p.FormatID,
			"directorApproved":   p.DirectorApproved,
			"writtenGrade1":      p.WrittenGrade1,
			"presentationGrade1": p.PresentationGrade1,
			"writtenGrade2":      p.WrittenGrade2,
			"presentationGrade2": p.PresentationGrade2,
		}})
	}
	return rows
}

func ProjectsFromRows(rows []Row) []model.Project {
	projects := make([]model.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, model.Project{
			ID:                 asString(row.Values["id"]),
			Title:              asString(row.Values["title"]),
			PresentationDate:   asString(row.Values["presentationDate"]),
			FilesURL:           asString(row.Values["filesUrl"]),
			StatusID:           asString(row.Values["statusId"]),
			FormatID:           asString(row.Values["formatId"]),
			DirectorApproved:   asBool(row.Values["directorApproved"]),
			WrittenGrade1:      asFloatPtr(row.Values["writtenGrade1"]),
			PresentationGrade1: asFloatPtr(row.Values["presentationGrade1"]),
			WrittenGrade2:      asFloatPtr(row.Values["writtenGrade2"]),
			PresentationGrade2: asFloatPtr(row.Values["presentationGrade2"]),
		})
	}
	return projects
}

func AssignmentRows(assignments []model.Assignment) []Row {
	rows := make([]Row, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, Row{Fields: assignmentFields, Values: map[string]any{
			"id":        a.ID,
			"projectId": a.ProjectID,
			"teacherId": a.TeacherID,
			"roleId":    a.RoleID,
		}})
	}
	return rows
}

func AssignmentsFromRows(rows []Row) []model.Assignment {
	assignments := make([]model.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, model.Assignment{
			ID:        asString(row.Values["id"]),
			ProjectID: asString(row.Values["projectId"]),
			TeacherID: asString(row.Values["teacherId"]),
			RoleID:    asString(row.Values["roleId"]),
		})
	}
	return assignments
}

func RoleRows(roles []model.TeacherRole) []Row {
	rows := make([]Row, 0, len(roles))
	for _, r := range roles {
		rows = append(rows, Row{Fields: lookupFields, Values: map[string]any{
			"id":   r.ID,
			"name": r.Name,
		}})
	}
	return rows
}

// RolesFromRows carries names only; capabilities are rederived when the set
// is written back into the store.
func RolesFromRows(rows []Row) []model.TeacherRole {
	roles := make([]model.TeacherRole, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, model.TeacherRole{
			ID:   asString(row.Values["id"]),
			Name: asString(row.Values["name"]),
		})
	}
	return roles
}

func StatusRows(statuses []model.Status) []Row {
	rows := make([]Row, 0, len(statuses))
	for _, l := range statuses {
		rows = append(rows, Row{Fields: lookupFields, Values: map[string]any{"id": l.ID, "name": l.Name}})
	}
	return rows
}

func StatusesFromRows(rows []Row) []model.Status {
	statuses := make([]model.Status, 0, len(rows))
	for _, row := range rows {
		statuses = append(statuses, model.Status{ID: asString(row.Values["id"]), Name: asString(row.Values["name"])})
	}
	return statuses
}

func FormatRows(formats []model.Format) []Row {
	rows := make([]Row, 0, len(formats))
	for _, l := range formats {
		rows = append(rows, Row{Fields: lookupFields, Values: map[string]any{"id": l.ID, "name": l.Name}})
	}
	return rows
}

func FormatsFromRows(rows []Row) []model.Format {
	formats := make([]model.Format, 0, len(rows))
	for _, row := range rows {
		formats = append(formats, model.Format{ID: asString(row.Values["id"]), Name: asString(row.Values["name"])})
	}
	return formats
}

func ProgramRows(programs []model.Program) []Row {
	rows := make([]Row, 0, len(programs))
	for _, l := range programs {
		rows = append(rows, Row{Fields: lookupFields, Values: map[string]any{"id": l.ID, "name": l.Name}})
	}
	return rows
}

func ProgramsFromRows(rows []Row) []model.Program {
	programs := make([]model.Program, 0, len(rows))
	for _, row := range rows {
		programs = append(programs, model.Program{ID: asString(row.Values["id"]), Name: asString(row.Values["name"])})
	}
	return programs
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asStringPtr treats nil and the empty string as absent.
func asStringPtr(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func asBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true"
	default:
		return false
	}
}

func asFloatPtr(v any) *float64 {
	switch val := v.(type) {
	case float64:
		return &val
	case string:
		if val == "" {
			return nil
		}
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return &parsed
		}
		return nil
	default:
		return nil
	}
}
