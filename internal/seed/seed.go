// Package seed provides the dataset installed when the persistence backend
// holds no snapshot yet.
package seed

import "gradtrack/projects/internal/model"

func strptr(s string) *string { return &s }

// Snapshot returns the default dataset: the lookup taxonomies, a handful of
// sample profiles and projects, and the derived accounts plus the one admin
// account.
func Snapshot() model.Snapshot {
	roles := []model.TeacherRole{
		{ID: "role-1", Name: "Director"},
		{ID: "role-2", Name: "Co-Director"},
		{ID: "role-3", Name: "Evaluator 1"},
		{ID: "role-4", Name: "Evaluator 2"},
	}
	for i := range roles {
		roles[i].Capabilities = model.DeriveCapabilities(roles[i].Name)
	}

	teachers := []model.Teacher{
		{ID: "teacher-1", Name: "Dr. Eleanor Vance", Email: "eleanor.v@university.edu", NationalID: "10245873"},
		{ID: "teacher-2", Name: "Prof. Ben Carter", Email: "ben.c@university.edu", NationalID: "10318562"},
		{ID: "teacher-3", Name: "Dra. Olivia Chen", Email: "olivia.c@university.edu", NationalID: "10490217"},
	}
	students := []model.Student{
		{ID: "student-1", Name: "Alice Johnson", Email: "alice.j@student.edu", NationalID: "20758431", ProgramID: "program-1", ProjectID: strptr("project-1")},
		{ID: "student-2", Name: "Bob Williams", Email: "bob.w@student.edu", NationalID: "20867214", ProgramID: "program-1", ProjectID: strptr("project-1")},
		{ID: "student-3", Name: "Charlie Brown", Email: "charlie.b@student.edu", NationalID: "20913758", ProgramID: "program-2", ProjectID: strptr("project-2")},
		{ID: "student-4", Name: "Diana Miller", Email: "diana.m@student.edu", NationalID: "21034865", ProgramID: "program-2", ProjectID: nil},
	}

	users := []model.User{
		{ID: "user-admin", Username: "admin", Password: "admin123", Role: model.RoleAdmin},
	}
	for _, t := range teachers {
		users = append(users, model.User{
			ID:        "user-" + t.ID,
			Username:  model.LocalPart(t.Email),
			Password:  t.NationalID,
			Role:      model.RoleTeacher,
			TeacherID: strptr(t.ID),
		})
	}
	for _, s := range students {
		users = append(users, model.User{
			ID:        "user-" + s.ID,
			Username:  model.LocalPart(s.Email),
			Password:  s.NationalID,
			Role:      model.RoleStudent,
			StudentID: strptr(s.ID),
		})
	}

	return model.Snapshot{
		Statuses: []model.Status{
			{ID: "status-1", Name: "Proposed"},
			{ID: "status-2", Name: "In Progress"},
			{ID: "status-3", Name: "Under Review"},
			{ID: "status-4", Name: "Approved"},
			{ID: "status-5", Name: "Rejected"},
		},
		Formats: []model.Format{
			{ID: "format-1", Name: "Standard Thesis"},
			{ID: "format-2", Name: "Research Article"},
			{ID: "format-3", Name: "Software Project"},
		},
		Programs: []model.Program{
			{ID: "program-1", Name: "Systems Engineering"},
			{ID: "program-2", Name: "Industrial Engineering"},
		},
		Roles:    roles,
		Teachers: teachers,
		Students: students,
		Projects: []model.Project{
			{ID: "project-1", Title: "Predictive Maintenance with AI", PresentationDate: "2026-12-15", FilesURL: "https://example.com/project1", StatusID: "status-2", FormatID: "format-3"},
			{ID: "project-2", Title: "Quantum Computing for Drug Discovery", PresentationDate: "2027-01-20", FilesURL: "https://example.com/project2", StatusID: "status-1", FormatID: "format-1"},
		},
		Assignments: []model.Assignment{
			{ID: "pt-1", ProjectID: "project-1", TeacherID: "teacher-1", RoleID: "role-1"},
			{ID: "pt-2", ProjectID: "project-1", TeacherID: "teacher-2", RoleID: "role-3"},
		},
		Users: users,
	}
}
