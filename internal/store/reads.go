package store

import (
	"sort"

	"gradtrack/projects/internal/model"
)

// Read accessors. Lists are sorted by id so callers see a stable order.

func (s *Store) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]model.User, 0, len(s.state.users))
	for _, u := range s.state.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (s *Store) User(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.state.users[id]
	return u, ok
}

func (s *Store) ListTeachers() []model.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teachers := make([]model.Teacher, 0, len(s.state.teachers))
	for _, t := range s.state.teachers {
		teachers = append(teachers, t)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].ID < teachers[j].ID })
	return teachers
}

func (s *Store) Teacher(id string) (model.Teacher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.state.teachers[id]
	return t, ok
}

func (s *Store) ListStudents() []model.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	students := make([]model.Student, 0, len(s.state.students))
	for _, st := range s.state.students {
		students = append(students, st)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}

func (s *Store) Student(id string) (model.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.state.students[id]
	return st, ok
}

func (s *Store) ListProjects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := make([]model.Project, 0, len(s.state.projects))
	for _, p := range s.state.projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects
}

func (s *Store) Project(id string) (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.projects[id]
	return p, ok
}

func (s *Store) ListAssignments() []model.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assignments := make([]model.Assignment, 0, len(s.state.assignments))
	for _, a := range s.state.assignments {
		assignments = append(assignments, a)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments
}

func (s *Store) Assignment(id string) (model.Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.state.assignments[id]
	return a, ok
}

func (s *Store) ListRoles() []model.TeacherRole {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles := make([]model.TeacherRole, 0, len(s.state.roles))
	for _, r := range s.state.roles {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID < roles[j].ID })
	return roles
}

func (s *Store) Role(id string) (model.TeacherRole, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.state.roles[id]
	return r, ok
}

func (s *Store) ListStatuses() []model.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	statuses := make([]model.Status, 0, len(s.state.statuses))
	for _, l := range s.state.statuses {
		statuses = append(statuses, l)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })
	return statuses
}

func (s *Store) ListFormats() []model.Format {
	s.mu.RLock()
	defer s.mu.RUnlock()
	formats := make([]model.Format, 0, len(s.state.formats))
	for _, l := range s.state.formats {
		formats = append(formats, l)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i].ID < formats[j].ID })
	return formats
}

func (s *Store) ListPrograms() []model.Program {
	s.mu.RLock()
	defer s.mu.RUnlock()
	programs := make([]model.Program, 0, len(s.state.programs))
	for _, l := range s.state.programs {
		programs = append(programs, l)
	}
	sort.Slice(programs, func(i, j int) bool { return programs[i].ID < programs[j].ID })
	return programs
}

// Label helpers resolve lookup ids for display, falling back to the
// unknown label on dangling references.

func (s *Store) StatusLabel(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.state.statuses[id]; ok {
		return l.Name
	}
	return model.UnknownLabel(id)
}

func (s *Store) FormatLabel(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.state.formats[id]; ok {
		return l.Name
	}
	return model.UnknownLabel(id)
}

func (s *Store) RoleLabel(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.state.roles[id]; ok {
		return r.Name
	}
	return model.UnknownLabel(id)
}

func (s *Store) ProgramLabel(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.state.programs[id]; ok {
		return l.Name
	}
	return model.UnknownLabel(id)
}
