package store

import (
	"github.com/google/uuid"

	"gradtrack/projects/internal/model"
)

// Tx exposes the per-entity mutations of one store transaction. Every
// method operates on the cloned state owned by WithTx; ids are generated
// here and never reused.
type Tx struct {
	st *state
}

// Users

func (tx *Tx) CreateUser(u model.User) model.User {
	u.ID = uuid.NewString()
	tx.st.users[u.ID] = u
	return u
}

func (tx *Tx) UpdateUser(u model.User) model.User {
	if _, ok := tx.st.users[u.ID]; ok {
		tx.st.users[u.ID] = u
	}
	return u
}

func (tx *Tx) DeleteUser(id string) {
	delete(tx.st.users, id)
}

func (tx *Tx) User(id string) (model.User, bool) {
	u, ok := tx.st.users[id]
	return u, ok
}

func (tx *Tx) UserByTeacherID(teacherID string) (model.User, bool) {
	for _, u := range tx.st.users {
		if u.TeacherID != nil && *u.TeacherID == teacherID {
			return u, true
		}
	}
	return model.User{}, false
}

func (tx *Tx) UserByStudentID(studentID string) (model.User, bool) {
	for _, u := range tx.st.users {
		if u.StudentID != nil && *u.StudentID == studentID {
			return u, true
		}
	}
	return model.User{}, false
}

func (tx *Tx) AdminCount() int {
	count := 0
	for _, u := range tx.st.users {
		if u.Role == model.RoleAdmin {
			count++
		}
	}
	return count
}

func (tx *Tx) ReplaceUsers(users []model.User) {
	tx.st.users = map[string]model.User{}
	for _, u := range users {
		tx.st.users[u.ID] = u
	}
}

// Teachers

func (tx *Tx) CreateTeacher(t model.Teacher) model.Teacher {
	t.ID = uuid.NewString()
	tx.st.teachers[t.ID] = t
	return t
}

func (tx *Tx) UpdateTeacher(t model.Teacher) model.Teacher {
	if _, ok := tx.st.teachers[t.ID]; ok {
		tx.st.teachers[t.ID] = t
	}
	return t
}

// DeleteTeacher also removes every assignment held by the teacher. The
// derived account cascade lives in the identity layer.
func (tx *Tx) DeleteTeacher(id string) {
	delete(tx.st.teachers, id)
	for aid, a := range tx.st.assignments {
		if a.TeacherID == id {
			delete(tx.st.assignments, aid)
		}
	}
}

func (tx *Tx) Teacher(id string) (model.Teacher, bool) {
	t, ok := tx.st.teachers[id]
	return t, ok
}

func (tx *Tx) ReplaceTeachers(teachers []model.Teacher) {
	tx.st.teachers = map[string]model.Teacher{}
	for _, t := range teachers {
		tx.st.teachers[t.ID] = t
	}
}

// Students

func (tx *Tx) CreateStudent(s model.Student) model.Student {
	s.ID = uuid.NewString()
	tx.st.students[s.ID] = s
	return s
}

func (tx *Tx) UpdateStudent(s model.Student) model.Student {
	if _, ok := tx.st.students[s.ID]; ok {
		tx.st.students[s.ID] = s
	}
	return s
}

func (tx *Tx) DeleteStudent(id string) {
	delete(tx.st.students, id)
}

func (tx *Tx) Student(id string) (model.Student, bool) {
	s, ok := tx.st.students[id]
	return s, ok
}

func (tx *Tx) ReplaceStudents(students []model.Student) {
	tx.st.students = map[string]model.Student{}
	for _, s := range students {
		tx.st.students[s.ID] = s
	}
}

// Projects

func (tx *Tx) CreateProject(p model.Project) model.Project {
	p.ID = uuid.NewString()
	tx.st.projects[p.ID] = p
	return p
}

func (tx *Tx) UpdateProject(p model.Project) model.Project {
	if _, ok := tx.st.projects[p.ID]; ok {
		tx.st.projects[p.ID] = p
	}
	return p
}

// DeleteProject unassigns every student pointing at the project and removes
// its assignments.
func (tx *Tx) DeleteProject(id string) {
	delete(tx.st.projects, id)
	for sid, s := range tx.st.students {
		if s.ProjectID != nil && *s.ProjectID == id {
			s.ProjectID = nil
			tx.st.students[sid] = s
		}
	}
	for aid, a := range tx.st.assignments {
		if a.ProjectID == id {
			delete(tx.st.assignments, aid)
		}
	}
}

func (tx *Tx) Project(id string) (model.Project, bool) {
	p, ok := tx.st.projects[id]
	return p, ok
}

func (tx *Tx) ReplaceProjects(projects []model.Project) {
	tx.st.projects = map[string]model.Project{}
	for _, p := range projects {
		tx.st.projects[p.ID] = p
	}
}

// Assignments

// CreateAssignment enforces the one-role-per-teacher-per-project invariant
// at write time rather than relying on callers to avoid duplicates.
func (tx *Tx) CreateAssignment(a model.Assignment) (model.Assignment, error) {
	for _, existing := range tx.st.assignments {
		if existing.ProjectID == a.ProjectID && existing.TeacherID == a.TeacherID {
			return model.Assignment{}, ErrDuplicateAssignment
		}
	}
	a.ID = uuid.NewString()
	tx.st.assignments[a.ID] = a
	return a, nil
}

func (tx *Tx) UpdateAssignment(a model.Assignment) (model.Assignment, error) {
	if _, ok := tx.st.assignments[a.ID]; !ok {
		return a, nil
	}
	for _, existing := range tx.st.assignments {
		if existing.ID != a.ID && existing.ProjectID == a.ProjectID && existing.TeacherID == a.TeacherID {
			return model.Assignment{}, ErrDuplicateAssignment
		}
	}
	tx.st.assignments[a.ID] = a
	return a, nil
}

func (tx *Tx) DeleteAssignment(id string) {
	delete(tx.st.assignments, id)
}

func (tx *Tx) Assignment(id string) (model.Assignment, bool) {
	a, ok := tx.st.assignments[id]
	return a, ok
}

func (tx *Tx) ReplaceAssignments(assignments []model.Assignment) {
	tx.st.assignments = map[string]model.Assignment{}
	for _, a := range assignments {
		tx.st.assignments[a.ID] = a
	}
}

// Teacher roles

func (tx *Tx) CreateRole(r model.TeacherRole) model.TeacherRole {
	r.ID = uuid.NewString()
	r.Capabilities = model.DeriveCapabilities(r.Name)
	tx.st.roles[r.ID] = r
	return r
}

func (tx *Tx) UpdateRole(r model.TeacherRole) model.TeacherRole {
	r.Capabilities = model.DeriveCapabilities(r.Name)
	if _, ok := tx.st.roles[r.ID]; ok {
		tx.st.roles[r.ID] = r
	}
	return r
}

// DeleteRole does not cascade: assignments may keep a dangling role id,
// resolved as unknown at read time.
func (tx *Tx) DeleteRole(id string) {
	delete(tx.st.roles, id)
}

func (tx *Tx) Role(id string) (model.TeacherRole, bool) {
	r, ok := tx.st.roles[id]
	return r, ok
}

func (tx *Tx) ReplaceRoles(roles []model.TeacherRole) {
	tx.st.roles = map[string]model.TeacherRole{}
	for _, r := range roles {
		r.Capabilities = model.DeriveCapabilities(r.Name)
		tx.st.roles[r.ID] = r
	}
}

// Lookup sets. Deleting one never cascades into projects or students.

func (tx *Tx) CreateStatus(l model.Status) model.Status {
	l.ID = uuid.NewString()
	tx.st.statuses[l.ID] = l
	return l
}

func (tx *Tx) UpdateStatus(l model.Status) model.Status {
	if _, ok := tx.st.statuses[l.ID]; ok {
		tx.st.statuses[l.ID] = l
	}
	return l
}

func (tx *Tx) DeleteStatus(id string) {
	delete(tx.st.statuses, id)
}

func (tx *Tx) Status(id string) (model.Status, bool) {
	l, ok := tx.st.statuses[id]
	return l, ok
}

func (tx *Tx) ReplaceStatuses(statuses []model.Status) {
	tx.st.statuses = map[string]model.Status{}
	for _, l := range statuses {
		tx.st.statuses[l.ID] = l
	}
}

func (tx *Tx) CreateFormat(l model.Format) model.Format {
	l.ID = uuid.NewString()
	tx.st.formats[l.ID] = l
	return l
}

func (tx *Tx) UpdateFormat(l model.Format) model.Format {
	if _, ok := tx.st.formats[l.ID]; ok {
		tx.st.formats[l.ID] = l
	}
	return l
}

func (tx *Tx) DeleteFormat(id string) {
	delete(tx.st.formats, id)
}

func (tx *Tx) Format(id string) (model.Format, bool) {
	l, ok := tx.st.formats[id]
	return l, ok
}

func (tx *Tx) ReplaceFormats(formats []model.Format) {
	tx.st.formats = map[string]model.Format{}
	for _, l := range formats {
		tx.st.formats[l.ID] = l
	}
}

func (tx *Tx) CreateProgram(l model.Program) model.Program {
	l.ID = uuid.NewString()
	tx.st.programs[l.ID] = l
	return l
}

func (tx *Tx) UpdateProgram(l model.Program) model.Program {
	if _, ok := tx.st.programs[l.ID]; ok {
		tx.st.programs[l.ID] = l
	}
	return l
}

func (tx *Tx) DeleteProgram(id string) {
	delete(tx.st.programs, id)
}

func (tx *Tx) Program(id string) (model.Program, bool) {
	l, ok := tx.st.programs[id]
	return l, ok
}

func (tx *Tx) ReplacePrograms(programs []model.Program) {
	tx.st.programs = map[string]model.Program{}
	for _, l := range programs {
		tx.st.programs[l.ID] = l
	}
}
