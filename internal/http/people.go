package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gradtrack/projects/internal/model"
)

// Teachers

type teacherAssignment struct {
	ProjectID    string `json:"projectId"`
	ProjectTitle string `json:"projectTitle"`
	RoleName     string `json:"roleName"`
}

type teacherSummary struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	NationalID  string              `json:"nationalId"`
	Assignments []teacherAssignment `json:"assignments"`
}

func (s *Server) summarizeTeacher(t model.Teacher) teacherSummary {
	summary := teacherSummary{
		ID:          t.ID,
		Name:        t.Name,
		Email:       t.Email,
		NationalID:  t.NationalID,
		Assignments: []teacherAssignment{},
	}
	for _, a := range s.store.ListAssignments() {
		if a.TeacherID != t.ID {
			continue
		}
		entry := teacherAssignment{
			ProjectID: a.ProjectID,
			RoleName:  s.store.RoleLabel(a.RoleID),
		}
		if p, ok := s.store.Project(a.ProjectID); ok {
			entry.ProjectTitle = p.Title
		} else {
			entry.ProjectTitle = model.UnknownLabel(a.ProjectID)
		}
		summary.Assignments = append(summary.Assignments, entry)
	}
	return summary
}

func (s *Server) handleListTeachers(w http.ResponseWriter, _ *http.Request) {
	teachers := s.store.ListTeachers()
	summaries := make([]teacherSummary, 0, len(teachers))
	for _, t := range teachers {
		summaries = append(summaries, s.summarizeTeacher(t))
	}
	writeJSON(w, http.StatusOK, summaries)
}

type teacherRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	NationalID string `json:"nationalId"`
}

func (s *Server) handleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	var req teacherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Name == "" || req.Email == "" || req.NationalID == "" {
		writeError(w, http.StatusBadRequest, "validation_failed")
		return
	}
	created, err := s.identity.CreateTeacher(r.Context(), model.Teacher{
		Name:       req.Name,
		Email:      req.Email,
		NationalID: req.NationalID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	writeJSON(w, http.StatusCreated, s.summarizeTeacher(created))
}

func (s *Server) handleUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherId")
	if _, ok := s.store.Teacher(teacherID); !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	var req teacherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Name == "" || req.Email == "" || req.NationalID == "" {
		writeError(w, http.StatusBadRequest, "validation_failed")
		return
	}
	updated, err := s.identity.UpdateTeacher(r.Context(), model.Teacher{
		ID:         teacherID,
		Name:       req.Name,
		Email:      req.Email,
		NationalID: req.NationalID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	writeJSON(w, http.StatusOK, s.summarizeTeacher(updated))
}

func (s *Server) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	if err := s.identity.DeleteTeacher(r.Context(), chi.URLParam(r, "teacherId")); err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Students

type studentSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	NationalID   string  `json:"nationalId"`
	ProgramID    string  `json:"programId"`
	ProgramName  string  `json:"programName"`
	ProjectID    *string `json:"projectId"`
	ProjectTitle string  `json:"projectTitle,omitempty"`
}

func (s *Server) summarizeStudent(st model.Student) studentSummary {
	summary := studentSummary{
		ID:          st.ID,
		Name:        st.Name,
		Email:       st.Email,
		NationalID:  st.NationalID,
		ProgramID:   st.ProgramID,
		ProgramName: s.store.ProgramLabel(st.ProgramID),
		ProjectID:   st.ProjectID,
	}
	if st.ProjectID != nil {
		if p, ok := s.store.Project(*st.ProjectID); ok {
			summary.ProjectTitle = p.Title
		} else {
			summary.ProjectTitle = model.UnknownLabel(*st.ProjectID)
		}
	}
	return summary
}

func (s *Server) handleListStudents(w http.ResponseWriter, _ *http.Request) {
	students := s.store.ListStudents()
	summaries := make([]studentSummary, 0, len(students))
	for _, st := range students {
		summaries = append(summaries, s.summarizeStudent(st))
	}
	writeJSON(w, http.StatusOK, summaries)
}

type studentRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	NationalID string  `json:"nationalId"`
	ProgramID  string  `json:"programId"`
	ProjectID  *string `json:"projectId"`
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Name == "" || req.Email == "" || req.NationalID == "" {
		writeError(w, http.StatusBadRequest, "validation_failed")
		return
	}
	if req.ProjectID != nil {
		if _, ok := s.store.Project(*req.ProjectID); !ok {
			writeError(w, http.StatusNotFound, "unknown_project")
			return
		}
	}
	created, err := s.identity.CreateStudent(r.Context(), model.Student{
		Name:       req.Name,
		Email:      req.Email,
		NationalID: req.NationalID,
		ProgramID:  req.ProgramID,
		ProjectID:  req.ProjectID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	writeJSON(w, http.StatusCreated, s.summarizeStudent(created))
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentId")
	if _, ok := s.store.Student(studentID); !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	var req studentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Name == "" || req.Email == "" || req.NationalID == "" {
		writeError(w, http.StatusBadRequest, "validation_failed")
		return
	}
	if req.ProjectID != nil {
		if _, ok := s.store.Project(*req.ProjectID); !ok {
			writeError(w, http.StatusNotFound, "unknown_project")
			return
		}
	}
	updated, err := s.identity.UpdateStudent(r.Context(), model.Student{
		ID:         studentID,
		Name:       req.Name,
		Email:      req.Email,
		NationalID: req.NationalID,
		ProgramID:  req.ProgramID,
		ProjectID:  req.ProjectID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	writeJSON(w, http.StatusOK, s.summarizeStudent(updated))
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := s.identity.DeleteStudent(r.Context(), chi.URLParam(r, "studentId")); err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Users

type userListEntry struct {
	userSummary
	LinkedName string `json:"linkedName,omitempty"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	users := s.store.ListUsers()
	entries := make([]userListEntry, 0, len(users))
	for _, u := range users {
		entry := userListEntry{userSummary: summarizeUser(u)}
		switch {
		case u.TeacherID != nil:
			if t, ok := s.store.Teacher(*u.TeacherID); ok {
				entry.LinkedName = t.Name
			} else {
				entry.LinkedName = model.UnknownLabel(*u.TeacherID)
			}
		case u.StudentID != nil:
			if st, ok := s.store.Student(*u.StudentID); ok {
				entry.LinkedName = st.Name
			} else {
				entry.LinkedName = model.UnknownLabel(*u.StudentID)
			}
		}
		entries = append(entries, entry)
	}
	writeJSON(w, http.StatusOK, entries)
}

// Deleting the last admin account is a silent no-op, so this always
// answers 204.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.identity.DeleteUser(r.Context(), chi.URLParam(r, "userId")); err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
