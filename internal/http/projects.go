package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gradtrack/projects/internal/grading"
	"gradtrack/projects/internal/model"
	"gradtrack/projects/internal/store"
)

type projectMember struct {
	TeacherID   string `json:"teacherId"`
	TeacherName string `json:"teacherName"`
	RoleName    string `json:"roleName"`
}

type projectSummary struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	PresentationDate  string          `json:"presentationDate"`
	FilesURL          string          `json:"filesUrl"`
	StatusID          string          `json:"statusId"`
	StatusName        string          `json:"statusName"`
	FormatID          string          `json:"formatId"`
	FormatName        string          `json:"formatName"`
	DirectorApproved  bool            `json:"directorApproved"`
	Students          []string        `json:"students"`
	Teachers          []projectMember `json:"teachers"`
	WrittenFinal      *float64        `json:"writtenFinal"`
	PresentationFinal *float64        `json:"presentationFinal"`
	CanEdit           bool            `json:"canEdit"`
	CanGrade          bool            `json:"canGrade"`
}

func (s *Server) summarizeProject(user model.User, p model.Project) projectSummary {
	summary := projectSummary{
		ID:               p.ID,
		Title:            p.Title,
		PresentationDate: p.PresentationDate,
		FilesURL:         p.FilesURL,
		StatusID:         p.StatusID,
		StatusName:       s.store.StatusLabel(p.StatusID),
		FormatID:         p.FormatID,
		FormatName:       s.store.FormatLabel(p.FormatID),
		DirectorApproved: p.DirectorApproved,
		Students:         []string{},
		Teachers:         []projectMember{},
		CanEdit:          s.resolver.CanEditProject(user, p.ID),
		CanGrade:         s.resolver.GradingDecision(user, p.ID).CanGrade,
	}
	for _, st := range s.store.ListStudents() {
		if st.ProjectID != nil && *st.ProjectID == p.ID {
			summary.Students = append(summary.Students, st.Name)
		}
	}
	for _, a := range s.store.ListAssignments() {
		if a.ProjectID != p.ID {
			continue
		}
		member := projectMember{
			TeacherID: a.TeacherID,
			RoleName:  s.store.RoleLabel(a.RoleID),
		}
		if t, ok := s.store.Teacher(a.TeacherID); ok {
			member.TeacherName = t.Name
		} else {
			member.TeacherName = model.UnknownLabel(a.TeacherID)
		}
		summary.Teachers = append(summary.Teachers, member)
	}
	if written, ok := grading.FinalWritten(p); ok {
		summary.WrittenFinal = &written
	}
	if presentation, ok := grading.FinalPresentation(p); ok {
		summary.PresentationFinal = &presentation
	}
	return summary
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	projects := s.store.ListProjects()
	summaries := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, s.summarizeProject(user, p))
	}
	writeJSON(w, http.StatusOK, summaries)
}

type projectRequest struct {
	Title            string `json:"title"`
	PresentationDate string `json:"presentationDate"`
	FilesURL         string `json:"filesUrl"`
	StatusID         string `json:"statusId"`
	FormatID         string `json:"formatId"`
}

func (req projectRequest) valid() bool {
	return req.Title != "" && req.PresentationDate != "" && req.StatusID != "" && req.FormatID != ""
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	if user.Role != model.RoleAdmin && user.Role != model.RoleTeacher {
		writeError(w, http.StatusForbidden, "not_permitted")
		return
	}
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if !req.valid() {
		writeError(w, http.StatusBadRequest, "validation_failed")
		return
	}
	var created model.Project
	err := s.store.WithTx(r.Context(), func(tx *store.Tx) error {
		created = tx.CreateProject(model.Project{
			Title:            req.Title,
			PresentationDate: req.PresentationDate,
			FilesURL:         req.FilesURL,
			StatusID:         req.StatusID,
			FormatID:         req.FormatID,
		})
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	writeJSON(w, http.StatusCreated, s.summarizeProject(user, created))
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	p, ok := s.store.Project(chi.URLParam(r, "projectId"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, s.summarizeProject(user, p))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	projectID := chi.URLParam(r, "projectId")
	if !s.resolver.CanEditProject(user, projectID) {
		writeError(w, http.StatusForbidden, "not_permitted")
		return
	}
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if !req.valid() {
		writeError(w, http.StatusBadRequest, "validation_failed")
		return
	}
	var updated model.Project
	found := false
	err := s.store.WithTx(r.Context(), func(tx *store.Tx) error {
		p, ok := tx.Project(projectID)
		if !ok {
			return nil
		}
		found = true
		p.Title = req.Title
		p.PresentationDate = req.PresentationDate
		p.FilesURL = req.FilesURL
		p.StatusID = req.StatusID
		p.FormatID = req.FormatID
		updated = tx.UpdateProject(p)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, s.summarizeProject(user, updated))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	err := s.store.WithTx(r.Context(), func(tx *store.Tx) error {
		tx.DeleteProject(projectID)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Approval and grading

type approvalRequest struct {
	Approved bool `json:"approved"`
}

func (s *Server) handleSetApproval(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	var req approvalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	p, err := s.grading.SetApproval(r.Context(), user, chi.URLParam(r, "projectId"), req.Approved)
	if err != nil {
		writeGradingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.summarizeProject(user, p))
}

type gradeSlot struct {
	Written      *float64 `json:"written"`
	Presentation *float64 `json:"presentation"`
}

type gradeReport struct {
	DirectorApproved bool      `json:"directorApproved"`
	Reviewer1        gradeSlot `json:"reviewer1"`
	Reviewer2        gradeSlot `json:"reviewer2"`
	Final            gradeSlot `json:"final"`
}

func buildGradeReport(p model.Project) gradeReport {
	report := gradeReport{
		DirectorApproved: p.DirectorApproved,
		Reviewer1:        gradeSlot{Written: p.WrittenGrade1, Presentation: p.PresentationGrade1},
		Reviewer2:        gradeSlot{Written: p.WrittenGrade2, Presentation: p.PresentationGrade2},
	}
	if written, ok := grading.FinalWritten(p); ok {
		report.Final.Written = &written
	}
	if presentation, ok := grading.FinalPresentation(p); ok {
		report.Final.Presentation = &presentation
	}
	return report
}

func (s *Server) handleGetGrades(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.Project(chi.URLParam(r, "projectId"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, buildGradeReport(p))
}

func (s *Server) handlePutGrades(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	var req gradeSlot
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	p, err := s.grading.RecordGrade(r.Context(), user, chi.URLParam(r, "projectId"), req.Written, req.Presentation)
	if err != nil {
		writeGradingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildGradeReport(p))
}

func writeGradingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, grading.ErrNotPermitted):
		writeError(w, http.StatusForbidden, "not_permitted")
	case errors.Is(err, grading.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, grading.ErrApprovalRequired):
		writeError(w, http.StatusConflict, "approval_required")
	case errors.Is(err, grading.ErrNoReviewerSlot):
		writeError(w, http.StatusConflict, "no_reviewer_slot")
	default:
		writeError(w, http.StatusInternalServerError, "storage_failed")
	}
}

// Assignments

type assignmentRequest struct {
	TeacherID string `json:"teacherId"`
	RoleID    string `json:"roleId"`
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	projectID := chi.URLParam(r, "projectId")
	if !s.resolver.CanEditProject(user, projectID) {
		writeError(w, http.StatusForbidden, "not_permitted")
		return
	}
	var req assignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.TeacherID == "" || req.RoleID == "" {
		writeError(w, http.StatusBadRequest, "validation_failed")
		return
	}
	if _, ok := s.store.Teacher(req.TeacherID); !ok {
		writeError(w, http.StatusNotFound, "unknown_teacher")
		return
	}
	var created model.Assignment
	err := s.store.WithTx(r.Context(), func(tx *store.Tx) error {
		var txErr error
		created, txErr = tx.CreateAssignment(model.Assignment{
			ProjectID: projectID,
			TeacherID: req.TeacherID,
			RoleID:    req.RoleID,
		})
		return txErr
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateAssignment) {
			writeError(w, http.StatusConflict, "duplicate_assignment")
			return
		}
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	assignmentID := chi.URLParam(r, "assignmentId")
	a, ok := s.store.Assignment(assignmentID)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if !s.resolver.CanEditProject(user, a.ProjectID) {
		writeError(w, http.StatusForbidden, "not_permitted")
		return
	}
	err := s.store.WithTx(r.Context(), func(tx *store.Tx) error {
		tx.DeleteAssignment(assignmentID)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Student self view

type ownProjectResponse struct {
	Project projectSummary `json:"project"`
	Grades  gradeReport    `json:"grades"`
}

func (s *Server) handleGetOwnProject(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	if user.StudentID == nil {
		writeError(w, http.StatusForbidden, "not_a_student")
		return
	}
	student, ok := s.store.Student(*user.StudentID)
	if !ok || student.ProjectID == nil {
		writeError(w, http.StatusNotFound, "no_project")
		return
	}
	p, ok := s.store.Project(*student.ProjectID)
	if !ok {
		writeError(w, http.StatusNotFound, "no_project")
		return
	}
	writeJSON(w, http.StatusOK, ownProjectResponse{
		Project: s.summarizeProject(user, p),
		Grades:  buildGradeReport(p),
	})
}
