package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gradtrack/projects/internal/store"
	"gradtrack/projects/internal/tabular"
)

var errUnknownSet = errors.New("unknown record set")

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	set := chi.URLParam(r, "set")
	var rows []tabular.Row
	switch set {
	case "users":
		rows = tabular.UserRows(s.store.ListUsers())
	case "teachers":
		rows = tabular.TeacherRows(s.store.ListTeachers())
	case "students":
		rows = tabular.StudentRows(s.store.ListStudents())
	case "projects":
		rows = tabular.ProjectRows(s.store.ListProjects())
	case "assignments":
		rows = tabular.AssignmentRows(s.store.ListAssignments())
	case "roles":
		rows = tabular.RoleRows(s.store.ListRoles())
	case "statuses":
		rows = tabular.StatusRows(s.store.ListStatuses())
	case "formats":
		rows = tabular.FormatRows(s.store.ListFormats())
	case "programs":
		rows = tabular.ProgramRows(s.store.ListPrograms())
	default:
		writeError(w, http.StatusNotFound, "unknown_set")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+set+`.csv"`)
	_, _ = w.Write([]byte(tabular.Encode(rows)))
}

// handleImport replaces the named record set wholesale with the decoded
// rows. No validation happens here; malformed rows were already dropped by
// the decoder.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	set := chi.URLParam(r, "set")
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	rows := tabular.Decode(string(body))

	count := 0
	err = s.store.WithTx(r.Context(), func(tx *store.Tx) error {
		switch set {
		case "users":
			users := tabular.UsersFromRows(rows)
			tx.ReplaceUsers(users)
			count = len(users)
		case "teachers":
			teachers := tabular.TeachersFromRows(rows)
			tx.ReplaceTeachers(teachers)
			count = len(teachers)
		case "students":
			students := tabular.StudentsFromRows(rows)
			tx.ReplaceStudents(students)
			count = len(students)
		case "projects":
			projects := tabular.ProjectsFromRows(rows)
			tx.ReplaceProjects(projects)
			count = len(projects)
		case "assignments":
			assignments := tabular.AssignmentsFromRows(rows)
			tx.ReplaceAssignments(assignments)
			count = len(assignments)
		case "roles":
			roles := tabular.RolesFromRows(rows)
			tx.ReplaceRoles(roles)
			count = len(roles)
		case "statuses":
			statuses := tabular.StatusesFromRows(rows)
			tx.ReplaceStatuses(statuses)
			count = len(statuses)
		case "formats":
			formats := tabular.FormatsFromRows(rows)
			tx.ReplaceFormats(formats)
			count = len(formats)
		case "programs":
			programs := tabular.ProgramsFromRows(rows)
			tx.ReplacePrograms(programs)
			count = len(programs)
		default:
			return errUnknownSet
		}
		return nil
	})
	if err != nil {
		if err == errUnknownSet {
			writeError(w, http.StatusNotFound, "unknown_set")
			return
		}
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": count})
}
