package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gradtrack/projects/internal/model"
	"gradtrack/projects/internal/store"
)

type lookupItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type lookupRequest struct {
	Name string `json:"name"`
}

// Teacher roles get explicit handlers so responses can carry the derived
// capabilities.

func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListRoles())
}

func (s *Server) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "validation_failed")
		return
	}
	var created model.TeacherRole
	err := s.store.WithTx(r.Context(), func(tx *store.Tx) error {
		created = tx.CreateRole(model.TeacherRole{Name: req.Name})
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "roleId")
	if _, ok := s.store.Role(roleID); !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	var req lookupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "validation_failed")
		return
	}
	var updated model.TeacherRole
	err := s.store.WithTx(r.Context(), func(tx *store.Tx) error {
		updated = tx.UpdateRole(model.TeacherRole{ID: roleID, Name: req.Name})
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	err := s.store.WithTx(r.Context(), func(tx *store.Tx) error {
		tx.DeleteRole(chi.URLParam(r, "roleId"))
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Statuses, formats and programs share a shape, so their handlers are
// parameterized by kind.

func (s *Server) listLookup(kind string) []lookupItem {
	var items []lookupItem
	switch kind {
	case "statuses":
		for _, l := range s.store.ListStatuses() {
			items = append(items, lookupItem(l))
		}
	case "formats":
		for _, l := range s.store.ListFormats() {
			items = append(items, lookupItem(l))
		}
	case "programs":
		for _, l := range s.store.ListPrograms() {
			items = append(items, lookupItem(l))
		}
	}
	if items == nil {
		items = []lookupItem{}
	}
	return items
}

func (s *Server) handleListLookup(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, s.listLookup(kind))
	}
}

func (s *Server) handleCreateLookup(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req lookupRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "validation_failed")
			return
		}
		var created lookupItem
		err := s.store.WithTx(r.Context(), func(tx *store.Tx) error {
			switch kind {
			case "statuses":
				created = lookupItem(tx.CreateStatus(model.Status{Name: req.Name}))
			case "formats":
				created = lookupItem(tx.CreateFormat(model.Format{Name: req.Name}))
			case "programs":
				created = lookupItem(tx.CreateProgram(model.Program{Name: req.Name}))
			}
			return nil
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "storage_failed")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) handleUpdateLookup(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req lookupRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "validation_failed")
			return
		}
		var updated lookupItem
		found := false
		err := s.store.WithTx(r.Context(), func(tx *store.Tx) error {
			switch kind {
			case "statuses":
				if _, ok := tx.Status(id); ok {
					found = true
					updated = lookupItem(tx.UpdateStatus(model.Status{ID: id, Name: req.Name}))
				}
			case "formats":
				if _, ok := tx.Format(id); ok {
					found = true
					updated = lookupItem(tx.UpdateFormat(model.Format{ID: id, Name: req.Name}))
				}
			case "programs":
				if _, ok := tx.Program(id); ok {
					found = true
					updated = lookupItem(tx.UpdateProgram(model.Program{ID: id, Name: req.Name}))
				}
			}
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
		writeJSON(w, http.StatusOK, updated)
	}
}

// Lookup deletes never cascade; projects and assignments may keep dangling
// ids that render as unknown.
func (s *Server) handleDeleteLookup(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		err := s.store.WithTx(r.Context(), func(tx *store.Tx) error {
			switch kind {
			case "statuses":
				tx.DeleteStatus(id)
			case "formats":
				tx.DeleteFormat(id)
			case "programs":
				tx.DeleteProgram(id)
			}
			return nil
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "storage_failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
