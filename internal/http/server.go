package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gradtrack/projects/internal/auth"
	"gradtrack/projects/internal/authz"
	"gradtrack/projects/internal/config"
	"gradtrack/projects/internal/grading"
	"gradtrack/projects/internal/identity"
	"gradtrack/projects/internal/model"
	"gradtrack/projects/internal/store"
)

type Server struct {
	cfg      config.Config
	store    *store.Store
	identity *identity.Service
	resolver *authz.Resolver
	grading  *grading.Engine
}

func NewServer(cfg config.Config, st *store.Store, identitySvc *identity.Service, resolver *authz.Resolver, engine *grading.Engine) *Server {
	return &Server{
		cfg:      cfg,
		store:    st,
		identity: identitySvc,
		resolver: resolver,
		grading:  engine,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/login", s.handleLogin)
	r.With(s.authMiddleware).Get("/auth/me", s.handleGetMe)

	r.With(s.authMiddleware).Get("/dashboard/stats", s.handleDashboardStats)

	r.With(s.authMiddleware).Get("/projects", s.handleListProjects)
	r.With(s.authMiddleware).Post("/projects", s.handleCreateProject)
	r.With(s.authMiddleware).Get("/project/{projectId}", s.handleGetProject)
	r.With(s.authMiddleware).Put("/project/{projectId}", s.handleUpdateProject)
	r.With(s.authMiddleware, s.requireAdmin).Delete("/project/{projectId}", s.handleDeleteProject)
	r.With(s.authMiddleware).Patch("/project/{projectId}/approval", s.handleSetApproval)
	r.With(s.authMiddleware).Get("/project/{projectId}/grades", s.handleGetGrades)
	r.With(s.authMiddleware).Put("/project/{projectId}/grades", s.handlePutGrades)
	r.With(s.authMiddleware).Post("/project/{projectId}/assignments", s.handleCreateAssignment)
	r.With(s.authMiddleware).Delete("/assignment/{assignmentId}", s.handleDeleteAssignment)

	r.With(s.authMiddleware).Get("/student/me/project", s.handleGetOwnProject)

	r.With(s.authMiddleware).Get("/teachers", s.handleListTeachers)
	r.With(s.authMiddleware, s.requireAdmin).Post("/teachers", s.handleCreateTeacher)
	r.With(s.authMiddleware, s.requireAdmin).Put("/teacher/{teacherId}", s.handleUpdateTeacher)
	r.With(s.authMiddleware, s.requireAdmin).Delete("/teacher/{teacherId}", s.handleDeleteTeacher)

	r.With(s.authMiddleware).Get("/students", s.handleListStudents)
	r.With(s.authMiddleware, s.requireAdmin).Post("/students", s.handleCreateStudent)
	r.With(s.authMiddleware, s.requireAdmin).Put("/student/{studentId}", s.handleUpdateStudent)
	r.With(s.authMiddleware, s.requireAdmin).Delete("/student/{studentId}", s.handleDeleteStudent)

	r.With(s.authMiddleware, s.requireAdmin).Get("/users", s.handleListUsers)
	r.With(s.authMiddleware, s.requireAdmin).Delete("/user/{userId}", s.handleDeleteUser)

	r.With(s.authMiddleware).Get("/roles", s.handleListRoles)
	r.With(s.authMiddleware, s.requireAdmin).Post("/roles", s.handleCreateRole)
	r.With(s.authMiddleware, s.requireAdmin).Put("/role/{roleId}", s.handleUpdateRole)
	r.With(s.authMiddleware, s.requireAdmin).Delete("/role/{roleId}", s.handleDeleteRole)

	for _, kind := range []string{"statuses", "formats", "programs"} {
		kind := kind
		r.Route("/"+kind, func(r chi.Router) {
			r.With(s.authMiddleware).Get("/", s.handleListLookup(kind))
			r.With(s.authMiddleware, s.requireAdmin).Post("/", s.handleCreateLookup(kind))
			r.With(s.authMiddleware, s.requireAdmin).Put("/{id}", s.handleUpdateLookup(kind))
			r.With(s.authMiddleware, s.requireAdmin).Delete("/{id}", s.handleDeleteLookup(kind))
		})
	}

	r.With(s.authMiddleware).Get("/export/{set}", s.handleExport)
	r.With(s.authMiddleware, s.requireAdmin).Post("/import/{set}", s.handleImport)

	return r
}

// Auth

type userKey struct{}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}
		claims, err := auth.ParseToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		// Accounts deleted after login stop working immediately.
		user, ok := s.store.User(claims.UserID)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unknown_user")
			return
		}
		ctx := context.WithValue(r.Context(), userKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r.Context())
		if !ok || user.Role != model.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin_only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey{}).(model.User)
	return user, ok
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}

type userSummary struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	TeacherID *string `json:"teacherId,omitempty"`
	StudentID *string `json:"studentId,omitempty"`
}

func summarizeUser(u model.User) userSummary {
	return userSummary{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		TeacherID: u.TeacherID,
		StudentID: u.StudentID,
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_credentials")
		return
	}
	user, ok := s.identity.Authenticate(req.Username, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	token, err := auth.NewAccessToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.AccessTokenTTL, user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: summarizeUser(user)})
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	writeJSON(w, http.StatusOK, summarizeUser(user))
}

type dashboardStats struct {
	Projects           int            `json:"projects"`
	Students           int            `json:"students"`
	Teachers           int            `json:"teachers"`
	UnassignedStudents int            `json:"unassignedStudents"`
	ProjectsByStatus   map[string]int `json:"projectsByStatus"`
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, _ *http.Request) {
	projects := s.store.ListProjects()
	students := s.store.ListStudents()

	stats := dashboardStats{
		Projects:         len(projects),
		Students:         len(students),
		Teachers:         len(s.store.ListTeachers()),
		ProjectsByStatus: map[string]int{},
	}
	for _, st := range students {
		if st.ProjectID == nil {
			stats.UnassignedStudents++
		}
	}
	for _, p := range projects {
		stats.ProjectsByStatus[s.store.StatusLabel(p.StatusID)]++
	}
	writeJSON(w, http.StatusOK, stats)
}

// Helpers

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
