package authz

import (
	"context"
	"testing"

	"gradtrack/projects/internal/model"
	"gradtrack/projects/internal/persist"
	"gradtrack/projects/internal/seed"
	"gradtrack/projects/internal/store"
)

func newTestResolver(t *testing.T) (*Resolver, *store.Store) {
	t.Helper()
	st := store.New(persist.NewMemory(), seed.Snapshot())
	return NewResolver(st), st
}

func seedUser(t *testing.T, st *store.Store, id string) model.User {
	t.Helper()
	u, ok := st.User(id)
	if !ok {
		t.Fatalf("seed user %s missing", id)
	}
	return u
}

func TestCanEditProject(t *testing.T) {
	r, st := newTestResolver(t)

	admin := seedUser(t, st, "user-admin")
	director := seedUser(t, st, "user-teacher-1")
	evaluator := seedUser(t, st, "user-teacher-2")
	outsider := seedUser(t, st, "user-teacher-3")
	student := seedUser(t, st, "user-student-1")

	cases := []struct {
		name string
		user model.User
		want bool
	}{
		{"admin", admin, true},
		{"director", director, true},
		{"evaluator", evaluator, false},
		{"unassigned teacher", outsider, false},
		{"student", student, false},
	}
	for _, tc := range cases {
		if got := r.CanEditProject(tc.user, "project-1"); got != tc.want {
			t.Errorf("%s: CanEditProject = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanEditProjectIsPerProject(t *testing.T) {
	r, st := newTestResolver(t)

	director := seedUser(t, st, "user-teacher-1")
	if r.CanEditProject(director, "project-2") {
		t.Fatalf("director role on project-1 granted edit on project-2")
	}
}

func TestGradingDecisionAdmin(t *testing.T) {
	r, st := newTestResolver(t)

	d := r.GradingDecision(seedUser(t, st, "user-admin"), "project-1")
	if !d.CanGrade || d.ReviewerRole != AdminLabel || d.Slot != 0 {
		t.Fatalf("admin decision = %+v", d)
	}
}

func TestGradingDecisionEvaluator(t *testing.T) {
	r, st := newTestResolver(t)

	d := r.GradingDecision(seedUser(t, st, "user-teacher-2"), "project-1")
	if !d.CanGrade {
		t.Fatalf("evaluator denied grading")
	}
	if d.ReviewerRole != "Evaluator 1" || d.Slot != 1 {
		t.Fatalf("decision = %+v, want Evaluator 1 slot 1", d)
	}
}

func TestGradingDecisionDenied(t *testing.T) {
	r, st := newTestResolver(t)

	if d := r.GradingDecision(seedUser(t, st, "user-teacher-1"), "project-1"); d.CanGrade {
		t.Fatalf("director with no reviewer role allowed to grade: %+v", d)
	}
	if d := r.GradingDecision(seedUser(t, st, "user-student-1"), "project-1"); d.CanGrade {
		t.Fatalf("student allowed to grade: %+v", d)
	}
	if d := r.GradingDecision(seedUser(t, st, "user-teacher-2"), "project-2"); d.CanGrade {
		t.Fatalf("evaluator of project-1 allowed to grade project-2: %+v", d)
	}
}

func TestProjectRolesSkipsDanglingRole(t *testing.T) {
	r, st := newTestResolver(t)

	err := st.WithTx(context.Background(), func(tx *store.Tx) error {
		tx.DeleteRole("role-1")
		return nil
	})
	if err != nil {
		t.Fatalf("delete role: %v", err)
	}

	roles := r.ProjectRoles(seedUser(t, st, "user-teacher-1"), "project-1")
	if len(roles) != 0 {
		t.Fatalf("dangling role id resolved: %+v", roles)
	}
}
