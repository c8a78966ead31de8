package identity

import (
	"context"
	"testing"

	"gradtrack/projects/internal/model"
	"gradtrack/projects/internal/persist"
	"gradtrack/projects/internal/seed"
	"gradtrack/projects/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New(persist.NewMemory(), seed.Snapshot())
	return NewService(st), st
}

func TestCreateTeacherDerivesAccount(t *testing.T) {
	svc, st := newTestService(t)

	created, err := svc.CreateTeacher(context.Background(), model.Teacher{
		Name:       "Dr. Maria Lopez",
		Email:      "maria.lopez@university.edu",
		NationalID: "10555123",
	})
	if err != nil {
		t.Fatalf("create teacher: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("missing generated id")
	}

	var account model.User
	found := false
	for _, u := range st.ListUsers() {
		if u.TeacherID != nil && *u.TeacherID == created.ID {
			account, found = u, true
		}
	}
	if !found {
		t.Fatalf("derived account not created")
	}
	if account.Username != "maria.lopez" {
		t.Fatalf("username = %q, want local part of email", account.Username)
	}
	if account.Password != "10555123" {
		t.Fatalf("password = %q, want national id", account.Password)
	}
	if account.Role != model.RoleTeacher {
		t.Fatalf("role = %q, want teacher", account.Role)
	}
}

func TestUpdateTeacherResyncsAccount(t *testing.T) {
	svc, st := newTestService(t)

	teacher, _ := st.Teacher("teacher-1")
	teacher.Email = "e.vance@university.edu"
	teacher.NationalID = "10999888"
	if _, err := svc.UpdateTeacher(context.Background(), teacher); err != nil {
		t.Fatalf("update teacher: %v", err)
	}

	if _, ok := svc.Authenticate("e.vance", "10999888"); !ok {
		t.Fatalf("account not re-synced with new email and national id")
	}
	if _, ok := svc.Authenticate("eleanor.v", "10245873"); ok {
		t.Fatalf("old credentials still accepted")
	}
}

func TestUpdateAfterAccountDeleteDoesNotRecreate(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	if err := svc.DeleteUser(ctx, "user-teacher-1"); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	teacher, _ := st.Teacher("teacher-1")
	teacher.Name = "Dr. E. Vance"
	if _, err := svc.UpdateTeacher(ctx, teacher); err != nil {
		t.Fatalf("update teacher: %v", err)
	}

	got, _ := st.Teacher("teacher-1")
	if got.Name != "Dr. E. Vance" {
		t.Fatalf("profile update lost: %+v", got)
	}
	for _, u := range st.ListUsers() {
		if u.TeacherID != nil && *u.TeacherID == "teacher-1" {
			t.Fatalf("account recreated after deletion")
		}
	}
}

func TestDeleteTeacherRemovesAccountAndAssignments(t *testing.T) {
	svc, st := newTestService(t)

	if err := svc.DeleteTeacher(context.Background(), "teacher-1"); err != nil {
		t.Fatalf("delete teacher: %v", err)
	}

	if _, ok := st.Teacher("teacher-1"); ok {
		t.Fatalf("profile survived deletion")
	}
	for _, u := range st.ListUsers() {
		if u.TeacherID != nil && *u.TeacherID == "teacher-1" {
			t.Fatalf("account survived profile deletion")
		}
	}
	for _, a := range st.ListAssignments() {
		if a.TeacherID == "teacher-1" {
			t.Fatalf("assignment survived profile deletion")
		}
	}
	if _, ok := st.Project("project-1"); !ok {
		t.Fatalf("project removed alongside teacher")
	}
}

func TestDeleteStudentRemovesAccount(t *testing.T) {
	svc, st := newTestService(t)

	if err := svc.DeleteStudent(context.Background(), "student-1"); err != nil {
		t.Fatalf("delete student: %v", err)
	}
	if _, ok := st.Student("student-1"); ok {
		t.Fatalf("profile survived deletion")
	}
	if _, ok := svc.Authenticate("alice.j", "20758431"); ok {
		t.Fatalf("account survived profile deletion")
	}
}

func TestSoleAdminDeleteIsNoop(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.DeleteUser(context.Background(), "user-admin"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, ok := svc.Authenticate("admin", "admin123"); !ok {
		t.Fatalf("sole admin account was deleted")
	}
}

func TestSecondAdminCanBeDeleted(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	var secondID string
	err := st.WithTx(ctx, func(tx *store.Tx) error {
		u := tx.CreateUser(model.User{Username: "admin2", Password: "pw", Role: model.RoleAdmin})
		secondID = u.ID
		return nil
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}

	if err := svc.DeleteUser(ctx, secondID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, ok := st.User(secondID); ok {
		t.Fatalf("second admin not deleted")
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)

	if _, ok := svc.Authenticate("ADMIN", "admin123"); !ok {
		t.Fatalf("username match should ignore case")
	}
	if _, ok := svc.Authenticate("admin", "ADMIN123"); ok {
		t.Fatalf("secret match must be exact")
	}
	if _, ok := svc.Authenticate("nobody", "admin123"); ok {
		t.Fatalf("unknown username accepted")
	}
	u, ok := svc.Authenticate("eleanor.v", "10245873")
	if !ok || u.TeacherID == nil || *u.TeacherID != "teacher-1" {
		t.Fatalf("derived teacher account rejected: %+v ok=%v", u, ok)
	}
}
