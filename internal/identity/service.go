// Package identity couples teacher and student profiles to their derived
// login accounts and answers authentication requests against the live
// account set.
package identity

import (
	"context"
	"strings"

	"gradtrack/projects/internal/model"
	"gradtrack/projects/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// CreateTeacher stores the profile and its derived account in one commit.
// The account username is the local part of the email and its password the
// national id.
func (s *Service) CreateTeacher(ctx context.Context, t model.Teacher) (model.Teacher, error) {
	var created model.Teacher
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		created = tx.CreateTeacher(t)
		tx.CreateUser(model.User{
			Username:  model.LocalPart(created.Email),
			Password:  created.NationalID,
			Role:      model.RoleTeacher,
			TeacherID: &created.ID,
		})
		return nil
	})
	return created, err
}

// UpdateTeacher re-syncs the derived account's username and password. If
// the account was deleted the profile update proceeds and the account is
// never recreated.
func (s *Service) UpdateTeacher(ctx context.Context, t model.Teacher) (model.Teacher, error) {
	var updated model.Teacher
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		updated = tx.UpdateTeacher(t)
		if u, ok := tx.UserByTeacherID(updated.ID); ok {
			u.Username = model.LocalPart(updated.Email)
			u.Password = updated.NationalID
			tx.UpdateUser(u)
		}
		return nil
	})
	return updated, err
}

// DeleteTeacher removes the profile, its assignments and its derived
// account in one commit.
func (s *Service) DeleteTeacher(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(tx *store.Tx) error {
		tx.DeleteTeacher(id)
		if u, ok := tx.UserByTeacherID(id); ok {
			tx.DeleteUser(u.ID)
		}
		return nil
	})
}

func (s *Service) CreateStudent(ctx context.Context, st model.Student) (model.Student, error) {
	var created model.Student
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		created = tx.CreateStudent(st)
		tx.CreateUser(model.User{
			Username:  model.LocalPart(created.Email),
			Password:  created.NationalID,
			Role:      model.RoleStudent,
			StudentID: &created.ID,
		})
		return nil
	})
	return created, err
}

func (s *Service) UpdateStudent(ctx context.Context, st model.Student) (model.Student, error) {
	var updated model.Student
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		updated = tx.UpdateStudent(st)
		if u, ok := tx.UserByStudentID(updated.ID); ok {
			u.Username = model.LocalPart(updated.Email)
			u.Password = updated.NationalID
			tx.UpdateUser(u)
		}
		return nil
	})
	return updated, err
}

func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(tx *store.Tx) error {
		tx.DeleteStudent(id)
		if u, ok := tx.UserByStudentID(id); ok {
			tx.DeleteUser(u.ID)
		}
		return nil
	})
}

// DeleteUser removes an account but never the linked profile. Deleting the
// last admin account is a silent no-op.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(tx *store.Tx) error {
		u, ok := tx.User(id)
		if !ok {
			return nil
		}
		if u.Role == model.RoleAdmin && tx.AdminCount() <= 1 {
			return nil
		}
		tx.DeleteUser(id)
		return nil
	})
}

// Authenticate matches the username case-insensitively and the secret
// exactly against the live account set.
func (s *Service) Authenticate(username, secret string) (model.User, bool) {
	for _, u := range s.store.ListUsers() {
		if strings.EqualFold(u.Username, username) && u.Password == secret {
			return u, true
		}
	}
	return model.User{}, false
}
