// Package grading owns project approval and the dual-reviewer grade slots.
package grading

import (
	"context"
	"errors"

	"gradtrack/projects/internal/authz"
	"gradtrack/projects/internal/model"
	"gradtrack/projects/internal/store"
)

const (
	GradeMin = 0.0
	GradeMax = 5.0
)

var (
	// ErrNotPermitted: the user fails the authorization check for the
	// attempted operation.
	ErrNotPermitted = errors.New("operation not permitted")
	// ErrApprovalRequired: grading attempted before director approval by a
	// non-admin.
	ErrApprovalRequired = errors.New("director approval required before grading")
	// ErrNoReviewerSlot: the reviewer role names neither slot 1 nor slot 2.
	ErrNoReviewerSlot = errors.New("reviewer role selects no grade slot")
	// ErrProjectNotFound: grading targets a project id that does not exist.
	ErrProjectNotFound = errors.New("project not found")
)

type Engine struct {
	store    *store.Store
	resolver *authz.Resolver
}

func NewEngine(st *store.Store, resolver *authz.Resolver) *Engine {
	return &Engine{store: st, resolver: resolver}
}

// SetApproval toggles the director-approval gate. Permitted to anyone who
// may edit the project's details; nothing prevents toggling it back off.
func (e *Engine) SetApproval(ctx context.Context, u model.User, projectID string, approved bool) (model.Project, error) {
	if !e.resolver.CanEditProject(u, projectID) {
		return model.Project{}, ErrNotPermitted
	}
	var out model.Project
	err := e.store.WithTx(ctx, func(tx *store.Tx) error {
		p, ok := tx.Project(projectID)
		if !ok {
			return ErrProjectNotFound
		}
		p.DirectorApproved = approved
		out = tx.UpdateProject(p)
		return nil
	})
	return out, err
}

// RecordGrade writes the written and presentation grades into the slot the
// user's reviewer role selects. Admins bypass the approval gate and fill
// slot 1, falling back to slot 2 once both of slot 1's fields are set.
// Values clamp to [GradeMin, GradeMax]; a nil value clears the field.
func (e *Engine) RecordGrade(ctx context.Context, u model.User, projectID string, written, presentation *float64) (model.Project, error) {
	decision := e.resolver.GradingDecision(u, projectID)
	if !decision.CanGrade {
		return model.Project{}, ErrNotPermitted
	}
	var out model.Project
	err := e.store.WithTx(ctx, func(tx *store.Tx) error {
		p, ok := tx.Project(projectID)
		if !ok {
			return ErrProjectNotFound
		}
		if !p.DirectorApproved && u.Role != model.RoleAdmin {
			return ErrApprovalRequired
		}
		slot := decision.Slot
		if decision.ReviewerRole == authz.AdminLabel {
			slot = 1
			if p.WrittenGrade1 != nil && p.PresentationGrade1 != nil {
				slot = 2
			}
		}
		switch slot {
		case 1:
			p.WrittenGrade1 = clampGrade(written)
			p.PresentationGrade1 = clampGrade(presentation)
		case 2:
			p.WrittenGrade2 = clampGrade(written)
			p.PresentationGrade2 = clampGrade(presentation)
		default:
			return ErrNoReviewerSlot
		}
		out = tx.UpdateProject(p)
		return nil
	})
	return out, err
}

// FinalWritten reports the written final grade: the mean of the non-nil
// reviewer values. ok is false when neither reviewer has graded.
func FinalWritten(p model.Project) (float64, bool) {
	return meanGrade(p.WrittenGrade1, p.WrittenGrade2)
}

// FinalPresentation reports the presentation final grade.
func FinalPresentation(p model.Project) (float64, bool) {
	return meanGrade(p.PresentationGrade1, p.PresentationGrade2)
}

func meanGrade(a, b *float64) (float64, bool) {
	switch {
	case a != nil && b != nil:
		return (*a + *b) / 2, true
	case a != nil:
		return *a, true
	case b != nil:
		return *b, true
	default:
		return 0, false
	}
}

func clampGrade(v *float64) *float64 {
	if v == nil {
		return nil
	}
	clamped := *v
	if clamped < GradeMin {
		clamped = GradeMin
	}
	if clamped > GradeMax {
		clamped = GradeMax
	}
	return &clamped
}
