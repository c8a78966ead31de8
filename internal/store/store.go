package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"gradtrack/projects/internal/model"
	"gradtrack/projects/internal/persist"
)

// ErrDuplicateAssignment is returned when a second assignment would link
// the same teacher to the same project.
var ErrDuplicateAssignment = errors.New("teacher already assigned to project")

// Store holds every record set in memory and writes the whole snapshot to
// its persistence backend on each mutation. A mutation is applied to a
// cloned state and only becomes visible once the snapshot save succeeds,
// so memory and storage never diverge.
type Store struct {
	mu      sync.RWMutex
	backend persist.Backend
	state   *state
}

type state struct {
	users       map[string]model.User
	teachers    map[string]model.Teacher
	students    map[string]model.Student
	projects    map[string]model.Project
	assignments map[string]model.Assignment
	roles       map[string]model.TeacherRole
	statuses    map[string]model.Status
	formats     map[string]model.Format
	programs    map[string]model.Program
}

// New builds a store over a loaded snapshot. Role capabilities are
// recomputed so snapshots written before a taxonomy change stay coherent.
func New(backend persist.Backend, snap model.Snapshot) *Store {
	return &Store{backend: backend, state: stateFromSnapshot(snap)}
}

func stateFromSnapshot(snap model.Snapshot) *state {
	st := newState()
	for _, u := range snap.Users {
		st.users[u.ID] = u
	}
	for _, t := range snap.Teachers {
		st.teachers[t.ID] = t
	}
	for _, s := range snap.Students {
		st.students[s.ID] = s
	}
	for _, p := range snap.Projects {
		st.projects[p.ID] = p
	}
	for _, a := range snap.Assignments {
		st.assignments[a.ID] = a
	}
	for _, r := range snap.Roles {
		r.Capabilities = model.DeriveCapabilities(r.Name)
		st.roles[r.ID] = r
	}
	for _, l := range snap.Statuses {
		st.statuses[l.ID] = l
	}
	for _, l := range snap.Formats {
		st.formats[l.ID] = l
	}
	for _, l := range snap.Programs {
		st.programs[l.ID] = l
	}
	return st
}

func newState() *state {
	return &state{
		users:       map[string]model.User{},
		teachers:    map[string]model.Teacher{},
		students:    map[string]model.Student{},
		projects:    map[string]model.Project{},
		assignments: map[string]model.Assignment{},
		roles:       map[string]model.TeacherRole{},
		statuses:    map[string]model.Status{},
		formats:     map[string]model.Format{},
		programs:    map[string]model.Program{},
	}
}

func (st *state) clone() *state {
	next := newState()
	for id, u := range st.users {
		next.users[id] = u
	}
	for id, t := range st.teachers {
		next.teachers[id] = t
	}
	for id, s := range st.students {
		next.students[id] = s
	}
	for id, p := range st.projects {
		next.projects[id] = p
	}
	for id, a := range st.assignments {
		next.assignments[id] = a
	}
	for id, r := range st.roles {
		next.roles[id] = r
	}
	for id, l := range st.statuses {
		next.statuses[id] = l
	}
	for id, l := range st.formats {
		next.formats[id] = l
	}
	for id, l := range st.programs {
		next.programs[id] = l
	}
	return next
}

func (st *state) snapshot() model.Snapshot {
	snap := model.Snapshot{
		Users:       make([]model.User, 0, len(st.users)),
		Teachers:    make([]model.Teacher, 0, len(st.teachers)),
		Students:    make([]model.Student, 0, len(st.students)),
		Projects:    make([]model.Project, 0, len(st.projects)),
		Assignments: make([]model.Assignment, 0, len(st.assignments)),
		Roles:       make([]model.TeacherRole, 0, len(st.roles)),
		Statuses:    make([]model.Status, 0, len(st.statuses)),
		Formats:     make([]model.Format, 0, len(st.formats)),
		Programs:    make([]model.Program, 0, len(st.programs)),
	}
	for _, u := range st.users {
		snap.Users = append(snap.Users, u)
	}
	for _, t := range st.teachers {
		snap.Teachers = append(snap.Teachers, t)
	}
	for _, s := range st.students {
		snap.Students = append(snap.Students, s)
	}
	for _, p := range st.projects {
		snap.Projects = append(snap.Projects, p)
	}
	for _, a := range st.assignments {
		snap.Assignments = append(snap.Assignments, a)
	}
	for _, r := range st.roles {
		snap.Roles = append(snap.Roles, r)
	}
	for _, l := range st.statuses {
		snap.Statuses = append(snap.Statuses, l)
	}
	for _, l := range st.formats {
		snap.Formats = append(snap.Formats, l)
	}
	for _, l := range st.programs {
		snap.Programs = append(snap.Programs, l)
	}
	sort.Slice(snap.Users, func(i, j int) bool { return snap.Users[i].ID < snap.Users[j].ID })
	sort.Slice(snap.Teachers, func(i, j int) bool { return snap.Teachers[i].ID < snap.Teachers[j].ID })
	sort.Slice(snap.Students, func(i, j int) bool { return snap.Students[i].ID < snap.Students[j].ID })
	sort.Slice(snap.Projects, func(i, j int) bool { return snap.Projects[i].ID < snap.Projects[j].ID })
	sort.Slice(snap.Assignments, func(i, j int) bool { return snap.Assignments[i].ID < snap.Assignments[j].ID })
	sort.Slice(snap.Roles, func(i, j int) bool { return snap.Roles[i].ID < snap.Roles[j].ID })
	sort.Slice(snap.Statuses, func(i, j int) bool { return snap.Statuses[i].ID < snap.Statuses[j].ID })
	sort.Slice(snap.Formats, func(i, j int) bool { return snap.Formats[i].ID < snap.Formats[j].ID })
	sort.Slice(snap.Programs, func(i, j int) bool { return snap.Programs[i].ID < snap.Programs[j].ID })
	return snap
}

// WithTx runs fn against a cloned state. On success the snapshot is saved
// to the backend and the clone swapped in; on any error the prior state and
// the prior stored snapshot are both retained.
func (s *Store) WithTx(ctx context.Context, fn func(*Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if err := fn(&Tx{st: next}); err != nil {
		return err
	}
	if err := s.backend.Save(ctx, next.snapshot()); err != nil {
		return err
	}
	s.state = next
	return nil
}

// Snapshot returns the current whole-store document.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.snapshot()
}
